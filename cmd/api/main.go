package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/thehatchggs/site-api/internal/api/http"
	"github.com/thehatchggs/site-api/internal/api/http/handlers"
	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/crypto"
	"github.com/thehatchggs/site-api/internal/events"
	"github.com/thehatchggs/site-api/internal/observability"
	"github.com/thehatchggs/site-api/internal/persistence"
	"github.com/thehatchggs/site-api/internal/repository"
	"github.com/thehatchggs/site-api/internal/service"
	"github.com/thehatchggs/site-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)
	aboutRepo := repository.NewAboutRepository(pool)
	merchRepo := repository.NewMerchRepository(pool)
	adminRepo := repository.NewAdminUserRepository(pool)
	analyticsRepo := repository.NewAnalyticsRepository(pool)

	cipher, err := crypto.NewFieldCipher(cfg.Encryption.Key)
	if err != nil {
		logger.Fatal("invalid encryption key", zap.Error(err))
	}
	sessions, err := auth.NewSessionCodec(cfg.Session.Secret, cfg.Session.TTL())
	if err != nil {
		logger.Fatal("invalid session secret", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()

	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Cipher:     cipher,
		Analytics:  analyticsService,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	supportService := service.NewSupportService(service.SupportDependencies{
		KnowledgeRepo: knowledgeRepo,
		AboutRepo:     aboutRepo,
		Analytics:     analyticsService,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	contentService := service.NewContentService(service.ContentDependencies{
		AboutRepo:     aboutRepo,
		MerchRepo:     merchRepo,
		KnowledgeRepo: knowledgeRepo,
	})
	authService := service.NewAuthService(*cfg, adminRepo, sessions, logger)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	adminMiddleware := auth.NewAdminMiddleware(sessions, authService.TokenManager(), cfg.Session.CookieName, adminRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	rateLimiter := httptransport.NewRateLimiter(redis, cfg.RateLimit, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:          handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Support:         handlers.NewSupportHandler(supportService),
		Tickets:         handlers.NewTicketsHandler(ticketService),
		AdminTickets:    handlers.NewAdminTicketsHandler(ticketService),
		Content:         handlers.NewContentHandler(contentService),
		Analytics:       handlers.NewAnalyticsHandler(analyticsService, cfg.App.IsProduction()),
		Auth:            handlers.NewAuthHandler(authService, *cfg),
		Metrics:         handlers.NewMetricsHandler(metrics),
		AdminMiddleware: adminMiddleware,
		RateLimiter:     rateLimiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
