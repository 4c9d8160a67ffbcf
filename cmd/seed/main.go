// Seeds a fresh database with the bootstrap admin account, the about page
// and a starter knowledge base so the site is usable out of the box.
// Running it twice is safe: existing rows are left alone.
package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/auth"
	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/domain"
	"github.com/thehatchggs/site-api/internal/observability"
	"github.com/thehatchggs/site-api/internal/persistence"
	"github.com/thehatchggs/site-api/internal/repository"
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	seedAdmin(ctx, cfg, repository.NewAdminUserRepository(pool), logger)
	seedAbout(ctx, repository.NewAboutRepository(pool), logger)
	seedKnowledge(ctx, repository.NewKnowledgeRepository(pool), logger)
	seedMerch(ctx, repository.NewMerchRepository(pool), logger)

	logger.Info("seed complete")
}

func seedAdmin(ctx context.Context, cfg *config.Config, admins repository.AdminUserRepository, logger *zap.Logger) {
	if cfg.Admin.SetupEmail == "" || cfg.Admin.SetupPassword == "" {
		logger.Warn("ADMIN_SETUP_EMAIL/ADMIN_SETUP_PASSWORD not set, skipping admin seed")
		return
	}
	count, err := admins.Count(ctx)
	if err != nil {
		logger.Fatal("counting admins", zap.Error(err))
	}
	if count > 0 {
		logger.Info("admin account already present, skipping")
		return
	}
	hash, err := auth.HashPassword(cfg.Admin.SetupPassword, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("hashing admin password", zap.Error(err))
	}
	admin := &domain.AdminUser{Email: cfg.Admin.SetupEmail, PasswordHash: hash}
	if err := admins.Create(ctx, admin); err != nil {
		logger.Fatal("creating admin", zap.Error(err))
	}
	logger.Info("created bootstrap admin", zap.String("email", admin.Email))
}

func seedAbout(ctx context.Context, about repository.AboutRepository, logger *zap.Logger) {
	if _, err := about.Get(ctx); err == nil {
		logger.Info("about page already present, skipping")
		return
	}
	doc := &domain.AboutContent{
		Title: "About The Hatch",
		Body: "The Hatch is a community gaming organization. We run events, " +
			"stream together and keep a small merch shop going. If you need a " +
			"hand with anything, the support chat on this site is the fastest " +
			"way to reach us.",
	}
	if err := about.Upsert(ctx, doc); err != nil {
		logger.Fatal("seeding about page", zap.Error(err))
	}
	logger.Info("seeded about page")
}

func seedKnowledge(ctx context.Context, knowledge repository.KnowledgeRepository, logger *zap.Logger) {
	existing, err := knowledge.List(ctx)
	if err != nil {
		logger.Fatal("listing knowledge articles", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("knowledge base already present, skipping")
		return
	}
	articles := []*domain.KnowledgeArticle{
		{
			Title:    "How do I join the community?",
			Category: "community",
			Content: "Joining is free. Head to the community page, hit the join " +
				"button and follow the invite link. New members get access to all " +
				"public channels right away. Event sign-ups open a week before " +
				"each event.",
			Keywords:    []string{"join", "member", "signup", "invite", "discord"},
			IsPublished: true,
		},
		{
			Title:    "Merch orders and shipping",
			Category: "merch",
			Content: "Merch orders are handled through our shop partner. Orders " +
				"usually ship within five business days. If an order has not " +
				"arrived after two weeks, open a support ticket with your order " +
				"number and we will chase it for you.",
			Keywords:    []string{"merch", "order", "shipping", "delivery", "refund"},
			IsPublished: true,
		},
		{
			Title:    "Reporting a problem with another member",
			Category: "support",
			Content: "If you have a problem with another member, please create a " +
				"support ticket rather than posting publicly. Tickets can carry a " +
				"private details field that only admins can read, so you can share " +
				"sensitive context safely.",
			Keywords:    []string{"report", "abuse", "moderation", "private", "complaint"},
			IsPublished: true,
		},
	}
	for _, article := range articles {
		if err := knowledge.Create(ctx, article); err != nil {
			logger.Fatal("seeding knowledge article", zap.String("title", article.Title), zap.Error(err))
		}
	}
	logger.Info("seeded knowledge base", zap.Int("articles", len(articles)))
}

func seedMerch(ctx context.Context, merch repository.MerchRepository, logger *zap.Logger) {
	existing, err := merch.List(ctx)
	if err != nil {
		logger.Fatal("listing merch items", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("merch catalogue already present, skipping")
		return
	}
	items := []*domain.MerchItem{
		{Name: "Classic Logo Tee", Description: "Soft cotton tee with the original logo.", IsFeatured: true},
		{Name: "Hatch Hoodie", Description: "Heavyweight hoodie for long sessions.", IsFeatured: true},
		{Name: "Sticker Pack", Description: "Six die-cut stickers."},
	}
	for _, item := range items {
		if err := merch.Create(ctx, item); err != nil {
			logger.Fatal("seeding merch item", zap.String("name", item.Name), zap.Error(err))
		}
	}
	logger.Info("seeded merch catalogue", zap.Int("items", len(items)))
}
