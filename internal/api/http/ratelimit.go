package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/thehatchggs/site-api/internal/config"
	"github.com/thehatchggs/site-api/internal/persistence"
	apperrors "github.com/thehatchggs/site-api/pkg/util/errorutil"
)

// RateLimiter throttles public endpoints with a fixed window counter in
// Redis, keyed by client IP and route path. When Redis is unreachable the
// limiter degrades open: availability beats throttling for a public site.
type RateLimiter struct {
	redis  *persistence.Redis
	cfg    config.RateLimitConfig
	logger *zap.Logger
}

// NewRateLimiter constructs the limiter.
func NewRateLimiter(redis *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{redis: redis, cfg: cfg, logger: logger}
}

// Handle enforces the configured request budget per window.
func (rl *RateLimiter) Handle(c *fiber.Ctx) error {
	if !rl.cfg.Enabled || rl.redis == nil || rl.redis.Client == nil {
		return c.Next()
	}

	ctx := c.UserContext()
	window := rl.cfg.Window()
	key := fmt.Sprintf("ratelimit:%s:%s:%d", c.IP(), c.Route().Path, time.Now().Unix()/int64(window.Seconds()))

	count, err := rl.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		rl.logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		return c.Next()
	}
	if count == 1 {
		if err := rl.redis.Client.Expire(ctx, key, window).Err(); err != nil {
			rl.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}

	if count > int64(rl.cfg.RequestsPerWindow) {
		c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", int(window.Seconds())))
		return apperrors.NewDomainError("RATE_LIMITED", "too many requests", fiber.StatusTooManyRequests, nil)
	}
	return c.Next()
}
