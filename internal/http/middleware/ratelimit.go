package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RateLimiter decides whether a request identified by key may proceed.
// The Redis-backed implementation lives in internal/cache.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit enforces a fixed-window limit per method, route pattern and
// client IP. Limiter errors fail open; rejections surface as 429 through
// the global error handler.
func RateLimit(limiter RateLimiter, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s:%s", c.Method(), c.Route().Path, c.IP())

		allowed, err := limiter.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			return c.Next()
		}
		if !allowed {
			return fiber.NewError(fiber.StatusTooManyRequests, "rate limit exceeded")
		}
		return c.Next()
	}
}
