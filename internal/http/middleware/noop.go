package middleware

import "github.com/gofiber/fiber/v2"

// Noop is a pass-through middleware. It stands in for optional
// middleware (e.g. the write-path rate limit) when that feature is
// disabled, so route registration stays unconditional.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
