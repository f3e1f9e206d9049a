package handler

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthChecker is one named dependency probe run by the health endpoint.
type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

// DBChecker adapts a *sql.DB ping into a HealthChecker.
func DBChecker(db *sql.DB) HealthChecker {
	return HealthChecker{Name: "postgres", Check: db.PingContext}
}

// HealthCheck probes every dependency with a shared timeout. All probes
// must pass for a 200; otherwise the response is 503 naming the
// unavailable dependencies.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(checkers ...HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		var failed []string
		for _, hc := range checkers {
			if err := hc.Check(ctx); err != nil {
				failed = append(failed, hc.Name)
			}
		}
		if len(failed) > 0 {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
				"dependency unavailable: "+strings.Join(failed, ", "))
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe reports process liveness only; no dependency checks.
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
