package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"orderapi/internal/http/middleware"
	"orderapi/internal/service"
)

// Deps bundles everything the HTTP layer needs. Limiter may be nil,
// which disables the write-path rate limit.
type Deps struct {
	Checkers  []HealthChecker
	Customers service.CustomerService
	Orders    service.OrderService
	Exports   service.ExportService

	Limiter     middleware.RateLimiter
	WriteLimit  int
	WriteWindow time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, deps Deps) {
	// Mutating routes share one fixed-window rate limit.
	writeGuard := middleware.Noop()
	if deps.Limiter != nil {
		writeGuard = middleware.RateLimit(deps.Limiter, deps.WriteLimit, deps.WriteWindow)
	}

	// Readiness checks every dependency; liveness only the process.
	app.Get("/health", HealthCheck(deps.Checkers...))
	app.Get("/healthz", LivenessProbe())

	app.Get("/customers", ListCustomers(deps.Customers))
	app.Post("/customers", writeGuard, CreateCustomer(deps.Customers))
	app.Get("/customers/:id", GetCustomer(deps.Customers))
	app.Put("/customers/:id", writeGuard, UpdateCustomer(deps.Customers))
	app.Delete("/customers/:id", writeGuard, DeleteCustomer(deps.Customers))
	app.Get("/customers/:id/orders", ListCustomerOrders(deps.Orders))

	app.Get("/orders", ListOrders(deps.Orders))
	app.Post("/orders", writeGuard, CreateOrder(deps.Orders))
	// Static route must be registered before /orders/:id
	app.Post("/orders/export", writeGuard, ExportOrders(deps.Exports))
	app.Get("/orders/:id", GetOrder(deps.Orders))
	app.Put("/orders/:id", writeGuard, UpdateOrder(deps.Orders))
	app.Delete("/orders/:id", writeGuard, DeleteOrder(deps.Orders))
}
