package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderapi/docs"
	"orderapi/internal/broker"
	"orderapi/internal/cache"
	"orderapi/internal/config"
	"orderapi/internal/database"
	"orderapi/internal/database/migration"
	"orderapi/internal/diagnostics"
	handlers "orderapi/internal/http/handler"
	"orderapi/internal/http/middleware"
	"orderapi/internal/model"
	"orderapi/internal/otel"
	"orderapi/internal/outbox"
	"orderapi/internal/repository/postgres"
	"orderapi/internal/service"
	"orderapi/internal/storage"
)

// @title Order API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing degrades to a noop provider when the exporter is unreachable.
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	mq, err := broker.NewRabbitMQ(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer mq.Close()

	// Initialize repositories and services
	customerRepo := postgres.NewCustomerPostgres(db)
	orderRepo := postgres.NewOrderPostgres(db)
	outboxRepo := postgres.NewOutboxPostgres(db)

	customerCache := cache.NewCache[model.Customer](redisClient, "customer")
	orderCache := cache.NewCache[model.Order](redisClient, "order")

	customerSvc := service.NewCustomerService(customerRepo, customerCache)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, orderCache)
	exportSvc := service.NewExportService(objStore, orderRepo)

	// Relay committed outbox rows to the broker in the background.
	worker := outbox.NewWorker(outboxRepo, mq, cfg.Outbox, loc)
	go worker.Start(ctx)

	// Operational endpoints (prometheus scrape, pprof) live on their own port
	// so the public load balancer never routes to them.
	diag := diagnostics.NewServer(cfg.DiagnosticsPort)
	go func() {
		if err := diag.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("diagnostics server stopped: %v", err)
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, handlers.Deps{
		Checkers: []handlers.HealthChecker{
			handlers.DBChecker(db),
			{Name: "redis", Check: redisClient.Ping},
			{Name: "rabbitmq", Check: func(context.Context) error { return mq.HealthCheck() }},
			{Name: "minio", Check: objStore.HealthCheck},
		},
		Customers:   customerSvc,
		Orders:      orderSvc,
		Exports:     exportSvc,
		Limiter:     cache.NewRateLimiter(redisClient),
		WriteLimit:  cfg.RateLimit.Limit,
		WriteWindow: time.Duration(cfg.RateLimit.WindowSec) * time.Second,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	// Drain in-flight requests before closing the slower dependencies.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := diag.Shutdown(shutdownCtx); err != nil {
		log.Printf("diagnostics shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("tracing shutdown: %v", err)
	}
}
