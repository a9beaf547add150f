package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"studynotes/docs"
	"studynotes/internal/auth"
	"studynotes/internal/cache"
	"studynotes/internal/config"
	"studynotes/internal/database"
	"studynotes/internal/database/migration"
	handlers "studynotes/internal/http/handler"
	"studynotes/internal/http/middleware"
	"studynotes/internal/logger"
	"studynotes/internal/orders"
	appotel "studynotes/internal/otel"
	"studynotes/internal/repository/postgres"
	"studynotes/internal/service"
	"studynotes/internal/storage"
)

// multipart framing on top of the largest accepted note file
const bodyLimit = service.MaxUploadBytes + 1<<20

// @title StudyNotes API
// @version 1.0
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "studynotes: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := appotel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		return err
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	var entCache cache.EntitlementCache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis_unavailable", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			defer rdb.Close()
			entCache = cache.NewRedisEntitlements(rdb)
			log.Info("redis_connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register domain metrics: %w", err)
	}
	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	noteRepo := postgres.NewNotePostgres(db)
	grantRepo := postgres.NewGrantPostgres(db)
	orderRepo := postgres.NewOrderPostgres(db)

	var gateway service.OrderGateway
	if oc := orders.NewClient(cfg.Payment); oc.IsConfigured() {
		gateway = oc
	} else {
		log.Warn("payments_disabled", zap.String("msg", "razorpay credentials missing, checkout returns 503"))
	}

	noteSvc := service.NewNoteService(objStore, noteRepo, log, metrics)
	entSvc := service.NewEntitlementService(grantRepo, entCache, time.Duration(cfg.Redis.EntitlementTTL)*time.Second, log, metrics)
	paySvc := service.NewPaymentService(cfg.Payment, grantRepo, orderRepo, gateway, log, metrics)

	viewer := handlers.NewViewer(noteSvc, entSvc, handlers.ViewerOptions{
		Brand:       cfg.Brand,
		Price:       service.FormatPrice(cfg.Payment.Amount, cfg.Payment.Currency),
		PurchaseURL: cfg.Payment.PurchaseURL,
	}, log)

	if cfg.Auth.JWTSecret == "" {
		log.Warn("jwt_secret_missing", zap.String("msg", "every caller will be anonymous"))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    bodyLimit,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Identify(auth.NewVerifier(cfg.Auth.JWTSecret), cfg.Auth.CookieName))
	app.Use(middleware.Logger(log))
	app.Use(httpMetrics.Handler())
	app.Use(middleware.SecureHeaders())

	handlers.RegisterRoutes(app, handlers.Dependencies{
		DB:          db,
		Notes:       noteSvc,
		Entitlement: entSvc,
		Payments:    paySvc,
		Viewer:      viewer,
		Gatherer:    reg,
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

	errCh := make(chan error, 1)
	go func() {
		log.Info("server_starting", zap.String("addr", ":"+cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("server_stopping")
	return app.ShutdownWithTimeout(10 * time.Second)
}
