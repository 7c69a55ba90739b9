package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/catalog-admin/internal/api"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/handlers"
	"github.com/aaravmahajanofficial/catalog-admin/internal/api/middleware"
	"github.com/aaravmahajanofficial/catalog-admin/internal/cache"
	"github.com/aaravmahajanofficial/catalog-admin/internal/config"
	"github.com/aaravmahajanofficial/catalog-admin/internal/form"
	"github.com/aaravmahajanofficial/catalog-admin/internal/health"
	"github.com/aaravmahajanofficial/catalog-admin/internal/metrics"
	repository "github.com/aaravmahajanofficial/catalog-admin/internal/repositories"
	service "github.com/aaravmahajanofficial/catalog-admin/internal/services"
	"github.com/aaravmahajanofficial/catalog-admin/internal/static"
	"github.com/aaravmahajanofficial/catalog-admin/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer func() {
		if err := redisCache.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	productService := service.NewProductService(repos.Product, redisCache)
	categoryService := service.NewCategoryService(repos.Category, redisCache)

	registry := form.NewRegistry(form.Dependencies{
		Store:      productService,
		Categories: categoryService,
		Logger:     logger,
		Now:        time.Now,
	}, form.Options{
		ImageIDPrefix:       cfg.Form.ImageIDPrefix,
		PlaceholderImageURL: cfg.Form.PlaceholderImageURL,
		SubmitTimeout:       cfg.Form.SubmitTimeout,
	})

	healthChecker, err := health.NewHealthHandler(cfg)
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	api.RegisterRoutes(routerMux, api.Handlers{
		Forms:      handlers.NewFormHandler(registry),
		Categories: handlers.NewCategoryHandler(categoryService),
		Auth:       middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey)),
		Limiter:    repository.NewRateLimitRepo(redisClient, cfg.RateConfig),
	})

	rootMux := http.NewServeMux()
	rootMux.Handle("GET /healthz", healthChecker.Handler())
	rootMux.Handle("GET /metrics", metrics.Handler())
	rootMux.Handle("/", static.NewRouter(cfg.Static, routerMux))

	// Middleware chaining; metrics must see the request the muxes annotate
	var handler http.Handler = rootMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, cfg.Otel.ServiceName)

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Failed to flush traces", slog.String("error", err.Error()))
	}

}
