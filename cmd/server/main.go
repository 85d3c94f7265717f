package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shoplite/storefront/internal/application/catalog"
	reportapp "github.com/shoplite/storefront/internal/application/report"
	tradeapp "github.com/shoplite/storefront/internal/application/trade"
	"github.com/shoplite/storefront/internal/infrastructure/config"
	"github.com/shoplite/storefront/internal/infrastructure/logger"
	"github.com/shoplite/storefront/internal/infrastructure/storage"
	"github.com/shoplite/storefront/internal/infrastructure/storefrontapi"
	"github.com/shoplite/storefront/internal/infrastructure/telemetry"
	"github.com/shoplite/storefront/internal/interfaces/http/handler"
	"github.com/shoplite/storefront/internal/interfaces/http/middleware"
	"github.com/shoplite/storefront/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Storefront Gateway API
//	@version		1.0
//	@description	Shopping cart gateway in front of the storefront API.
//	@BasePath		/api/v1

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		logger.Sync(log)
	}()

	log.Info("Starting storefront gateway",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("api", cfg.API.BaseURL),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiles, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open profile storage", zap.Error(err))
	}
	defer func() {
		if err := profiles.Close(); err != nil {
			log.Error("Error closing profile storage", zap.Error(err))
		}
	}()

	api, err := storefrontapi.NewClient(
		storefrontapi.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout},
		storefrontapi.WithLogger(log),
	)
	if err != nil {
		log.Fatal("Failed to create storefront API client", zap.Error(err))
	}

	cartMetrics, err := telemetry.NewCartMetrics(mp.Meter("storefront/cart"))
	if err != nil {
		log.Fatal("Failed to create cart metrics", zap.Error(err))
	}

	// Application services
	catalogService := catalogapp.NewCatalogService(api, log)
	checkoutService := tradeapp.NewCheckoutService(api, log)
	reportService := reportapp.NewReportService(api, log)
	dataToolsService := reportapp.NewDataToolsService(api, log)

	stores := handler.NewCartStores(profiles, cartMetrics)
	handlers := router.StorefrontHandlers{
		Catalog:  handler.NewCatalogHandler(catalogService),
		Cart:     handler.NewCartHandler(stores, catalogService),
		Checkout: handler.NewCheckoutHandler(stores, checkoutService),
		Reports:  handler.NewReportHandler(reportService, dataToolsService),
		System:   handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{"cart_storage": profiles}),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. Recovery - Catch panics
	// 2. RequestID - Generate/propagate request ID
	// 3. Logger - Log requests with request_id
	// 4. Tracing - Server span per route, then request_id and error status on it
	// 5. Security headers and CORS
	// 6. BodyLimit, then RateLimit when configured
	// 7. HTTPMetrics - Request counts and latencies
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tp.IsEnabled(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     append(cfg.HTTP.CORSAllowHeaders, cfg.Profile.HeaderName),
		ExposeHeaders:    []string{middleware.RequestIDHeader, cfg.Profile.HeaderName, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	engine.Use(middleware.HTTPMetrics(mp, log))

	// Load balancer probe outside the versioned API
	engine.GET("/health", handlers.System.Health)

	var toolsMiddleware []gin.HandlerFunc
	if cfg.HTTP.ToolsRateLimitRequests > 0 {
		toolsLimiter := middleware.NewRateLimiter(cfg.HTTP.ToolsRateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer toolsLimiter.Close()
		toolsMiddleware = append(toolsMiddleware, middleware.RateLimit(toolsLimiter))
	}

	r := router.NewRouter(engine)
	routes := router.RegisterStorefront(r, handlers, middleware.Profile(middleware.ProfileConfig{
		HeaderName:   cfg.Profile.HeaderName,
		CookieName:   cfg.Profile.CookieName,
		CookieMaxAge: cfg.Profile.CookieMaxAge,
		CookieSecure: cfg.Profile.CookieSecure,
	}), toolsMiddleware...)
	r.Setup()
	log.Info("Routes registered", zap.String("base_path", r.BasePath()), zap.Int("routes", len(routes)))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush metrics", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
