package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	auditapp "github.com/venuecore/backend/internal/application/audit"
	bookingapp "github.com/venuecore/backend/internal/application/booking"
	customerapp "github.com/venuecore/backend/internal/application/customer"
	hotelapp "github.com/venuecore/backend/internal/application/hotel"
	venueapp "github.com/venuecore/backend/internal/application/venue"
	"github.com/venuecore/backend/internal/infrastructure/auth"
	"github.com/venuecore/backend/internal/infrastructure/cache"
	"github.com/venuecore/backend/internal/infrastructure/config"
	"github.com/venuecore/backend/internal/infrastructure/event"
	"github.com/venuecore/backend/internal/infrastructure/logger"
	"github.com/venuecore/backend/internal/infrastructure/persistence"
	"github.com/venuecore/backend/internal/infrastructure/telemetry"
	"github.com/venuecore/backend/internal/interfaces/http/handler"
	"github.com/venuecore/backend/internal/interfaces/http/middleware"
	"github.com/venuecore/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = log.Sync()
	}()

	log.Info("Starting VenueCore Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize distributed tracing; a no-op provider when disabled
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if tracerProvider.IsEnabled() {
		if err := telemetry.RegisterDBTracing(db.DB, cfg.Database.DBName, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	hotelRepo := persistence.NewGormHotelRepository(db.DB)
	venueRepo := persistence.NewGormVenueRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Initialize application services
	hotelService := hotelapp.NewHotelService(hotelRepo)
	venueService := venueapp.NewVenueService(venueRepo)
	customerService := customerapp.NewCustomerService(customerRepo)
	bookingService := bookingapp.NewBookingService(bookingRepo, venueRepo, hotelRepo, customerRepo)
	auditService := auditapp.NewAuditService(auditRepo)

	// Initialize event bus; booking lifecycle events feed the activity log
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogger(log))
	bookingService.SetEventPublisher(eventBus)

	// JWT token service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Rate limiter backed by Redis, with in-memory fallback when Redis is
	// unreachable
	var rateLimiter cache.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		factory := cache.NewRateLimiterFactory(redisClient,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(true),
		)
		rateLimiter, err = factory.Create(cache.RateLimiterConfig{
			Limit:  cfg.HTTP.RateLimitRequests,
			Window: cfg.HTTP.RateLimitWindow,
		})
		if err != nil {
			log.Fatal("Failed to create rate limiter", zap.Error(err))
		}
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom request validation tags
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, tracing,
	// request logging, CORS, authentication, span enrichment, rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.JWTAuthMiddleware(jwtService))
	engine.Use(middleware.TracingAttributeInjector())
	if rateLimiter != nil {
		engine.Use(middleware.RateLimit(rateLimiter))
	}

	// Health endpoints live at the engine root, outside API versioning.
	// The auth middleware skips them.
	handler.NewHealthHandler(db).RegisterRoutes(engine)

	// Versioned API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(handler.NewHotelHandler(hotelService)).
		Register(handler.NewVenueHandler(venueService)).
		Register(handler.NewCustomerHandler(customerService)).
		Register(handler.NewBookingHandler(bookingService)).
		Register(handler.NewAuditHandler(auditService)).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
