package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Faisalali0159/besofy/internal/cache"
	"github.com/Faisalali0159/besofy/internal/config"
	"github.com/Faisalali0159/besofy/internal/handler"
	"github.com/Faisalali0159/besofy/internal/infrastructure/database"
	"github.com/Faisalali0159/besofy/internal/logger"
	"github.com/Faisalali0159/besofy/internal/metrics"
	"github.com/Faisalali0159/besofy/internal/middleware"
	"github.com/Faisalali0159/besofy/internal/repository"
	"github.com/Faisalali0159/besofy/internal/service"
	"github.com/Faisalali0159/besofy/internal/validator"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	poolCfg := database.PoolConfig{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		Database:          cfg.DBName,
		SSLMode:           cfg.DBSSLMode,
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnLifetime:   cfg.DBMaxConnLifetime,
		MaxConnIdleTime:   cfg.DBMaxConnIdleTime,
		HealthCheckPeriod: cfg.DBHealthCheckPeriod,
	}

	if cfg.MigrateOnStart {
		logger.Info("Applying migrations", slog.String("dir", cfg.MigrationsDir))
		if err := database.Migrate(cfg.MigrationsDir, poolCfg.URL()); err != nil {
			logger.Fatal("Failed to apply migrations",
				slog.String("error", err.Error()))
		}
	}

	// Connect to database
	pool, err := database.NewPostgres(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer pool.Close()

	// Start database pool metrics collector
	poolStatsCollector := metrics.NewPoolStatsCollector(pool)
	poolStatsCollector.Start(15 * time.Second)
	defer poolStatsCollector.Stop()

	checks := map[string]handler.Check{
		"database": pool.Ping,
	}

	// Public list cache; disabled without REDIS_ADDR
	var articleCache cache.ArticleCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rdb, err := database.NewRedis(context.Background(), database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			logger.Fatal("Failed to connect to redis",
				slog.String("error", err.Error()))
		}
		defer rdb.Close()

		articleCache = cache.NewRedisArticleCache(rdb, cfg.CacheTTL)
		checks["cache"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		logger.Warn("REDIS_ADDR not set, public list cache disabled")
	}

	articleRepo := repository.NewPostgresArticleRepository(pool)
	articleService := service.NewArticleService(
		articleRepo,
		articleCache,
		validator.NewValidator(cfg.MaxImageBytes),
		service.Options{ExcerptLength: cfg.ExcerptLength},
	)

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.AdminRole)
	newsHandler := handler.NewNewsHandler(articleService, auth, cfg.MaxImageBytes)
	healthHandler := handler.NewHealthHandler(version, checks)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logging())

	// Health and metrics endpoints
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handler.RegisterNewsRoutes(router, newsHandler, auth)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
