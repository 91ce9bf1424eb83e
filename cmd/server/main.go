package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pptq-absensi/config"
	"pptq-absensi/internal/api/handler"
	"pptq-absensi/internal/api/router"
	"pptq-absensi/internal/repository"
	"pptq-absensi/internal/service"
	"pptq-absensi/pkg/ai"
	"pptq-absensi/pkg/database"
	"pptq-absensi/pkg/jwt"
	applogger "pptq-absensi/pkg/logger"
	"pptq-absensi/pkg/metrics"
	"pptq-absensi/pkg/redis"
	"pptq-absensi/pkg/validation"
)

func main() {
	// 1. configuration
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log, "server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.String("timezone", cfg.Server.Timezone),
	)

	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		logger.Fatal("load timezone", zap.Error(err))
	}
	now := func() time.Time { return time.Now().In(loc) }

	// 3. database and migrations
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Redis is optional: without it sessions stay in memory and token
	// revocation, idle timeout and rate limiting are off.
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running degraded", zap.Error(err))
		rdb = nil
	}
	var cache handler.Pinger
	if rdb != nil {
		cache = rdb
	}

	// 5. shared infrastructure
	if err := validation.RegisterGin(); err != nil {
		logger.Fatal("register validation rules", zap.Error(err))
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	m := metrics.New()

	var gen ai.Generator = ai.Unconfigured{}
	if cfg.AI.APIKey != "" {
		g, err := ai.NewGemini(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.Warn("ai provider unavailable, summaries disabled", zap.Error(err))
		} else {
			gen = g
		}
	}

	// 6. Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, gen, m, now, logger)
	h := handler.NewHandler(svc, repo, cache)

	resetJob, err := service.NewResetJob(cfg.Cron.DailyReset, loc, svc.Attendance, logger)
	if err != nil {
		logger.Fatal("schedule daily reset", zap.String("spec", cfg.Cron.DailyReset), zap.Error(err))
	}
	resetJob.Start()

	// 7. router
	engine := router.Setup(cfg, h, jwtMgr, rdb, m, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	select {
	case <-resetJob.Stop().Done():
	case <-ctx.Done():
		logger.Warn("daily reset still running at shutdown")
	}

	sqlDB.Close()
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
