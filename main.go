package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/CoderAnshul/AdDash/auth"
	"github.com/CoderAnshul/AdDash/cache"
	"github.com/CoderAnshul/AdDash/config"
	"github.com/CoderAnshul/AdDash/database"
	"github.com/CoderAnshul/AdDash/handlers"
	"github.com/CoderAnshul/AdDash/metrics"
	"github.com/CoderAnshul/AdDash/repository"
	"github.com/CoderAnshul/AdDash/router"
	"github.com/CoderAnshul/AdDash/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	mongoClient, err := database.Connect(ctx, &cfg.Mongo)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	logger.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	store, err := cache.New(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer store.Close()
	logger.Info("connected to Redis", zap.String("host", cfg.Redis.Host))

	repos := repository.NewMongoRepositories(mongoClient, cfg.Mongo.Database)

	if err := service.SeedRoles(ctx, repos.Roles); err != nil {
		logger.Fatal("failed to seed system roles", zap.Error(err))
	}

	roles := service.NewRoleService(repos.Roles, logger)

	sessions := auth.NewManager(repos.Admins, store, &cfg.Auth, logger)
	if err := sessions.Restore(ctx); err != nil {
		logger.Warn("failed to restore admin sessions", zap.Error(err))
	}
	sessions.Start()
	defer sessions.Close()

	warmJob := service.NewCacheWarmJob(repos, store, logger, 10*time.Minute)
	warmJob.Start()
	defer warmJob.Stop()

	m := metrics.New(func() float64 {
		return float64(sessions.Active())
	})

	h := handlers.NewHandler(repos, roles, sessions, store, logger, cfg.Auth.TOTPIssuer)
	r := router.New(h, roles, cfg.Auth.JWTSecret, m)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
