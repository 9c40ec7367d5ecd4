package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"maas-platform/services/api-gateway/internal/auth"
	"maas-platform/services/api-gateway/internal/cache"
	"maas-platform/services/api-gateway/internal/config"
	"maas-platform/services/api-gateway/internal/handlers"
	"maas-platform/services/api-gateway/internal/realtime"
	"maas-platform/services/api-gateway/internal/services"
	"maas-platform/services/api-gateway/internal/tenants"
	"maas-platform/services/api-gateway/internal/users"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := initLogger(cfg)
	defer logger.Sync()

	logger.Info("starting api-gateway",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.Server.Addr()),
		zap.String("registry", cfg.Registry.Target()))

	clients, err := services.New(cfg.Registry)
	if err != nil {
		logger.Fatal("failed to connect to model registry", zap.Error(err))
	}
	defer clients.Close()

	userStore, err := initUserStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize user store", zap.Error(err))
	}

	modelCache, err := cache.New(cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer modelCache.Close()
	if modelCache != nil {
		logger.Info("model cache enabled", zap.String("redis", cfg.Redis.Addr()))
	}

	hub := realtime.NewHub(logger)
	defer hub.Close()

	handler := handlers.New(
		cfg,
		clients.Registry,
		userStore,
		tenants.NewStore(),
		auth.NewService(cfg.Auth),
		modelCache,
		hub,
		logger,
	)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Router(logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down api-gateway")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

func initLogger(cfg *config.Config) *zap.Logger {
	var logger *zap.Logger
	var err error
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	return logger
}

func initUserStore(cfg *config.Config, logger *zap.Logger) (users.Store, error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("using in-memory user store, accounts will not be persisted")
		return users.NewMemoryStore(), nil
	case "postgres", "":
		db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := users.NewGormStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate user store: %w", err)
		}
		logger.Info("connected to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
