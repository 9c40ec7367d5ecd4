package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"maas-platform/services/model-registry/internal/config"
	"maas-platform/services/model-registry/internal/database"
	"maas-platform/services/model-registry/internal/repository"
	"maas-platform/services/model-registry/internal/server"
	"maas-platform/services/model-registry/internal/service"
	"maas-platform/shared/proto"
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

	logger.Info("starting model-registry service",
		zap.String("environment", cfg.Environment),
		zap.Int("grpc_port", cfg.Server.GRPCPort))

	repo, cleanup, err := initRepository(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize repository", zap.Error(err))
	}
	defer cleanup()

	svc := service.NewModelService(repo, logger)

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			server.MetricsInterceptor(),
			server.LoggingInterceptor(logger),
		),
	)
	proto.RegisterModelRegistryServer(grpcServer, server.NewServer(svc, logger))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Fatal("failed to listen", zap.String("addr", addr), zap.Error(err))
	}

	if cfg.Metrics.Enabled {
		go serveMetrics(cfg, logger)
	}

	go func() {
		logger.Info("grpc server listening", zap.String("addr", addr))
		if err := grpcServer.Serve(listener); err != nil {
			logger.Fatal("grpc server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down model-registry service")
	grpcServer.GracefulStop()
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

func initRepository(cfg *config.Config, logger *zap.Logger) (repository.ModelRepository, func(), error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("using in-memory repository, data will not be persisted")
		return repository.NewMemoryModelRepository(), func() {}, nil
	case "postgres", "":
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("connected to postgres",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Database))
		cleanup := func() {
			if err := db.Close(); err != nil {
				logger.Error("failed to close database", zap.Error(err))
			}
		}
		return repository.NewGormModelRepository(db.DB), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

func serveMetrics(cfg *config.Config, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port)
	logger.Info("metrics endpoint listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", zap.Error(err))
	}
}
