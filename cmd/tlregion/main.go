package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/tlregion/internal/application/catalog"
	"github.com/aescanero/tlregion/internal/application/monitor"
	"github.com/aescanero/tlregion/internal/config"
	"github.com/aescanero/tlregion/internal/i18n"
	"github.com/aescanero/tlregion/pkg/adapters/cache/memory"
	rediscache "github.com/aescanero/tlregion/pkg/adapters/cache/redis"
	"github.com/aescanero/tlregion/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/tlregion/pkg/api/grpc"
	"github.com/aescanero/tlregion/pkg/api/http"

	prom "github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting Timor-Leste Regional API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("data_dir", cfg.DataDir),
		zap.String("static_dir", cfg.StaticDir))

	messages, err := i18n.Load(cfg.DefaultLang)
	if err != nil {
		logger.Fatal("failed to load messages", zap.Error(err))
	}

	metricsCollector := prometheus.NewCollector(prom.DefaultRegisterer)

	catalogOpts := []catalog.Option{catalog.WithMetrics(metricsCollector)}

	var redisClient *goredis.Client
	switch cfg.Cache.Backend {
	case config.CacheMemory:
		catalogOpts = append(catalogOpts, catalog.WithCache(
			memory.NewCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
			cfg.Cache.TTL,
		))
		logger.Info("search cache enabled", zap.String("backend", cfg.Cache.Backend))
	case config.CacheRedis:
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})

		// Test Redis connection
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

		searchCache := rediscache.NewCache(redisClient, logger)
		if err := searchCache.Flush(context.Background()); err != nil {
			logger.Warn("failed to flush search cache", zap.Error(err))
		}

		catalogOpts = append(catalogOpts, catalog.WithCache(searchCache, cfg.Cache.TTL))
		logger.Info("search cache enabled", zap.String("backend", cfg.Cache.Backend))
	}

	regions := catalog.New(cfg.DataDir, logger, catalogOpts...)

	var sinks []monitor.StatusSink
	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Port:   cfg.GRPCPort,
			Logger: logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
		sinks = append(sinks, grpcServer)
	}

	datasetMonitor := monitor.NewMonitor(regions, metricsCollector, cfg.Monitor.Interval, logger, sinks...)
	datasetMonitor.Start()

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:         cfg.HTTPPort,
		Catalog:      regions,
		Health:       datasetMonitor,
		Messages:     messages,
		Metrics:      metricsCollector,
		StaticDir:    cfg.StaticDir,
		StrictStatus: cfg.StrictStatus,
		ReadTimeout:  cfg.Timeouts.ReadTimeout,
		WriteTimeout: cfg.Timeouts.WriteTimeout,
		Logger:       logger,
	})

	// Start servers
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Fatal("gRPC server failed", zap.Error(err))
			}
		}()
	}

	logger.Info("Timor-Leste Regional API started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.String("cache", cfg.Cache.Backend),
		zap.Bool("strict_status", cfg.StrictStatus))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	datasetMonitor.Stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Redis close error", zap.Error(err))
		}
	}

	logger.Info("Timor-Leste Regional API shut down complete")
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
