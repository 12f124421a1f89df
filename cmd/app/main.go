package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/blog-service/internal/config"
	"github.com/BloggingApp/blog-service/internal/events"
	"github.com/BloggingApp/blog-service/internal/handler"
	"github.com/BloggingApp/blog-service/internal/repository"
	"github.com/BloggingApp/blog-service/internal/repository/memory"
	"github.com/BloggingApp/blog-service/internal/repository/postgres"
	"github.com/BloggingApp/blog-service/internal/server"
	"github.com/BloggingApp/blog-service/internal/service"
	"github.com/BloggingApp/blog-service/internal/tracing"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()

	if err := config.LoadEnv(); err != nil {
		logger.Sugar().Panicf("failed to load environment variables: %s", err.Error())
	}

	if err := config.InitConfig(); err != nil {
		logger.Sugar().Panicf("failed to initialize yaml config: %s", err.Error())
	}

	cfg := config.Load()
	if cfg.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	defer logger.Sync()

	shutdownTracing, err := tracing.Init(ctx, cfg.TracingEndpoint, cfg.TracingServiceName, cfg.Env)
	if err != nil {
		logger.Sugar().Panicf("failed to initialize tracing: %s", err.Error())
	}

	store, closeStore := openStore(ctx, logger, cfg)
	defer closeStore()

	publisher := openPublisher(ctx, logger, cfg)
	defer publisher.Close()

	services := service.New(logger, store, publisher, service.Options{
		BackupOnRejectedEdit: cfg.BackupOnRejectedEdit,
	})
	handlers := handler.New(services, logger, handler.Config{
		AccessSecret: cfg.AccessSecret,
		ClientOrigin: cfg.ClientOrigin,
	})

	srv := server.New()
	serverConfig := config.ServerConfig{
		Port:           cfg.Port,
		Handler:        otelhttp.NewHandler(handlers.InitRoutes(), cfg.TracingServiceName),
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 10,
	}
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Sugar().Infof("Server started on port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down tracing: %s", err.Error())
	}
}

func openStore(ctx context.Context, logger *zap.Logger, cfg config.Config) (repository.Store, func()) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data will be lost on restart")
		return memory.New(), func() {}
	}

	db, err := postgres.DB(ctx, cfg.DB)
	if err != nil {
		logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
	}
	if err := db.Ping(ctx); err != nil {
		logger.Sugar().Panicf("failed to ping postgres: %s", err.Error())
	}
	logger.Info("Successfully connected to PostgreSQL")

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Sugar().Panicf("failed to migrate postgres: %s", err.Error())
	}

	return postgres.New(db), db.Close
}

func openPublisher(ctx context.Context, logger *zap.Logger, cfg config.Config) events.Publisher {
	switch cfg.EventsDriver {
	case config.EventsDriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

		return events.NewRedisPublisher(rdb)
	case config.EventsDriverKafka:
		if len(cfg.Kafka.Brokers) == 0 {
			logger.Sugar().Panicf("events.driver is kafka but KAFKA_BROKERS is empty")
		}
		logger.Sugar().Infof("Publishing events to Kafka topic %s", cfg.Kafka.Topic)

		return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	default:
		return events.NewNoop()
	}
}
