package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	app "github.com/papersim/paperbroker/internal/app/engine"
	positionstorev1 "github.com/papersim/paperbroker/internal/domain/position-store/v1"
	eventpublisher "github.com/papersim/paperbroker/internal/usecase/event-publisher"
	positionstore "github.com/papersim/paperbroker/internal/usecase/position-store"
	tickreader "github.com/papersim/paperbroker/internal/usecase/tick-reader"
	"github.com/papersim/paperbroker/pkg/config"
	"github.com/papersim/paperbroker/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Position and settings persistence backend
	var store positionstorev1.Store
	var settingsStore positionstorev1.SettingsStore

	switch cfg.StoreBackend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Username: cfg.RedisConfig.Username,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "connect_redis",
			})
			return
		}
		defer client.Close()

		redisStore := positionstore.NewRedisStore(client, cfg.RedisConfig.Key, log)
		store, settingsStore = redisStore, redisStore
	default:
		fileStore := positionstore.NewFileStore(cfg.DataDir, log)
		store, settingsStore = fileStore, fileStore
	}

	// Initialize components
	reader := tickreader.NewReader(cfg.TickKafkaConfig, *log)
	publisher := eventpublisher.NewPublisher(app.GatewayName, cfg.EventKafkaConfig, *log)
	defer publisher.Close()

	engine, err := app.NewEngine(publisher, store, settingsStore, reader, log, cfg)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "create_engine",
		})
		return
	}

	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Paper broker started successfully")

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	log.Info("Paper broker shutdown complete")
}
