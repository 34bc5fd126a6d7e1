package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/entities"
	"multipart-uploader/internal/infrastructure/queue"
	"multipart-uploader/internal/pkg/config"
	"multipart-uploader/internal/pkg/logging"
	consts "multipart-uploader/pkg/constants"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Redis.Enabled() {
		logger.Fatal("REDIS_HOST is required for the worker")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis unreachable", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
	}

	consumer := queue.NewEventConsumer(rdb, consts.UploadEventsQueue, handleEvent(logger), logger)
	if err := consumer.Run(ctx); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
	logger.Info("worker stopped")
}

func handleEvent(logger *zap.Logger) queue.EventHandler {
	return func(_ context.Context, event *entities.UploadEvent) error {
		fields := []zap.Field{
			zap.String("upload_id", event.UploadID),
			zap.String("key", event.Key),
			zap.String("bucket", event.Bucket),
			zap.Time("occurred_at", event.OccurredAt),
		}
		switch event.Type {
		case consts.EventUploadInitiated:
			logger.Info("upload initiated", append(fields, zap.String("owner", event.Owner), zap.Int("parts", event.PartCount))...)
		case consts.EventUploadCompleted:
			logger.Info("upload completed", append(fields, zap.Int("parts", event.PartCount))...)
		case consts.EventUploadExpired:
			logger.Info("upload expired", append(fields, zap.String("owner", event.Owner))...)
		default:
			logger.Warn("unknown event type", append(fields, zap.String("type", event.Type))...)
		}
		return nil
	}
}
