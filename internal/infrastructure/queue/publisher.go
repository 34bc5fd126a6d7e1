package queue

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/entities"
	"multipart-uploader/internal/domain/repositories"
)

type listPusher interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

type redisEventPublisher struct {
	rdb    listPusher
	closer func() error
	queue  string
}

// NewRedisEventPublisher pushes events onto the head of a Redis list; the
// worker pops from the tail, so events are consumed in order.
func NewRedisEventPublisher(rdb *redis.Client, queue string) repositories.UploadEventPublisher {
	return &redisEventPublisher{rdb: rdb, closer: rdb.Close, queue: queue}
}

func (p *redisEventPublisher) Publish(ctx context.Context, event entities.UploadEvent) error {
	payload, err := SerializeEvent(event)
	if err != nil {
		return err
	}
	if err := p.rdb.LPush(ctx, p.queue, payload).Err(); err != nil {
		return fmt.Errorf("push %s event to %s: %w", event.Type, p.queue, err)
	}
	return nil
}

func (p *redisEventPublisher) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer()
}

type nullEventPublisher struct {
	logger *zap.Logger
}

// NewNullEventPublisher drops events. Used when Redis is not configured.
func NewNullEventPublisher(logger *zap.Logger) repositories.UploadEventPublisher {
	return &nullEventPublisher{logger: logger}
}

func (p *nullEventPublisher) Publish(_ context.Context, event entities.UploadEvent) error {
	p.logger.Debug("event queue disabled, dropping event",
		zap.String("type", event.Type), zap.String("upload_id", event.UploadID))
	return nil
}

func (p *nullEventPublisher) Close() error { return nil }
