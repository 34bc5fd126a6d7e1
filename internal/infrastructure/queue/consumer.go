package queue

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/entities"
)

type listPopper interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
}

type EventHandler func(ctx context.Context, event *entities.UploadEvent) error

// EventConsumer drains the event list with BRPOP until its context ends.
type EventConsumer struct {
	rdb          listPopper
	queue        string
	handler      EventHandler
	logger       *zap.Logger
	pollTimeout  time.Duration
	retryBackoff time.Duration
}

func NewEventConsumer(rdb *redis.Client, queue string, handler EventHandler, logger *zap.Logger) *EventConsumer {
	return &EventConsumer{
		rdb:          rdb,
		queue:        queue,
		handler:      handler,
		logger:       logger,
		pollTimeout:  5 * time.Second,
		retryBackoff: time.Second,
	}
}

func (c *EventConsumer) Run(ctx context.Context) error {
	c.logger.Info("event consumer started", zap.String("queue", c.queue))
	for {
		if ctx.Err() != nil {
			c.logger.Info("event consumer stopping")
			return nil
		}

		val, err := c.rdb.BRPop(ctx, c.pollTimeout, c.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			c.logger.Warn("BRPop failed", zap.Error(err))
			select {
			case <-time.After(c.retryBackoff):
			case <-ctx.Done():
			}
			continue
		}
		if len(val) < 2 {
			continue
		}

		event, err := DeserializeEvent(val[1])
		if err != nil {
			c.logger.Error("discarding malformed event", zap.String("payload", val[1]), zap.Error(err))
			continue
		}
		if err := c.handler(ctx, event); err != nil {
			c.logger.Error("event handler failed",
				zap.String("type", event.Type), zap.String("upload_id", event.UploadID), zap.Error(err))
		}
	}
}
