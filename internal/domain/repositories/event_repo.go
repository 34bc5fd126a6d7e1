package repositories

import (
	"context"

	"multipart-uploader/internal/domain/entities"
)

type UploadEventPublisher interface {
	Publish(ctx context.Context, event entities.UploadEvent) error
	Close() error
}
