package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"multipart-uploader/internal/domain/entities"
)

// ErrUploadNotFound is returned when no metadata record matches a lookup.
var ErrUploadNotFound = errors.New("upload record not found")

type UploadedFileRepository interface {
	Create(ctx context.Context, file *entities.UploadedFile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.UploadedFile, error)
	FindByUploadID(ctx context.Context, uploadID string) (*entities.UploadedFile, error)
	Save(ctx context.Context, file *entities.UploadedFile) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateStatusByUploadID(ctx context.Context, uploadID, status string) error
	// TransitionStatus moves a record from one status to another and returns
	// ErrUploadNotFound when the record is not currently in from.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) error
	// ListStale returns up to limit records in status created before olderThan,
	// oldest first.
	ListStale(ctx context.Context, status string, olderThan time.Time, limit int) ([]entities.UploadedFile, error)
}
