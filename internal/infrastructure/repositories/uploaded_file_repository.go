package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"multipart-uploader/internal/domain/entities"
	"multipart-uploader/internal/domain/repositories"
)

type uploadedFileRepository struct {
	db *gorm.DB
}

func NewUploadedFileRepository(db *gorm.DB) repositories.UploadedFileRepository {
	return &uploadedFileRepository{
		db: db,
	}
}

func (r *uploadedFileRepository) Create(ctx context.Context, file *entities.UploadedFile) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("create uploaded file: %w", err)
	}
	return nil
}

func (r *uploadedFileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.UploadedFile, error) {
	var file entities.UploadedFile
	if err := r.db.WithContext(ctx).First(&file, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}

func (r *uploadedFileRepository) FindByUploadID(ctx context.Context, uploadID string) (*entities.UploadedFile, error) {
	var file entities.UploadedFile
	if err := r.db.WithContext(ctx).Where("upload_id = ?", uploadID).First(&file).Error; err != nil {
		return nil, notFound(err)
	}
	return &file, nil
}

func (r *uploadedFileRepository) Save(ctx context.Context, file *entities.UploadedFile) error {
	if err := r.db.WithContext(ctx).Save(file).Error; err != nil {
		return fmt.Errorf("save uploaded file %s: %w", file.ID, err)
	}
	return nil
}

func (r *uploadedFileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.updateStatusWhere(ctx, status, "id = ?", id)
}

func (r *uploadedFileRepository) UpdateStatusByUploadID(ctx context.Context, uploadID, status string) error {
	return r.updateStatusWhere(ctx, status, "upload_id = ?", uploadID)
}

func (r *uploadedFileRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.UploadedFile{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("transition upload status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrUploadNotFound
	}
	return nil
}

func (r *uploadedFileRepository) ListStale(ctx context.Context, status string, olderThan time.Time, limit int) ([]entities.UploadedFile, error) {
	var files []entities.UploadedFile
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", status, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list stale uploads: %w", err)
	}
	return files, nil
}

func (r *uploadedFileRepository) updateStatusWhere(ctx context.Context, status, query string, arg any) error {
	res := r.db.WithContext(ctx).
		Model(&entities.UploadedFile{}).
		Where(query, arg).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("update upload status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrUploadNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrUploadNotFound
	}
	return err
}
