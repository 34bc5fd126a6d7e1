package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadedFile is the metadata record of one multipart upload. UploadID is
// the identifier the object store issued for the upload session.
type UploadedFile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Filename    string    `gorm:"not null" json:"filename"`
	ContentType string    `gorm:"column:content_type" json:"content_type"`
	S3Key       string    `gorm:"column:s3_key;not null" json:"s3_key"`
	UploadID    string    `gorm:"column:upload_id;index" json:"upload_id"`
	BucketName  string    `gorm:"column:bucket_name" json:"bucket_name"`
	SizeBytes   int64     `gorm:"column:size_bytes" json:"size_bytes"`
	UploadedBy  string    `gorm:"column:uploaded_by" json:"uploaded_by"`
	Status      string    `gorm:"not null;default:pending;index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (UploadedFile) TableName() string {
	return "uploaded_files"
}

func (f *UploadedFile) BeforeCreate(_ *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
