package mapper

import (
	"time"

	"multipart-uploader/internal/domain/entities"
)

// UploadedFileToEvent builds the lifecycle event for a metadata record.
// PartCount is left for the caller, the record does not carry it.
func UploadedFileToEvent(f *entities.UploadedFile, eventType string, at time.Time) entities.UploadEvent {
	return entities.UploadEvent{
		Type:       eventType,
		UploadID:   f.UploadID,
		Key:        f.S3Key,
		Bucket:     f.BucketName,
		Owner:      f.UploadedBy,
		OccurredAt: at.UTC(),
	}
}
