package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"multipart-uploader/internal/domain/entities"
)

type JobType string

const (
	JobExpireUpload JobType = "expire_upload"
)

// Job is one unit of work for the worker pool.
type Job struct {
	Type     JobType
	RecordID uuid.UUID
	UploadID string
	Key      string
	Bucket   string
}

func SerializeEvent(event entities.UploadEvent) (string, error) {
	bytes, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}
	return string(bytes), nil
}

func DeserializeEvent(data string) (*entities.UploadEvent, error) {
	var event entities.UploadEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to deserialize event: %w", err)
	}
	return &event, nil
}
