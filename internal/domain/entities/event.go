package entities

import "time"

// UploadEvent is pushed to the event queue on lifecycle transitions.
type UploadEvent struct {
	Type       string    `json:"type"`
	UploadID   string    `json:"upload_id"`
	Key        string    `json:"key"`
	Bucket     string    `json:"bucket"`
	Owner      string    `json:"owner,omitempty"`
	PartCount  int       `json:"part_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
