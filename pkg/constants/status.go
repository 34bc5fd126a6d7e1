package constants

// Upload record lifecycle.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
	StatusOK        = "ok"
)

const (
	// MaxPartCount is the object store ceiling on parts per multipart upload.
	MaxPartCount = 10000

	MinFileSizeBytes int64 = 5 * 1024 * 1024
	MaxFileSizeBytes int64 = 100 * 1024 * 1024 * 1024

	BytesPerMB int64 = 1024 * 1024
)

// Lifecycle event names pushed to the event queue.
const (
	EventUploadInitiated = "upload.initiated"
	EventUploadCompleted = "upload.completed"
	EventUploadExpired   = "upload.expired"

	UploadEventsQueue = "upload_events"
)
