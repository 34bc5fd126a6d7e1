package repositories

import (
	"context"
	"time"
)

type CompletedPart struct {
	PartNumber int32
	ETag       string
}

type UploadedPart struct {
	PartNumber int32
	ETag       string
	Size       int64
}

// MultipartStorage is the object store side of a multipart upload.
type MultipartStorage interface {
	CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error)
	ListParts(ctx context.Context, bucket, key, uploadID string) ([]UploadedPart, error)
	CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []CompletedPart) error
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error
	PresignUploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, ttl time.Duration) (string, error)
}
