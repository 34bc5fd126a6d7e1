package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/domain/entities"
	"multipart-uploader/internal/domain/mapper"
	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/pkg/metrics"
	consts "multipart-uploader/pkg/constants"
	apperrors "multipart-uploader/pkg/errors"
	"multipart-uploader/pkg/file"
)

// MultipartUploadService runs the two halves of a presigned multipart upload.
// The service never touches file bytes; clients PUT parts straight to the
// object store using the URLs it hands out.
type MultipartUploadService interface {
	InitiateUpload(ctx context.Context, req *dto.MultipartUploadRequestDTO, owner string) (*dto.MultipartUploadResponseDTO, error)
	CompleteUpload(ctx context.Context, req *dto.CompleteUploadRequestDTO) error
}

type MultipartUploadOptions struct {
	// BucketNameParam is the parameter store name holding the bucket.
	BucketNameParam string
	PresignDuration time.Duration
	PartSizeBytes   int64
}

type multipartUploadService struct {
	params  repositories.ParameterStore
	storage repositories.MultipartStorage
	files   repositories.UploadedFileRepository
	events  repositories.UploadEventPublisher
	metrics *metrics.Metrics
	opts    MultipartUploadOptions
	logger  *zap.Logger
	now     func() time.Time
}

func NewMultipartUploadService(
	params repositories.ParameterStore,
	storage repositories.MultipartStorage,
	files repositories.UploadedFileRepository,
	events repositories.UploadEventPublisher,
	m *metrics.Metrics,
	opts MultipartUploadOptions,
	logger *zap.Logger,
) MultipartUploadService {
	return &multipartUploadService{
		params:  params,
		storage: storage,
		files:   files,
		events:  events,
		metrics: m,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// InitiateUpload opens a store session, records it as pending and signs one
// URL per part. The part limit is checked before anything is created.
func (s *multipartUploadService) InitiateUpload(ctx context.Context, req *dto.MultipartUploadRequestDTO, owner string) (resp *dto.MultipartUploadResponseDTO, err error) {
	defer func() { s.metrics.ObserveUpload("initiate", resultCode(err)) }()

	bucket, err := s.params.Get(ctx, s.opts.BucketNameParam)
	if err != nil {
		return nil, fmt.Errorf("resolve bucket name: %w", err)
	}

	key := file.MakeStorageKey(owner, req.Filename, s.now().UTC())
	partCount := file.CalculatePartCount(req.FileSizeBytes, s.opts.PartSizeBytes)
	if partCount > consts.MaxPartCount {
		return nil, apperrors.ErrPartLimitExceeded(partCount)
	}

	uploadID, err := s.storage.CreateMultipartUpload(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("open multipart upload: %w", err)
	}

	record := &entities.UploadedFile{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		S3Key:       key,
		UploadID:    uploadID,
		BucketName:  bucket,
		SizeBytes:   req.FileSizeBytes,
		UploadedBy:  owner,
		Status:      consts.StatusPending,
	}
	if err := s.files.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save upload metadata: %w", err)
	}

	urls := make([]dto.PartInfoResponseDTO, 0, partCount)
	for n := int32(1); n <= int32(partCount); n++ {
		url, err := s.storage.PresignUploadPart(ctx, bucket, key, uploadID, n, s.opts.PresignDuration)
		if err != nil {
			return nil, fmt.Errorf("sign part url: %w", err)
		}
		urls = append(urls, dto.PartInfoResponseDTO{PartNumber: n, PresignedURL: url})
	}

	s.logger.Info("multipart upload initiated",
		zap.String("owner", owner),
		zap.String("key", key),
		zap.String("upload_id", uploadID),
		zap.Int64("parts", partCount),
		zap.Int64("size_bytes", req.FileSizeBytes),
	)
	s.metrics.ObservePartsIssued(len(urls))
	event := mapper.UploadedFileToEvent(record, consts.EventUploadInitiated, s.now())
	event.PartCount = len(urls)
	s.publish(ctx, event)

	return &dto.MultipartUploadResponseDTO{Key: key, UploadID: uploadID, URLs: urls}, nil
}

// CompleteUpload finalizes the store session and marks the record completed.
// A failed part listing and an empty one are reported the same way.
func (s *multipartUploadService) CompleteUpload(ctx context.Context, req *dto.CompleteUploadRequestDTO) (err error) {
	defer func() { s.metrics.ObserveUpload("complete", resultCode(err)) }()

	bucket, err := s.params.Get(ctx, s.opts.BucketNameParam)
	if err != nil {
		return fmt.Errorf("resolve bucket name: %w", err)
	}

	uploaded, err := s.storage.ListParts(ctx, bucket, req.Key, req.UploadID)
	if err != nil || len(uploaded) == 0 {
		return apperrors.ErrNoUploadedParts(req.Key, req.UploadID, err)
	}

	manifest := make([]repositories.CompletedPart, len(req.Parts))
	for i, p := range req.Parts {
		manifest[i] = repositories.CompletedPart{PartNumber: p.PartNumber, ETag: p.ETag}
	}
	sort.SliceStable(manifest, func(i, j int) bool {
		return manifest[i].PartNumber < manifest[j].PartNumber
	})

	if err := s.storage.CompleteMultipartUpload(ctx, bucket, req.Key, req.UploadID, manifest); err != nil {
		return fmt.Errorf("complete multipart upload: %w", err)
	}

	if err := s.files.UpdateStatusByUploadID(ctx, req.UploadID, consts.StatusCompleted); err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			return apperrors.ErrUploadNotFound(req.UploadID, err)
		}
		return fmt.Errorf("mark upload completed: %w", err)
	}

	s.logger.Info("multipart upload completed",
		zap.String("key", req.Key),
		zap.String("upload_id", req.UploadID),
		zap.Int("parts", len(manifest)),
	)
	s.publish(ctx, entities.UploadEvent{
		Type:      consts.EventUploadCompleted,
		UploadID:  req.UploadID,
		Key:       req.Key,
		Bucket:    bucket,
		PartCount: len(manifest),
	})
	return nil
}

// publish is best effort; a lost event never fails the request.
func (s *multipartUploadService) publish(ctx context.Context, event entities.UploadEvent) {
	event.OccurredAt = s.now().UTC()
	err := s.events.Publish(ctx, event)
	s.metrics.ObserveEvent(event.Type, err)
	if err != nil {
		s.logger.Warn("failed to publish upload event",
			zap.String("type", event.Type), zap.String("upload_id", event.UploadID), zap.Error(err))
	}
}

func resultCode(err error) string {
	if err == nil {
		return consts.StatusOK
	}
	var ue *apperrors.UploadError
	if errors.As(err, &ue) {
		return ue.Code
	}
	return apperrors.CodeInternalServerError
}
