package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"multipart-uploader/internal/domain/mapper"
	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/infrastructure/queue"
	"multipart-uploader/internal/pkg/metrics"
	consts "multipart-uploader/pkg/constants"
)

// CleanupService expires uploads that were initiated but never completed.
type CleanupService interface {
	ExpireStaleUploads(ctx context.Context) (queue.PoolResult, error)
}

type CleanupOptions struct {
	MaxAge    time.Duration
	Workers   int
	BatchSize int
}

type cleanupService struct {
	files   repositories.UploadedFileRepository
	storage repositories.MultipartStorage
	events  repositories.UploadEventPublisher
	metrics *metrics.Metrics
	opts    CleanupOptions
	logger  *zap.Logger
	now     func() time.Time
}

func NewCleanupService(
	files repositories.UploadedFileRepository,
	storage repositories.MultipartStorage,
	events repositories.UploadEventPublisher,
	m *metrics.Metrics,
	opts CleanupOptions,
	logger *zap.Logger,
) CleanupService {
	return &cleanupService{
		files:   files,
		storage: storage,
		events:  events,
		metrics: m,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// ExpireStaleUploads aborts up to BatchSize pending uploads older than MaxAge
// in the object store and marks them expired. Aborts run on a bounded pool.
func (s *cleanupService) ExpireStaleUploads(ctx context.Context) (queue.PoolResult, error) {
	cutoff := s.now().UTC().Add(-s.opts.MaxAge)
	stale, err := s.files.ListStale(ctx, consts.StatusPending, cutoff, s.opts.BatchSize)
	if err != nil {
		return queue.PoolResult{}, fmt.Errorf("list stale uploads: %w", err)
	}
	if len(stale) == 0 {
		s.logger.Debug("no stale uploads", zap.Time("cutoff", cutoff))
		return queue.PoolResult{}, nil
	}

	pool := queue.NewWorkerPool(ctx, s.opts.Workers, s.expire, s.logger)
	for _, r := range stale {
		job := queue.Job{
			Type:     queue.JobExpireUpload,
			RecordID: r.ID,
			UploadID: r.UploadID,
			Key:      r.S3Key,
			Bucket:   r.BucketName,
		}
		if !pool.AddJob(job) {
			break
		}
	}
	res := pool.Shutdown()

	s.logger.Info("stale upload sweep finished",
		zap.Int("found", len(stale)),
		zap.Int("expired", res.Succeeded),
		zap.Int("failed", res.Failed),
		zap.Int("cancelled", res.Cancelled),
	)
	return res, nil
}

func (s *cleanupService) expire(ctx context.Context, job queue.Job) error {
	current, err := s.files.FindByID(ctx, job.RecordID)
	if err != nil {
		return fmt.Errorf("reload upload %s: %w", job.UploadID, err)
	}
	if current.Status != consts.StatusPending {
		s.metrics.ObserveExpired("skipped")
		return nil
	}

	if err := s.storage.AbortMultipartUpload(ctx, job.Bucket, job.Key, job.UploadID); err != nil {
		s.metrics.ObserveExpired("error")
		return err
	}

	if err := s.files.TransitionStatus(ctx, job.RecordID, consts.StatusPending, consts.StatusExpired); err != nil {
		if errors.Is(err, repositories.ErrUploadNotFound) {
			// completed while we were aborting
			s.metrics.ObserveExpired("skipped")
			return nil
		}
		s.metrics.ObserveExpired("error")
		return err
	}
	s.metrics.ObserveExpired("expired")

	event := mapper.UploadedFileToEvent(current, consts.EventUploadExpired, s.now())
	err = s.events.Publish(ctx, event)
	s.metrics.ObserveEvent(event.Type, err)
	if err != nil {
		s.logger.Warn("failed to publish upload event",
			zap.String("type", event.Type), zap.String("upload_id", event.UploadID), zap.Error(err))
	}
	return nil
}
