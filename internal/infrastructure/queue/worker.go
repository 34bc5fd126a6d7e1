package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type JobHandler func(ctx context.Context, job Job) error

type Worker struct {
	ID      int
	JobChan <-chan Job
	Wg      *sync.WaitGroup
	Handler JobHandler
	Stats   *PoolStats
	Logger  *zap.Logger
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer w.Wg.Done()
		for {
			select {
			case job, ok := <-w.JobChan:
				if !ok {
					w.Logger.Debug("job channel closed", zap.Int("worker", w.ID))
					return
				}
				if ctx.Err() != nil {
					w.Logger.Info("job cancelled", zap.Int("worker", w.ID), zap.String("upload_id", job.UploadID))
					w.Stats.recordCancelled()
					continue
				}
				w.processJob(ctx, job)
			case <-ctx.Done():
				w.Logger.Debug("worker stopping due to context cancellation", zap.Int("worker", w.ID))
				return
			}
		}
	}()
}

func (w *Worker) processJob(ctx context.Context, job Job) {
	if err := w.Handler(ctx, job); err != nil {
		w.Logger.Warn("job failed",
			zap.Int("worker", w.ID), zap.String("type", string(job.Type)), zap.String("upload_id", job.UploadID), zap.Error(err))
		w.Stats.recordFailed()
		return
	}
	w.Stats.recordSucceeded()
}
