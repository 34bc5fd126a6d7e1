package queue

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// PoolStats counts job outcomes across all workers of a pool.
type PoolStats struct {
	succeeded atomic.Int64
	failed    atomic.Int64
	cancelled atomic.Int64
}

func (s *PoolStats) recordSucceeded() { s.succeeded.Add(1) }
func (s *PoolStats) recordFailed()    { s.failed.Add(1) }
func (s *PoolStats) recordCancelled() { s.cancelled.Add(1) }

type PoolResult struct {
	Succeeded int
	Failed    int
	Cancelled int
}

type WorkerPool struct {
	JobChan chan Job
	wg      sync.WaitGroup
	stats   PoolStats
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWorkerPool starts workerCount workers running handler. Cancelling ctx
// makes workers skip the jobs still queued.
func NewWorkerPool(ctx context.Context, workerCount int, handler JobHandler, logger *zap.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	pool := &WorkerPool{
		JobChan: make(chan Job, 100),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workerCount; i++ {
		worker := &Worker{
			ID:      i,
			JobChan: pool.JobChan,
			Wg:      &pool.wg,
			Handler: handler,
			Stats:   &pool.stats,
			Logger:  logger,
		}
		pool.wg.Add(1)
		worker.Start(pool.ctx)
	}
	return pool
}

// AddJob blocks while the queue is full; it gives up once the pool is cancelled.
func (p *WorkerPool) AddJob(job Job) bool {
	select {
	case p.JobChan <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// Shutdown closes the queue, waits for queued jobs to drain and reports the
// outcome counts.
func (p *WorkerPool) Shutdown() PoolResult {
	close(p.JobChan)
	p.wg.Wait()
	p.cancel()
	return PoolResult{
		Succeeded: int(p.stats.succeeded.Load()),
		Failed:    int(p.stats.failed.Load()),
		Cancelled: int(p.stats.cancelled.Load()),
	}
}
