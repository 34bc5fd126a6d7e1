package main

import (
	"sync"
	"time"
)

type UploadProgress struct {
	mu          sync.RWMutex
	totalParts  int
	uploaded    int
	failed      int
	bytesSent   int64
	isCancelled bool
	startTime   time.Time
}

func NewUploadProgress(totalParts int) *UploadProgress {
	return &UploadProgress{totalParts: totalParts, startTime: time.Now()}
}

func (up *UploadProgress) IncrementUploaded(n int64) {
	up.mu.Lock()
	defer up.mu.Unlock()
	up.uploaded++
	up.bytesSent += n
}

func (up *UploadProgress) IncrementFailed() {
	up.mu.Lock()
	defer up.mu.Unlock()
	up.failed++
}

func (up *UploadProgress) SetCancelled() {
	up.mu.Lock()
	defer up.mu.Unlock()
	up.isCancelled = true
}

func (up *UploadProgress) IsCancelled() bool {
	up.mu.RLock()
	defer up.mu.RUnlock()
	return up.isCancelled
}

func (up *UploadProgress) GetProgress() (uploaded, failed, total int) {
	up.mu.RLock()
	defer up.mu.RUnlock()
	return up.uploaded, up.failed, up.totalParts
}

// Throughput returns the average upload rate in bytes per second.
func (up *UploadProgress) Throughput() float64 {
	up.mu.RLock()
	defer up.mu.RUnlock()
	elapsed := time.Since(up.startTime).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(up.bytesSent) / elapsed
}
