package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"multipart-uploader/internal/domain/entities"
	"multipart-uploader/internal/domain/repositories"
)

// opLog records side effects across fakes so tests can assert ordering.
type opLog struct {
	mu  sync.Mutex
	ops []string
}

func (l *opLog) add(op string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ops = append(l.ops, op)
}

func (l *opLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.ops...)
}

func (l *opLog) count(op string) int {
	n := 0
	for _, o := range l.list() {
		if o == op {
			n++
		}
	}
	return n
}

type fakeParams struct {
	values map[string]string
	err    error
	calls  int
}

func (f *fakeParams) Get(_ context.Context, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[name]
	if !ok {
		return "", fmt.Errorf("parameter %s not found", name)
	}
	return v, nil
}

func (f *fakeParams) GetMany(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, n := range names {
		if v, err := f.Get(ctx, n); err == nil {
			out[n] = v
		}
	}
	return out, nil
}

type fakeStorage struct {
	log *opLog

	uploadID  string
	createErr error

	parts    []repositories.UploadedPart
	listErr  error
	listArgs [3]string

	completeErr   error
	completed     []repositories.CompletedPart
	completedArgs [3]string

	presignErrAt int32
	presignTTLs  []time.Duration

	abortMu  sync.Mutex
	abortErr error
	aborted  []string
}

func (f *fakeStorage) CreateMultipartUpload(_ context.Context, bucket, key string) (string, error) {
	f.log.add("store.create")
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.uploadID, nil
}

func (f *fakeStorage) ListParts(_ context.Context, bucket, key, uploadID string) ([]repositories.UploadedPart, error) {
	f.log.add("store.list")
	f.listArgs = [3]string{bucket, key, uploadID}
	return f.parts, f.listErr
}

func (f *fakeStorage) CompleteMultipartUpload(_ context.Context, bucket, key, uploadID string, parts []repositories.CompletedPart) error {
	f.log.add("store.complete")
	f.completedArgs = [3]string{bucket, key, uploadID}
	f.completed = parts
	return f.completeErr
}

func (f *fakeStorage) AbortMultipartUpload(_ context.Context, bucket, key, uploadID string) error {
	f.log.add("store.abort")
	f.abortMu.Lock()
	defer f.abortMu.Unlock()
	if f.abortErr != nil {
		return f.abortErr
	}
	f.aborted = append(f.aborted, uploadID)
	return nil
}

func (f *fakeStorage) PresignUploadPart(_ context.Context, bucket, key, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	f.log.add("store.presign")
	if f.presignErrAt != 0 && partNumber == f.presignErrAt {
		return "", errors.New("signing failed")
	}
	f.presignTTLs = append(f.presignTTLs, ttl)
	return fmt.Sprintf("https://%s.s3/%s?uploadId=%s&partNumber=%d", bucket, key, uploadID, partNumber), nil
}

type fakeFiles struct {
	log *opLog

	mu        sync.Mutex
	records   map[uuid.UUID]*entities.UploadedFile
	createErr error
	updateErr error
}

func newFakeFiles(log *opLog) *fakeFiles {
	return &fakeFiles{log: log, records: make(map[uuid.UUID]*entities.UploadedFile)}
}

func (f *fakeFiles) Create(_ context.Context, file *entities.UploadedFile) error {
	f.log.add("db.create")
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}
	cp := *file
	f.records[file.ID] = &cp
	return nil
}

func (f *fakeFiles) FindByID(_ context.Context, id uuid.UUID) (*entities.UploadedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, repositories.ErrUploadNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeFiles) FindByUploadID(_ context.Context, uploadID string) (*entities.UploadedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.UploadID == uploadID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repositories.ErrUploadNotFound
}

func (f *fakeFiles) Save(_ context.Context, file *entities.UploadedFile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *file
	f.records[file.ID] = &cp
	return nil
}

func (f *fakeFiles) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.log.add("db.update")
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return repositories.ErrUploadNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeFiles) UpdateStatusByUploadID(_ context.Context, uploadID, status string) error {
	f.log.add("db.update")
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for _, r := range f.records {
		if r.UploadID == uploadID {
			r.Status = status
			found = true
		}
	}
	if !found {
		return repositories.ErrUploadNotFound
	}
	return nil
}

func (f *fakeFiles) TransitionStatus(_ context.Context, id uuid.UUID, from, to string) error {
	f.log.add("db.transition")
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok || r.Status != from {
		return repositories.ErrUploadNotFound
	}
	r.Status = to
	return nil
}

func (f *fakeFiles) ListStale(_ context.Context, status string, olderThan time.Time, limit int) ([]entities.UploadedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.UploadedFile
	for _, r := range f.records {
		if r.Status == status && r.CreatedAt.Before(olderThan) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFiles) all() []entities.UploadedFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.UploadedFile, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out
}

type fakeEvents struct {
	mu     sync.Mutex
	events []entities.UploadEvent
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, event entities.UploadEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEvents) Close() error { return nil }
