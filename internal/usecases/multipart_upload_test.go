package usecases

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/pkg/metrics"
	consts "multipart-uploader/pkg/constants"
	apperrors "multipart-uploader/pkg/errors"
)

const (
	mib         = int64(1024 * 1024)
	bucketParam = "/app/s3/bucket"
	bucketName  = "uploads-bucket"
)

var fixedNow = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

type uploadFixture struct {
	log     *opLog
	params  *fakeParams
	storage *fakeStorage
	files   *fakeFiles
	events  *fakeEvents
	service *multipartUploadService
}

func newUploadFixture(t *testing.T) *uploadFixture {
	t.Helper()
	log := &opLog{}
	f := &uploadFixture{
		log:     log,
		params:  &fakeParams{values: map[string]string{bucketParam: bucketName}},
		storage: &fakeStorage{log: log, uploadID: "mpu-0001"},
		files:   newFakeFiles(log),
		events:  &fakeEvents{},
	}
	svc := NewMultipartUploadService(f.params, f.storage, f.files, f.events, metrics.New(), MultipartUploadOptions{
		BucketNameParam: bucketParam,
		PresignDuration: 60 * time.Minute,
		PartSizeBytes:   5 * mib,
	}, zap.NewNop()).(*multipartUploadService)
	svc.now = func() time.Time { return fixedNow }
	f.service = svc
	return f
}

func uploadRequest(size int64) *dto.MultipartUploadRequestDTO {
	return &dto.MultipartUploadRequestDTO{Filename: "video.mp4", FileSizeBytes: size, ContentType: "video/mp4"}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var ue *apperrors.UploadError
	require.ErrorAs(t, err, &ue)
	return ue.Code
}

func TestInitiateUpload_IssuesOneURLPerPart(t *testing.T) {
	f := newUploadFixture(t)

	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(1024*mib), "alice")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^alice/2025/03/[0-9a-f-]{36}_video\.mp4$`), resp.Key)
	assert.Equal(t, "mpu-0001", resp.UploadID)
	require.Len(t, resp.URLs, 205)
	for i, u := range resp.URLs {
		assert.Equal(t, int32(i+1), u.PartNumber)
		assert.NotEmpty(t, u.PresignedURL)
	}
	for _, ttl := range f.storage.presignTTLs {
		assert.Equal(t, 60*time.Minute, ttl)
	}
}

func TestInitiateUpload_PersistsPendingRecordBeforeSigning(t *testing.T) {
	f := newUploadFixture(t)

	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(12*mib), "alice")
	require.NoError(t, err)

	ops := f.log.list()
	require.Equal(t, []string{"store.create", "db.create", "store.presign", "store.presign", "store.presign"}, ops)

	records := f.files.all()
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, consts.StatusPending, r.Status)
	assert.Equal(t, resp.Key, r.S3Key)
	assert.Equal(t, resp.UploadID, r.UploadID)
	assert.Equal(t, bucketName, r.BucketName)
	assert.Equal(t, "alice", r.UploadedBy)
	assert.Equal(t, "video.mp4", r.Filename)
	assert.Equal(t, "video/mp4", r.ContentType)
	assert.Equal(t, 12*mib, r.SizeBytes)
}

func TestInitiateUpload_PartCountBoundaries(t *testing.T) {
	tests := []struct {
		size int64
		want int
	}{
		{5 * mib, 1},
		{10 * mib, 2},
		{10*mib + 1, 3},
	}
	for _, tt := range tests {
		f := newUploadFixture(t)
		resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(tt.size), "alice")
		require.NoError(t, err)
		assert.Len(t, resp.URLs, tt.want, "size %d", tt.size)
	}
}

func TestInitiateUpload_PartLimitHasNoSideEffects(t *testing.T) {
	f := newUploadFixture(t)

	_, err := f.service.InitiateUpload(context.Background(), uploadRequest(100*1024*mib), "alice")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodePartLimitExceeded, errorCode(t, err))
	assert.Contains(t, err.Error(), "20480")

	assert.Empty(t, f.log.list(), "no store session, record or URL may be created")
	assert.Empty(t, f.events.events)
}

func TestInitiateUpload_LargerPartSizeFitsLimit(t *testing.T) {
	f := newUploadFixture(t)
	f.service.opts.PartSizeBytes = 16 * mib

	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(100*1024*mib), "alice")
	require.NoError(t, err)
	assert.Len(t, resp.URLs, 6400)
}

func TestInitiateUpload_BucketResolutionFailure(t *testing.T) {
	f := newUploadFixture(t)
	f.params.err = errors.New("ssm unavailable")

	_, err := f.service.InitiateUpload(context.Background(), uploadRequest(10*mib), "alice")
	require.Error(t, err)
	assert.Empty(t, f.log.list())
}

func TestInitiateUpload_StoreFailureCreatesNothing(t *testing.T) {
	f := newUploadFixture(t)
	f.storage.createErr = errors.New("AccessDenied")

	_, err := f.service.InitiateUpload(context.Background(), uploadRequest(10*mib), "alice")
	require.Error(t, err)

	var ue *apperrors.UploadError
	assert.False(t, errors.As(err, &ue), "store failures surface as internal errors")
	assert.Equal(t, []string{"store.create"}, f.log.list())
	assert.Empty(t, f.files.all())
}

func TestInitiateUpload_MetadataFailureSignsNothing(t *testing.T) {
	f := newUploadFixture(t)
	f.files.createErr = errors.New("db down")

	_, err := f.service.InitiateUpload(context.Background(), uploadRequest(10*mib), "alice")
	require.Error(t, err)
	assert.Equal(t, 0, f.log.count("store.presign"))
}

func TestInitiateUpload_PresignFailure(t *testing.T) {
	f := newUploadFixture(t)
	f.storage.presignErrAt = 2

	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(15*mib), "alice")
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestInitiateUpload_KeysAreUnique(t *testing.T) {
	f := newUploadFixture(t)

	a, err := f.service.InitiateUpload(context.Background(), uploadRequest(5*mib), "alice")
	require.NoError(t, err)
	b, err := f.service.InitiateUpload(context.Background(), uploadRequest(5*mib), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, b.Key)
}

func TestInitiateUpload_PublishesEventBestEffort(t *testing.T) {
	f := newUploadFixture(t)

	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(10*mib), "alice")
	require.NoError(t, err)
	require.Len(t, f.events.events, 1)
	ev := f.events.events[0]
	assert.Equal(t, consts.EventUploadInitiated, ev.Type)
	assert.Equal(t, resp.UploadID, ev.UploadID)
	assert.Equal(t, "alice", ev.Owner)
	assert.Equal(t, 2, ev.PartCount)
	assert.Equal(t, fixedNow, ev.OccurredAt)

	f2 := newUploadFixture(t)
	f2.events.err = errors.New("redis down")
	_, err = f2.service.InitiateUpload(context.Background(), uploadRequest(10*mib), "alice")
	assert.NoError(t, err)
}

func seedPending(t *testing.T, f *uploadFixture) *dto.MultipartUploadResponseDTO {
	t.Helper()
	resp, err := f.service.InitiateUpload(context.Background(), uploadRequest(15*mib), "alice")
	require.NoError(t, err)
	f.log.ops = nil
	f.events.events = nil
	return resp
}

func etag(c string) string { return `"` + strings.Repeat(c, 32) + `"` }

func TestCompleteUpload_SortsManifestAndMarksCompleted(t *testing.T) {
	f := newUploadFixture(t)
	started := seedPending(t, f)
	f.storage.parts = []repositories.UploadedPart{{PartNumber: 1}, {PartNumber: 2}, {PartNumber: 3}}

	err := f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
		Key:      started.Key,
		UploadID: started.UploadID,
		Parts: []dto.CompletedPartDTO{
			{PartNumber: 3, ETag: etag("c")},
			{PartNumber: 1, ETag: etag("a")},
			{PartNumber: 2, ETag: etag("b")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []repositories.CompletedPart{
		{PartNumber: 1, ETag: etag("a")},
		{PartNumber: 2, ETag: etag("b")},
		{PartNumber: 3, ETag: etag("c")},
	}, f.storage.completed)
	assert.Equal(t, [3]string{bucketName, started.Key, started.UploadID}, f.storage.completedArgs)
	assert.Equal(t, []string{"store.list", "store.complete", "db.update"}, f.log.list())

	records := f.files.all()
	require.Len(t, records, 1)
	assert.Equal(t, consts.StatusCompleted, records[0].Status)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, consts.EventUploadCompleted, f.events.events[0].Type)
}

func TestCompleteUpload_PassesDuplicatePartNumbersThrough(t *testing.T) {
	f := newUploadFixture(t)
	started := seedPending(t, f)
	f.storage.parts = []repositories.UploadedPart{{PartNumber: 1}}

	err := f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
		Key:      started.Key,
		UploadID: started.UploadID,
		Parts: []dto.CompletedPartDTO{
			{PartNumber: 2, ETag: etag("b")},
			{PartNumber: 1, ETag: etag("a")},
			{PartNumber: 2, ETag: etag("c")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []repositories.CompletedPart{
		{PartNumber: 1, ETag: etag("a")},
		{PartNumber: 2, ETag: etag("b")},
		{PartNumber: 2, ETag: etag("c")},
	}, f.storage.completed)
}

func TestCompleteUpload_NoUploadedParts(t *testing.T) {
	tests := []struct {
		name    string
		parts   []repositories.UploadedPart
		listErr error
	}{
		{name: "empty listing"},
		{name: "listing fails", listErr: errors.New("NoSuchUpload")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newUploadFixture(t)
			started := seedPending(t, f)
			f.storage.parts = tt.parts
			f.storage.listErr = tt.listErr

			err := f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
				Key:      started.Key,
				UploadID: started.UploadID,
				Parts:    []dto.CompletedPartDTO{{PartNumber: 1, ETag: etag("a")}},
			})
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeNoUploadedParts, errorCode(t, err))
			assert.Contains(t, err.Error(), started.Key)
			assert.Contains(t, err.Error(), started.UploadID)

			assert.Equal(t, []string{"store.list"}, f.log.list(), "completion must not be attempted")
			assert.Equal(t, consts.StatusPending, f.files.all()[0].Status)
		})
	}
}

func TestCompleteUpload_StoreFailureKeepsRecordPending(t *testing.T) {
	f := newUploadFixture(t)
	started := seedPending(t, f)
	f.storage.parts = []repositories.UploadedPart{{PartNumber: 1}}
	f.storage.completeErr = errors.New("InvalidPart")

	err := f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
		Key:      started.Key,
		UploadID: started.UploadID,
		Parts:    []dto.CompletedPartDTO{{PartNumber: 1, ETag: etag("a")}},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "InvalidPart")
	assert.Equal(t, consts.StatusPending, f.files.all()[0].Status)
	assert.Empty(t, f.events.events)
}

func TestCompleteUpload_MissingRecord(t *testing.T) {
	f := newUploadFixture(t)
	f.storage.parts = []repositories.UploadedPart{{PartNumber: 1}}

	err := f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
		Key:      "alice/2025/03/x_video.mp4",
		UploadID: "unknown-upload",
		Parts:    []dto.CompletedPartDTO{{PartNumber: 1, ETag: etag("a")}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUploadNotFound, errorCode(t, err))
	assert.ErrorIs(t, err, repositories.ErrUploadNotFound)
}

func TestCompleteUpload_BucketResolvedThroughParams(t *testing.T) {
	f := newUploadFixture(t)
	started := seedPending(t, f)
	f.storage.parts = []repositories.UploadedPart{{PartNumber: 1}}
	before := f.params.calls

	require.NoError(t, f.service.CompleteUpload(context.Background(), &dto.CompleteUploadRequestDTO{
		Key:      started.Key,
		UploadID: started.UploadID,
		Parts:    []dto.CompletedPartDTO{{PartNumber: 1, ETag: etag("a")}},
	}))
	assert.Equal(t, before+1, f.params.calls)
	assert.Equal(t, [3]string{bucketName, started.Key, started.UploadID}, f.storage.listArgs)
}
