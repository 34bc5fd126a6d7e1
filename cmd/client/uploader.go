package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"sync"

	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/pkg/file"
)

type partUploader struct {
	http        *http.Client
	concurrency int
	// verifyETag compares each returned ETag with the local MD5 of the part.
	// Disable for buckets using SSE-KMS, where ETags are not MD5 digests.
	verifyETag bool
	progress   *UploadProgress
}

// UploadParts PUTs every part of src to its presigned URL with at most
// concurrency requests in flight and returns the manifest for completion.
// The first failure cancels the parts not yet started.
func (u *partUploader) UploadParts(ctx context.Context, src io.ReaderAt, size, partSize int64, urls []dto.PartInfoResponseDTO) ([]dto.CompletedPartDTO, error) {
	if want := file.CalculatePartCount(size, partSize); int64(len(urls)) != want {
		return nil, fmt.Errorf("server issued %d part URLs, expected %d for part size %d", len(urls), want, partSize)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limit := u.concurrency
	if limit < 1 {
		limit = 1
	}
	sem := make(chan struct{}, limit)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		parts    = make([]dto.CompletedPartDTO, 0, len(urls))
		firstErr error
	)

	for _, info := range urls {
		if ctx.Err() != nil || u.progress.IsCancelled() {
			break
		}

		wg.Add(1)
		go func(info dto.PartInfoResponseDTO) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			start := int64(info.PartNumber-1) * partSize
			length := partSize
			if start+length > size {
				length = size - start
			}

			etag, err := u.putPart(ctx, info, io.NewSectionReader(src, start, length), length)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				u.progress.IncrementFailed()
				if firstErr == nil {
					firstErr = err
					u.progress.SetCancelled()
					cancel()
				}
				return
			}
			parts = append(parts, dto.CompletedPartDTO{PartNumber: info.PartNumber, ETag: etag})
			u.progress.IncrementUploaded(length)
		}(info)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(parts) != len(urls) {
		return nil, errors.New("upload cancelled")
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].PartNumber < parts[j].PartNumber })
	return parts, nil
}

func (u *partUploader) putPart(ctx context.Context, info dto.PartInfoResponseDTO, body *io.SectionReader, length int64) (string, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(body, buf); err != nil {
		return "", fmt.Errorf("read part %d: %w", info.PartNumber, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, info.PresignedURL, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.ContentLength = length

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("put part %d: %w", info.PartNumber, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("put part %d: HTTP %d", info.PartNumber, resp.StatusCode)
	}

	etag := file.NormalizeETag(resp.Header.Get("ETag"))
	if etag == "" {
		return "", fmt.Errorf("put part %d: response carried no ETag", info.PartNumber)
	}
	if u.verifyETag {
		if err := file.ValidatePartETag(etag, buf); err != nil {
			return "", fmt.Errorf("part %d: %w", info.PartNumber, err)
		}
	}
	return etag, nil
}
