package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/repositories"
)

// S3API is the subset of *s3.Client used for multipart uploads.
type S3API interface {
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	ListParts(ctx context.Context, params *s3.ListPartsInput, optFns ...func(*s3.Options)) (*s3.ListPartsOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
}

// PresignAPI is the subset of *s3.PresignClient used for part URLs.
type PresignAPI interface {
	PresignUploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

var (
	_ S3API      = (*s3.Client)(nil)
	_ PresignAPI = (*s3.PresignClient)(nil)
)

// NewS3Client builds an S3 client; path-style addressing is forced when an
// endpoint override is configured so LocalStack and MinIO work.
func NewS3Client(cfg aws.Config, pathStyle bool) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = pathStyle
	})
}

type s3Storage struct {
	client    S3API
	presigner PresignAPI
	logger    *zap.Logger
}

func NewS3Storage(client S3API, presigner PresignAPI, logger *zap.Logger) repositories.MultipartStorage {
	return &s3Storage{client: client, presigner: presigner, logger: logger}
}

func (s *s3Storage) CreateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	out, err := s.client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.logger.Error("create multipart upload failed",
			zap.String("bucket", bucket), zap.String("key", key), zap.String("aws_code", errorCode(err)), zap.Error(err))
		return "", fmt.Errorf("create multipart upload %s: %w", key, err)
	}
	uploadID := aws.ToString(out.UploadId)
	if uploadID == "" {
		return "", fmt.Errorf("create multipart upload %s: store returned an empty upload id", key)
	}
	s.logger.Debug("multipart upload created", zap.String("key", key), zap.String("upload_id", uploadID))
	return uploadID, nil
}

func (s *s3Storage) ListParts(ctx context.Context, bucket, key, uploadID string) ([]repositories.UploadedPart, error) {
	paginator := s3.NewListPartsPaginator(s.client, &s3.ListPartsInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})

	var parts []repositories.UploadedPart
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			s.logger.Warn("list parts failed",
				zap.String("key", key), zap.String("upload_id", uploadID), zap.String("aws_code", errorCode(err)), zap.Error(err))
			return nil, fmt.Errorf("list parts %s: %w", key, err)
		}
		for _, p := range page.Parts {
			parts = append(parts, repositories.UploadedPart{
				PartNumber: aws.ToInt32(p.PartNumber),
				ETag:       aws.ToString(p.ETag),
				Size:       aws.ToInt64(p.Size),
			})
		}
	}
	return parts, nil
}

// CompleteMultipartUpload sends parts in the order given.
func (s *s3Storage) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []repositories.CompletedPart) error {
	completed := make([]types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, types.CompletedPart{
			PartNumber: aws.Int32(p.PartNumber),
			ETag:       aws.String(p.ETag),
		})
	}

	_, err := s.client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		s.logger.Error("complete multipart upload failed",
			zap.String("key", key), zap.String("upload_id", uploadID), zap.String("aws_code", errorCode(err)), zap.Error(err))
		return fmt.Errorf("complete multipart upload %s: %w", key, err)
	}
	return nil
}

// AbortMultipartUpload treats an already aborted or completed upload as done.
func (s *s3Storage) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	_, err := s.client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	if err != nil {
		if IsNoSuchUpload(err) {
			s.logger.Info("multipart upload already gone", zap.String("key", key), zap.String("upload_id", uploadID))
			return nil
		}
		return fmt.Errorf("abort multipart upload %s: %w", key, err)
	}
	return nil
}

func (s *s3Storage) PresignUploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, ttl time.Duration) (string, error) {
	req, err := s.presigner.PresignUploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNumber),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign part %d of %s: %w", partNumber, key, err)
	}
	return req.URL, nil
}

// IsNoSuchUpload reports whether err is S3's NoSuchUpload.
func IsNoSuchUpload(err error) bool {
	var nsu *types.NoSuchUpload
	if errors.As(err, &nsu) {
		return true
	}
	return errorCode(err) == "NoSuchUpload"
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
