package errors

import (
	"fmt"
	"net/http"

	"multipart-uploader/pkg/constants"
	"multipart-uploader/pkg/errors/i18n"
)

const (
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodePartLimitExceeded   = "PART_LIMIT_EXCEEDED"
	CodeNoUploadedParts     = "NO_UPLOADED_PARTS"
	CodeUploadNotFound      = "UPLOAD_NOT_FOUND"
	CodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// UploadError is the error kind every layer returns to the HTTP boundary.
// Err keeps the underlying cause for server-side logs and is never sent to
// the client. Fields carries per-field messages for validation failures.
type UploadError struct {
	Code    string
	Message string
	Status  int
	Fields  map[string]string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

var (
	ErrValidation = func(fields map[string]string) *UploadError {
		return &UploadError{Code: CodeValidationFailed, Message: i18n.T(CodeValidationFailed), Status: http.StatusBadRequest, Fields: fields}
	}
	ErrPartLimitExceeded = func(partCount int64) *UploadError {
		return &UploadError{
			Code:    CodePartLimitExceeded,
			Message: i18n.Tf(CodePartLimitExceeded, partCount, constants.MaxPartCount),
			Status:  http.StatusBadRequest,
		}
	}
	ErrNoUploadedParts = func(key, uploadID string, err error) *UploadError {
		return &UploadError{
			Code:    CodeNoUploadedParts,
			Message: i18n.Tf(CodeNoUploadedParts, key, uploadID),
			Status:  http.StatusBadRequest,
			Err:     err,
		}
	}
	ErrUploadNotFound = func(uploadID string, err error) *UploadError {
		return &UploadError{
			Code:    CodeUploadNotFound,
			Message: i18n.Tf(CodeUploadNotFound, uploadID),
			Status:  http.StatusNotFound,
			Err:     err,
		}
	}
	ErrInvalidRequestBody = func(err error) *UploadError {
		return &UploadError{Code: CodeInvalidRequestBody, Message: i18n.T(CodeInvalidRequestBody), Status: http.StatusBadRequest, Err: err}
	}
	ErrUnauthorized = func(err error) *UploadError {
		return &UploadError{Code: CodeUnauthorized, Message: i18n.T(CodeUnauthorized), Status: http.StatusUnauthorized, Err: err}
	}
	ErrInvalidCredentials = func(err error) *UploadError {
		return &UploadError{Code: CodeInvalidCredentials, Message: i18n.T(CodeInvalidCredentials), Status: http.StatusUnauthorized, Err: err}
	}
	ErrInternal = func(err error) *UploadError {
		return &UploadError{Code: CodeInternalServerError, Message: i18n.T(CodeInternalServerError), Status: http.StatusInternalServerError, Err: err}
	}
)
