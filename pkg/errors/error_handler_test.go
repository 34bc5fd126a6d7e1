package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/fail", func(c *fiber.Ctx) error { return err })
	return app
}

func doRequest(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestHandleError_UploadErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"part limit", ErrPartLimitExceeded(20480), 400, CodePartLimitExceeded},
		{"no uploaded parts", ErrNoUploadedParts("k", "u", stderrors.New("NoSuchUpload")), 400, CodeNoUploadedParts},
		{"upload not found", ErrUploadNotFound("u", nil), 404, CodeUploadNotFound},
		{"invalid body", ErrInvalidRequestBody(stderrors.New("eof")), 400, CodeInvalidRequestBody},
		{"unauthorized", ErrUnauthorized(nil), 401, CodeUnauthorized},
		{"invalid credentials", ErrInvalidCredentials(nil), 401, CodeInvalidCredentials},
		{"wrapped upload error", fmt.Errorf("complete: %w", ErrUploadNotFound("u", nil)), 404, CodeUploadNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, newTestApp(tt.err), "/fail")
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body["error"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestHandleError_NoUploadedPartsMessageNamesKeyAndUploadID(t *testing.T) {
	_, body := doRequest(t, newTestApp(ErrNoUploadedParts("alice/2025/01/x_a.pdf", "up-123", nil)), "/fail")
	msg, _ := body["message"].(string)
	assert.Contains(t, msg, "alice/2025/01/x_a.pdf")
	assert.Contains(t, msg, "up-123")
}

func TestHandleError_UnknownErrorDoesNotLeakCause(t *testing.T) {
	status, body := doRequest(t, newTestApp(stderrors.New("dial tcp 10.0.0.5:5432: connection refused")), "/fail")

	assert.Equal(t, 500, status)
	assert.Equal(t, CodeInternalServerError, body["error"])
	assert.NotContains(t, body["message"], "10.0.0.5")
}

func TestHandleError_Validation(t *testing.T) {
	status, body := doRequest(t, newTestApp(ErrValidation(map[string]string{"filename": "is required"})), "/fail")

	assert.Equal(t, 400, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "validation errors", body["message"])
	assert.Equal(t, map[string]any{"filename": "is required"}, body["errors"])
}

func TestHandleError_RouteNotFound(t *testing.T) {
	status, body := doRequest(t, newTestApp(nil), "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, "NOT_FOUND", body["error"])
}

func TestUploadError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := ErrInternal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
}
