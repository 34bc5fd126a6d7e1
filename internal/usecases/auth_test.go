package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"multipart-uploader/internal/security"
	apperrors "multipart-uploader/pkg/errors"
)

const passwordParam = "/app/auth/password"

func newAuthService(t *testing.T, params *fakeParams) (AuthService, *security.TokenService) {
	t.Helper()
	tokens, err := security.NewTokenService([]byte("test-secret"), 30*time.Minute, "test")
	require.NoError(t, err)
	return NewAuthService(params, tokens, "admin", passwordParam, zap.NewNop()), tokens
}

func TestLogin_IssuesTokenForCaller(t *testing.T) {
	svc, tokens := newAuthService(t, &fakeParams{values: map[string]string{passwordParam: "s3cret"}})

	resp, err := svc.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, int64(1800), resp.ExpiresIn)

	subject, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	params := &fakeParams{values: map[string]string{passwordParam: "s3cret"}}
	svc, _ := newAuthService(t, params)

	cases := map[string][2]string{
		"wrong password": {"admin", "nope"},
		"wrong user":     {"root", "s3cret"},
		"empty password": {"admin", ""},
		"empty user":     {"", "s3cret"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), c[0], c[1])
			assert.Equal(t, apperrors.CodeInvalidCredentials, errorCode(t, err))
		})
	}
}

func TestLogin_ParameterStoreFailureIsInternal(t *testing.T) {
	svc, _ := newAuthService(t, &fakeParams{err: errors.New("throttled")})

	_, err := svc.Login(context.Background(), "admin", "s3cret")
	require.Error(t, err)
	var ue *apperrors.UploadError
	assert.False(t, errors.As(err, &ue))
}
