package usecases

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"multipart-uploader/internal/domain/dto"
	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/security"
	apperrors "multipart-uploader/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.LoginResponseDTO, error)
}

type authService struct {
	params        repositories.ParameterStore
	tokens        *security.TokenService
	username      string
	passwordParam string
	logger        *zap.Logger
}

// NewAuthService authenticates a single configured user whose password lives
// in the parameter store under passwordParam.
func NewAuthService(params repositories.ParameterStore, tokens *security.TokenService, username, passwordParam string, logger *zap.Logger) AuthService {
	return &authService{
		params:        params,
		tokens:        tokens,
		username:      username,
		passwordParam: passwordParam,
		logger:        logger,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*dto.LoginResponseDTO, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials(errors.New("missing username or password"))
	}

	expected, err := s.params.Get(ctx, s.passwordParam)
	if err != nil {
		return nil, fmt.Errorf("resolve auth password: %w", err)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
	if !userOK || !passOK {
		s.logger.Info("login rejected", zap.String("username", username))
		return nil, apperrors.ErrInvalidCredentials(nil)
	}

	token, err := s.tokens.Generate(username)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponseDTO{Token: token, ExpiresIn: int64(s.tokens.TTL().Seconds())}, nil
}
