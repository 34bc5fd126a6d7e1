package paramstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"multipart-uploader/internal/domain/repositories"
)

// getParametersBatchLimit is the most names SSM accepts in one GetParameters call.
const getParametersBatchLimit = 10

// ErrParameterNotFound is returned by Get for names the store does not hold.
var ErrParameterNotFound = errors.New("parameter not found")

// SSMAPI is the subset of the SSM client used here.
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParameters(ctx context.Context, params *ssm.GetParametersInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersOutput, error)
}

var _ SSMAPI = (*ssm.Client)(nil)

// ssmParameterStore caches every resolved value for the life of the
// process. Concurrent misses on the same name may both hit SSM; the last
// write wins, which is harmless because values are identical.
type ssmParameterStore struct {
	client SSMAPI
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string]string
}

func NewSSMParameterStore(client SSMAPI, logger *zap.Logger) repositories.ParameterStore {
	return &ssmParameterStore{
		client: client,
		logger: logger,
		cache:  make(map[string]string),
	}
}

func (s *ssmParameterStore) Get(ctx context.Context, name string) (string, error) {
	if v, ok := s.lookup(name); ok {
		return v, nil
	}

	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ParameterNotFound" {
			return "", fmt.Errorf("%w: %s", ErrParameterNotFound, name)
		}
		return "", fmt.Errorf("get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("%w: %s", ErrParameterNotFound, name)
	}

	value := aws.ToString(out.Parameter.Value)
	s.store(name, value)
	return value, nil
}

func (s *ssmParameterStore) GetMany(ctx context.Context, names []string) (map[string]string, error) {
	result := make(map[string]string, len(names))
	var missing []string
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if v, ok := s.lookup(name); ok {
			result[name] = v
			continue
		}
		missing = append(missing, name)
	}

	for start := 0; start < len(missing); start += getParametersBatchLimit {
		end := min(start+getParametersBatchLimit, len(missing))
		batch := missing[start:end]

		out, err := s.client.GetParameters(ctx, &ssm.GetParametersInput{
			Names:          batch,
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("get parameters %v: %w", batch, err)
		}
		for _, p := range out.Parameters {
			name, value := aws.ToString(p.Name), aws.ToString(p.Value)
			s.store(name, value)
			result[name] = value
		}
		if len(out.InvalidParameters) > 0 {
			s.logger.Warn("parameters not found", zap.Strings("names", out.InvalidParameters))
		}
	}
	return result, nil
}

func (s *ssmParameterStore) lookup(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.cache[name]
	return v, ok
}

func (s *ssmParameterStore) store(name, value string) {
	s.mu.Lock()
	s.cache[name] = value
	s.mu.Unlock()
}
