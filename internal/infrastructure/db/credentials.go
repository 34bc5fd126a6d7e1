package db

import (
	"context"
	"fmt"

	"multipart-uploader/internal/domain/repositories"
	"multipart-uploader/internal/pkg/config"
)

// ResolveCredentials fills the URL, user and password of cfg from the
// parameter store in a single batch. Names left empty are skipped and
// missing parameters keep the env-provided value.
func ResolveCredentials(ctx context.Context, cfg config.DatabaseConfig, params repositories.ParameterStore) (config.DatabaseConfig, error) {
	var names []string
	for _, n := range []string{cfg.URLParam, cfg.UsernameParam, cfg.PasswordParam} {
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return cfg, nil
	}

	values, err := params.GetMany(ctx, names)
	if err != nil {
		return cfg, fmt.Errorf("resolve database credentials: %w", err)
	}

	if v, ok := values[cfg.URLParam]; ok && cfg.URLParam != "" {
		cfg.URL = v
	}
	if v, ok := values[cfg.UsernameParam]; ok && cfg.UsernameParam != "" {
		cfg.User = v
	}
	if v, ok := values[cfg.PasswordParam]; ok && cfg.PasswordParam != "" {
		cfg.Password = v
	}
	return cfg, nil
}
