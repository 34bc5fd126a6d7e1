package repositories

import "context"

// ParameterStore resolves named configuration values, typically secrets.
// Implementations cache values for the life of the process.
type ParameterStore interface {
	Get(ctx context.Context, name string) (string, error)
	// GetMany returns the values that exist; unknown names are omitted.
	GetMany(ctx context.Context, names []string) (map[string]string, error)
}
