package ports

import "context"

// SecretStore holds credentials referenced from configuration as secret:<key>.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
