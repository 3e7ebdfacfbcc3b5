package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/tozahudud/binbot/internal/adapters/secrets/file"
	passstore "github.com/tozahudud/binbot/internal/adapters/secrets/pass"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

// Store tries each backend in order. Reads return the first hit, writes land
// in the first backend that accepts them, deletes reach every backend.
type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoStores = errors.New("secret chain has no stores")

func NewStore(stores ...ports.SecretStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("secret store %d is nil", i)
		}
	}

	return &Store{stores: stores}, nil
}

func NewPassFirstWithFileFallback(fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(passstore.DefaultPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	allMissing := true
	for _, store := range s.stores {
		value, err := store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextError(err) {
			return "", err
		}
		if !errors.Is(err, domain.ErrSecretNotFound) {
			allMissing = false
		}
		errs = append(errs, err)
	}

	if allMissing {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for _, store := range s.stores {
		err := store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for _, store := range s.stores {
		err := store.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if isContextError(err) {
			return err
		}
		errs = append(errs, err)
	}

	if deleted {
		return nil
	}
	return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
