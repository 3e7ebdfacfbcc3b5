package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
)

func storeWith(run runFunc) *Store {
	return &Store{prefix: DefaultPrefix, run: run}
}

func TestStorePutUsesPrefixedInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := storeWith(func(ctx context.Context, input string, args ...string) (string, string, error) {
		called = true
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		assert.Equal(t, []string{"insert", "-m", "-f", "binbot/telegram/token"}, args)
		assert.Equal(t, "123:abc\n", input)
		return "", "", nil
	})

	require.NoError(t, store.Put(context.Background(), "telegram/token", "123:abc"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := storeWith(func(_ context.Context, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"show", "binbot/backend/password"}, args)
		assert.Empty(t, input)
		return "s3cret\r\nlogin: superadmin\n", "", nil
	})

	value, err := store.Get(context.Background(), "/backend/password/")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestStoreGetMissingEntry(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, string, ...string) (string, string, error) {
		return "", "Error: binbot/gemini/api_key is not in the password store.", errors.New("exit status 1")
	})

	_, err := store.Get(context.Background(), "gemini/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, string, ...string) (string, string, error) {
		return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
	})

	_, err := store.Get(context.Background(), "gemini/api_key")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "binbot/gemini/api_key")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreDeleteIgnoresMissingEntry(t *testing.T) {
	t.Parallel()

	store := storeWith(func(_ context.Context, _ string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"rm", "-f", "binbot/mqtt/password"}, args)
		return "", "Error: binbot/mqtt/password is not in the password store.", errors.New("exit status 1")
	})

	require.NoError(t, store.Delete(context.Background(), "mqtt/password"))
}

func TestStoreRejectsBadKeys(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, string, ...string) (string, string, error) {
		t.Fatal("pass must not run for invalid keys")
		return "", "", nil
	})

	for _, key := range []string{"", "  ", "../escape"} {
		_, err := store.Get(context.Background(), key)
		assert.Error(t, err, key)
	}
}

func TestStoreCanceledContextSkipsCommand(t *testing.T) {
	t.Parallel()

	store := storeWith(func(context.Context, string, ...string) (string, string, error) {
		t.Fatal("pass must not run after cancellation")
		return "", "", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "telegram/token")
	require.ErrorIs(t, err, context.Canceled)
}
