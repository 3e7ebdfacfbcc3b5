package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/etc/passwd", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), "telegram/token", "123:abc"))

	got, err := store.Get(context.Background(), "telegram/token")
	require.NoError(t, err)
	assert.Equal(t, "123:abc", got)

	info, err := os.Stat(filepath.Join(root, "telegram", "token"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())
}

func TestStoreGetTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "api_key"), []byte("AIza-key\n"), 0o644))

	got, err := NewStore(root).Get(context.Background(), "api_key")
	require.NoError(t, err)
	assert.Equal(t, "AIza-key", got)
}

func TestStoreGetMissingSecret(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), "gemini/api_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), "mqtt/password", "pw"))
	require.NoError(t, store.Delete(context.Background(), "mqtt/password"))
	require.NoError(t, store.Delete(context.Background(), "mqtt/password"))

	_, err := store.Get(context.Background(), "mqtt/password")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
