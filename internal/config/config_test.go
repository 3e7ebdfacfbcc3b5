package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports/mocks"
)

const sampleConfig = `
[telegram]
token = "123:abc"

[monitor]
token = "secret:monitor/token"
chat_id = -1003670768026

[backend]
base_url = "https://backend.example/api"
password = "secret:backend/password"
timeout = "15s"

[gemini]
model = "gemini-2.5-flash"

[state]
path = "~/state.toml"
ttl = "12h"

[mqtt]
broker = "tcp://localhost:1883"

[log]
level = "DEBUG"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadReadsFileDefaultsAndSecrets(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	v := viper.New()
	require.NoError(t, Read(v, writeConfig(t, sampleConfig), ""))

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, "monitor/token").Return("456:def\n", nil)
	secrets.EXPECT().Get(mock.Anything, "backend/password").Return("s3cret", nil)

	cfg, err := Load(context.Background(), v, secrets)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "456:def", cfg.Monitor.Token)
	assert.Equal(t, int64(-1003670768026), cfg.Monitor.ChatID)
	assert.Equal(t, "https://backend.example/api", cfg.Backend.BaseURL)
	assert.Equal(t, "superadmin", cfg.Backend.Login)
	assert.Equal(t, "s3cret", cfg.Backend.Password)
	assert.Equal(t, "/validate-token/", cfg.Backend.ValidatePath)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 30*time.Second, cfg.Gemini.Timeout)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, filepath.Join(home, "state.toml"), cfg.State.Path)
	assert.Equal(t, 12*time.Hour, cfg.State.TTL)
	assert.Equal(t, "binbot/sensors/{device_id}", cfg.MQTT.Topic)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	require.NoError(t, cfg.RequireTelegram())
	require.NoError(t, cfg.RequireMonitor())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BINBOT_BACKEND_TIMEOUT", "5s")
	t.Setenv("BINBOT_GEMINI_API_KEY", "AIza-env")
	t.Setenv("BINBOT_ADMIN_CHAT_ID", "-42")

	v := viper.New()
	require.NoError(t, Read(v, writeConfig(t, "[backend]\ntimeout = \"15s\"\n"), ""))

	cfg, err := Load(context.Background(), v, nil)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "AIza-env", cfg.Gemini.APIKey)
	assert.Equal(t, int64(-42), cfg.Admin.ChatID)
}

func TestReadLoadsDotEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BINBOT_TELEGRAM_FILE_ENDPOINT", "")
	require.NoError(t, os.Unsetenv("BINBOT_TELEGRAM_FILE_ENDPOINT"))

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BINBOT_TELEGRAM_FILE_ENDPOINT=http://files.local/%s/%s\n"), 0o600))

	v := viper.New()
	require.NoError(t, Read(v, "", envFile))

	cfg, err := Load(context.Background(), v, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://files.local/%s/%s", cfg.Telegram.FileEndpoint)
}

func TestReadToleratesMissingDefaultFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Read(v, "", filepath.Join(t.TempDir(), "missing.env")))

	cfg, err := Load(context.Background(), v, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://deklorantapi.cdcgroup.uz/api", cfg.Backend.BaseURL)
	assert.Equal(t, 24*time.Hour, cfg.State.TTL)
	assert.Empty(t, cfg.State.Path)
}

func TestReadReadsHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".binbot"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".binbot", "config.toml"), []byte("[admin]\nchat_id = 77\n"), 0o600))

	v := viper.New()
	require.NoError(t, Read(v, "", ""))

	cfg, err := Load(context.Background(), v, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(77), cfg.Admin.ChatID)
}

func TestReadFailsForMissingExplicitConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	err := Read(viper.New(), filepath.Join(t.TempDir(), "nope.toml"), "")
	require.ErrorContains(t, err, "read config file")
}

func TestLoadSecretReferenceErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	require.NoError(t, Read(v, writeConfig(t, "[gemini]\napi_key = \"secret:gemini/api_key\"\n"), ""))

	_, err := Load(context.Background(), v, nil)
	require.ErrorContains(t, err, "no secret store configured")

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, "gemini/api_key").Return("", fmt.Errorf("entry: %w", domain.ErrSecretNotFound))

	_, err = Load(context.Background(), v, secrets)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, KeyGeminiAPIKey)
}

func TestRequireChecks(t *testing.T) {
	t.Parallel()

	cfg := Config{Backend: Backend{BaseURL: "https://x/api"}}
	assert.ErrorContains(t, cfg.RequireTelegram(), KeyTelegramToken)
	assert.ErrorContains(t, cfg.RequireMonitor(), KeyMonitorToken)
	assert.ErrorContains(t, cfg.RequireBackend(), KeyBackendPassword)

	cfg.Backend.Password = "pw"
	cfg.Telegram.Token = "t"
	assert.NoError(t, cfg.RequireTelegram())
}
