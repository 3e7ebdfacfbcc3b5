package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
)

const (
	testBinID      = "3f1c9a52-7d4e-4b8a-9c21-5e6f70819a2b"
	compactReading = "🆔 ESP-100FDA\n🌡 21.5°C\n💧 48,2%\n⏱ 1800s"
)

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestParseRendersReadingFromArguments(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "parse", compactReading)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sensor reading ESP-100FDA")
	assert.Contains(t, stdout, "21.5 °C")
	assert.Contains(t, stdout, "48.2 %")
	assert.Contains(t, stdout, "1800 s")
}

func TestParseReadsStdin(t *testing.T) {
	stdout, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader("Qurilma: ESP-7\nHarorat: 18,9 °C\n"), "parse", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"DeviceID\": \"ESP-7\"")
	assert.Contains(t, stdout, "\"TemperatureC\": 18.9")
}

func TestParseRejectsTextWithoutReading(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "parse", "salom", "dunyo")
	require.Error(t, err)
	assert.ErrorIs(t, err, errNoSensorReading)
}

func TestParseRequiresInput(t *testing.T) {
	_, _, err := executeCLIWithInput(t, t.TempDir(), strings.NewReader("  \n"), "parse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sensor text is required")
}

func TestParseSendPostsReadingToBackend(t *testing.T) {
	var logins, posts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			logins.Add(1)
			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "operator", body["login"])
			assert.Equal(t, "pw-123", body["password"])
			_, _ = fmt.Fprint(w, `{"token":"tok-1"}`)
		case "/iot-devices/data/update/":
			posts.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Token tok-1", r.Header.Get("Authorization"))
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ESP-100FDA", body["device_id"])
			assert.InDelta(t, 21.5, body["temperature"], 0.001)
			assert.InDelta(t, 48.2, body["humidity"], 0.001)
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_LOGIN", "operator")
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	stdout, _, err := executeCLI(t, t.TempDir(), "parse", "--send", compactReading)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Sensor reading ESP-100FDA")
	assert.Equal(t, int32(1), logins.Load())
	assert.Equal(t, int32(1), posts.Load())
}

func TestParseSendReportsUnknownDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login/" {
			_, _ = fmt.Fprint(w, `{"token":"tok-1"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	_, _, err := executeCLI(t, t.TempDir(), "parse", "--send", compactReading)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDeviceNotFound)
}

func TestBinShowResolvesQRLinkAndRendersBin(t *testing.T) {
	server := httptest.NewServer(binBackend(t, nil))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	stdout, _, err := executeCLI(t, t.TempDir(), "bin", "show", "https://t.me/toza_bin_bot?start=x&bin_id="+strings.ToUpper(testBinID))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Waste bin "+testBinID)
	assert.Contains(t, stdout, "Amir Temur ko'chasi 12")
	assert.Contains(t, stdout, "Chilonzor")
	assert.Contains(t, stdout, " 35%")
}

func TestBinShowJSONOutput(t *testing.T) {
	server := httptest.NewServer(binBackend(t, nil))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	stdout, _, err := executeCLI(t, t.TempDir(), "bin", "show", testBinID, "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"FillLevelPercent\": 35")
}

func TestBinShowUnknownBin(t *testing.T) {
	server := httptest.NewServer(binBackend(t, nil))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	_, _, err := executeCLI(t, t.TempDir(), "bin", "show", "1042")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBinNotFound)
}

func TestBinShowRequiresBackendPassword(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "bin", "show", testBinID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend.password is required")
}

func TestBinShowResolvesPasswordFromSecretStore(t *testing.T) {
	server := httptest.NewServer(binBackend(t, nil))
	defer server.Close()

	home := t.TempDir()
	_, _, err := executeCLI(t, home, "secret", "set", "backend-password", "--value", "pw-123")
	require.NoError(t, err)

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "secret:backend-password")

	stdout, _, err := executeCLI(t, home, "bin", "show", testBinID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Waste bin "+testBinID)
}

func TestBinUploadClassifiesAndUpdatesBin(t *testing.T) {
	var updates atomic.Int32
	server := httptest.NewServer(binBackend(t, func(w http.ResponseWriter, r *http.Request) {
		updates.Add(1)
		time.Sleep(200 * time.Millisecond)
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "true", r.FormValue("is_full"))
		assert.Contains(t, r.FormValue("last_analysis"), "AI tahlili")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Setenv("BINBOT_BACKEND_BASE_URL", server.URL)
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	image := writeImageFixture(t)
	stdout, stderr, err := executeCLI(t, t.TempDir(), "bin", "upload", testBinID, image)
	require.NoError(t, err)
	assert.Equal(t, int32(1), updates.Load())
	assert.Contains(t, stdout, "Waste bin "+testBinID)
	assert.Contains(t, stdout, "Photo analysis")
	assert.Contains(t, stderr, "Analysing and uploading image")
}

func TestBinUploadMissingImage(t *testing.T) {
	t.Setenv("BINBOT_BACKEND_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("BINBOT_BACKEND_PASSWORD", "pw-123")

	_, _, err := executeCLI(t, t.TempDir(), "bin", "upload", testBinID, filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat image")
}

func TestClassifyWithoutCredentialPrintsFallbackVerdict(t *testing.T) {
	image := writeImageFixture(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "classify", image, "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))

	var verdict domain.Verdict
	require.NoError(t, json.Unmarshal([]byte(stdout), &verdict))
	assert.Equal(t, domain.NoCredentialVerdict(), verdict)
}

func TestClassifyRendersVerdict(t *testing.T) {
	image := writeImageFixture(t)

	stdout, _, err := executeCLI(t, t.TempDir(), "classify", image)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Photo analysis")
	assert.Contains(t, stdout, "FULL")
	assert.Contains(t, stdout, "70%")
}

func TestSecretLifecycle(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "secret", "set", "telegram-token", "--value", "123:abc")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored secret telegram-token")

	stdout, _, err = executeCLI(t, home, "secret", "get", "telegram-token")
	require.NoError(t, err)
	assert.Equal(t, "123:abc\n", stdout)

	_, _, err = executeCLI(t, home, "secret", "rm", "telegram-token")
	require.NoError(t, err)

	_, _, err = executeCLI(t, home, "secret", "get", "telegram-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestSecretSetReadsStdin(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLIWithInput(t, home, strings.NewReader("gemini-key\n"), "secret", "set", "gemini", "--stdin")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "secret", "get", "gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini-key\n", stdout)
}

func TestSecretSetRequiresValue(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "secret", "set", "empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret value is required")
}

func TestServeRequiresTelegramToken(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token is required")
}

func TestMonitorRequiresMonitorToken(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "monitor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monitor.token is required")
}

func TestConfigFileIsRead(t *testing.T) {
	home := t.TempDir()
	configDir := filepath.Join(home, ".binbot")
	require.NoError(t, os.MkdirAll(configDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte("[telegram]\ntoken = \"\"\n\n[monitor]\ntoken = \"secret:missing-token\"\n"), 0o600))

	_, _, err := executeCLI(t, home, "monitor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve monitor.token")
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "version", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log level")
}

func TestSweepInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{name: "default ttl", ttl: 24 * time.Hour, want: time.Hour},
		{name: "quarter of ttl", ttl: 2 * time.Hour, want: 30 * time.Minute},
		{name: "short ttl floors at a minute", ttl: time.Minute, want: time.Minute},
		{name: "zero ttl", ttl: 0, want: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sweepInterval(tt.ttl))
		})
	}
}

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (e *countingExpirer) ExpireStates(context.Context) (int, error) {
	e.calls.Add(1)
	return 1, e.err
}

func TestSweepStatesRunsUntilCanceled(t *testing.T) {
	t.Parallel()

	for _, sweepErr := range []error{nil, errors.New("disk full")} {
		expirer := &countingExpirer{err: sweepErr}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			defer close(done)
			sweepStates(ctx, expirer, 5*time.Millisecond, slog.New(slog.DiscardHandler))
		}()

		require.Eventually(t, func() bool { return expirer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)
	logger.Debug("bin_lookup", "bin_id", "1042")
	assert.Contains(t, buf.String(), `"msg":"bin_lookup"`)

	_, err = newLogger(&buf, "info", "xml")
	require.Error(t, err)
}

// binBackend serves login plus GET for testBinID; onUpdate handles image updates.
func binBackend(t *testing.T, onUpdate http.HandlerFunc) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login/":
			_, _ = fmt.Fprint(w, `{"token":"tok-1"}`)
		case r.URL.Path == "/waste-bins/"+testBinID+"/" && r.Method == http.MethodGet:
			assert.Equal(t, "Token tok-1", r.Header.Get("Authorization"))
			_, _ = fmt.Fprintf(w, `{"id":%q,"address":"Amir Temur ko'chasi 12","fill_level":35.4,"is_full":false,"toza_hudud":{"name":"Chilonzor"}}`, testBinID)
		case r.URL.Path == "/waste-bins/"+testBinID+"/update-image-file/" && onUpdate != nil:
			onUpdate(w, r)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func writeImageFixture(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bin.jpg")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}, 0o600))
	return path
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, strings.NewReader(""), args...)
}

func executeCLIWithInput(t *testing.T, home string, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	// Keeps the pass CLI out of reach so secrets land in the file store under home.
	t.Setenv("PATH", "")
	t.Setenv("BINBOT_LOG_LEVEL", "error")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
