package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
)

func TestSessionEnsureAuthenticatedLogsInWithoutToken(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "operator", body.Login)
		assert.Equal(t, "s3cret", body.Password)

		logins.Add(1)
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)
	assert.Equal(t, domain.SessionUnauthenticated, session.State())

	require.NoError(t, session.EnsureAuthenticated(context.Background()))
	assert.Equal(t, int32(1), logins.Load())
	assert.Equal(t, domain.SessionAuthenticated, session.State())
	assert.Equal(t, "Token tok-1", session.AuthHeaders().Get("Authorization"))
}

func TestSessionEnsureAuthenticatedValidatesHeldToken(t *testing.T) {
	t.Parallel()

	var logins, validations atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/validate-token/":
			validations.Add(1)
			assert.Equal(t, "Token tok-0", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"valid":true}`))
		case "/api/auth/login/":
			logins.Add(1)
			_, _ = w.Write([]byte(`{"token":"tok-1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)
	session.token = "tok-0"

	require.NoError(t, session.EnsureAuthenticated(context.Background()))
	assert.Equal(t, int32(1), validations.Load())
	assert.Zero(t, logins.Load())
	assert.Equal(t, "tok-0", session.Token())
}

func TestSessionEnsureAuthenticatedReloginsWhenValidationFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		validate http.HandlerFunc
	}{
		{
			name: "unauthorized",
			validate: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
		},
		{
			name: "server error",
			validate: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logins atomic.Int32
			mux := http.NewServeMux()
			mux.HandleFunc("/api/validate-token/", tt.validate)
			mux.HandleFunc("/api/auth/login/", func(w http.ResponseWriter, _ *http.Request) {
				logins.Add(1)
				_, _ = w.Write([]byte(`{"token":"tok-fresh"}`))
			})
			server := httptest.NewServer(mux)
			t.Cleanup(server.Close)

			session := newTestSession(server)
			session.token = "tok-old"

			require.NoError(t, session.EnsureAuthenticated(context.Background()))
			assert.Equal(t, int32(1), logins.Load())
			assert.Equal(t, "tok-fresh", session.Token())
		})
	}
}

func TestSessionLoginFailureLeavesSessionUnauthenticated(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)

	err := session.EnsureAuthenticated(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, domain.SessionUnauthenticated, session.State())
	assert.Empty(t, session.AuthHeaders().Get("Authorization"))
}

func TestSessionLoginRejectsResponseWithoutToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	err := newTestSession(server).EnsureAuthenticated(context.Background())
	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.Contains(t, err.Error(), "missing token")
}

func TestSessionConcurrentEnsureAuthenticatedLogsInOnce(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			count := logins.Add(1)
			time.Sleep(50 * time.Millisecond)
			_, _ = fmt.Fprintf(w, `{"token":"tok-%d"}`, count)
		case "/api/validate-token/":
			_, _ = w.Write([]byte(`{"valid":true}`))
		}
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)

	const callers = 12
	start := make(chan struct{})
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			errs <- session.EnsureAuthenticated(context.Background())
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), logins.Load())
	assert.Equal(t, "tok-1", session.Token())
}

func TestSessionEnsureAuthenticatedSurvivesFirstCallerCancel(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login/":
			logins.Add(1)
			arrived <- struct{}{}
			<-release
			_, _ = w.Write([]byte(`{"token":"tok-1"}`))
		case "/api/validate-token/":
			_, _ = w.Write([]byte(`{"valid":true}`))
		}
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() { leaderErr <- session.EnsureAuthenticated(leaderCtx) }()
	<-arrived

	followerErr := make(chan error, 1)
	go func() { followerErr <- session.EnsureAuthenticated(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	require.NoError(t, <-followerErr)
	assert.Equal(t, int32(1), logins.Load())
	assert.Equal(t, "tok-1", session.Token())
	assert.Equal(t, domain.SessionAuthenticated, session.State())
}

func TestSessionReloginSkipsWhenTokenAlreadyReplaced(t *testing.T) {
	t.Parallel()

	var logins atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		logins.Add(1)
		_, _ = w.Write([]byte(`{"token":"tok-2"}`))
	}))
	t.Cleanup(server.Close)

	session := newTestSession(server)
	session.token = "tok-1"

	require.NoError(t, session.Relogin(context.Background(), "tok-0"))
	assert.Zero(t, logins.Load())
	assert.Equal(t, "tok-1", session.Token())

	require.NoError(t, session.Relogin(context.Background(), "tok-1"))
	assert.Equal(t, int32(1), logins.Load())
	assert.Equal(t, "tok-2", session.Token())
}

func TestBuildAPIURLJoinsBasePath(t *testing.T) {
	t.Parallel()

	got, err := buildAPIURL("https://backend.example/api", "/waste-bins/abc/")
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example/api/waste-bins/abc/", got)

	_, err = buildAPIURL("ftp://backend.example", "/x/")
	require.Error(t, err)

	_, err = buildAPIURL("", "/x/")
	require.Error(t, err)
}

func newTestSession(server *httptest.Server) *Session {
	return &Session{
		API:            API{BaseURL: server.URL + "/api"},
		Credentials:    Credentials{Login: "operator", Password: "s3cret"},
		HTTPClient:     server.Client(),
		RequestTimeout: 2 * time.Second,
	}
}
