package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

type Credentials struct {
	Login    string
	Password string
}

// Session owns the backend access token shared by every gateway call in the
// process. At most one login request is in flight at a time.
type Session struct {
	API            API
	Credentials    Credentials
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         *slog.Logger

	mu             sync.RWMutex
	token          string
	authenticating bool

	loginMu sync.Mutex
	ensure  singleflight.Group
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Session) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.authenticating:
		return domain.SessionAuthenticating
	case s.token != "":
		return domain.SessionAuthenticated
	default:
		return domain.SessionUnauthenticated
	}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) AuthHeaders() http.Header {
	headers := http.Header{}
	if token := s.Token(); token != "" {
		headers.Set("Authorization", "Token "+token)
	}
	return headers
}

// authorize stamps req with the current token and returns the token used, so a
// later 401 can be matched against it.
func (s *Session) authorize(req *http.Request) string {
	token := s.Token()
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	return token
}

// EnsureAuthenticated logs in when no token is held and otherwise validates the
// held token, logging in again when validation does not succeed. Concurrent
// callers share one validation round. The shared round is detached from any
// single caller's cancellation and bounded by the session's own timeout; each
// caller stops waiting when its own ctx is done.
func (s *Session) EnsureAuthenticated(ctx context.Context) error {
	ch := s.ensure.DoChan("ensure", func() (any, error) {
		flightCtx, cancel := s.flightContext(ctx)
		defer cancel()

		token := s.Token()
		if token == "" {
			return nil, s.Relogin(flightCtx, "")
		}

		if err := s.validate(flightCtx, token); err != nil {
			s.logger().Info("token_validation_failed", "error", err)
			return nil, s.Relogin(flightCtx, token)
		}

		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// flightContext keeps ctx values such as the trace span but drops its
// cancellation. The bound covers a validation followed by a login.
func (s *Session) flightContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(context.WithoutCancel(ctx), 2*timeout)
}

// Relogin replaces stale with a fresh token. When another caller already
// replaced it, no login request is made.
func (s *Session) Relogin(ctx context.Context, stale string) error {
	s.loginMu.Lock()
	defer s.loginMu.Unlock()

	if current := s.Token(); current != "" && current != stale {
		return nil
	}

	s.mu.Lock()
	s.token = ""
	s.authenticating = true
	s.mu.Unlock()

	token, err := s.login(ctx)

	s.mu.Lock()
	s.authenticating = false
	if err == nil {
		s.token = token
	}
	s.mu.Unlock()

	if err != nil {
		s.logger().Warn("backend_login_failed", "error", err)
		return fmt.Errorf("login: %w: %w", domain.ErrAuthentication, err)
	}

	s.logger().Info("backend_login_succeeded")
	return nil
}

func (s *Session) login(ctx context.Context) (token string, err error) {
	ctx, span := tracer.Start(ctx, "backend.login")
	defer func() { endSpan(span, err) }()

	endpoint, err := buildAPIURL(s.API.BaseURL, s.API.loginPath())
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(loginRequest{Login: s.Credentials.Login, Password: s.Credentials.Password})
	if err != nil {
		return "", fmt.Errorf("encode login request: %w", err)
	}

	requestCtx, cancel := requestContext(ctx, s.RequestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := clientOrDefault(s.HTTPClient).Do(req)
	if err != nil {
		return "", fmt.Errorf("request login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if !isSuccess(resp.StatusCode) {
		return "", fmt.Errorf("request login: status %d", resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if payload.Token == "" {
		return "", errors.New("login response missing token")
	}

	return payload.Token, nil
}

func (s *Session) validate(ctx context.Context, token string) (err error) {
	ctx, span := tracer.Start(ctx, "backend.validate_token")
	defer func() { endSpan(span, err) }()

	endpoint, err := buildAPIURL(s.API.BaseURL, s.API.validatePath())
	if err != nil {
		return err
	}

	requestCtx, cancel := requestContext(ctx, s.RequestTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create validate request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := clientOrDefault(s.HTTPClient).Do(req)
	if err != nil {
		return fmt.Errorf("request token validation: %w", err)
	}
	defer drainAndClose(resp)

	if !isSuccess(resp.StatusCode) {
		return fmt.Errorf("request token validation: status %d", resp.StatusCode)
	}

	return nil
}

func (s *Session) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
