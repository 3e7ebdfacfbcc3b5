package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	maxResponseBytes      = 1 << 20
	maxErrorSnippetBytes  = 512
	defaultRequestTimeout = 20 * time.Second
	defaultLoginPath      = "/auth/login/"
	defaultValidatePath   = "/validate-token/"
)

var tracer = otel.Tracer("github.com/tozahudud/binbot/internal/adapters/backend")

type API struct {
	BaseURL      string
	LoginPath    string
	ValidatePath string
}

func (a API) loginPath() string {
	if a.LoginPath != "" {
		return a.LoginPath
	}
	return defaultLoginPath
}

func (a API) validatePath() string {
	if a.ValidatePath != "" {
		return a.ValidatePath
	}
	return defaultValidatePath
}

func buildAPIURL(baseURL string, path string) (string, error) {
	if baseURL == "" {
		return "", errors.New("api base url is required")
	}
	if path == "" {
		return "", errors.New("api path is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	return parsed.JoinPath(path).String(), nil
}

func requestContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func clientOrDefault(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return http.DefaultClient
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func isAuthFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}

func statusError(op string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippetBytes))
	detail := strings.TrimSpace(string(snippet))
	if detail == "" {
		return fmt.Errorf("%s: status %d: %w", op, resp.StatusCode, domain.ErrTransport)
	}
	return fmt.Errorf("%s: status %d: %s: %w", op, resp.StatusCode, detail, domain.ErrTransport)
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
