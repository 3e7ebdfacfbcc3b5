package gemini

import (
	"log/slog"
	"net/http"
	"time"
)

type Option func(*options)

type options struct {
	apiKey     string
	model      string
	baseURL    string
	prompt     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

func defaultOptions() options {
	return options{
		model:   "gemini-2.0-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		prompt:  defaultPrompt,
		timeout: 30 * time.Second,
	}
}

func WithAPIKey(key string) Option {
	return func(o *options) { o.apiKey = key }
}

func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

func WithBaseURL(url string) Option {
	return func(o *options) {
		if url != "" {
			o.baseURL = url
		}
	}
}

func WithPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.prompt = prompt
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
