package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tozahudud/binbot/internal/adapters/backend"
	mqttadapter "github.com/tozahudud/binbot/internal/adapters/mqtt"
	"github.com/tozahudud/binbot/internal/adapters/notify"
	memoryrepo "github.com/tozahudud/binbot/internal/adapters/repo/memory"
	tomlrepo "github.com/tozahudud/binbot/internal/adapters/repo/toml"
	chainstore "github.com/tozahudud/binbot/internal/adapters/secrets/chain"
	"github.com/tozahudud/binbot/internal/adapters/telegram"
	"github.com/tozahudud/binbot/internal/adapters/vision/gemini"
	"github.com/tozahudud/binbot/internal/config"
	"github.com/tozahudud/binbot/internal/httpclient"
	"github.com/tozahudud/binbot/internal/ports"
	"github.com/tozahudud/binbot/internal/telemetry"
	"github.com/tozahudud/binbot/internal/version"
)

type globalFlags struct {
	configFile string
	envFile    string
	asJSON     bool
	trace      bool
}

type app struct {
	v          *viper.Viper
	flags      globalFlags
	secrets    ports.SecretStore
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time

	cfg             *config.Config
	shutdownTracing func(context.Context) error
}

func wireApp() (*app, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}

	secretStore, err := chainstore.NewPassFirstWithFileFallback(filepath.Join(dir, "secrets"))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	return &app{
		v:          viper.New(),
		secrets:    secretStore,
		httpClient: httpclient.New(),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}, nil
}

// init reads configuration sources and sets up logging and tracing. Secret
// references are resolved later, on first use of config.
func (a *app) init(cmd *cobra.Command) error {
	if err := config.Read(a.v, a.flags.configFile, a.flags.envFile); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString(config.KeyLogLevel), a.v.GetString(config.KeyLogFormat))
	if err != nil {
		return err
	}
	a.logger = logger

	if a.flags.trace {
		shutdown, err := telemetry.Setup(telemetry.Options{
			ServiceName: "binbot",
			Version:     version.Version,
			Writer:      cmd.ErrOrStderr(),
			PrettyPrint: true,
		})
		if err != nil {
			return fmt.Errorf("set up tracing: %w", err)
		}
		a.shutdownTracing = shutdown
	}

	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.shutdownTracing == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown := a.shutdownTracing
	a.shutdownTracing = nil
	if err := shutdown(ctx); err != nil {
		return fmt.Errorf("flush traces: %w", err)
	}
	return nil
}

func (a *app) config(ctx context.Context) (config.Config, error) {
	if a.cfg != nil {
		return *a.cfg, nil
	}
	cfg, err := config.Load(ctx, a.v, a.secrets)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	a.cfg = &cfg
	return cfg, nil
}

func (a *app) component(name string) *slog.Logger {
	return a.logger.With(slog.String("component", name))
}

func (a *app) newGateway(cfg config.Config) (*backend.Gateway, error) {
	if err := cfg.RequireBackend(); err != nil {
		return nil, err
	}

	session := &backend.Session{
		API: backend.API{
			BaseURL:      cfg.Backend.BaseURL,
			ValidatePath: cfg.Backend.ValidatePath,
		},
		Credentials: backend.Credentials{
			Login:    cfg.Backend.Login,
			Password: cfg.Backend.Password,
		},
		HTTPClient:     a.httpClient,
		RequestTimeout: cfg.Backend.Timeout,
		Logger:         a.component("backend_session"),
	}

	return &backend.Gateway{
		Session:        session,
		HTTPClient:     a.httpClient,
		RequestTimeout: cfg.Backend.Timeout,
		Clock:          ports.SystemClock{},
		Logger:         a.component("backend"),
	}, nil
}

func (a *app) newClassifier(cfg config.Config) *gemini.Classifier {
	return gemini.New(
		gemini.WithAPIKey(cfg.Gemini.APIKey),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithTimeout(cfg.Gemini.Timeout),
		gemini.WithLogger(a.component("classifier")),
	)
}

// newStateStore keeps conversation state in memory unless state.path names a
// TOML file.
func (a *app) newStateStore(cfg config.Config) (ports.ConversationStore, error) {
	if strings.TrimSpace(cfg.State.Path) == "" {
		return memoryrepo.NewConversationStore(), nil
	}

	storeConfig := viper.New()
	storeConfig.Set(tomlrepo.StatePathKey, cfg.State.Path)
	store, err := tomlrepo.NewConversationStore(storeConfig)
	if err != nil {
		return nil, fmt.Errorf("wire conversation store: %w", err)
	}
	a.logger.Info("conversation_store_file", "path", store.Path())
	return store, nil
}

func (a *app) newNotifier(cfg config.Config, sender *telegram.Bot) (ports.AdminNotifier, error) {
	logger := a.component("admin_notifier")
	if cfg.Admin.ChatID == 0 {
		return notify.LogNotifier{Logger: logger}, nil
	}
	return notify.NewChatNotifier(sender, cfg.Admin.ChatID, logger)
}

// newPublisher dials the MQTT mirror when mqtt.broker is set. The returned
// close func is never nil.
func (a *app) newPublisher(ctx context.Context, cfg config.Config) (ports.ReadingPublisher, func(), error) {
	if strings.TrimSpace(cfg.MQTT.Broker) == "" {
		return nil, func() {}, nil
	}

	publisher, err := mqttadapter.Dial(ctx, mqttadapter.Config{
		Broker:   cfg.MQTT.Broker,
		ClientID: cfg.MQTT.ClientID,
		Username: cfg.MQTT.Username,
		Password: cfg.MQTT.Password,
		Topic:    cfg.MQTT.Topic,
	}, a.component("mqtt"))
	if err != nil {
		return nil, nil, err
	}
	return publisher, publisher.Close, nil
}

func (a *app) newBot(token string, cfg config.Config, name string) (*telegram.Bot, error) {
	bot, err := telegram.New(telegram.Options{
		Token:        token,
		FileEndpoint: cfg.Telegram.FileEndpoint,
		HTTPClient:   a.httpClient,
		Logger:       a.component(name),
	})
	if err != nil {
		return nil, err
	}
	return bot, nil
}

func newLogger(w io.Writer, level string, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("unsupported log level %q", level)
		}
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}
