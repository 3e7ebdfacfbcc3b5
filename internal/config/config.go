package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	envPrefix  = "BINBOT"
	configDir  = ".binbot"
	configName = "config"
	configType = "toml"
	secretRef  = "secret:"
)

const (
	KeyTelegramToken        = "telegram.token"
	KeyTelegramFileEndpoint = "telegram.file_endpoint"
	KeyMonitorToken         = "monitor.token"
	KeyMonitorChatID        = "monitor.chat_id"
	KeyBackendBaseURL       = "backend.base_url"
	KeyBackendLogin         = "backend.login"
	KeyBackendPassword      = "backend.password"
	KeyBackendValidatePath  = "backend.validate_path"
	KeyBackendTimeout       = "backend.timeout"
	KeyGeminiAPIKey         = "gemini.api_key"
	KeyGeminiModel          = "gemini.model"
	KeyGeminiBaseURL        = "gemini.base_url"
	KeyGeminiTimeout        = "gemini.timeout"
	KeyStatePath            = "state.path"
	KeyStateTTL             = "state.ttl"
	KeyAdminChatID          = "admin.chat_id"
	KeyMQTTBroker           = "mqtt.broker"
	KeyMQTTTopic            = "mqtt.topic"
	KeyMQTTClientID         = "mqtt.client_id"
	KeyMQTTUsername         = "mqtt.username"
	KeyMQTTPassword         = "mqtt.password"
	KeyLogLevel             = "log.level"
	KeyLogFormat            = "log.format"
)

// Keys whose values may be given as secret:<key> references.
var secretKeys = []string{
	KeyTelegramToken,
	KeyMonitorToken,
	KeyBackendPassword,
	KeyGeminiAPIKey,
	KeyMQTTPassword,
}

type Config struct {
	Telegram Telegram
	Monitor  Monitor
	Backend  Backend
	Gemini   Gemini
	State    State
	Admin    Admin
	MQTT     MQTT
	Log      Log
}

type Telegram struct {
	Token        string
	FileEndpoint string
}

type Monitor struct {
	Token  string
	ChatID int64
}

type Backend struct {
	BaseURL      string
	Login        string
	Password     string
	ValidatePath string
	Timeout      time.Duration
}

type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type State struct {
	Path string
	TTL  time.Duration
}

type Admin struct {
	ChatID int64
}

type MQTT struct {
	Broker   string
	Topic    string
	ClientID string
	Username string
	Password string
}

type Log struct {
	Level  string
	Format string
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBackendBaseURL, "https://deklorantapi.cdcgroup.uz/api")
	v.SetDefault(KeyBackendLogin, "superadmin")
	v.SetDefault(KeyBackendValidatePath, "/validate-token/")
	v.SetDefault(KeyBackendTimeout, 20*time.Second)
	v.SetDefault(KeyGeminiModel, "gemini-2.0-flash")
	v.SetDefault(KeyGeminiBaseURL, "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault(KeyGeminiTimeout, 30*time.Second)
	v.SetDefault(KeyStateTTL, 24*time.Hour)
	v.SetDefault(KeyMQTTTopic, "binbot/sensors/{device_id}")
	v.SetDefault(KeyMQTTClientID, "binbot-relay")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// Read wires defaults, BINBOT_* environment variables, an optional .env file
// and the TOML config file into v. A missing .env or config file is not an
// error; an explicit configFile that does not exist is.
func Read(v *viper.Viper, configFile string, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file: %w", err)
		}
		return nil
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	if dir, err := DefaultDir(); err == nil {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config file: %w", err)
		}
	}
	return nil
}

// Load decodes v into a Config and resolves secret references through secrets.
func Load(ctx context.Context, v *viper.Viper, secrets ports.SecretStore) (Config, error) {
	resolved := make(map[string]string, len(secretKeys))
	for _, key := range secretKeys {
		value, err := resolveSecret(ctx, secrets, key, v.GetString(key))
		if err != nil {
			return Config{}, err
		}
		resolved[key] = value
	}

	cfg := Config{
		Telegram: Telegram{
			Token:        resolved[KeyTelegramToken],
			FileEndpoint: v.GetString(KeyTelegramFileEndpoint),
		},
		Monitor: Monitor{
			Token:  resolved[KeyMonitorToken],
			ChatID: v.GetInt64(KeyMonitorChatID),
		},
		Backend: Backend{
			BaseURL:      strings.TrimSpace(v.GetString(KeyBackendBaseURL)),
			Login:        v.GetString(KeyBackendLogin),
			Password:     resolved[KeyBackendPassword],
			ValidatePath: v.GetString(KeyBackendValidatePath),
			Timeout:      v.GetDuration(KeyBackendTimeout),
		},
		Gemini: Gemini{
			APIKey:  resolved[KeyGeminiAPIKey],
			Model:   v.GetString(KeyGeminiModel),
			BaseURL: v.GetString(KeyGeminiBaseURL),
			Timeout: v.GetDuration(KeyGeminiTimeout),
		},
		State: State{
			Path: expandHome(v.GetString(KeyStatePath)),
			TTL:  v.GetDuration(KeyStateTTL),
		},
		Admin: Admin{ChatID: v.GetInt64(KeyAdminChatID)},
		MQTT: MQTT{
			Broker:   v.GetString(KeyMQTTBroker),
			Topic:    v.GetString(KeyMQTTTopic),
			ClientID: v.GetString(KeyMQTTClientID),
			Username: v.GetString(KeyMQTTUsername),
			Password: resolved[KeyMQTTPassword],
		},
		Log: Log{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
	}

	return cfg, nil
}

func (c Config) RequireBackend() error {
	if c.Backend.BaseURL == "" {
		return errors.New(KeyBackendBaseURL + " is required")
	}
	if c.Backend.Password == "" {
		return errors.New(KeyBackendPassword + " is required")
	}
	return nil
}

func (c Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return errors.New(KeyTelegramToken + " is required")
	}
	return c.RequireBackend()
}

func (c Config) RequireMonitor() error {
	if c.Monitor.Token == "" {
		return errors.New(KeyMonitorToken + " is required")
	}
	return c.RequireBackend()
}

// DefaultDir is ~/.binbot, home of config.toml and the file secret store.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

func resolveSecret(ctx context.Context, secrets ports.SecretStore, key, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	ref, ok := strings.CutPrefix(raw, secretRef)
	if !ok {
		return raw, nil
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("resolve %s: empty secret reference", key)
	}
	if secrets == nil {
		return "", fmt.Errorf("resolve %s: no secret store configured", key)
	}

	value, err := secrets.Get(ctx, ref)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", key, err)
	}
	return strings.TrimSpace(value), nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
