package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	DefaultTopic          = "binbot/sensors/{device_id}"
	defaultPublishTimeout = 10 * time.Second
	publishQoS            = 1
	disconnectQuiesceMS   = 250
)

type Config struct {
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
}

type publishClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// Publisher mirrors relayed sensor readings onto an MQTT topic, one topic per
// device.
type Publisher struct {
	client  publishClient
	topic   string
	timeout time.Duration
	clock   ports.Clock
	logger  *slog.Logger

	disconnect func()
}

var _ ports.ReadingPublisher = (*Publisher)(nil)

type readingMessage struct {
	DeviceID     string   `json:"device_id"`
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	SleepSeconds *int     `json:"sleep_seconds"`
	Timestamp    int64    `json:"timestamp"`
}

func NewPublisher(client publishClient, topic string, clock ports.Clock, logger *slog.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		client:  client,
		topic:   topic,
		timeout: defaultPublishTimeout,
		clock:   clock,
		logger:  logger,
	}
}

// Dial connects to the broker and returns a publisher owning the connection.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Publisher, error) {
	if strings.TrimSpace(cfg.Broker) == "" {
		return nil, errors.New("mqtt broker is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "binbot-relay"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(clientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetOnConnectHandler(func(paho.Client) {
		logger.Info("mqtt_connected", "broker", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		logger.Warn("mqtt_connection_lost", "broker", cfg.Broker, "error", err)
	})

	client := paho.NewClient(opts)
	if err := wait(ctx, client.Connect(), defaultPublishTimeout); err != nil {
		return nil, fmt.Errorf("connect mqtt broker: %w", err)
	}

	publisher := NewPublisher(client, cfg.Topic, nil, logger)
	publisher.disconnect = func() { client.Disconnect(disconnectQuiesceMS) }
	return publisher, nil
}

func (p *Publisher) Publish(ctx context.Context, reading domain.SensorReading) error {
	if !reading.Valid() {
		return errors.New("publish sensor reading: invalid reading")
	}

	payload, err := json.Marshal(readingMessage{
		DeviceID:     reading.DeviceID,
		Temperature:  reading.TemperatureC,
		Humidity:     reading.HumidityPercent,
		SleepSeconds: reading.SleepSeconds,
		Timestamp:    p.clock.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("encode sensor reading: %w", err)
	}

	topic := formatTopic(p.topic, reading.DeviceID)
	if err := wait(ctx, p.client.Publish(topic, publishQoS, false, payload), p.timeout); err != nil {
		return fmt.Errorf("publish sensor reading: %w", err)
	}

	p.logger.Debug("mqtt_reading_published", "device_id", reading.DeviceID, "topic", topic)
	return nil
}

func (p *Publisher) Close() {
	if p.disconnect != nil {
		p.disconnect()
	}
}

func wait(ctx context.Context, token paho.Token, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("%w: timed out after %s", domain.ErrTransport, timeout)
	}
}

func formatTopic(pattern, deviceID string) string {
	return strings.ReplaceAll(pattern, "{device_id}", deviceID)
}
