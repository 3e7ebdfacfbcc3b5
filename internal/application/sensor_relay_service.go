package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

type SensorRelayOptions struct {
	// MonitoredChatID restricts relaying to one chat; zero accepts every chat.
	MonitoredChatID int64
	Publisher       ports.ReadingPublisher
	Logger          *slog.Logger
}

// SensorRelayService forwards sensor readings posted in chat to the backend.
// It never replies in chat.
type SensorRelayService struct {
	sensors   ports.SensorGateway
	publisher ports.ReadingPublisher
	chatID    int64
	logger    *slog.Logger
}

func NewSensorRelayService(sensors ports.SensorGateway, opts SensorRelayOptions) *SensorRelayService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SensorRelayService{
		sensors:   sensors,
		publisher: opts.Publisher,
		chatID:    opts.MonitoredChatID,
		logger:    logger,
	}
}

func (s *SensorRelayService) HandleEvent(ctx context.Context, event domain.ChatEvent) error {
	if s.chatID != 0 && event.ChatID != s.chatID {
		return nil
	}
	if event.Text == "" {
		return nil
	}

	reading, ok := domain.ParseSensorText(event.Text)
	if !ok {
		s.logger.Debug("sensor_message_ignored", "chat_id", event.ChatID)
		return nil
	}

	return s.Relay(ctx, reading)
}

// Relay posts one reading and mirrors it to the publisher when one is set.
// A mirror failure is logged and does not fail the relay.
func (s *SensorRelayService) Relay(ctx context.Context, reading domain.SensorReading) error {
	if err := s.sensors.PostSensorReading(ctx, reading); err != nil {
		s.logger.Error("sensor_relay_failed", "device_id", reading.DeviceID, "error", err)
		return fmt.Errorf("relay sensor reading: %w", err)
	}
	s.logger.Info("sensor_reading_relayed", "device_id", reading.DeviceID)

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, reading); err != nil {
			s.logger.Warn("sensor_mirror_failed", "device_id", reading.DeviceID, "error", err)
		}
	}

	return nil
}
