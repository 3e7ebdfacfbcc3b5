package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports/mocks"
)

const compactSensorText = "🆔 ESP-100FDA\n🌡 21.5°C\n💧 48,2%\n⏱ 1800s"

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestSensorRelayPostsParsedReading(t *testing.T) {
	t.Parallel()

	sensors := mocks.NewMockSensorGateway(t)
	publisher := mocks.NewMockReadingPublisher(t)
	service := NewSensorRelayService(sensors, SensorRelayOptions{MonitoredChatID: -100, Publisher: publisher})

	want := domain.SensorReading{
		DeviceID:        "ESP-100FDA",
		TemperatureC:    floatPtr(21.5),
		HumidityPercent: floatPtr(48.2),
		SleepSeconds:    intPtr(1800),
	}
	sensors.EXPECT().PostSensorReading(mockAnyContext(), want).Return(nil)
	publisher.EXPECT().Publish(mockAnyContext(), want).Return(nil)

	err := service.HandleEvent(context.Background(), domain.ChatEvent{ChatID: -100, Text: compactSensorText})
	require.NoError(t, err)
}

func TestSensorRelayIgnoresOtherChats(t *testing.T) {
	t.Parallel()

	sensors := mocks.NewMockSensorGateway(t)
	service := NewSensorRelayService(sensors, SensorRelayOptions{MonitoredChatID: -100})

	err := service.HandleEvent(context.Background(), domain.ChatEvent{ChatID: -200, Text: compactSensorText})
	require.NoError(t, err)
	sensors.AssertNotCalled(t, "PostSensorReading", mock.Anything, mock.Anything)
}

func TestSensorRelayIgnoresUnparseableText(t *testing.T) {
	t.Parallel()

	sensors := mocks.NewMockSensorGateway(t)
	service := NewSensorRelayService(sensors, SensorRelayOptions{})

	for _, text := range []string{"", "salom", "🆔 ESP-1\n⏱ 60s", "Harorat: 20 °C"} {
		require.NoError(t, service.HandleEvent(context.Background(), domain.ChatEvent{ChatID: 5, Text: text}))
	}
	sensors.AssertNotCalled(t, "PostSensorReading", mock.Anything, mock.Anything)
}

func TestSensorRelayFailureSkipsMirror(t *testing.T) {
	t.Parallel()

	sensors := mocks.NewMockSensorGateway(t)
	publisher := mocks.NewMockReadingPublisher(t)
	service := NewSensorRelayService(sensors, SensorRelayOptions{Publisher: publisher})

	sensors.EXPECT().PostSensorReading(mockAnyContext(), mock.Anything).
		Return(fmt.Errorf("post sensor reading: %w", domain.ErrDeviceNotFound))

	err := service.HandleEvent(context.Background(), domain.ChatEvent{ChatID: 5, Text: compactSensorText})
	require.ErrorIs(t, err, domain.ErrDeviceNotFound)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestSensorRelayMirrorFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	sensors := mocks.NewMockSensorGateway(t)
	publisher := mocks.NewMockReadingPublisher(t)
	service := NewSensorRelayService(sensors, SensorRelayOptions{Publisher: publisher})

	reading := domain.SensorReading{DeviceID: "ESP-7", HumidityPercent: floatPtr(55)}
	sensors.EXPECT().PostSensorReading(mockAnyContext(), reading).Return(nil)
	publisher.EXPECT().Publish(mockAnyContext(), reading).Return(fmt.Errorf("mqtt not connected"))

	assert.NoError(t, service.Relay(context.Background(), reading))
}
