package ports

import (
	"context"

	"github.com/tozahudud/binbot/internal/domain"
)

type EventSource interface {
	Listen(ctx context.Context, handle func(domain.ChatEvent)) error
}

type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	DownloadPhoto(ctx context.Context, fileID string) ([]byte, error)
}

type AdminNotifier interface {
	NotifyBinFull(ctx context.Context, bin domain.AnalyzedBin) error
}

type ReadingPublisher interface {
	Publish(ctx context.Context, reading domain.SensorReading) error
}
