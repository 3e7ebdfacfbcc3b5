package ports

import (
	"context"

	"github.com/tozahudud/binbot/internal/domain"
)

type BinGateway interface {
	// GetBinSnapshot reports found=false when the backend has no such bin.
	GetBinSnapshot(ctx context.Context, id domain.BinID) (domain.BinSnapshot, bool, error)
	UpdateBinWithImage(ctx context.Context, id domain.BinID, image []byte, verdict domain.Verdict) (domain.AnalyzedBin, error)
}

type SensorGateway interface {
	PostSensorReading(ctx context.Context, reading domain.SensorReading) error
}
