package ports

import (
	"context"

	"github.com/tozahudud/binbot/internal/domain"
)

// Classifier never fails: errors degrade into a negative verdict.
type Classifier interface {
	Classify(ctx context.Context, image []byte) domain.Verdict
}
