package ports

import (
	"context"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
)

type ConversationStore interface {
	// Get returns domain.ErrConversationNotFound for unknown keys.
	Get(ctx context.Context, key domain.ConversationKey) (domain.ConversationState, error)
	Save(ctx context.Context, state domain.ConversationState) error
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
