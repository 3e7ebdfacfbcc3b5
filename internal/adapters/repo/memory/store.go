package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

// ConversationStore is the default in-process state store. State is lost on
// restart.
type ConversationStore struct {
	mu     sync.RWMutex
	states map[domain.ConversationKey]domain.ConversationState
}

var _ ports.ConversationStore = (*ConversationStore)(nil)

func NewConversationStore() *ConversationStore {
	return &ConversationStore{states: make(map[domain.ConversationKey]domain.ConversationState)}
}

func (s *ConversationStore) Get(ctx context.Context, key domain.ConversationKey) (domain.ConversationState, error) {
	if err := ctx.Err(); err != nil {
		return domain.ConversationState{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[key]
	if !ok {
		return domain.ConversationState{}, domain.ErrConversationNotFound
	}
	return state, nil
}

func (s *ConversationStore) Save(ctx context.Context, state domain.ConversationState) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.Key] = state
	return nil
}

func (s *ConversationStore) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, state := range s.states {
		if !state.UpdatedAt.IsZero() && state.UpdatedAt.Before(before) {
			delete(s.states, key)
			removed++
		}
	}
	return removed, nil
}

func (s *ConversationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
