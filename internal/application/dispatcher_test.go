package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tozahudud/binbot/internal/domain"
)

type sliceSource struct {
	events []domain.ChatEvent
}

func (s sliceSource) Listen(ctx context.Context, handle func(domain.ChatEvent)) error {
	for _, event := range s.events {
		handle(event)
	}
	<-ctx.Done()
	return nil
}

func TestDispatcherKeepsPerChatOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := map[int64][]string{}
	handler := EventHandlerFunc(func(_ context.Context, event domain.ChatEvent) error {
		mu.Lock()
		defer mu.Unlock()
		seen[event.ChatID] = append(seen[event.ChatID], event.Text)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	dispatcher := NewDispatcher(handler, DispatcherOptions{QueueSize: 64})
	for i := 0; i < 20; i++ {
		require.True(t, dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: int64(i % 2), Text: string(rune('a' + i))}))
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen[0])+len(seen[1]) == 20
	}, time.Second, 5*time.Millisecond)
	cancel()
	dispatcher.Wait()

	assert.Equal(t, []string{"a", "c", "e", "g", "i", "k", "m", "o", "q", "s"}, seen[0])
	assert.Equal(t, []string{"b", "d", "f", "h", "j", "l", "n", "p", "r", "t"}, seen[1])
}

func TestDispatcherRunsChatsConcurrently(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var done atomic.Int32
	handler := EventHandlerFunc(func(_ context.Context, event domain.ChatEvent) error {
		if event.ChatID == 1 {
			<-release
		}
		done.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher := NewDispatcher(handler, DispatcherOptions{})

	dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 1})
	dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 2})

	require.Eventually(t, func() bool { return done.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(release)
	require.Eventually(t, func() bool { return done.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestDispatcherSurvivesPanicsAndErrors(t *testing.T) {
	t.Parallel()

	var handled atomic.Int32
	handler := EventHandlerFunc(func(_ context.Context, event domain.ChatEvent) error {
		handled.Add(1)
		switch event.Text {
		case "panic":
			panic("handler exploded")
		case "error":
			return errors.New("backend down")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher := NewDispatcher(handler, DispatcherOptions{})

	for _, text := range []string{"panic", "error", "ok"} {
		dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 7, Text: text})
	}

	require.Eventually(t, func() bool { return handled.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestDispatcherDropsWhenChatQueueIsFull(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	handler := EventHandlerFunc(func(context.Context, domain.ChatEvent) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher := NewDispatcher(handler, DispatcherOptions{QueueSize: 1})

	require.True(t, dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 3}))
	<-started
	require.True(t, dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 3}))
	assert.False(t, dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 3}))

	close(release)
}

func TestDispatcherRetiresIdleWorkers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatcher := NewDispatcher(EventHandlerFunc(func(context.Context, domain.ChatEvent) error { return nil }), DispatcherOptions{
		IdleTimeout: 20 * time.Millisecond,
	})

	dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 1})
	dispatcher.Dispatch(ctx, domain.ChatEvent{ChatID: 2})
	assert.Equal(t, 2, dispatcher.activeWorkers())

	require.Eventually(t, func() bool { return dispatcher.activeWorkers() == 0 }, time.Second, 5*time.Millisecond)
	dispatcher.Wait()
}

func TestDispatcherRunStopsOnCancel(t *testing.T) {
	t.Parallel()

	var handled atomic.Int32
	handler := EventHandlerFunc(func(context.Context, domain.ChatEvent) error {
		handled.Add(1)
		return nil
	})
	dispatcher := NewDispatcher(handler, DispatcherOptions{})
	source := sliceSource{events: []domain.ChatEvent{{ChatID: 1}, {ChatID: 2}, {ChatID: 1}}}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- dispatcher.Run(ctx, source) }()

	require.Eventually(t, func() bool { return handled.Load() == 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}
