package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tozahudud/binbot/internal/domain"
	"github.com/tozahudud/binbot/internal/ports"
)

const (
	defaultQueueSize     = 16
	defaultIdleTimeout   = time.Minute
	defaultMaxConcurrent = 8
)

type EventHandler interface {
	HandleEvent(ctx context.Context, event domain.ChatEvent) error
}

type EventHandlerFunc func(ctx context.Context, event domain.ChatEvent) error

func (f EventHandlerFunc) HandleEvent(ctx context.Context, event domain.ChatEvent) error {
	return f(ctx, event)
}

type DispatcherOptions struct {
	QueueSize     int
	IdleTimeout   time.Duration
	MaxConcurrent int
	Logger        *slog.Logger
}

// Dispatcher fans chat events out to one worker per chat. Events of a chat are
// handled in arrival order; different chats run concurrently.
type Dispatcher struct {
	handler   EventHandler
	queueSize int
	idle      time.Duration
	sem       chan struct{}
	logger    *slog.Logger

	mu      sync.Mutex
	workers map[int64]chan domain.ChatEvent
	wg      sync.WaitGroup
}

func NewDispatcher(handler EventHandler, opts DispatcherOptions) *Dispatcher {
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		handler:   handler,
		queueSize: queueSize,
		idle:      idle,
		sem:       make(chan struct{}, maxConcurrent),
		logger:    logger,
		workers:   make(map[int64]chan domain.ChatEvent),
	}
}

// Run pumps events from source until ctx is cancelled, then waits for the
// workers to finish their current event.
func (d *Dispatcher) Run(ctx context.Context, source ports.EventSource) error {
	err := source.Listen(ctx, func(event domain.ChatEvent) {
		d.Dispatch(ctx, event)
	})
	d.Wait()
	return err
}

// Dispatch queues event on its chat worker. It reports false when the chat
// queue is full and the event was dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.ChatEvent) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	jobs, ok := d.workers[event.ChatID]
	if !ok {
		jobs = make(chan domain.ChatEvent, d.queueSize)
		d.workers[event.ChatID] = jobs
		d.wg.Add(1)
		go d.work(ctx, event.ChatID, jobs)
	}

	select {
	case jobs <- event:
		return true
	default:
		d.logger.Warn("dispatch_queue_full", "chat_id", event.ChatID)
		return false
	}
}

func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) work(ctx context.Context, chatID int64, jobs chan domain.ChatEvent) {
	defer d.wg.Done()

	timer := time.NewTimer(d.idle)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			d.retire(chatID, jobs, true)
			return
		case event := <-jobs:
			d.handle(ctx, event)
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(d.idle)
		case <-timer.C:
			if d.retire(chatID, jobs, false) {
				return
			}
			timer.Reset(d.idle)
		}
	}
}

// retire removes the worker from the registry unless events are still queued.
// Dispatch enqueues under the same lock, so nothing lands after removal.
func (d *Dispatcher) retire(chatID int64, jobs chan domain.ChatEvent, force bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !force && len(jobs) > 0 {
		return false
	}
	if current, ok := d.workers[chatID]; ok && current == jobs {
		delete(d.workers, chatID)
	}
	return true
}

func (d *Dispatcher) handle(ctx context.Context, event domain.ChatEvent) {
	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		return
	}
	defer func() { <-d.sem }()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event_handler_panic", "chat_id", event.ChatID, "panic", r)
		}
	}()

	if err := d.handler.HandleEvent(ctx, event); err != nil {
		d.logger.Warn("event_handler_failed", "chat_id", event.ChatID, "error", err)
	}
}

func (d *Dispatcher) activeWorkers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.workers)
}
