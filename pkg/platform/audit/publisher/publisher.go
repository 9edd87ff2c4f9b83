// Package publisher stamps audit events and hands them to a sink, either
// inline or through a bounded buffer drained in the background.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	id "chocolate/pkg/domain"
	audit "chocolate/pkg/platform/audit"
	"chocolate/pkg/platform/audit/worker"
	"chocolate/pkg/platform/sentinel"
	"chocolate/pkg/requestcontext"
)

type Publisher struct {
	sink   audit.Appender
	logger *slog.Logger

	bufferSize int
	mu         sync.RWMutex
	buffer     chan audit.Event
	closed     bool
	done       chan struct{}
}

type Option func(*Publisher)

// WithAsyncBuffer makes Emit enqueue instead of writing inline. Zero keeps
// the publisher synchronous.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.bufferSize = size
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(sink audit.Appender, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.bufferSize > 0 {
		p.buffer = make(chan audit.Event, p.bufferSize)
		p.done = make(chan struct{})
		w := worker.NewWorker(sink, p.buffer, p.logger)
		go func() {
			defer close(p.done)
			_ = w.Run(context.Background())
		}()
	}
	return p
}

// Emit fills in ID, Timestamp, Category and request metadata when missing,
// then stores or enqueues the event.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	event.Category = event.Action.Category()
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.UserAgent == "" {
		event.UserAgent = requestcontext.UserAgent(ctx)
	}

	if p.buffer == nil {
		return p.sink.Append(ctx, event)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("audit publisher closed: %w", sentinel.ErrUnavailable)
	}
	select {
	case p.buffer <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event", "action", event.Action)
		return audit.ErrBufferFull
	}
}

// List returns actor's events when the sink can be queried.
func (p *Publisher) List(ctx context.Context, actor id.AccountID) ([]audit.Event, error) {
	store, ok := p.sink.(audit.Store)
	if !ok {
		return nil, fmt.Errorf("audit sink is write-only: %w", sentinel.ErrUnavailable)
	}
	return store.ListByActor(ctx, actor)
}

// Close stops accepting events and waits for the buffer to drain.
func (p *Publisher) Close() {
	if p.buffer == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.buffer)
	p.mu.Unlock()
	<-p.done
}
