package worker

import (
	"context"
	"log/slog"

	audit "chocolate/pkg/platform/audit"
)

// Worker drains an event channel into an Appender until the channel closes.
// Append failures are logged and the event is dropped.
type Worker struct {
	sink   audit.Appender
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func NewWorker(sink audit.Appender, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run returns once inbox is closed and drained, or when ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "failed to persist audit event",
					"action", event.Action,
					"event_id", event.ID,
					"error", err,
				)
			}
		}
	}
}
