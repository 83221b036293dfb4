package audit

import (
	"context"
	"log/slog"
)

// Sink persists audit events. Implementations: in-memory (dev/tests) and
// Kafka (production).
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Worker drains the inbox into the sink. It runs as a background goroutine
// owned by main. Sink failures are logged and the event dropped; audit must
// never stall the pipeline.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.Error("audit append failed",
					"action", string(event.Action),
					"error", err.Error(),
				)
			}
		}
	}
}
