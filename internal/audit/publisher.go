package audit

import (
	"context"
	"log/slog"
	"time"

	"smartfinance/pkg/privacy"
)

// Publisher hashes subjects and hands events to the worker inbox. Emission is
// best-effort: a full inbox drops the event with a warning rather than
// blocking a customer-facing request on the audit path.
type Publisher struct {
	hasher *privacy.Hasher
	inbox  chan<- Event
	logger *slog.Logger
	clock  func() time.Time
}

func NewPublisher(hasher *privacy.Hasher, inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{hasher: hasher, inbox: inbox, logger: logger, clock: time.Now}
}

// Emit records one event. The identifier is hashed before it leaves this
// function; callers pass the raw value exactly once, here.
func (p *Publisher) Emit(_ context.Context, action Action, identifier, outcome string) {
	event := Event{
		Action:      action,
		SubjectHash: p.hasher.HashPII(identifier),
		Outcome:     outcome,
		Timestamp:   p.clock(),
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.Warn("audit inbox full, dropping event", "action", string(action))
	}
}
