package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartfinance/internal/audit"
	"smartfinance/internal/offer"
	"smartfinance/internal/platform/metrics"
)

// Service turns a redeemed offer plus a completed form into a persisted
// application.
type Service struct {
	offers  *offer.Service
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
	clock   func() time.Time
}

type Option func(*Service)

// WithClock overrides the submission timestamp source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewService(offers *offer.Service, store Store, logger *slog.Logger, m *metrics.Metrics, pub *audit.Publisher, opts ...Option) *Service {
	s := &Service{
		offers:  offers,
		store:   store,
		logger:  logger,
		metrics: m,
		audit:   pub,
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit redeems the offer token and persists the application. The token is
// consumed before the row is written, so a second submission with the same
// token fails with a conflict instead of creating a duplicate application.
func (s *Service) Submit(ctx context.Context, token string, form FormData, loan LoanDetails) (string, error) {
	o, err := s.offers.Consume(ctx, token)
	if err != nil {
		return "", err
	}

	pan := form.Bank.PANCard
	if pan == "" {
		pan = o.PAN
	}

	app := LoanApplication{
		ApplicationID:  "APP-" + uuid.NewString(),
		PAN:            normalizePAN(pan),
		Status:         StatusSubmitted,
		SubmissionDate: s.clock().UTC(),
		Form:           form,
		Loan:           loan,
	}
	if err := s.store.Append(ctx, app); err != nil {
		// The offer is already consumed at this point. Accepted:
		// storage failures here need manual follow-up, the same as a
		// half-written submission would in any non-transactional
		// pairing of two stores.
		return "", err
	}

	if s.metrics != nil {
		s.metrics.ApplicationsSubmitted.Inc()
	}
	if s.audit != nil {
		s.audit.Emit(ctx, audit.ActionApplicationSubmitted, app.PAN, "submitted")
	}
	s.logger.InfoContext(ctx, "application submitted",
		slog.String("application_id", app.ApplicationID),
		slog.Float64("amount", loan.Amount))
	return app.ApplicationID, nil
}

// StatusByPAN returns the most recent application for a PAN.
func (s *Service) StatusByPAN(ctx context.Context, pan string) (Status, error) {
	return s.store.LatestByPAN(ctx, pan)
}
