package offer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartfinance/internal/audit"
	"smartfinance/internal/platform/metrics"
	"smartfinance/internal/underwriting"
)

// Service mints bearer-token offers from approved underwriting decisions.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher
	clock   func() time.Time
}

type Option func(*Service)

// WithClock overrides the creation timestamp source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewService(store Store, logger *slog.Logger, m *metrics.Metrics, pub *audit.Publisher, opts ...Option) *Service {
	s := &Service{
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

// Create snapshots an approved decision under a fresh token and returns the
// token. Callers decide what to do with rejected decisions; Create never sees
// them.
func (s *Service) Create(ctx context.Context, d underwriting.Decision, pan, phone string, isExisting bool) (string, error) {
	o := Offer{
		Token:              uuid.NewString(),
		LoanAmount:         d.Amount,
		InterestRate:       d.InterestRate,
		TenureMonths:       d.TenureMonths,
		IsExistingCustomer: isExisting,
		PAN:                pan,
		Phone:              phone,
		CreatedAt:          s.clock().UTC(),
	}
	if err := s.store.Create(ctx, o); err != nil {
		return "", err
	}
	if s.metrics != nil {
		s.metrics.OffersCreated.Inc()
	}
	s.emit(ctx, audit.ActionOfferCreated, pan, "created")
	s.logger.InfoContext(ctx, "offer created",
		slog.Float64("amount", o.LoanAmount),
		slog.Float64("rate", o.InterestRate),
		slog.Int("tenure_months", o.TenureMonths))
	return o.Token, nil
}

// Get returns the offer behind a token.
func (s *Service) Get(ctx context.Context, token string) (Offer, error) {
	return s.store.Get(ctx, token)
}

// Consume redeems a token exactly once.
func (s *Service) Consume(ctx context.Context, token string) (Offer, error) {
	o, err := s.store.Consume(ctx, token)
	if err != nil {
		return Offer{}, err
	}
	s.emit(ctx, audit.ActionOfferRedeemed, o.PAN, "redeemed")
	return o, nil
}

func (s *Service) emit(ctx context.Context, action audit.Action, identifier, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(ctx, action, identifier, outcome)
}
