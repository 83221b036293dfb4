package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"smartfinance/internal/audit"
	"smartfinance/internal/mail"
	"smartfinance/internal/platform/metrics"
)

const (
	emailTTL = 5 * time.Minute
	phoneTTL = 2 * time.Minute

	// genericFailure is returned for every failed verification. The service
	// never reveals whether the identifier had a live code.
	genericFailure = "Invalid or expired OTP."
)

// Service issues and verifies one-time codes for an identifier (email or
// phone). Channel selection drives both delivery and expiry.
type Service struct {
	store   Store
	mailer  mail.Mailer
	logger  *slog.Logger
	metrics *metrics.Metrics
	audit   *audit.Publisher

	// sandboxCode is stored for the phone channel in place of SMS dispatch.
	// TODO: replace with provider dispatch when an SMS gateway is contracted;
	// keep this path for test/sandbox modes.
	sandboxCode     string
	dispatchTimeout time.Duration
	emailTTL        time.Duration
	phoneTTL        time.Duration
	clock           func() time.Time
}

type Option func(*Service)

func WithSandboxCode(code string) Option {
	return func(s *Service) {
		if code != "" {
			s.sandboxCode = code
		}
	}
}

func WithDispatchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.dispatchTimeout = d
		}
	}
}

// WithTTLs overrides the per-channel code lifetimes.
func WithTTLs(email, phone time.Duration) Option {
	return func(s *Service) {
		if email > 0 {
			s.emailTTL = email
		}
		if phone > 0 {
			s.phoneTTL = phone
		}
	}
}

func WithServiceClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewService(store Store, mailer mail.Mailer, logger *slog.Logger, m *metrics.Metrics, auditPub *audit.Publisher, opts ...Option) *Service {
	s := &Service{
		store:           store,
		mailer:          mailer,
		logger:          logger,
		metrics:         m,
		audit:           auditPub,
		sandboxCode:     "654321",
		dispatchTimeout: 10 * time.Second,
		emailTTL:        emailTTL,
		phoneTTL:        phoneTTL,
		clock:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send issues a code for the identifier. Email: random 6-digit code delivered
// through the mailer; the record is stored only after dispatch succeeds, so
// codes nobody received cannot exist. Phone: the sandbox code is stored and
// logged server-side only.
func (s *Service) Send(ctx context.Context, identifier string) (Result, error) {
	switch DetectChannel(identifier) {
	case ChannelEmail:
		return s.sendEmail(ctx, identifier)
	default:
		return s.sendPhone(ctx, identifier)
	}
}

func (s *Service) sendEmail(ctx context.Context, email string) (Result, error) {
	code, err := generateCode()
	if err != nil {
		return Result{}, err
	}

	dispatchCtx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()
	body := fmt.Sprintf("Your verification code for Smart Finance is: %s", code)
	if err := s.mailer.Send(dispatchCtx, email, "Your Email Verification Code", body); err != nil {
		s.logger.Warn("otp email dispatch failed", "error", err.Error())
		s.countSent(ChannelEmail, "dispatch_failed")
		s.emit(ctx, audit.ActionOTPSent, email, "dispatch_failed")
		return Result{Success: false, Message: "Failed to send OTP email."}, nil
	}

	rec := Record{Code: code, Expiry: s.clock().Add(s.emailTTL)}
	if err := s.store.Put(ctx, email, rec); err != nil {
		return Result{}, err
	}

	s.countSent(ChannelEmail, "ok")
	s.emit(ctx, audit.ActionOTPSent, email, "ok")
	return Result{Success: true, Message: "OTP sent to your email."}, nil
}

func (s *Service) sendPhone(ctx context.Context, phone string) (Result, error) {
	rec := Record{Code: s.sandboxCode, Expiry: s.clock().Add(s.phoneTTL)}
	if err := s.store.Put(ctx, phone, rec); err != nil {
		return Result{}, err
	}

	// Server-side only; the code must never travel to the client.
	s.logger.Info("sandbox OTP issued for phone channel", "code", s.sandboxCode)

	s.countSent(ChannelPhone, "ok")
	s.emit(ctx, audit.ActionOTPSent, phone, "ok")
	return Result{Success: true, Message: "OTP sent."}, nil
}

// Verify consumes the live code on success. Every failure mode returns the
// same generic result.
func (s *Service) Verify(ctx context.Context, identifier, code string) (Result, error) {
	ok, err := s.store.VerifyAndConsume(ctx, identifier, code, s.clock())
	if err != nil {
		return Result{}, err
	}
	if !ok {
		s.countVerified("failed")
		s.emit(ctx, audit.ActionOTPVerified, identifier, "failed")
		return Result{Success: false, Message: genericFailure}, nil
	}

	s.countVerified("ok")
	s.emit(ctx, audit.ActionOTPVerified, identifier, "ok")
	return Result{Success: true, Message: "OTP verified successfully."}, nil
}

func (s *Service) countSent(ch Channel, outcome string) {
	if s.metrics != nil {
		s.metrics.OTPSent.WithLabelValues(string(ch), outcome).Inc()
	}
}

func (s *Service) countVerified(outcome string) {
	if s.metrics != nil {
		s.metrics.OTPVerified.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) emit(ctx context.Context, action audit.Action, identifier, outcome string) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(ctx, action, identifier, outcome)
}

// generateCode returns a uniformly random 6-digit numeric string.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
