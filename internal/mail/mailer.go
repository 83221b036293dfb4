// Package mail defines the outbound mail port. Delivery itself is an
// external collaborator; this package only owns the contract and two small
// adapters (SMTP for real dispatch, log-only for development).
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"smartfinance/internal/platform/config"
)

// Mailer dispatches a single message. Implementations must respect ctx: a
// deadline hit is a delivery failure, never a success.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the message, honoring the context deadline. net/smtp has no
// context support, so the dial-and-send runs in a goroutine and the first of
// completion or cancellation wins; an abandoned send cannot flip a failure
// into a success because the result channel is drained exactly once.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	addr := m.cfg.Host + ":" + m.cfg.Port
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body))

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

// LogMailer records dispatches without sending anything. The message body is
// logged only at debug level since it can carry one-time codes.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.logger.Info("mail dispatch (log-only)", "to", to, "subject", subject)
	m.logger.Debug("mail body", "body", body)
	return nil
}
