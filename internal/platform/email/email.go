// Package email implements SMTP delivery of transactional mail.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

// SMTPMailer sends plain-text mail through a configured SMTP relay.
// Dispatch is synchronous: Send does not return until the relay accepts
// or rejects the message, and every failure is returned to the caller.
type SMTPMailer struct {
	cfg    config.EmailConfig
	logger *slog.Logger
}

// NewSMTPMailer creates a new SMTPMailer with the given configuration.
func NewSMTPMailer(cfg config.EmailConfig, log *slog.Logger) *SMTPMailer {
	if log == nil {
		log = slog.Default()
	}

	return &SMTPMailer{
		cfg:    cfg,
		logger: log.With(slog.String("component", "smtp_mailer")),
	}
}

// Send delivers a plain-text message to a single recipient.
// The From address is the configured sender.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.cfg.SMTPHost == "" || m.cfg.FromAddress == "" {
		return fmt.Errorf("email config missing")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.FromAddress)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUser, m.cfg.SMTPPassword)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("email sent",
		slog.String("to", to),
		slog.String("subject", subject))
	return nil
}
