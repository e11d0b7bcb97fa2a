package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sharath018/party-rsvp-backend/config"
)

// Message is a rendered email ready for a transport.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Mailer sends a rendered message.
type Mailer interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// NewMailer picks the transport from MAIL_PROVIDER. An unconfigured
// provider falls back to the noop mailer so the API keeps working.
func NewMailer(cfg *config.Config, logger zerolog.Logger) (Mailer, error) {
	log := logger.With().Str("component", "mailer").Logger()
	if !cfg.MailConfigured() {
		if cfg.MailProvider != "noop" {
			log.Warn().Str("provider", cfg.MailProvider).Msg("mail transport not configured, notifications disabled")
		}
		return &NoopMailer{log: log}, nil
	}

	switch cfg.MailProvider {
	case "smtp":
		return NewSMTPMailer(cfg), nil
	case "ses":
		return NewSESMailer(cfg)
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q", cfg.MailProvider)
	}
}

// formatAddress renders "Name <addr>" or just addr.
func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

// NoopMailer logs instead of sending.
type NoopMailer struct {
	log zerolog.Logger
}

func (m *NoopMailer) Name() string { return "noop" }

func (m *NoopMailer) Send(_ context.Context, msg Message) error {
	m.log.Info().Str("to", strings.Join(msg.To, ",")).Str("subject", msg.Subject).Msg("mail suppressed (noop transport)")
	return nil
}
