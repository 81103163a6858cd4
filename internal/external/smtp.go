package external

import (
	"context"
	"log/slog"

	"github.com/wneessen/go-mail"

	"raincheck/internal/config"
	"raincheck/internal/types"
)

// SMTPDispatcher implements types.NotificationDispatcher over an
// authenticated SMTP submission using the go-mail library. A single delivery
// attempt is made per call; transport and auth failures are surfaced as
// upstream_email_provider_unavailable.
type SMTPDispatcher struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

// NewSMTPDispatcher creates a new SMTPDispatcher.
func NewSMTPDispatcher(cfg config.SMTPConfig, logger *slog.Logger) *SMTPDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPDispatcher{cfg: cfg, logger: logger}
}

// Send transmits a plain-text message to a single recipient over the
// configured encrypted channel.
func (d *SMTPDispatcher) Send(ctx context.Context, to, subject, body string) error {
	m := mail.NewMsg()
	if err := m.From(d.cfg.FromAddress()); err != nil {
		return types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"invalid sender address",
			err,
		)
	}
	if err := m.To(to); err != nil {
		return types.NewAppError(
			types.ErrCodeValidationInvalidEmail,
			"invalid recipient address",
			err,
		)
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	c, err := mail.NewClient(d.cfg.Host,
		mail.WithPort(d.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(d.cfg.Username),
		mail.WithPassword(d.cfg.Password.Unmask()),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(d.cfg.Encryption)),
	)
	if err != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamEmailProvider,
			"failed to create mail client",
			err,
		)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		d.logger.Error("email dispatch failed",
			"host", d.cfg.Host,
			"error", err,
		)
		return types.NewAppError(
			types.ErrCodeUpstreamEmailProvider,
			"email dispatch failed",
			err,
		)
	}

	return nil
}

// tlsPolicyFromEncryption converts the configured encryption mode to a
// go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}

// Compile-time assertion that SMTPDispatcher satisfies NotificationDispatcher.
var _ types.NotificationDispatcher = (*SMTPDispatcher)(nil)
