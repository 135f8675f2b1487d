package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/geoready/internal/config"
	"github.com/wneessen/go-mail"
)

// SMTPMailer delivers reports through an SMTP relay.
//
// Design decision: We use wneessen/go-mail rather than net/smtp because:
//  1. net/smtp is frozen and predates context support
//  2. go-mail handles STARTTLS and auth negotiation per relay policy
//  3. Message construction validates addresses up front
type SMTPMailer struct {
	// client is the configured relay connection factory.
	client *mail.Client

	// from is the sender address on outgoing messages.
	from string

	// logger for structured logging. The relay password never reaches
	// the logger; only host and recipient are recorded.
	logger *slog.Logger
}

// SMTPOption configures an SMTPMailer.
type SMTPOption func(*SMTPMailer)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SMTPOption {
	return func(m *SMTPMailer) {
		m.logger = logger
	}
}

// NewSMTPMailer creates a mailer for the relay described by cfg.
// The config must pass ValidateSMTP.
func NewSMTPMailer(cfg *config.Config, opts ...SMTPOption) (*SMTPMailer, error) {
	if err := cfg.ValidateSMTP(); err != nil {
		return nil, err
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = config.DefaultSMTPPort
	}

	clientOpts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("configure smtp client: %w", err)
	}

	m := &SMTPMailer{
		client: client,
		from:   cfg.MailFrom,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m, nil
}

// Send delivers the message to the recipient through the relay.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set sender %q: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRecipient, to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	m.logger.Debug("sending report email", "to", to, "subject", subject)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	m.logger.Info("report email sent", "to", to)

	return nil
}
