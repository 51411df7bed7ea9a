// Package notify relays report content by email. Delivery is single-shot: a
// failure is surfaced to the caller with the upstream cause and never retried
// here.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/wneessen/go-mail"

	"metdesk/internal/platform/config"
	"metdesk/internal/platform/metrics"
	"metdesk/pkg/apperrors"
)

// Relay delivers one message to one destination.
type Relay interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPRelay sends through the configured SMTP submission port. The portal's
// clients expect the plain-text report wrapped in <pre> for the HTML part.
type SMTPRelay struct {
	client  *mail.Client
	from    string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewSMTPRelay(cfg config.SMTPConfig, logger *slog.Logger, m *metrics.Metrics) (*SMTPRelay, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("build smtp client: %w", err)
	}
	return &SMTPRelay{client: client, from: cfg.From, logger: logger, metrics: m}, nil
}

func (r *SMTPRelay) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat("Weather System", r.from); err != nil {
		return apperrors.Wrap(apperrors.CodeUpstream, "invalid sender address", err)
	}
	if err := msg.To(to); err != nil {
		return apperrors.New(apperrors.CodeBadRequest, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	msg.AddAlternativeString(mail.TypeTextHTML, "<pre>"+html.EscapeString(body)+"</pre>")

	if err := r.client.DialAndSendWithContext(ctx, msg); err != nil {
		r.metrics.EmailFailed()
		r.logger.ErrorContext(ctx, "email delivery failed", "to", to, "error", err)
		return apperrors.Wrap(apperrors.CodeUpstream, "error sending report: "+err.Error(), err)
	}
	r.metrics.EmailSent()
	return nil
}
