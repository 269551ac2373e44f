// Package mail delivers the application's transactional email.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resendlabs/resend-go"
)

// Mailer sends one password-reset message.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
}

var resetTemplate = template.Must(template.New("reset").Parse(`<p>Someone asked to reset the password for your Pack Rat account.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>If that wasn't you, ignore this message. The link expires soon.</p>`))

const resetSubject = "Reset your Pack Rat password"

func renderReset(link string) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, struct{ Link string }{link}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
	log    *slog.Logger
}

// NewResendMailer returns a Mailer that sends from the given address using apiKey.
func NewResendMailer(apiKey, from string, log *slog.Logger) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from, log: log}
}

func (m *ResendMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	html, err := renderReset(link)
	if err != nil {
		return fmt.Errorf("mail.ResendMailer.SendPasswordReset: render: %w", err)
	}

	resp, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: resetSubject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("mail.ResendMailer.SendPasswordReset: %w", err)
	}
	m.log.InfoContext(ctx, "password reset mail sent", "message_id", resp.Id)
	return nil
}

// LogMailer writes messages to the log instead of sending them.
// Used when no RESEND_API_KEY is configured.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer returns a Mailer that only logs.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, link string) error {
	m.log.InfoContext(ctx, "password reset mail (not sent)", "to", to, "subject", resetSubject, "link", link)
	return nil
}
