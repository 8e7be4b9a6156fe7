// Package mail sends transactional email through Resend.
package mail

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// WelcomeSubject is the subject line of the welcome email.
const WelcomeSubject = "Hello world"

//go:embed welcome.html
var welcomeHTML string

var welcomeTmpl = template.Must(template.New("welcome").Parse(welcomeHTML))

var ErrNoRecipient = errors.New("mail: no recipient")

// sender is the part of resend.EmailsSvc we use.
type sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Mailer struct {
	emails sender
	from   string
}

func NewResendMailer(apiKey, from string) *Mailer {
	return &Mailer{emails: resend.NewClient(apiKey).Emails, from: from}
}

// RenderWelcome renders the welcome body; firstName is HTML-escaped.
func RenderWelcome(firstName string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, struct{ FirstName string }{firstName}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendWelcome emails the welcome template to to and returns the provider's
// message id.
func (m *Mailer) SendWelcome(ctx context.Context, to, firstName string) (string, error) {
	if to == "" {
		return "", ErrNoRecipient
	}
	body, err := RenderWelcome(firstName)
	if err != nil {
		return "", err
	}

	sent, err := m.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: WelcomeSubject,
		Html:    body,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
