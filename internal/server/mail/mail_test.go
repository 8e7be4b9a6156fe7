package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	got *resend.SendEmailRequest
	err error
}

func (f *fakeSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.got = params
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "msg-1"}, nil
}

func TestRenderWelcome_EscapesName(t *testing.T) {
	body, err := RenderWelcome("<b>Ada</b>")
	require.NoError(t, err)

	assert.Contains(t, body, "Welcome, &lt;b&gt;Ada&lt;/b&gt;!")
	assert.NotContains(t, body, "<b>")
}

func TestSendWelcome(t *testing.T) {
	f := &fakeSender{}
	m := &Mailer{emails: f, from: "Dash <send@example.com>"}

	id, err := m.SendWelcome(context.Background(), "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	assert.Equal(t, "Dash <send@example.com>", f.got.From)
	assert.Equal(t, []string{"ada@example.com"}, f.got.To)
	assert.Equal(t, "Hello world", f.got.Subject)
	assert.Contains(t, f.got.Html, "Welcome, Ada!")
}

func TestSendWelcome_Errors(t *testing.T) {
	m := &Mailer{emails: &fakeSender{err: errors.New("rate limited")}, from: "x@example.com"}

	_, err := m.SendWelcome(context.Background(), "ada@example.com", "Ada")
	assert.EqualError(t, err, "rate limited")

	_, err = m.SendWelcome(context.Background(), "", "Ada")
	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestNewResendMailer(t *testing.T) {
	m := NewResendMailer("re_test", "x@example.com")
	assert.NotNil(t, m.emails)
	assert.Equal(t, "x@example.com", m.from)
}
