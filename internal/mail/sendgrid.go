package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// apiKeyPrefix is the fixed format prefix of a SendGrid API key.
const apiKeyPrefix = "SG."

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridMailer creates a SendGridMailer. An empty or malformed API key is
// allowed at construction; Send fails fast with ErrNotConfigured instead.
func NewSendGridMailer(apiKey, fromEmail, fromName string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Configured reports whether the API key looks like a real SendGrid credential.
func (m *SendGridMailer) Configured() bool {
	return strings.HasPrefix(m.apiKey, apiKeyPrefix)
}

// Send transmits the message through SendGrid.
func (m *SendGridMailer) Send(ctx context.Context, msg *Message) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	from := sgmail.NewEmail(m.fromName, m.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	message := sgmail.NewSingleEmail(from, msg.Subject, to, msg.TextBody, msg.HTMLBody)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: provider returned status %d", ErrSendFailed, resp.StatusCode)
	}

	return nil
}
