// Package mail composes and sends transactional email.
package mail

import (
	"context"
	"errors"
)

// Common errors for mail dispatch.
var (
	// ErrNotConfigured indicates the provider credential is absent or malformed.
	// Dispatch must fail fast with this error rather than attempting transmission.
	ErrNotConfigured = errors.New("mail provider not configured")
	// ErrSendFailed indicates the provider rejected or failed the transmission.
	// Non-fatal to callers: an order that already committed stays committed.
	ErrSendFailed = errors.New("mail send failed")
)

// Message is a single outbound email.
type Message struct {
	ToEmail  string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer sends transactional email through an external provider.
type Mailer interface {
	// Configured reports whether the provider credential is usable.
	Configured() bool
	// Send transmits the message. Returns ErrNotConfigured or ErrSendFailed (wrapped).
	Send(ctx context.Context, msg *Message) error
}
