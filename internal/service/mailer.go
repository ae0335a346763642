package service

import "context"

// Mailer sends transactional email. Implementations must be synchronous
// and must return transport failures rather than swallowing them.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, to, subject, body string) error
}
