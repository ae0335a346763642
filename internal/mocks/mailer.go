package mocks

import (
	"context"
	"sync"
)

// SentEmail records one dispatched message.
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockMailer implements service.Mailer for testing
type MockMailer struct {
	// SendFn allows test cases to mock the Send behavior
	SendFn func(ctx context.Context, to, subject, body string) error

	// SendError is returned by the default implementation when set
	SendError error

	mu   sync.Mutex
	sent []SentEmail
}

// NewMockMailer creates a new mock mailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

// Send implements the service.Mailer interface. Every call is recorded,
// including ones routed through SendFn.
func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentEmail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, to, subject, body)
	}

	return m.SendError
}

// Sent returns a copy of the recorded messages in dispatch order.
func (m *MockMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentEmail, len(m.sent))
	copy(out, m.sent)
	return out
}
