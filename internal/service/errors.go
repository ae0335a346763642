package service

import "errors"

// Common service errors.
var (
	// ErrEmailDeliveryFailed is returned when the completion email could
	// not be dispatched. The task update and its notification are already
	// committed at that point; the error still surfaces to the caller
	// because completion mail is never sent silently-best-effort.
	ErrEmailDeliveryFailed = errors.New("email delivery failed")
)
