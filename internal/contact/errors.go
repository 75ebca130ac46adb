package contact

import "errors"

var (
	// ErrMalformedRequest indicates the body is not a JSON object.
	ErrMalformedRequest = errors.New("contact: malformed request body")
	// ErrSpamDetected indicates a honeypot field carried a value.
	ErrSpamDetected = errors.New("contact: honeypot triggered")
	// ErrInvalidTiming indicates the client timestamp is missing or outside the accepted window.
	ErrInvalidTiming = errors.New("contact: submission timing rejected")
	// ErrInvalidForm indicates the name/email/message shape check failed.
	ErrInvalidForm = errors.New("contact: invalid form data")
	// ErrRateLimited indicates the caller exceeded the configured submission rate.
	ErrRateLimited = errors.New("contact: rate limit exceeded")
)
