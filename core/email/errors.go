package email

import "errors"

// Error variables define email operation failures. Implementations wrap them
// with errors.Join or %w so callers can test with errors.Is.
var (
	ErrNotConfigured     = errors.New("email service not configured")
	ErrFailedToSendEmail = errors.New("failed to send email")
	ErrInvalidConfig     = errors.New("invalid email configuration")
	ErrInvalidParams     = errors.New("invalid email parameters")
)

// NotConfiguredMessage is the error text reported when no transport exists.
const NotConfiguredMessage = "Email service not configured"
