package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Message is a single outbound email.
type Message struct {
	To      string // recipient address (required)
	Subject string // subject line (required)
	HTML    string // HTML body
	Text    string // optional plain-text alternative
	From    string // optional sender; transports fall back to their configured sender
	Tag     string // optional label used for file names, provider tags and logs
}

// Validate checks the fields every transport needs.
// An empty HTML body is allowed: a failed template render still produces a
// message, the caller decides whether that is acceptable.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(m.To); err != nil {
		return fmt.Errorf("%w: invalid recipient %q: %v", ErrInvalidParams, m.To, err)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if m.From != "" {
		if _, err := mail.ParseAddress(m.From); err != nil {
			return fmt.Errorf("%w: invalid sender %q: %v", ErrInvalidParams, m.From, err)
		}
	}
	return nil
}

// Transport submits messages to a mail service.
// Send returns the Message-ID assigned to the submitted message.
type Transport interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Verifier is implemented by transports that can check connectivity and
// credentials without sending anything.
type Verifier interface {
	Verify(ctx context.Context) error
}

// FormatAddress renders `"Name" <addr>`. An empty name yields the bare address.
func FormatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return (&mail.Address{Name: name, Address: addr}).String()
}
