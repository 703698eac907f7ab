package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DevSender implements Transport for local development.
// It writes each message as an HTML file plus a JSON metadata file
// instead of delivering it.
type DevSender struct {
	dir  string
	from string
	now  func() time.Time
}

// NewDevSender creates a development transport writing into dir.
// The directory is created on first send. from is used when a message has no sender.
func NewDevSender(dir, from string) *DevSender {
	return &DevSender{dir: dir, from: from, now: time.Now}
}

type devMetadata struct {
	MessageID string `json:"message_id"`
	Timestamp string `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Send stores the message on disk and returns a generated Message-ID.
func (d *DevSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToSendEmail, err)
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSendEmail, err)
	}

	now := d.now()
	id := fmt.Sprintf("<%s@dev.fixora>", uuid.NewString())

	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405.000000"), sanitizeFilename(identifier))

	if err := os.WriteFile(filepath.Join(d.dir, base+".html"), []byte(msg.HTML), 0o644); err != nil {
		return "", fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSendEmail, err)
	}

	from := msg.From
	if from == "" {
		from = d.from
	}

	meta, err := json.MarshalIndent(devMetadata{
		MessageID: id,
		Timestamp: now.Format(time.RFC3339),
		From:      from,
		To:        msg.To,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
		Text:      msg.Text,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSendEmail, err)
	}

	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), meta, 0o644); err != nil {
		return "", fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSendEmail, err)
	}

	return id, nil
}

// Verify checks that the output directory can be created.
func (d *DevSender) Verify(context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: output directory %s: %v", ErrInvalidConfig, d.dir, err)
	}
	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename turns a subject or tag into a short, filesystem-safe name.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
