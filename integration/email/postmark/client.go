package postmark

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/mrz1836/postmark"

	"github.com/fixora/backend/core/email"
)

// API is the subset of the Postmark client used here.
type API interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
	GetCurrentServer(ctx context.Context) (postmark.Server, error)
}

type Client struct {
	api        API
	config     Config
	trackOpens bool
}

// Option customizes a Client.
type Option func(*Client)

// WithAPI replaces the HTTP client built from the tokens.
func WithAPI(api API) Option {
	return func(c *Client) {
		c.api = api
	}
}

// New creates a Postmark-backed transport.
// The server token and a valid sender are required.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: server token (EMAIL_PASSWORD) is required", email.ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(sender(cfg)); err != nil {
		return nil, fmt.Errorf("%w: sender must be a valid email address", email.ErrInvalidConfig)
	}
	if cfg.ReplyTo != "" {
		if _, err := mail.ParseAddress(cfg.ReplyTo); err != nil {
			return nil, fmt.Errorf("%w: EMAIL_REPLY_TO must be a valid email address", email.ErrInvalidConfig)
		}
	}

	trackOpens, err := strconv.ParseBool(strings.TrimSpace(cfg.TrackOpens))
	if err != nil {
		return nil, fmt.Errorf("%w: POSTMARK_TRACK_OPENS %q is not a boolean", email.ErrInvalidConfig, cfg.TrackOpens)
	}

	c := &Client{config: cfg, trackOpens: trackOpens}
	for _, opt := range opts {
		opt(c)
	}
	if c.api == nil {
		c.api = postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	}
	return c, nil
}

// Send implements email.Transport using Postmark's transactional API and
// returns the id Postmark assigned to the message.
// Opens are tracked when enabled; link tracking is limited to the HTML part.
func (c *Client) Send(ctx context.Context, msg email.Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	from := msg.From
	if from == "" {
		from = sender(c.config)
	}

	resp, err := c.api.SendEmail(ctx, postmark.Email{
		From:       from,
		ReplyTo:    c.config.ReplyTo,
		To:         msg.To,
		Subject:    msg.Subject,
		Tag:        msg.Tag,
		HTMLBody:   msg.HTML,
		TextBody:   msg.Text,
		TrackOpens: c.trackOpens,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return "", errors.Join(email.ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return "", errors.Join(
			email.ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return resp.MessageID, nil
}

// Verify checks the server token by fetching the server it belongs to.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.api.GetCurrentServer(ctx); err != nil {
		return fmt.Errorf("postmark server token check failed: %w", err)
	}
	return nil
}

func sender(cfg Config) string {
	if cfg.From != "" {
		return cfg.From
	}
	return email.FormatAddress(cfg.SenderName, cfg.User)
}
