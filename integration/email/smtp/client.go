package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	mail "github.com/wneessen/go-mail"

	"github.com/fixora/backend/core/email"
)

// Client submits messages over SMTP. A new connection is opened for every
// call, so a Client is safe for concurrent use.
type Client struct {
	config      Config
	settings    settings
	implicitTLS bool
	opts        []mail.Option
}

// Option customizes New.
type Option func(*Client)

// WithImplicitTLS overrides the port-derived TLS mode. Without it only port
// 465 uses implicit TLS.
func WithImplicitTLS(on bool) Option {
	return func(c *Client) {
		c.implicitTLS = on
	}
}

// New parses and validates cfg and prepares the connection options.
// Errors wrap email.ErrInvalidConfig.
func New(cfg Config, opts ...Option) (*Client, error) {
	s, err := cfg.parse()
	if err != nil {
		return nil, err
	}

	c := &Client{config: cfg, settings: s, implicitTLS: cfg.Secure()}
	for _, opt := range opts {
		opt(c)
	}

	c.opts = []mail.Option{
		mail.WithPort(s.port),
		mail.WithTimeout(s.connectTimeout),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: !cfg.VerifyCertificates(), //nolint:gosec // only outside production
			MinVersion:         tls.VersionTLS12,
		}),
	}
	if c.implicitTLS {
		c.opts = append(c.opts, mail.WithSSL())
	} else {
		c.opts = append(c.opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	// Building one client up front surfaces option errors at construction time.
	if _, err := c.newMailClient(); err != nil {
		return nil, errors.Join(email.ErrInvalidConfig, err)
	}

	return c, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// ImplicitTLS reports whether connections start with a TLS handshake
// rather than plain-text EHLO.
func (c *Client) ImplicitTLS() bool {
	return c.implicitTLS
}

func (c *Client) newMailClient() (*mail.Client, error) {
	return mail.NewClient(c.config.Host, c.opts...)
}

// Send delivers msg and returns its Message-ID.
// The whole SMTP exchange is bounded by the socket timeout.
func (c *Client) Send(ctx context.Context, msg email.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Join(email.ErrFailedToSendEmail, err)
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}

	m, err := c.buildMessage(msg)
	if err != nil {
		return "", err
	}

	client, err := c.newMailClient()
	if err != nil {
		return "", errors.Join(email.ErrFailedToSendEmail, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.settings.socketTimeout)
	defer cancel()

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", errors.Join(email.ErrFailedToSendEmail, err)
	}

	return m.GetMessageID(), nil
}

// Verify connects, negotiates TLS, authenticates and disconnects.
// It is bounded by the greeting timeout.
func (c *Client) Verify(ctx context.Context) error {
	client, err := c.newMailClient()
	if err != nil {
		return errors.Join(email.ErrInvalidConfig, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.settings.greetingTimeout)
	defer cancel()

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to %s:%d: %w", c.config.Host, c.settings.port, err)
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close connection to %s:%d: %w", c.config.Host, c.settings.port, err)
	}
	return nil
}

func (c *Client) buildMessage(msg email.Message) (*mail.Msg, error) {
	from := msg.From
	if from == "" {
		from = c.config.Sender()
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("%w: sender: %v", email.ErrInvalidParams, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("%w: recipient: %v", email.ErrInvalidParams, err)
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()

	if msg.Text != "" {
		m.SetBodyString(mail.TypeTextPlain, msg.Text)
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	} else {
		m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	}

	return m, nil
}
