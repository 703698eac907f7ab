package smtp

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/fixora/backend/core/email"
)

// ImplicitTLSPort is the submission port that speaks TLS from the first byte.
const ImplicitTLSPort = 465

// Config holds SMTP settings read from the environment.
//
// Port and the timeouts are kept as the raw environment strings and parsed by
// New, so a malformed value fails transport construction instead of the
// whole configuration load.
type Config struct {
	Host       string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port       string `env:"EMAIL_PORT" envDefault:"587"`
	User       string `env:"EMAIL_USER"`
	Password   string `env:"EMAIL_PASSWORD"`
	From       string `env:"EMAIL_FROM"`
	SenderName string `env:"EMAIL_SENDER_NAME" envDefault:"Fixora"`
	Env        string `env:"NODE_ENV" envDefault:"development"`

	ConnectTimeout  string `env:"EMAIL_CONNECT_TIMEOUT" envDefault:"10s"`
	GreetingTimeout string `env:"EMAIL_GREETING_TIMEOUT" envDefault:"10s"`
	SocketTimeout   string `env:"EMAIL_SOCKET_TIMEOUT" envDefault:"10s"`
}

// settings is Config after parsing.
type settings struct {
	port            int
	connectTimeout  time.Duration
	greetingTimeout time.Duration
	socketTimeout   time.Duration
}

// HasCredentials reports whether both user and password are set.
func (c Config) HasCredentials() bool {
	return c.User != "" && c.Password != ""
}

// PortNumber parses Port.
func (c Config) PortNumber() (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil {
		return 0, fmt.Errorf("%w: EMAIL_PORT %q is not a number", email.ErrInvalidConfig, c.Port)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%w: EMAIL_PORT must be between 1 and 65535", email.ErrInvalidConfig)
	}
	return port, nil
}

// Secure reports whether the connection uses implicit TLS (port 465).
// Every other port, including one that does not parse, starts in plain text
// and upgrades with STARTTLS when offered.
func (c Config) Secure() bool {
	port, err := c.PortNumber()
	return err == nil && port == ImplicitTLSPort
}

// VerifyCertificates reports whether server certificates are validated.
// Only NODE_ENV=production validates them; the comparison is exact.
func (c Config) VerifyCertificates() bool {
	return c.Env == "production"
}

// Sender returns EMAIL_FROM or, when unset, `"<SenderName>" <User>`.
func (c Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	return email.FormatAddress(c.SenderName, c.User)
}

// Validate checks the fields a transport cannot work without.
func (c Config) Validate() error {
	_, err := c.parse()
	return err
}

func (c Config) parse() (settings, error) {
	var s settings

	if c.Host == "" {
		return s, fmt.Errorf("%w: EMAIL_HOST is required", email.ErrInvalidConfig)
	}
	port, err := c.PortNumber()
	if err != nil {
		return s, err
	}
	s.port = port

	if !c.HasCredentials() {
		return s, fmt.Errorf("%w: EMAIL_USER and EMAIL_PASSWORD are required", email.ErrInvalidConfig)
	}
	if _, err := mail.ParseAddress(c.Sender()); err != nil {
		return s, fmt.Errorf("%w: sender %q is not a valid address: %v", email.ErrInvalidConfig, c.Sender(), err)
	}

	for _, t := range []struct {
		name  string
		raw   string
		value *time.Duration
	}{
		{"EMAIL_CONNECT_TIMEOUT", c.ConnectTimeout, &s.connectTimeout},
		{"EMAIL_GREETING_TIMEOUT", c.GreetingTimeout, &s.greetingTimeout},
		{"EMAIL_SOCKET_TIMEOUT", c.SocketTimeout, &s.socketTimeout},
	} {
		d, err := time.ParseDuration(strings.TrimSpace(t.raw))
		if err != nil {
			return s, fmt.Errorf("%w: %s %q is not a duration", email.ErrInvalidConfig, t.name, t.raw)
		}
		if d <= 0 {
			return s, fmt.Errorf("%w: %s must be positive", email.ErrInvalidConfig, t.name)
		}
		*t.value = d
	}

	return s, nil
}
