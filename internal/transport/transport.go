package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fixora/backend/core/email"
	"github.com/fixora/backend/core/logger"
	"github.com/fixora/backend/integration/email/postmark"
	"github.com/fixora/backend/integration/email/smtp"
	"github.com/fixora/backend/pkg/async"
)

// Provider names accepted in EMAIL_PROVIDER.
const (
	ProviderSMTP     = "smtp"
	ProviderPostmark = "postmark"
	ProviderDev      = "dev"
)

// State is the outcome of building the transport.
type State int

const (
	StateConfigured State = iota
	StateMissingCredentials
	StateMissingLibrary
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateMissingCredentials:
		return "missing_credentials"
	case StateMissingLibrary:
		return "missing_library"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Config selects and configures the mail provider.
type Config struct {
	Provider string `env:"EMAIL_PROVIDER" envDefault:"smtp"`
	DevDir   string `env:"EMAIL_DEV_DIR" envDefault:"tmp/emails"`

	SMTP     smtp.Config
	Postmark postmark.Config
}

// HasCredentials reports whether EMAIL_USER and EMAIL_PASSWORD are both set.
// Every provider is gated on them.
func (c Config) HasCredentials() bool {
	return c.SMTP.HasCredentials()
}

// Factory builds a transport for one provider.
type Factory func(cfg Config) (email.Transport, error)

// Result is what Build hands to the rest of the process.
// Transport is nil unless State is StateConfigured.
type Result struct {
	State     State
	Provider  string
	Transport email.Transport

	// Verification is the background connectivity check. Nothing in the send path
	// waits on it; it is nil when no verification was started.
	Verification *async.ExecFuture
}

// Available reports whether a transport was built.
func (r Result) Available() bool {
	return r.Transport != nil
}

type builder struct {
	log       *slog.Logger
	factories map[string]Factory
}

// Option customizes Build.
type Option func(*builder)

// WithLogger sets the logger used for build and verification outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) {
		if l != nil {
			b.log = l
		}
	}
}

// WithFactory registers or replaces the factory for a provider name.
func WithFactory(name string, f Factory) Option {
	return func(b *builder) {
		b.factories[strings.ToLower(name)] = f
	}
}

// WithoutProvider removes a provider so selecting it reports StateMissingLibrary.
func WithoutProvider(name string) Option {
	return func(b *builder) {
		delete(b.factories, strings.ToLower(name))
	}
}

func defaultFactories() map[string]Factory {
	return map[string]Factory{
		ProviderSMTP: func(cfg Config) (email.Transport, error) {
			return smtp.New(cfg.SMTP)
		},
		ProviderPostmark: func(cfg Config) (email.Transport, error) {
			return postmark.New(cfg.Postmark)
		},
		ProviderDev: func(cfg Config) (email.Transport, error) {
			return email.NewDevSender(cfg.DevDir, cfg.SMTP.Sender()), nil
		},
	}
}

// Build constructs the process-wide transport once. It never fails the
// caller: missing credentials, an unknown provider and construction errors
// all yield a Result without a transport. When the transport can verify
// itself a verification is started in the background and its outcome is only logged.
func Build(ctx context.Context, cfg Config, opts ...Option) Result {
	b := &builder{
		log:       slog.Default(),
		factories: defaultFactories(),
	}
	for _, opt := range opts {
		opt(b)
	}

	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderSMTP
	}
	log := b.log.With(logger.Component("email.transport"), slog.String("provider", provider))

	factory, ok := b.factories[provider]
	if !ok {
		log.WarnContext(ctx, "email provider is not available, email sending is disabled")
		return Result{State: StateMissingLibrary, Provider: provider}
	}

	if !cfg.HasCredentials() {
		log.WarnContext(ctx, "EMAIL_USER or EMAIL_PASSWORD not set, email sending is disabled")
		return Result{State: StateMissingCredentials, Provider: provider}
	}

	t, err := factory(cfg)
	if err != nil || t == nil {
		if err == nil {
			err = email.ErrInvalidConfig
		}
		log.ErrorContext(ctx, "failed to create email transport", logger.Error(err))
		return Result{State: StateFailed, Provider: provider}
	}

	res := Result{State: StateConfigured, Provider: provider, Transport: t}
	if v, ok := t.(email.Verifier); ok {
		res.Verification = verifyInBackground(ctx, log, v)
	}
	return res
}

func verifyInBackground(ctx context.Context, log *slog.Logger, v email.Verifier) *async.ExecFuture {
	return async.Exec(ctx, v, func(ctx context.Context, v email.Verifier) error {
		if err := v.Verify(ctx); err != nil {
			log.ErrorContext(ctx, "email transport verification failed", logger.Error(err))
			log.WarnContext(ctx, "emails may not be delivered until the mail server is reachable")
			return err
		}
		log.InfoContext(ctx, "email service is ready")
		return nil
	})
}
