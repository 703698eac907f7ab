package mailer

import (
	"context"
	"log/slog"
	"time"

	"github.com/fixora/backend/core/email"
	"github.com/fixora/backend/core/email/templates"
	"github.com/fixora/backend/core/logger"
)

// Subjects of the transactional emails.
const (
	SubjectVerification  = "Verify Your Email - Fixora"
	SubjectPasswordReset = "Reset Your Password - Fixora"
	SubjectOTP           = "Your OTP Code - Fixora"
)

// Renderer renders a named template. *templates.Renderer satisfies it.
type Renderer interface {
	Render(ctx context.Context, name templates.Name, vars templates.Vars) (string, error)
}

// Params describes a single email.
type Params struct {
	To      string
	Subject string
	HTML    string
	Text    string
	Tag     string
}

// Mailer sends transactional emails. A nil transport is valid: every send
// then reports "Email service not configured" without any I/O.
type Mailer struct {
	transport email.Transport
	renderer  Renderer
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
	metrics   *Metrics
}

// Option customizes a Mailer.
type Option func(*Mailer)

func WithLogger(l *slog.Logger) Option {
	return func(m *Mailer) {
		if l != nil {
			m.log = l
		}
	}
}

// WithClock overrides the time source used for the copyright year.
func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		if now != nil {
			m.now = now
		}
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Mailer) {
		m.metrics = metrics
	}
}

// New creates a Mailer around the transport built at startup.
func New(transport email.Transport, renderer Renderer, cfg Config, opts ...Option) *Mailer {
	m := &Mailer{
		transport: transport,
		renderer:  renderer,
		cfg:       cfg,
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("mailer"))
	return m
}

// Configured reports whether a transport is present.
func (m *Mailer) Configured() bool {
	return m.transport != nil
}

// Sender is EMAIL_FROM or `"Fixora" <EMAIL_USER>`.
func (m *Mailer) Sender() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return email.FormatAddress(m.cfg.SenderName, m.cfg.User)
}

// SendEmail submits one message. Failures come back in the Result and are
// never returned as errors.
func (m *Mailer) SendEmail(ctx context.Context, p Params) email.Result {
	if m.transport == nil {
		m.log.WarnContext(ctx, "email not sent, transport not configured",
			logger.Recipient(p.To), slog.String("subject", p.Subject))
		m.metrics.send(ResultNotConfigured)
		return email.NotConfigured()
	}

	start := time.Now()
	id, err := m.transport.Send(ctx, email.Message{
		To:      p.To,
		From:    m.Sender(),
		Subject: p.Subject,
		HTML:    p.HTML,
		Text:    p.Text,
		Tag:     p.Tag,
	})
	if err != nil {
		m.log.ErrorContext(ctx, "failed to send email",
			logger.Recipient(p.To),
			slog.String("subject", p.Subject),
			logger.Elapsed(start),
			logger.Error(err))
		m.metrics.send(ResultFailure)
		return email.Failed(err)
	}

	m.log.InfoContext(ctx, "email sent",
		logger.Recipient(p.To),
		slog.String("subject", p.Subject),
		logger.MessageID(id),
		logger.Elapsed(start))
	m.metrics.send(ResultSuccess)
	return email.Sent(id)
}

// RenderTemplate renders <name>.html from disk. Any failure is logged and
// yields "", which callers must read as "template unavailable".
func (m *Mailer) RenderTemplate(ctx context.Context, name templates.Name, vars templates.Vars) string {
	if m.renderer == nil {
		m.log.ErrorContext(ctx, "email template renderer not configured", logger.Template(string(name)))
		m.metrics.renderFailed(string(name))
		return ""
	}

	html, err := m.renderer.Render(ctx, name, vars)
	if err != nil {
		m.log.ErrorContext(ctx, "failed to render email template",
			logger.Template(string(name)), logger.Error(err))
		m.metrics.renderFailed(string(name))
		return ""
	}
	return html
}

// VerificationLink is FRONTEND_URL + "/verify-email?token=" + token.
func (m *Mailer) VerificationLink(token string) string {
	return m.cfg.FrontendURL + "/verify-email?token=" + token
}

// ResetLink is FRONTEND_URL + "/reset-password?token=" + token.
func (m *Mailer) ResetLink(token string) string {
	return m.cfg.FrontendURL + "/reset-password?token=" + token
}

func (m *Mailer) SendVerificationEmail(ctx context.Context, to, token, userName string) email.Result {
	return m.sendTemplate(ctx, to, SubjectVerification, templates.VerificationEmail, templates.Vars{
		"userName":         userName,
		"verificationLink": m.VerificationLink(token),
		"year":             m.now().Year(),
	})
}

func (m *Mailer) SendPasswordResetEmail(ctx context.Context, to, token, userName string) email.Result {
	return m.sendTemplate(ctx, to, SubjectPasswordReset, templates.PasswordReset, templates.Vars{
		"userName":  userName,
		"resetLink": m.ResetLink(token),
		"year":      m.now().Year(),
	})
}

func (m *Mailer) SendOTPEmail(ctx context.Context, to, otp, userName string) email.Result {
	return m.sendTemplate(ctx, to, SubjectOTP, templates.OTPLogin, templates.Vars{
		"userName": userName,
		"otp":      otp,
		"year":     m.now().Year(),
	})
}

func (m *Mailer) sendTemplate(ctx context.Context, to, subject string, name templates.Name, vars templates.Vars) email.Result {
	return m.SendEmail(ctx, Params{
		To:      to,
		Subject: subject,
		HTML:    m.RenderTemplate(ctx, name, vars),
		Tag:     string(name),
	})
}
