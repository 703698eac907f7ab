package transport_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixora/backend/core/email"
	"github.com/fixora/backend/core/logger"
	"github.com/fixora/backend/integration/email/smtp"
	"github.com/fixora/backend/internal/transport"
)

func smtpConfig(port int) smtp.Config {
	return smtp.Config{
		Host:            "127.0.0.1",
		Port:            strconv.Itoa(port),
		User:            "noreply@fixora.test",
		Password:        "secret",
		SenderName:      "Fixora",
		Env:             "development",
		ConnectTimeout:  "1s",
		GreetingTimeout: "1s",
		SocketTimeout:   "1s",
	}
}

func closedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func newLogger(buf *bytes.Buffer) transport.Option {
	return transport.WithLogger(logger.New(logger.WithOutput(buf), logger.WithJSONFormatter()))
}

type fakeTransport struct {
	verifyErr error
}

func (f *fakeTransport) Send(context.Context, email.Message) (string, error) { return "id", nil }
func (f *fakeTransport) Verify(context.Context) error                        { return f.verifyErr }

type sendOnly struct{}

// smtpNoVerify hides Verify so Build does not dial.
type smtpNoVerify struct{ client *smtp.Client }

func (s smtpNoVerify) Send(ctx context.Context, msg email.Message) (string, error) {
	return s.client.Send(ctx, msg)
}

func (sendOnly) Send(context.Context, email.Message) (string, error) { return "id", nil }

func TestBuild_MissingCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user string
		pass string
	}{
		{"no user", "", "secret"},
		{"no password", "noreply@fixora.test", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(587)}
			cfg.SMTP.User = tt.user
			cfg.SMTP.Password = tt.pass

			var buf bytes.Buffer
			res := transport.Build(context.Background(), cfg, newLogger(&buf))

			assert.Equal(t, transport.StateMissingCredentials, res.State)
			assert.Nil(t, res.Transport)
			assert.False(t, res.Available())
			assert.Nil(t, res.Verification)
			assert.Contains(t, buf.String(), "EMAIL_USER or EMAIL_PASSWORD not set")
		})
	}
}

func TestBuild_MissingLibrary(t *testing.T) {
	t.Parallel()

	cfg := transport.Config{Provider: "sendgrid", SMTP: smtpConfig(587)}
	res := transport.Build(context.Background(), cfg, newLogger(&bytes.Buffer{}))
	assert.Equal(t, transport.StateMissingLibrary, res.State)
	assert.Nil(t, res.Transport)

	cfg.Provider = "smtp"
	res = transport.Build(context.Background(), cfg,
		newLogger(&bytes.Buffer{}), transport.WithoutProvider(transport.ProviderSMTP))
	assert.Equal(t, transport.StateMissingLibrary, res.State)
	assert.Equal(t, "smtp", res.Provider)
}

func TestBuild_FactoryFailureIsLoggedAndAbsent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(587)}
	cfg.SMTP.Host = ""

	res := transport.Build(context.Background(), cfg, newLogger(&buf))

	assert.Equal(t, transport.StateFailed, res.State)
	assert.Nil(t, res.Transport)
	assert.Contains(t, buf.String(), "failed to create email transport")

	res = transport.Build(context.Background(), transport.Config{Provider: "custom", SMTP: smtpConfig(587)},
		newLogger(&buf),
		transport.WithFactory("custom", func(transport.Config) (email.Transport, error) {
			return nil, errors.New("bad config")
		}))
	assert.Equal(t, transport.StateFailed, res.State)
	assert.Nil(t, res.Transport)
}

func TestBuild_MalformedSMTPSettingsAreAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*smtp.Config)
	}{
		{"port", func(c *smtp.Config) { c.Port = "abc" }},
		{"connect timeout", func(c *smtp.Config) { c.ConnectTimeout = "soon" }},
		{"socket timeout", func(c *smtp.Config) { c.SocketTimeout = "-1s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(587)}
			tt.mutate(&cfg.SMTP)

			var buf bytes.Buffer
			res := transport.Build(context.Background(), cfg, newLogger(&buf))

			assert.Equal(t, transport.StateFailed, res.State)
			assert.Nil(t, res.Transport)
			assert.Nil(t, res.Verification)
			assert.Contains(t, buf.String(), "failed to create email transport")
		})
	}

	t.Run("credentials are checked first", func(t *testing.T) {
		t.Parallel()

		cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(587)}
		cfg.SMTP.Port = "abc"
		cfg.SMTP.Password = ""

		res := transport.Build(context.Background(), cfg, newLogger(&bytes.Buffer{}))
		assert.Equal(t, transport.StateMissingCredentials, res.State)
	})
}

func TestBuild_SMTPSecureFlag(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		port   int
		secure bool
	}{
		{465, true},
		{587, false},
		{25, false},
		{2525, false},
	} {
		cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(tc.port)}
		res := transport.Build(context.Background(), cfg,
			newLogger(&bytes.Buffer{}),
			transport.WithFactory("smtp", func(cfg transport.Config) (email.Transport, error) {
				c, err := smtp.New(cfg.SMTP)
				if err != nil {
					return nil, err
				}
				return smtpNoVerify{client: c}, nil
			}))

		require.Equal(t, transport.StateConfigured, res.State, "port %d", tc.port)
		assert.Nil(t, res.Verification)
		client := res.Transport.(smtpNoVerify).client
		assert.Equal(t, tc.secure, client.Config().Secure(), "port %d", tc.port)
		assert.Equal(t, tc.secure, client.ImplicitTLS(), "port %d", tc.port)
	}
}

func TestBuild_VerificationFailureDoesNotDisableTransport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := transport.Config{Provider: "smtp", SMTP: smtpConfig(closedPort(t))}

	res := transport.Build(context.Background(), cfg, newLogger(&buf))

	require.Equal(t, transport.StateConfigured, res.State)
	require.NotNil(t, res.Transport)
	require.NotNil(t, res.Verification)

	require.Error(t, res.Verification.Await())
	assert.Contains(t, buf.String(), "email transport verification failed")
	assert.Contains(t, buf.String(), "emails may not be delivered")

	assert.True(t, res.Available())
}

func TestBuild_VerificationSuccessIsLogged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	res := transport.Build(context.Background(),
		transport.Config{Provider: "fake", SMTP: smtpConfig(587)},
		newLogger(&buf),
		transport.WithFactory("fake", func(transport.Config) (email.Transport, error) {
			return &fakeTransport{}, nil
		}))

	require.Equal(t, transport.StateConfigured, res.State)
	require.NoError(t, res.Verification.Await())
	assert.Contains(t, buf.String(), "email service is ready")
}

func TestBuild_NoVerificationWithoutVerifier(t *testing.T) {
	t.Parallel()

	res := transport.Build(context.Background(),
		transport.Config{Provider: "plain", SMTP: smtpConfig(587)},
		newLogger(&bytes.Buffer{}),
		transport.WithFactory("plain", func(transport.Config) (email.Transport, error) {
			return sendOnly{}, nil
		}))

	assert.Equal(t, transport.StateConfigured, res.State)
	assert.NotNil(t, res.Transport)
	assert.Nil(t, res.Verification)
}

func TestBuild_DevProvider(t *testing.T) {
	t.Parallel()

	cfg := transport.Config{Provider: "DEV", DevDir: t.TempDir(), SMTP: smtpConfig(587)}
	res := transport.Build(context.Background(), cfg, newLogger(&bytes.Buffer{}))

	require.Equal(t, transport.StateConfigured, res.State)
	assert.Equal(t, "dev", res.Provider)
	assert.IsType(t, &email.DevSender{}, res.Transport)
	require.NotNil(t, res.Verification)
	assert.NoError(t, res.Verification.Await())
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "configured", transport.StateConfigured.String())
	assert.Equal(t, "missing_credentials", transport.StateMissingCredentials.String())
	assert.Equal(t, "missing_library", transport.StateMissingLibrary.String())
	assert.Equal(t, "failed", transport.StateFailed.String())
}
