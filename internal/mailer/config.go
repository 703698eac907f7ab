package mailer

// Config holds the settings the send helpers need.
type Config struct {
	// FrontendURL is the base of verification and reset links, used as is.
	FrontendURL string `env:"FRONTEND_URL"`

	From       string `env:"EMAIL_FROM"`
	User       string `env:"EMAIL_USER"`
	SenderName string `env:"EMAIL_SENDER_NAME" envDefault:"Fixora"`
}
