package postmark

// Config holds Postmark settings. The server token shares EMAIL_PASSWORD with
// the SMTP transport so one credential gate covers every provider.
// TrackOpens is parsed by New so a malformed value only fails the transport.
type Config struct {
	ServerToken  string `env:"EMAIL_PASSWORD"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	User         string `env:"EMAIL_USER"`
	From         string `env:"EMAIL_FROM"`
	SenderName   string `env:"EMAIL_SENDER_NAME" envDefault:"Fixora"`
	ReplyTo      string `env:"EMAIL_REPLY_TO"`
	TrackOpens   string `env:"POSTMARK_TRACK_OPENS" envDefault:"true"`
}
