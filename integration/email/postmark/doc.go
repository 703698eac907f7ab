// Package postmark implements email.Transport with Postmark's transactional API.
//
// It shares the credential contract of the SMTP transport: EMAIL_PASSWORD
// carries the server token and EMAIL_USER (or EMAIL_FROM) names the sender.
//
//	type Config struct {
//		ServerToken  string `env:"EMAIL_PASSWORD"`
//		AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
//		User         string `env:"EMAIL_USER"`
//		From         string `env:"EMAIL_FROM"`
//		SenderName   string `env:"EMAIL_SENDER_NAME" envDefault:"Fixora"`
//		ReplyTo      string `env:"EMAIL_REPLY_TO"`
//		TrackOpens   string `env:"POSTMARK_TRACK_OPENS" envDefault:"true"`
//	}
//
// Send returns the MessageID reported by Postmark. A response carrying a
// non-zero ErrorCode is treated as a failure and wrapped with
// email.ErrFailedToSendEmail.
//
//	client, err := postmark.New(cfg)
//	if err != nil {
//		return err
//	}
//	id, err := client.Send(ctx, email.Message{
//		To:      "user@example.com",
//		Subject: "Welcome",
//		HTML:    "<h1>Welcome</h1>",
//		Tag:     "welcome",
//	})
//
// Verify asks Postmark for the server bound to the token, which makes it a
// cheap connectivity and credential check.
package postmark
