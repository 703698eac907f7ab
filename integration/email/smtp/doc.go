// Package smtp implements email.Transport over SMTP using go-mail.
//
// Configuration comes from the environment:
//
//	EMAIL_HOST              (default smtp.gmail.com)
//	EMAIL_PORT              (default 587; 465 selects implicit TLS)
//	EMAIL_USER, EMAIL_PASSWORD
//	EMAIL_FROM              (default "Fixora" <EMAIL_USER>)
//	EMAIL_SENDER_NAME       (default Fixora)
//	NODE_ENV                (certificates are validated only in production)
//	EMAIL_CONNECT_TIMEOUT, EMAIL_GREETING_TIMEOUT, EMAIL_SOCKET_TIMEOUT (10s each)
//
// Port and timeouts are parsed by New, not by the configuration loader, so a
// malformed value surfaces as an email.ErrInvalidConfig from New.
//
// Port 465 connects with TLS immediately. Any other port connects in plain
// text and upgrades with STARTTLS when the server offers it.
//
//	client, err := smtp.New(cfg)
//	if err != nil {
//		// errors.Is(err, email.ErrInvalidConfig)
//	}
//	id, err := client.Send(ctx, email.Message{To: "user@example.com", Subject: "Hi", HTML: "<p>Hi</p>"})
//
// Verify dials, authenticates and disconnects without sending; it is meant for
// a startup connectivity check.
package smtp
