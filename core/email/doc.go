// Package email defines the transactional email surface shared by every
// transport: the Message value, the Transport and Verifier interfaces, the
// Result reported to callers, and the package errors.
//
// Transports live in integration packages (integration/email/smtp,
// integration/email/postmark); DevSender in this package writes messages to
// disk for local development.
//
//	var t email.Transport = email.NewDevSender("./tmp/emails", "dev@fixora.local")
//
//	id, err := t.Send(ctx, email.Message{
//		To:      "user@example.com",
//		Subject: "Verify Your Email - Fixora",
//		HTML:    html,
//		Tag:     "verification-email",
//	})
//
// # Errors
//
// Transports wrap ErrInvalidParams, ErrInvalidConfig and ErrFailedToSendEmail.
// Code facing application callers converts them into a Result instead of
// returning them:
//
//	if err != nil {
//		return email.Failed(err) // {success:false, messageId:null, error:"..."}
//	}
//	return email.Sent(id)
//
// A missing transport is reported as email.NotConfigured(), whose error text
// is "Email service not configured".
package email
