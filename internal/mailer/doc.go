// Package mailer sends Fixora's transactional emails.
//
// It sits on top of the transport built at startup and the on-disk template
// renderer:
//
//	m := mailer.New(res.Transport, templates.NewRenderer(tplCfg), cfg,
//		mailer.WithLogger(log),
//		mailer.WithMetrics(mailer.NewMetrics(prometheus.DefaultRegisterer)),
//	)
//
//	result := m.SendVerificationEmail(ctx, "jane@example.com", token, "Jane")
//	if !result.Success {
//		// result.Error explains why; nothing was returned as an error
//	}
//
// Every send helper returns exactly what SendEmail returns. A missing
// transport turns every send into {success:false, error:"Email service not
// configured", messageId:null}. A template that fails to render is logged and
// the email is still submitted with an empty body.
package mailer
