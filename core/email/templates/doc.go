// Package templates renders the HTML email templates kept on disk.
//
// A template is a file named "<name>.html" inside the configured directory
// (EMAIL_TEMPLATES_DIR, default "templates/emails"), written in html/template
// syntax with the sprig function set available. Variables are referenced by
// key:
//
//	<p>Hi {{ .userName }},</p>
//	<a href="{{ .verificationLink }}">Verify email</a>
//	<p>&copy; {{ .year }} Fixora</p>
//
// Files are read and parsed on every render, there is no cache. NewRenderer
// resolves a relative directory against the working directory and, when it is
// not there, against the directory of the running executable.
//
// File exposes a template as a templ.Component so it composes with other templ
// components, and Render turns any component into a string:
//
//	html, err := templates.Render(ctx, templates.File(dir, templates.OTPLogin, templates.Vars{
//		"userName": "Jane",
//		"otp":      "482913",
//		"year":     2026,
//	}))
//
// Missing files fail with ErrTemplateNotFound, names containing path
// separators or ".." fail with ErrInvalidTemplateName, and parse or execution
// problems fail with ErrRenderFailed.
package templates
