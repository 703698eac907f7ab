// Package app composes configuration, logging, the email stack and the HTTP
// server into one process. The email transport and the mailer are built once
// in New and handed to whoever needs them; nothing is kept in globals.
package app
