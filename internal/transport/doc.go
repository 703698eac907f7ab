// Package transport builds the process-wide email transport.
//
// EMAIL_PROVIDER picks the implementation (smtp by default, postmark or dev).
// Build reports one of four states:
//
//	StateConfigured          transport ready, verification started
//	StateMissingCredentials  EMAIL_USER or EMAIL_PASSWORD unset
//	StateMissingLibrary      provider not registered
//	StateFailed              provider rejected the configuration
//
// Consumers only look at Result.Transport, which is nil in every state but
// the first. The result is built once in main and passed down explicitly.
package transport
