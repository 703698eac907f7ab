// Package cli holds the fixora command tree.
//
//	fixora                      serve (default)
//	fixora serve                run the HTTP server until SIGINT/SIGTERM
//	fixora mail verify          build the transport and wait for its verification
//	fixora mail render NAME     render templates/emails/NAME.html, --var k=v
//	fixora mail send-test       send a sample email, --to addr [--kind otp]
//
// Configuration comes from the environment and an optional .env file.
package cli
