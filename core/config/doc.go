// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/fixora/backend/core/config"
//
//	type MailConfig struct {
//		Host     string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
//		Port     int    `env:"EMAIL_PORT" envDefault:"587"`
//		User     string `env:"EMAIL_USER"`
//		Password string `env:"EMAIL_PASSWORD"`
//	}
//
//	func main() {
//		var mail MailConfig
//
//		// Load with error handling
//		if err := config.Load(&mail); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&mail)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 MailConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 MailConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"5000"`
//	}
//
//	type MongoConfig struct {
//		URL string `env:"MONGODB_URL"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&MongoConfig{})
//
// Tests that mutate the environment call config.Reset between cases.
package config
