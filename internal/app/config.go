package app

import (
	"github.com/fixora/backend/core/config"
	"github.com/fixora/backend/core/email/templates"
	"github.com/fixora/backend/core/server"
	"github.com/fixora/backend/integration/database/mongo"
	"github.com/fixora/backend/internal/health"
	"github.com/fixora/backend/internal/mailer"
	"github.com/fixora/backend/internal/transport"
)

// Config is the whole process configuration.
type Config struct {
	Env      string `env:"NODE_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	Server    server.Config
	Transport transport.Config
	Mailer    mailer.Config
	Templates templates.Config
	Health    health.Config
	Mongo     mongo.Config
}

// LoadConfig reads Config from the environment and an optional .env file.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
