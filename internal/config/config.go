package config

import (
	"github.com/caarlos0/env/v10"
)

// Config holds the runtime settings for the server, populated from the
// environment.
type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	Env    string `env:"ENV" envDefault:"development"`
	Debug  bool   `env:"DEBUG" envDefault:"false"`
	DBPath string `env:"DB_PATH" envDefault:"trades.db"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
