package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// Port the HTTP server listens on
		Port string `env:"PORT" envDefault:"8090"`

		// Logging level (debug, info, warn, error)
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Database configuration
	Database struct {
		// Path to the SQLite database file
		Path string `env:"DB_PATH" envDefault:"database/valuations.db"`
	}

	// Optional path to a JSON file overriding the built-in pricing tables
	PricingConfigPath string `env:"PRICING_CONFIG" envDefault:""`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
