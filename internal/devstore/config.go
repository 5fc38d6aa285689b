package devstore

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	RunAddr  string `env:"DEVSTORE_ADDRESS"   envDefault:"localhost:8081"`
	APIKey   string `env:"DEVSTORE_API_KEY"   envDefault:"dev-key"`
	LogLevel string `env:"DEVSTORE_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the environment first and lets flags in args override it.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("devstore", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddr, "a", cfg.RunAddr, "listen address")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "api key clients must present")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	return cfg, nil
}
