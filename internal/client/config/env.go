package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// dotEnvPath is the optional dotenv file read before the environment.
var dotEnvPath = ".env"

// parseEnv loads dotEnvPath (if it exists) into the process environment
// without overriding variables that are already set, then overlays cfg with
// the DOCSESSION_* variables. Unset variables leave cfg untouched.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvPath, err)
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
