package config

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/docsession/internal/client/client"
)

// DefaultEndpoint is the REST root of the hosted document store.
const DefaultEndpoint = "https://api.mongolab.com/api/1"

// Config holds runtime settings for the docsession CLI.
//
// Endpoint, Database and Collection together address the user collection:
// <Endpoint>/databases/<Database>/collections/<Collection>. APIKey is sent as
// the apiKey query parameter on every request.
type Config struct {
	Endpoint            string        `env:"DOCSESSION_ENDPOINT"`
	Database            string        `env:"DOCSESSION_DATABASE"`
	Collection          string        `env:"DOCSESSION_COLLECTION"`
	APIKey              string        `env:"DOCSESSION_API_KEY"`
	RequestTimeout      time.Duration `env:"DOCSESSION_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"DOCSESSION_ONLINE_CHECK_INTERVAL"`
	StatePath           string        `env:"DOCSESSION_STATE_PATH"`
	LogLevel            string        `env:"DOCSESSION_LOG_LEVEL"`
}

var (
	ErrMissingDatabase = errors.New("database name is required")
	ErrMissingAPIKey   = errors.New("api key is required")
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = DefaultEndpoint
	c.Collection = "users"
	c.RequestTimeout = client.DefaultTimeout
	c.OnlineCheckInterval = 3 * time.Second
	c.StatePath = "docsession.db"
	c.LogLevel = "info"
}

// Validate reports settings the CLI cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Database == "" {
		errs = append(errs, ErrMissingDatabase)
	}
	if c.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from, in increasing precedence: defaults, the
// JSON file named by -c/-config, a .env file, the environment, and flags.
//
// A malformed JSON file or flag panics, as it does in the other loaders.
// Environment errors are returned.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg, args)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg, args)
	return cfg, nil
}
