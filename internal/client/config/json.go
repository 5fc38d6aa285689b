package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docsession/internal/flagx"
	"github.com/dmitrijs2005/docsession/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Intervals use
// timex.Duration, so "3s" and integer nanoseconds are both accepted.
// Absent keys leave the current value alone.
type JSONConfig struct {
	Endpoint            string          `json:"endpoint"`
	Database            string          `json:"database"`
	Collection          string          `json:"collection"`
	APIKey              string          `json:"api_key"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	StatePath           string          `json:"state_path"`
	LogLevel            string          `json:"log_level"`
}

// parseJSON overlays cfg with the file named by -c or -config in args.
// Nothing happens when neither flag is given. Read and decode errors panic.
func parseJSON(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.Endpoint, jc.Endpoint)
	setString(&cfg.Database, jc.Database)
	setString(&cfg.Collection, jc.Collection)
	setString(&cfg.APIKey, jc.APIKey)
	setString(&cfg.StatePath, jc.StatePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
