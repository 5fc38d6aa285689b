package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/docsession/internal/flagx"
)

var ownedFlags = []string{"-e", "-d", "-n", "-k", "-t", "-i", "-s", "-l"}

// parseFlags overlays cfg with command-line flags.
//
//	-e string     store REST endpoint
//	-d string     database name
//	-n string     collection name
//	-k string     api key
//	-t duration   per-request timeout
//	-i int        online check interval (seconds)
//	-s string     local state database path
//	-l string     log level
//
// Only the flags above are picked out of args, so -c/-config and anything
// else on the command line is ignored here. A bad value panics.
func parseFlags(cfg *Config, args []string) {
	fs := flag.NewFlagSet("docsession", flag.ContinueOnError)

	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "document store REST endpoint")
	fs.StringVar(&cfg.Database, "d", cfg.Database, "database name")
	fs.StringVar(&cfg.Collection, "n", cfg.Collection, "user collection name")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "api key")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, ownedFlags)); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
