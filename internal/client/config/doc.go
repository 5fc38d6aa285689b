// Package config loads runtime configuration for the docsession CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional .env file in the working directory.
//  4. DOCSESSION_* environment variables.
//  5. Command-line flags.
//
// Supported flags
//
//	-e string     store REST endpoint
//	-d string     database name
//	-n string     collection name
//	-k string     api key
//	-t duration   per-request timeout
//	-i int        online status check interval (seconds)
//	-s string     local state database path
//	-l string     log level
//
// # JSON schema
//
//	{
//	  "endpoint": "https://api.mongolab.com/api/1",
//	  "database": "app",
//	  "collection": "users",
//	  "api_key": "...",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s",
//	  "state_path": "docsession.db",
//	  "log_level": "info"
//	}
//
// # Environment
//
// DOCSESSION_ENDPOINT, DOCSESSION_DATABASE, DOCSESSION_COLLECTION,
// DOCSESSION_API_KEY, DOCSESSION_REQUEST_TIMEOUT,
// DOCSESSION_ONLINE_CHECK_INTERVAL, DOCSESSION_STATE_PATH and
// DOCSESSION_LOG_LEVEL. Durations use time.ParseDuration syntax.
package config
