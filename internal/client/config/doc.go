// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables prefixed FORSA_ (read with cleanenv).
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-api string       base URL of the marketplace REST API
//	-db string        path of the sqlite file holding the session
//	-timeout string   per-request timeout, e.g. "15s"
//	-log-level string debug, info, warn or error
//
// # JSON schema
//
// Durations use timex.Duration, so either "15s" or integer nanoseconds work:
//
//	{
//	  "api_base_url": "http://localhost:8081/api",
//	  "request_timeout": "15s",
//	  "db_path": "forsa.db",
//	  "ads_page_size": 18
//	}
package config
