package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/forsa-manager/internal/flagx"
)

// parseFlags populates cfg from the subset of args it recognises, so the
// -c flag and anything meant for other components pass through untouched.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-api", "-db", "-timeout", "-log-level"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "base URL of the marketplace API")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path of the session database")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
