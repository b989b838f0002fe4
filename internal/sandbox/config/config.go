// Package config holds the sandbox backend settings: defaults, then
// FORSA_SANDBOX_* environment variables, then flags.
package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/forsa-manager/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr      string        `env:"FORSA_SANDBOX_ADDR"`
	BasePath  string        `env:"FORSA_SANDBOX_BASE_PATH"`
	SecretKey string        `env:"FORSA_SANDBOX_SECRET"`
	TokenTTL  time.Duration `env:"FORSA_SANDBOX_TOKEN_TTL"`

	AdminPhone    string `env:"FORSA_SANDBOX_ADMIN_PHONE"`
	AdminPassword string `env:"FORSA_SANDBOX_ADMIN_PASSWORD"`

	SeedUsers int `env:"FORSA_SANDBOX_SEED_USERS"`
	SeedAds   int `env:"FORSA_SANDBOX_SEED_ADS"`

	LogLevel  string `env:"FORSA_SANDBOX_LOG_LEVEL"`
	LogFormat string `env:"FORSA_SANDBOX_LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret and admin password are for local use only.
func (c *Config) LoadDefaults() {
	c.Addr = ":8081"
	c.BasePath = "/api"
	c.SecretKey = "secretKey"
	c.TokenTTL = time.Hour
	c.AdminPhone = "+96170000000"
	c.AdminPassword = "admin123"
	c.SeedUsers = 205
	c.SeedAds = 40
	c.LogLevel = "info"
	c.LogFormat = "json"
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}

func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}

// parseFlags understands:
//
//	-a string     listen address
//	-s string     JWT HMAC secret
//	-t duration   token lifetime
//	-users int    number of seeded users
//	-ads int      number of seeded pending ads
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-users", "-ads"})

	fs := flag.NewFlagSet("sandbox", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "token validity")
	fs.IntVar(&cfg.SeedUsers, "users", cfg.SeedUsers, "seeded users")
	fs.IntVar(&cfg.SeedAds, "ads", cfg.SeedAds, "seeded pending ads")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
