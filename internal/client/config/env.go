package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays cfg with FORSA_* environment variables. Unset variables
// leave the current value alone; a malformed value panics.
func parseEnv(cfg *Config) {
	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
