package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the admin console.
type Config struct {
	APIBaseURL     string        `env:"FORSA_API_BASE_URL"`
	RequestTimeout time.Duration `env:"FORSA_REQUEST_TIMEOUT"`
	DBPath         string        `env:"FORSA_DB_PATH"`

	// UsersFetchLimit is the server-side cap sent as limit= on the users list.
	UsersFetchLimit int `env:"FORSA_USERS_FETCH_LIMIT"`
	UsersPageSize   int `env:"FORSA_USERS_PAGE_SIZE"`
	AdsPageSize     int `env:"FORSA_ADS_PAGE_SIZE"`

	ImageWidth        int `env:"FORSA_IMAGE_WIDTH"`
	ImageHeight       int `env:"FORSA_IMAGE_HEIGHT"`
	JPEGQuality       int `env:"FORSA_JPEG_QUALITY"`
	UploadConcurrency int `env:"FORSA_UPLOAD_CONCURRENCY"`

	LogLevel  string `env:"FORSA_LOG_LEVEL"`
	LogFormat string `env:"FORSA_LOG_FORMAT"`
}

// LoadDefaults populates c with the values the production console ships with.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://sahbo-app-api.onrender.com/api"
	c.RequestTimeout = 30 * time.Second
	c.DBPath = "forsa.db"

	c.UsersFetchLimit = 200
	c.UsersPageSize = 200
	c.AdsPageSize = 18

	c.ImageWidth = 200
	c.ImageHeight = 300
	c.JPEGQuality = 70
	c.UploadConcurrency = 4

	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then overlays JSON, environment
// and flags in that order. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}
