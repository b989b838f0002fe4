package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/forsa-manager/internal/flagx"
	"github.com/dmitrijs2005/forsa-manager/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields let an
// absent key keep whatever an earlier source set.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	DBPath         *string         `json:"db_path"`

	UsersFetchLimit *int `json:"users_fetch_limit"`
	UsersPageSize   *int `json:"users_page_size"`
	AdsPageSize     *int `json:"ads_page_size"`

	ImageWidth        *int `json:"image_width"`
	ImageHeight       *int `json:"image_height"`
	JPEGQuality       *int `json:"jpeg_quality"`
	UploadConcurrency *int `json:"upload_concurrency"`

	LogLevel  *string `json:"log_level"`
	LogFormat *string `json:"log_format"`
}

// parseJson overlays cfg with the file named by -c/-config in args. Without
// the flag nothing happens; an unreadable or invalid file panics.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.DBPath, jc.DBPath)
	setInt(&cfg.UsersFetchLimit, jc.UsersFetchLimit)
	setInt(&cfg.UsersPageSize, jc.UsersPageSize)
	setInt(&cfg.AdsPageSize, jc.AdsPageSize)
	setInt(&cfg.ImageWidth, jc.ImageWidth)
	setInt(&cfg.ImageHeight, jc.ImageHeight)
	setInt(&cfg.JPEGQuality, jc.JPEGQuality)
	setInt(&cfg.UploadConcurrency, jc.UploadConcurrency)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
