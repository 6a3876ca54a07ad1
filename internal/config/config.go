package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when neither the config file, environment, nor flags
// set a value.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultFetchTimeout    = 10 * time.Second
	DefaultListen          = ":8080"
)

// Config holds all Scrubdash settings, fixed at startup.
type Config struct {
	Source            string        // document locator: path/glob, http(s) URL, or gsheet://
	TotalWorkers      int           // headcount estimate the percentage is computed against
	RefreshInterval   time.Duration // time between refresh cycles
	FetchTimeout      time.Duration // bound on the retrieval step
	Listen            string        // dashboard listen address
	GoogleCredentials string        // service-account key for gsheet sources
	LogLevel          string        // debug, info, warn, error
}

// Load reads the configuration out of viper (file, env, and bound flags
// are already merged by then) and applies defaults.
func Load() Config {
	cfg := Config{
		Source:            viper.GetString("source"),
		TotalWorkers:      viper.GetInt("total_workers"),
		RefreshInterval:   viper.GetDuration("refresh_interval"),
		FetchTimeout:      viper.GetDuration("fetch_timeout"),
		Listen:            viper.GetString("listen"),
		GoogleCredentials: viper.GetString("google_credentials"),
		LogLevel:          viper.GetString("log_level"),
	}

	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	return cfg
}

// Validate enforces the startup invariants. A violation here is a
// configuration error: the process must refuse to run rather than emit
// meaningless numbers.
func (c Config) Validate() error {
	if c.Source == "" {
		return fmt.Errorf("source is required (path, glob, http(s) URL, or gsheet:// locator)")
	}
	if c.TotalWorkers <= 0 {
		return fmt.Errorf("total_workers must be a positive integer, got %d", c.TotalWorkers)
	}
	return nil
}
