// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the ssrdocs CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - CachePath: path of the local SQLite cache used for offline review.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerEndpointAddr string
	CachePath          string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.CachePath = "avance.db"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
