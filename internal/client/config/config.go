// Package config handles configuration for the CLI client, including
// defaults, environment resolution of the API base URL, JSON overlay, and
// command-line flags.
package config

import (
	"os"
	"time"
)

// Name of the environment variable that pins the backend base URL.
const apiURLEnv = "TRACKIT_API_URL"

// Known deployments. When no explicit URL is configured, the environment
// name decides between the production backend and local development.
const (
	productionAPIURL  = "https://track-it-app-backend-production.up.railway.app"
	developmentAPIURL = "http://localhost:8000"
)

// Config holds runtime settings for the trackIt CLI.
//
// Fields:
//   - BaseURL: root URL of the backend REST API.
//   - DebounceDelay: how long free-text filter input must pause before the
//     criteria update fires.
type Config struct {
	BaseURL       string
	DebounceDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = resolveBaseURL()
	c.DebounceDelay = 300 * time.Millisecond
}

// resolveBaseURL picks the backend URL: the TRACKIT_API_URL environment
// variable wins; otherwise TRACKIT_ENV=production selects the known
// production deployment, and everything else falls back to local
// development.
func resolveBaseURL() string {
	if url := os.Getenv(apiURLEnv); url != "" {
		return url
	}
	if os.Getenv("TRACKIT_ENV") == "production" {
		return productionAPIURL
	}
	return developmentAPIURL
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
