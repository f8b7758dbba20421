package config

import "time"

// Config holds runtime settings for the kiview viewer CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - RevokeDelay: how long a delivered object URL stays alive before its
//     scheduled revocation.
//
// Units: RevokeDelay is a time.Duration (e.g., 60*time.Second).
type Config struct {
	ServerURL   string
	RevokeDelay time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RevokeDelay = 60 * time.Second
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
