// Package config loads runtime configuration for the kiview viewer CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-r int      object URL revoke delay (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for delays, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "revoke_delay": "60s"
//	}
//
// Primary API
//
//   - type Config                     — holds ServerURL and RevokeDelay
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
