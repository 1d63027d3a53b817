package config

import (
	"os"
	"time"
)

// EnvServerURL overrides the backend base URL from the environment.
const EnvServerURL = "COUPONADMIN_API_URL"

// Config holds runtime settings for the coupon admin console.
//
// Fields:
//   - ServerURL: base URL of the REST backend.
//   - RequestTimeout: per-request timeout for backend calls.
//   - DatabasePath: SQLite file holding the persisted session.
//   - SessionCheckInterval: how often the console checks the held token for expiry.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL            string
	RequestTimeout       time.Duration
	DatabasePath         string
	SessionCheckInterval time.Duration
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3001"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "session.db"
	c.SessionCheckInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from defaults, then the config file, then
// the environment, then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
}
