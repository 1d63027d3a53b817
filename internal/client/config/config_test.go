package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	want := &Config{
		ServerURL:            "http://localhost:3001",
		RequestTimeout:       10 * time.Second,
		DatabasePath:         "session.db",
		SessionCheckInterval: 30 * time.Second,
		LogLevel:             "info",
	}
	assert.Empty(t, cmp.Diff(want, defaults()))
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTemp(t, "cfg.yaml", "server_url: http://file:1\nrequest_timeout: 5s\nlog_level: warn\n")
	t.Setenv(EnvServerURL, "http://env:2")

	t.Run("env beats file", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", path}
		cfg := LoadConfig()
		assert.Equal(t, "http://env:2", cfg.ServerURL)
		assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "session.db", cfg.DatabasePath)
	})

	t.Run("flags beat env and file", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", path, "-a", "http://flag:3", "-t", "7", "-l", "debug"}
		cfg := LoadConfig()
		assert.Equal(t, "http://flag:3", cfg.ServerURL)
		assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvServerURL, "")
	cfg := defaults()
	parseEnv(cfg)
	assert.Equal(t, "http://localhost:3001", cfg.ServerURL)

	t.Setenv(EnvServerURL, "https://api.example.com")
	parseEnv(cfg)
	assert.Equal(t, "https://api.example.com", cfg.ServerURL)
}
