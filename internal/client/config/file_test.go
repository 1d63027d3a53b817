package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json with comments", func(t *testing.T) {
		path := writeTemp(t, "cfg.json", `{
			// backend
			"server_url": "https://api.example.com",
			"request_timeout": "3s",
			"session_check_interval": 5000000000,
		}`)
		os.Args = []string{"cmd", "-config", path}

		cfg := defaults()
		parseFile(cfg)

		assert.Equal(t, "https://api.example.com", cfg.ServerURL)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 5*time.Second, cfg.SessionCheckInterval)
		assert.Equal(t, "session.db", cfg.DatabasePath)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTemp(t, "cfg.yml", "database_path: /data/s.db\nsession_check_interval: 1m\nlog_level: error\n")
		os.Args = []string{"cmd", "-c", path}

		cfg := defaults()
		parseFile(cfg)

		assert.Equal(t, "/data/s.db", cfg.DatabasePath)
		assert.Equal(t, time.Minute, cfg.SessionCheckInterval)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, "http://localhost:3001", cfg.ServerURL)
	})

	t.Run("no file flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"cmd", "-a", "http://x"}
		cfg := defaults()
		parseFile(cfg)
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid json panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", writeTemp(t, "bad.json", `{ this is not valid json`)}
		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", writeTemp(t, "bad.yaml", "request_timeout: soon\n")}
		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("unknown extension panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", writeTemp(t, "cfg.toml", `server_url = "x"`)}
		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"cmd", "-c", filepath.Join(t.TempDir(), "absent.json")}
		require.Panics(t, func() { parseFile(defaults()) })
	})
}
