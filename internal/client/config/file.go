package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/couponadmin/internal/flagx"
	"github.com/dmitrijs2005/couponadmin/internal/timex"
)

// FileConfig is the on-disk shape of the configuration, shared by the JSON
// and YAML loaders. Durations accept "10s" style strings or nanoseconds.
type FileConfig struct {
	ServerURL            string         `json:"server_url" yaml:"server_url"`
	RequestTimeout       timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath         string         `json:"database_path" yaml:"database_path"`
	SessionCheckInterval timex.Duration `json:"session_check_interval" yaml:"session_check_interval"`
	LogLevel             string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Keys missing
// from the file keep their current values. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := readFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json", "":
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q", ext)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.SessionCheckInterval.Duration > 0 {
		cfg.SessionCheckInterval = fc.SessionCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
