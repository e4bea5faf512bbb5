package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	Addr       string `json:"addr" yaml:"addr" toml:"addr"`
	Model      string `json:"model" yaml:"model" toml:"model"`
	OllamaHost string `json:"ollama_host" yaml:"ollama_host" toml:"ollama_host"`

	// Probe selects how presence is checked and models are pulled: "api" or "cli".
	Probe string `json:"probe" yaml:"probe" toml:"probe"`

	OllamaBin   string  `json:"ollama_bin" yaml:"ollama_bin" toml:"ollama_bin"`
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`

	// KeepAlive is a Go duration string, e.g. "5m".
	KeepAlive string `json:"keep_alive" yaml:"keep_alive" toml:"keep_alive"`

	LogFile      string `json:"log_file" yaml:"log_file" toml:"log_file"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
	LogConsole   bool   `json:"log_console" yaml:"log_console" toml:"log_console"`
	LogMaxSizeMB int    `json:"log_max_size_mb" yaml:"log_max_size_mb" toml:"log_max_size_mb"`

	MaxBodyBytes           int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORSEnabled            bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled"`
	CORSOrigins            []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	ShutdownTimeoutSeconds int      `json:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" toml:"shutdown_timeout_seconds"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
