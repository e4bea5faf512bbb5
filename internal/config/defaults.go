package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"localllmui/internal/common/fsutil"
)

// DefaultModel is the model served when none is configured.
const DefaultModel = "hf.co/doaonduty/llama-3.1-8b-instruct-gguf"

// Probe modes.
const (
	ProbeAPI = "api"
	ProbeCLI = "cli"
)

// Defaults returns a fully populated Config.
func Defaults() Config {
	return Config{
		Addr:                   ":5000",
		Model:                  DefaultModel,
		OllamaHost:             "http://127.0.0.1:11434",
		Probe:                  ProbeAPI,
		OllamaBin:              "ollama",
		LogFile:                "app.log",
		LogLevel:               "info",
		MaxBodyBytes:           1 << 20,
		ShutdownTimeoutSeconds: 5,
	}
}

// ApplyDefaults fills zero-valued fields from Defaults.
func (c *Config) ApplyDefaults() {
	d := Defaults()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.OllamaHost == "" {
		c.OllamaHost = d.OllamaHost
	}
	if c.Probe == "" {
		c.Probe = d.Probe
	}
	if c.OllamaBin == "" {
		c.OllamaBin = d.OllamaBin
	}
	if c.LogFile == "" {
		c.LogFile = d.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		c.ShutdownTimeoutSeconds = d.ShutdownTimeoutSeconds
	}
}

// ApplyEnv overrides fields from environment variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	str("LOCALLLMUI_ADDR", &c.Addr)
	str("LOCALLLMUI_MODEL", &c.Model)
	str("OLLAMA_HOST", &c.OllamaHost)
	str("LOCALLLMUI_OLLAMA_HOST", &c.OllamaHost)
	str("LOCALLLMUI_PROBE", &c.Probe)
	str("LOCALLLMUI_OLLAMA_BIN", &c.OllamaBin)
	str("LOCALLLMUI_KEEP_ALIVE", &c.KeepAlive)
	str("LOCALLLMUI_LOG_FILE", &c.LogFile)
	str("LOCALLLMUI_LOG_LEVEL", &c.LogLevel)
	if v := getenv("LOCALLLMUI_LOG_CONSOLE"); v != "" {
		c.LogConsole = parseBool(v)
	}
	if v := getenv("LOCALLLMUI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := getenv("LOCALLLMUI_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = SplitCSV(v)
		c.CORSEnabled = len(c.CORSOrigins) > 0
	}
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}
	switch c.Probe {
	case ProbeAPI, ProbeCLI:
	default:
		return fmt.Errorf("unsupported probe %q (want %s or %s)", c.Probe, ProbeAPI, ProbeCLI)
	}
	if _, err := c.KeepAliveDuration(); err != nil {
		return err
	}
	if c.Temperature < 0 {
		return fmt.Errorf("temperature must be >= 0, got %v", c.Temperature)
	}
	return nil
}

// KeepAliveDuration parses KeepAlive; empty means zero (runtime default).
func (c Config) KeepAliveDuration() (time.Duration, error) {
	if c.KeepAlive == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.KeepAlive)
	if err != nil {
		return 0, fmt.Errorf("invalid keep_alive %q: %w", c.KeepAlive, err)
	}
	return d, nil
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	p, err := fsutil.ExpandHome(path)
	if err != nil {
		return err
	}
	if !fsutil.PathExists(p) {
		return nil
	}
	if err := godotenv.Load(p); err != nil {
		return fmt.Errorf("load %s: %w", p, err)
	}
	return nil
}

// SplitCSV splits a comma-separated list, trimming blanks and dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
