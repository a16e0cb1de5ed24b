// Package config provides file-based configuration with sensible defaults.
// Command-line flags are applied on top by the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mailsift/internal/redact"
)

// defaultRotateBytes is 50 MB per CSV file.
const defaultRotateBytes = 52428800

// Config holds the complete application configuration.
type Config struct {
	Auth    AuthConfig    `yaml:"auth"`
	Export  ExportConfig  `yaml:"export"`
	Output  OutputConfig  `yaml:"output"`
	Redact  RedactConfig  `yaml:"redact"`
	Logging LoggingConfig `yaml:"logging"`
}

// AuthConfig holds OAuth credential and token cache locations.
type AuthConfig struct {
	ConfigDir string `yaml:"config_dir"`
}

// ExportConfig holds message selection and fetch tuning.
type ExportConfig struct {
	Query            string   `yaml:"query"`
	Labels           []string `yaml:"labels"`
	IncludeSpamTrash bool     `yaml:"include_spam_trash"`
	Max              int      `yaml:"max"`
	PageSize         int64    `yaml:"page_size"`
	Workers          int      `yaml:"workers"`
	MaxChars         int      `yaml:"max_chars"`
}

// OutputConfig holds CSV destination settings.
type OutputConfig struct {
	Path        string `yaml:"path"`
	RotateBytes int64  `yaml:"rotate_bytes"`
}

// RedactConfig holds redaction toggles. Enable and Disable adjust
// individual categories on top of the registry defaults.
type RedactConfig struct {
	Enabled bool     `yaml:"enabled"`
	Enable  []string `yaml:"enable"`
	Disable []string `yaml:"disable"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load returns the defaults, overridden by the YAML file at path if
// path is non-empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Auth.ConfigDir = defaultConfigDir()
	c.Export.PageSize = 100
	c.Export.Workers = 16
	c.Export.MaxChars = 5000
	c.Output.Path = "export.csv"
	c.Output.RotateBytes = defaultRotateBytes
	c.Redact.Enabled = true
	c.Logging.Level = "info"
}

func (c *Config) validate() error {
	known := make(map[string]bool)
	for _, cat := range redact.Registry() {
		known[cat.Name] = true
	}
	for _, name := range append(append([]string{}, c.Redact.Enable...), c.Redact.Disable...) {
		if !known[name] {
			return fmt.Errorf("unknown redaction category %q", name)
		}
	}
	if c.Export.Workers < 1 {
		return fmt.Errorf("export.workers must be at least 1, got %d", c.Export.Workers)
	}
	return nil
}

// RedactionConfig resolves the Enable/Disable lists against the
// registry defaults into the sanitizer's runtime config.
func (c *Config) RedactionConfig() redact.Config {
	rc := redact.DefaultConfig()
	rc.Enabled = c.Redact.Enabled
	for _, name := range c.Redact.Enable {
		rc.Categories[name] = true
	}
	for _, name := range c.Redact.Disable {
		rc.Categories[name] = false
	}
	return rc
}

func defaultConfigDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "mailsift")
}

// StatePath returns the SQLite export-state database location.
func (c *Config) StatePath() string {
	return filepath.Join(c.Auth.ConfigDir, "state.db")
}
