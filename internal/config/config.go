// Package config loads codep defaults and resolves the editor config root.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName = "codep"

	// RootEnv overrides the editor config root.
	RootEnv = "CODEP_CONFIG_ROOT"

	editorDir = "Code"
)

// Config holds defaults for every command. Flags given on the command line
// take precedence.
type Config struct {
	Root           string `yaml:"root,omitempty" toml:"root,omitempty"`
	NullTerminated bool   `yaml:"null_terminated,omitempty" toml:"null_terminated,omitempty"`
	Order          string `yaml:"order,omitempty" toml:"order,omitempty"`
	Display        bool   `yaml:"display,omitempty" toml:"display,omitempty"`
	Markup         string `yaml:"markup,omitempty" toml:"markup,omitempty"`
	MaxAgeDays     *uint  `yaml:"max_age_days,omitempty" toml:"max_age_days,omitempty"`
	Limit          int    `yaml:"limit,omitempty" toml:"limit,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty" toml:"log_level,omitempty"`
	LogFormat      string `yaml:"log_format,omitempty" toml:"log_format,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Order:     "unchanged",
		Markup:    "none",
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Dir returns the directory holding codep's own config files
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// Path returns the config file that Load reads, preferring config.yaml over
// config.toml. It returns the YAML path when neither exists.
func Path() string {
	yamlPath := filepath.Join(Dir(), "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	tomlPath := filepath.Join(Dir(), "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath
	}
	return yamlPath
}

// Load reads the config file, falling back to defaults when it is missing.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a YAML or TOML config file, chosen by extension.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if filepath.Ext(path) == ".toml" {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultRoot returns the editor's config directory for this platform.
func DefaultRoot() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, editorDir), nil
}

// ResolveRoot picks the editor config root: the explicit flag value, then
// the CODEP_CONFIG_ROOT environment variable, then the config file, then the
// platform default.
func ResolveRoot(flag string, cfg *Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(RootEnv); env != "" {
		return env, nil
	}
	if cfg != nil && cfg.Root != "" {
		return expandHome(cfg.Root)
	}
	return DefaultRoot()
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
