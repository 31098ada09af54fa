package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName      = "config.yaml"
	DefaultMaxInputBytes = 10 << 20
	DefaultWorkspaceName = "Sloptastic"
)

type Config struct {
	Format        string       `yaml:"format"`
	NoColor       bool         `yaml:"no_color"`
	Workers       int          `yaml:"workers"`
	MaxInputBytes int64        `yaml:"max_input_bytes"`
	Workspace     string       `yaml:"workspace"`
	History       bool         `yaml:"history"`
	Log           LogConfig    `yaml:"log"`
	Server        ServerConfig `yaml:"server"`
	Watch         WatchConfig  `yaml:"watch"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

func Default() Config {
	workspace := DefaultWorkspaceName
	if home, err := os.UserHomeDir(); err == nil {
		workspace = filepath.Join(home, DefaultWorkspaceName)
	}
	return Config{
		Format:        "markdown",
		Workers:       0,
		MaxInputBytes: DefaultMaxInputBytes,
		Workspace:     workspace,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8787",
			MaxBodyBytes: DefaultMaxInputBytes,
		},
		Watch: WatchConfig{
			DebounceMs: 300,
		},
	}
}

// Load layers defaults, the YAML file at path (when path is non-empty) and
// SLOPTASTIC_* environment variables, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Format {
	case "markdown", "json", "yaml", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.MaxInputBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	if c.Watch.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMs))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Marshal renders the config as YAML, used to seed a new workspace.
func (c Config) Marshal() ([]byte, error) {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return raw, nil
}

func applyEnv(c *Config) {
	c.Format = getenvString("SLOPTASTIC_FORMAT", c.Format)
	c.NoColor = getenvBool("SLOPTASTIC_NO_COLOR", c.NoColor) || os.Getenv("NO_COLOR") != ""
	c.Workers = getenvInt("SLOPTASTIC_WORKERS", c.Workers)
	c.MaxInputBytes = getenvInt64("SLOPTASTIC_MAX_INPUT_BYTES", c.MaxInputBytes)
	c.Workspace = getenvString("SLOPTASTIC_WORKSPACE", c.Workspace)
	c.History = getenvBool("SLOPTASTIC_HISTORY", c.History)
	c.Log.Level = getenvString("SLOPTASTIC_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenvString("SLOPTASTIC_LOG_FORMAT", c.Log.Format)
	c.Server.Addr = getenvString("SLOPTASTIC_ADDR", c.Server.Addr)
	c.Server.MaxBodyBytes = getenvInt64("SLOPTASTIC_MAX_BODY_BYTES", c.Server.MaxBodyBytes)
	c.Watch.DebounceMs = getenvInt("SLOPTASTIC_WATCH_DEBOUNCE_MS", c.Watch.DebounceMs)
}

func getenvString(name, fallback string) string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return raw
}

func getenvInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func getenvInt64(name string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getenvBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	return raw == "1" || raw == "true" || raw == "yes" || raw == "on"
}
