// Package config handles loading and saving user configuration for yajur.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quantumvedas/yajur/internal/catalog"
	"github.com/quantumvedas/yajur/internal/llm"
	"github.com/quantumvedas/yajur/internal/typewriter"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. YAJUR_MODEL.
	EnvPrefix = "YAJUR"

	ConfigFile  = "config.yaml"
	CatalogFile = "catalog.yaml"
	LogFile     = "yajur.log"
)

// Config holds all settings for a run.
type Config struct {
	Dir string

	APIKey   string
	Provider string
	Model    string
	Endpoint string

	Timeout time.Duration
	Retries int

	TypingInterval time.Duration
	ConfirmDiagram bool

	LogLevel string
	LogFile  string

	CodeTemplate    string
	DiagramTemplate string

	Catalog catalog.Catalog
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		Provider:       "gemini",
		Timeout:        2 * time.Minute,
		Retries:        0,
		TypingInterval: typewriter.DefaultInterval,
		ConfirmDiagram: true,
		LogLevel:       "info",
		Catalog:        catalog.Default(),
	}
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("provider", d.Provider)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("retries", d.Retries)
	v.SetDefault("typing_interval", d.TypingInterval)
	v.SetDefault("confirm_diagram", d.ConfirmDiagram)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// GEMINI_API_KEY is accepted for compatibility with other Gemini tools.
	_ = v.BindEnv("api_key", EnvPrefix+"_API_KEY", "GEMINI_API_KEY")
}

// FromViper reads config.yaml from dir (when present) into v and builds a
// Config. Values from flags and environment bound on v take precedence.
func FromViper(v *viper.Viper, dir string) (*Config, error) {
	SetDefaults(v)

	if dir != "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Dir:             dir,
		APIKey:          v.GetString("api_key"),
		Provider:        v.GetString("provider"),
		Model:           v.GetString("model"),
		Endpoint:        v.GetString("endpoint"),
		Timeout:         v.GetDuration("timeout"),
		Retries:         v.GetInt("retries"),
		TypingInterval:  v.GetDuration("typing_interval"),
		ConfirmDiagram:  v.GetBool("confirm_diagram"),
		LogLevel:        v.GetString("log_level"),
		LogFile:         v.GetString("log_file"),
		CodeTemplate:    v.GetString("code_template"),
		DiagramTemplate: v.GetString("diagram_template"),
		Catalog:         catalog.Default(),
	}

	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must not be negative, got %d", cfg.Retries)
	}
	if cfg.Model == "" && !llm.IsGemini(cfg.Provider) {
		return nil, fmt.Errorf("provider %q needs a model; set model in %s or YAJUR_MODEL", cfg.Provider, ConfigFile)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}

	if dir != "" {
		path := filepath.Join(dir, CatalogFile)
		if _, err := os.Stat(path); err == nil {
			c, err := catalog.Load(path)
			if err != nil {
				return nil, err
			}
			cfg.Catalog = c
		}
	}

	return cfg, nil
}

// Retry returns the retry policy for the LLM client.
func (c *Config) Retry() llm.RetryConfig {
	rc := llm.DefaultRetryConfig()
	rc.MaxRetries = c.Retries
	return rc
}

// TemplatePath resolves a template setting relative to the config directory.
func (c *Config) TemplatePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// LogPath returns the configured log file, or the default inside the
// config directory.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if c.Dir == "" {
		return ""
	}
	return filepath.Join(c.Dir, LogFile)
}

// fileTemplate is what Save writes: every key, with the API key left out.
type fileTemplate struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	Endpoint       string `yaml:"endpoint"`
	Timeout        string `yaml:"timeout"`
	Retries        int    `yaml:"retries"`
	TypingInterval string `yaml:"typing_interval"`
	ConfirmDiagram bool   `yaml:"confirm_diagram"`
	LogLevel       string `yaml:"log_level"`
}

// Save writes cfg to a YAML config file. The API key is never written.
func Save(path string, cfg Config) error {
	data := fileTemplate{
		Provider:       cfg.Provider,
		Model:          cfg.Model,
		Endpoint:       cfg.Endpoint,
		Timeout:        cfg.Timeout.String(),
		Retries:        cfg.Retries,
		TypingInterval: cfg.TypingInterval.String(),
		ConfirmDiagram: cfg.ConfirmDiagram,
		LogLevel:       cfg.LogLevel,
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "yajur"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "yajur"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}
