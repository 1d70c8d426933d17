package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"thepass/internal/database"
)

const (
	EnvAuthSecret = "THEPASS_AUTH_SECRET"
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvNATSURL    = "THEPASS_NATS_URL"
)

// Config represents the application configuration
type Config struct {
	LogLevel string          `yaml:"log_level"`
	Database database.Config `yaml:"database"`

	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`

	Auth struct {
		Secret string `yaml:"secret"`
	} `yaml:"auth"`

	LLM struct {
		Enabled   bool   `yaml:"enabled"`
		Model     string `yaml:"model"`
		OpenAIKey string `yaml:"openai_key"`
	} `yaml:"llm"`

	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`

	// RecipesFile replaces the built-in catalog when set
	RecipesFile string `yaml:"recipes_file"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		LogLevel: "info",
		Database: database.DefaultConfig(),
	}
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.NATS.SubjectPrefix = "thepass"
	return cfg
}

// Load reads the YAML file at path over the defaults. A missing file is not an error.
// Secrets from the environment win over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.Auth.Secret = v
	}
	if v := os.Getenv(EnvOpenAIKey); v != "" {
		c.LLM.OpenAIKey = v
	}
	if v := os.Getenv(EnvNATSURL); v != "" {
		c.NATS.URL = v
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	if c.MetricsConfig.Enabled && c.MetricsConfig.Port <= 0 {
		return fmt.Errorf("metrics port must be positive")
	}
	return nil
}

// LLMEnabled reports whether commentary should be generated by a language model
func (c *Config) LLMEnabled() bool {
	return c.LLM.Enabled && c.LLM.OpenAIKey != ""
}
