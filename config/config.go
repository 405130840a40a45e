package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"noweb/internal/adapter/dialect"
)

// Config holds all configuration for the noweb tool.
type Config struct {
	Dialect DialectConfig `yaml:"dialect"`
	Tangle  TangleConfig  `yaml:"tangle"`
	Check   CheckConfig   `yaml:"check"`
	Logging LoggingConfig `yaml:"logging"`
}

// DialectConfig selects the delimiter convention. The pattern fields are
// only used when Name is "custom".
type DialectConfig struct {
	Name      string `yaml:"name"` // "fenced", "angle", "custom"
	Announce  string `yaml:"announce,omitempty"`
	Opener    string `yaml:"opener,omitempty"`
	Closer    string `yaml:"closer,omitempty"`
	Reference string `yaml:"reference,omitempty"`
}

// TangleConfig holds extraction defaults.
type TangleConfig struct {
	Executable bool `yaml:"executable"`
}

// CheckConfig selects the documents checked by `noweb check`.
type CheckConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Environment variables that override file configuration.
const (
	EnvDialect   = "NOWEB_DIALECT"
	EnvLogLevel  = "NOWEB_LOG_LEVEL"
	EnvLogFormat = "NOWEB_LOG_FORMAT"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dialect: DialectConfig{
			Name: dialect.Fenced,
		},
		Check: CheckConfig{
			Includes: []string{"**/*.md", "**/*.markdown", "**/*.nw", "**/*.txt"},
			Excludes: []string{"**/node_modules/**", "**/vendor/**", "**/.git/**", "**/dist/**", "**/build/**"},
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for noweb.yaml),
// then applies overrides from dir/.env and the process environment.
func LoadFromDir(dir string) (*Config, error) {
	cfg, err := loadFile(dir)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(dir string) (*Config, error) {
	// Try noweb.yaml in the directory
	path := filepath.Join(dir, "noweb.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .noweb/config.yaml
	path = filepath.Join(dir, ".noweb", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// ApplyEnv overrides settings from NOWEB_* variables. Values in the
// process environment win over values in envFile; a missing envFile is
// not an error.
func (c *Config) ApplyEnv(envFile string) error {
	vars := map[string]string{}
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range []string{EnvDialect, EnvLogLevel, EnvLogFormat} {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}

	if v := strings.TrimSpace(vars[EnvDialect]); v != "" {
		c.Dialect.Name = v
	}
	if v := strings.TrimSpace(vars[EnvLogLevel]); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(vars[EnvLogFormat]); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// BuildDialect compiles the configured dialect.
func (c *Config) BuildDialect() (*dialect.Dialect, error) {
	if strings.EqualFold(c.Dialect.Name, dialect.Custom) {
		return dialect.Compile(dialect.Custom, dialect.Patterns{
			Announce:  c.Dialect.Announce,
			Opener:    c.Dialect.Opener,
			Closer:    c.Dialect.Closer,
			Reference: c.Dialect.Reference,
		})
	}
	return dialect.Lookup(c.Dialect.Name)
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
