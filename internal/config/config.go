package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// ErrSourceNotFound is returned when a saved source name is unknown.
var ErrSourceNotFound = errors.New("source not found")

// Source kinds.
const (
	KindCSV      = "csv"
	KindJSON     = "json"
	KindPostgres = "postgres"
)

// SavedSource is a named data source remembered between runs.
type SavedSource struct {
	Name   string `json:"name" validate:"required"`
	Kind   string `json:"kind" validate:"oneof=csv json postgres"`
	Path   string `json:"path,omitempty" validate:"required_unless=Kind postgres"`
	URI    string `json:"uri,omitempty" validate:"required_if=Kind postgres"`
	Query  string `json:"query,omitempty" validate:"required_if=Kind postgres"`
	Layout string `json:"layout,omitempty"`
}

// Config is the persisted settings file.
type Config struct {
	LogLevel string        `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Locale   string        `json:"locale,omitempty" validate:"omitempty,oneof=ar en"`
	PageSize int           `json:"page_size,omitempty" validate:"gte=0"`
	Sources  []SavedSource `json:"sources" validate:"dive"`
}

var validate = validator.New()

// Dir returns the configuration directory. CLIGRID_CONFIG_DIR overrides the
// default of ~/.config/cli-grid.
func Dir() (string, error) {
	if dir := os.Getenv("CLIGRID_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cli-grid"), nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sources.json"), nil
}

// LogPath returns where the TUI writes its log file.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cli-grid.log"), nil
}

// Load reads the config file. A missing file yields an empty config.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return &Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return &Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return &Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return &Config{}, err
	}
	return &cfg, nil
}

// Validate checks the settings and every saved source.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "sources.json")
	return os.WriteFile(path, data, 0600)
}

// ValidateSource checks a single source before it is added.
func ValidateSource(s SavedSource) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid source %q: %w", s.Name, err)
	}
	return nil
}

// Add inserts src, replacing a source with the same name.
func (c *Config) Add(src SavedSource) {
	for i, existing := range c.Sources {
		if existing.Name == src.Name {
			c.Sources[i] = src
			return
		}
	}
	c.Sources = append(c.Sources, src)
}

// Delete removes the source at index.
func (c *Config) Delete(index int) {
	if index < 0 || index >= len(c.Sources) {
		return
	}
	c.Sources = append(c.Sources[:index], c.Sources[index+1:]...)
}

// DeleteByName removes the named source.
func (c *Config) DeleteByName(name string) error {
	for i, s := range c.Sources {
		if s.Name == name {
			c.Delete(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrSourceNotFound, name)
}

// Find returns the named source.
func (c *Config) Find(name string) (SavedSource, error) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, nil
		}
	}
	return SavedSource{}, fmt.Errorf("%w: %q", ErrSourceNotFound, name)
}
