package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Curation CurationConfig `toml:"curation"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CatalogConfig selects where the content catalog comes from.
//
// Source is one of "file", "remote" or "database".
type CatalogConfig struct {
	Source string       `toml:"source"`
	Path   string       `toml:"path"`
	Remote RemoteConfig `toml:"remote"`
}

// RemoteConfig contains the catalog API endpoint and its OAuth2 client credentials.
type RemoteConfig struct {
	BaseURL           string   `toml:"base_url"`
	TokenURL          string   `toml:"token_url"`
	ClientID          string   `toml:"client_id"`
	ClientSecret      string   `toml:"client_secret"`
	Scopes            []string `toml:"scopes"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	PageSize          int      `toml:"page_size"`
}

// CurationConfig tunes the mood curator.
type CurationConfig struct {
	WholeWords     bool   `toml:"whole_words"`
	UnifiedPeriods bool   `toml:"unified_periods"`
	DefaultUser    string `toml:"default_user"`

	// Keywords replaces the keyword list of the named moods; other moods keep the defaults.
	Keywords map[string][]string `toml:"keywords"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case "file", "database":
	case "remote":
		if c.Catalog.Remote.BaseURL == "" {
			return fmt.Errorf("%w: catalog.remote.base_url is required for remote catalogs", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown catalog source %q", ErrInvalidConfig, c.Catalog.Source)
	}

	if c.Catalog.Remote.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: catalog.remote.requests_per_second must not be negative", ErrInvalidConfig)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
