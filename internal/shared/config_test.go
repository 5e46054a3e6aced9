package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./moodx.db" {
			t.Errorf("expected database path ./moodx.db, got %s", config.Database.Path)
		}

		if config.Catalog.Source != "file" {
			t.Errorf("expected catalog source file, got %s", config.Catalog.Source)
		}

		if config.Catalog.Remote.RequestsPerSecond != 5.0 {
			t.Errorf("expected 5 requests per second, got %v", config.Catalog.Remote.RequestsPerSecond)
		}

		if config.Curation.WholeWords || config.Curation.UnifiedPeriods {
			t.Error("expected substring matching and distinct period tables by default")
		}

		if config.Curation.DefaultUser != "local" {
			t.Errorf("expected default user local, got %s", config.Curation.DefaultUser)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[catalog]
source = "remote"

[catalog.remote]
base_url = "https://catalog.example.com"
token_url = "https://auth.example.com/token"
client_id = "test_client_id"
client_secret = "test_secret"
requests_per_second = 2.5

[curation]
whole_words = true
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Catalog.Remote.ClientID != "test_client_id" {
			t.Errorf("expected client_id test_client_id, got %s", config.Catalog.Remote.ClientID)
		}

		if !config.Curation.WholeWords {
			t.Error("expected whole_words to be enabled")
		}

		if config.Catalog.Remote.PageSize != 100 {
			t.Errorf("expected page size to keep default 100, got %d", config.Catalog.Remote.PageSize)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level to keep default info, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		tc := []struct {
			name string
			body string
		}{
			{name: "unknown source", body: "[catalog]\nsource = \"ftp\"\n"},
			{name: "remote without url", body: "[catalog]\nsource = \"remote\"\n"},
			{name: "negative rate", body: "[catalog.remote]\nrequests_per_second = -1.0\n"},
			{name: "bad log level", body: "[log]\nlevel = \"loud\"\n"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.body), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
