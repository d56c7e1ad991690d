package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./boardsync.db" {
			t.Errorf("expected database path ./boardsync.db, got %s", config.Database.Path)
		}

		if config.Database.Driver != DriverSQLite {
			t.Errorf("expected driver %s, got %s", DriverSQLite, config.Database.Driver)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.Pinterest.ClientID != "your_pinterest_app_id" {
			t.Errorf("expected pinterest client_id your_pinterest_app_id, got %s", config.Credentials.Pinterest.ClientID)
		}

		if len(config.Credentials.Pinterest.Scopes) != 4 {
			t.Errorf("expected 4 pinterest scopes, got %d", len(config.Credentials.Pinterest.Scopes))
		}

		if config.Limits.RequestsPerSecond != 5 {
			t.Errorf("expected 5 requests per second, got %v", config.Limits.RequestsPerSecond)
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
driver = "pgx"
dsn = "postgres://localhost/boardsync"

[server]
host = "0.0.0.0"
port = 8080

[credentials.pinterest]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:8080/auth/pinterest/callback"

[credentials.miro]
client_id = "miro_id"
client_secret = "miro_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Driver != "pgx" {
			t.Errorf("expected driver pgx, got %s", config.Database.Driver)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.Pinterest.ClientID != "test_client_id" {
			t.Errorf("expected pinterest client_id test_client_id, got %s", config.Credentials.Pinterest.ClientID)
		}

		if !config.Credentials.Miro.Configured() {
			t.Error("expected miro credentials to be configured")
		}

		if config.Limits.PageSize != 100 {
			t.Errorf("expected unset values to keep defaults, got page size %d", config.Limits.PageSize)
		}
	})

	t.Run("LoadConfig invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Session.IdentityID = "identity-123"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}

		if loaded.Session.IdentityID != "identity-123" {
			t.Errorf("expected identity id identity-123, got %s", loaded.Session.IdentityID)
		}
	})
}
