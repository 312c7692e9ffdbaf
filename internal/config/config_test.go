package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SQLiteDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_SQLITE_PATH", "/tmp/ship.db")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("STORAGE_RETRY_ATTEMPTS", "5")
	t.Setenv("CATALOG_DIRECTORY_FILE", "/etc/ship/directory.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/ship.db", cfg.Database.DSN())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5, cfg.Storage.RetryAttempts)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "/etc/ship/directory.yaml", cfg.Catalog.DirectoryFile)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_PostgresRequiresPassword(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.EqualError(t, err, "DB_PASSWORD is required")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid DB_PORT")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: "sqlite", SQLitePath: "x.db"},
			Server:   ServerConfig{MaxUploadSizeMB: 32},
			Storage:  StorageConfig{Type: "local", RetryAttempts: 1},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Database.Driver = "mysql"
	assert.EqualError(t, cfg.Validate(), "unsupported DB_DRIVER: mysql")

	cfg = base()
	cfg.Storage.Type = "gdrive"
	assert.EqualError(t, cfg.Validate(), "unsupported STORAGE_TYPE: gdrive")

	cfg = base()
	cfg.Storage.RetryAttempts = 0
	assert.Error(t, cfg.Validate())
}

func TestDSN_Postgres(t *testing.T) {
	cfg := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db",
		Port:     5432,
		Username: "ship",
		Password: "p@ss/word",
		Name:     "shipments",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://ship:p%40ss%2Fword@db:5432/shipments?sslmode=require", cfg.DSN())
}
