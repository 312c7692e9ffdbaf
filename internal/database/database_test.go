package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/unknowncanwrite/ship/internal/config"
)

type probe struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func TestNew_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		LogLevel:   "silent",
	}

	db, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = Close(db) }()

	require.NoError(t, Migrate(db, &probe{}))
	require.NoError(t, db.Create(&probe{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Model(&probe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, HealthCheck(db))
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.EqualError(t, err, "database config cannot be nil")

	_, err = New(&config.DatabaseConfig{Driver: "oracle"})
	assert.EqualError(t, err, "unsupported database driver: oracle")

	assert.Error(t, HealthCheck(nil))
	assert.NoError(t, Close(nil))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
