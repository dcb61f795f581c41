package database

import (
	"path/filepath"
	"testing"

	"intranet/config"
	"intranet/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidConfig(t *testing.T) {
	_, err := New(config.Config{DatabaseDbPath: ""})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path is empty")
}

func TestInitializeSQLiteDB(t *testing.T) {
	tempDir := t.TempDir()

	db := &DB{log: logger.New("test")}
	err := db.initializeDB(config.Config{
		DatabaseDbPath: filepath.Join(tempDir, "data", "test.db"),
	})
	require.NoError(t, err, "nested data directories should be created")
	require.NotNil(t, db.SQL)

	sqlDB, err := db.SQL.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
	assert.NoError(t, sqlDB.Close())
}

func TestCloseWithoutCache(t *testing.T) {
	tempDir := t.TempDir()

	db := &DB{log: logger.New("test")}
	require.NoError(t, db.initializeDB(config.Config{
		DatabaseDbPath: filepath.Join(tempDir, "test.db"),
	}))

	assert.NoError(t, db.Close(), "close must tolerate uninitialized cache clients")
}
