// Package dbtest provides a migrated sqlite database for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fleamarket/fleamarket/internal/db"
	"github.com/fleamarket/fleamarket/internal/db/dsn"
)

// New creates a file backed sqlite database below t.TempDir with foreign
// keys enabled and the catalog schema migrated. A file is used instead of
// :memory: so every pooled connection sees the same database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.sqlite3")

	gdb, err := gorm.Open(sqlite.Open(dsn.SQLite(path)), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.Migrate(gdb), "failed to migrate test database")

	t.Cleanup(func() {
		if sqlDB, errDB := gdb.DB(); errDB == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
