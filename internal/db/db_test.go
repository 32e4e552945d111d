package db_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/db"
	"github.com/fleamarket/fleamarket/internal/db/models"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{
			GormEngine: config.EngineSQLite,
			Path:       filepath.Join(t.TempDir(), "nested", "catalog.sqlite3"),
		},
	}

	gdb, err := db.Open(cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, errDB := gdb.DB()
		require.NoError(t, errDB)
		_ = sqlDB.Close()
	})

	assert.True(t, gdb.Migrator().HasTable(&models.Category{}))
	assert.True(t, gdb.Migrator().HasTable(&models.Item{}))
	assert.FileExists(t, cfg.DB.Path)

	// foreign keys are enforced
	err = gdb.Omit(clause.Associations).Create(&models.Item{Name: "orphan", CategoryID: 42}).Error
	require.Error(t, err)
}

func TestOpenNilConfig(t *testing.T) {
	_, err := db.Open(nil)
	require.Error(t, err)
}
