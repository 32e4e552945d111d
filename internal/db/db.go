// Package db opens the catalog database and keeps its schema current.
package db

import (
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/db/dsn"
	"github.com/fleamarket/fleamarket/internal/db/models"
	gormadapter "github.com/fleamarket/fleamarket/internal/logger/adapter/gorm"
)

// Open connects to the configured engine and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	var dialector gorm.Dialector

	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		dialector = gormmysql.Open(dsn.Create(cfg))
	case config.EnginePostgres:
		dialector = postgres.Open(dsn.Create(cfg))
	default:
		if dir := filepath.Dir(cfg.DB.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, errors.Wrapf(err, "failed to create database directory %s", dir)
			}
		}

		dialector = sqlite.Open(dsn.Create(cfg))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormadapter.New(time.Duration(cfg.Log.SlowQueryMillis) * time.Millisecond),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DB.GormEngine)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	log.Info().Str("engine", cfg.DB.GormEngine).Msg("database ready")

	return db, nil
}

// Migrate creates or updates the categories and items tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Item{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}
