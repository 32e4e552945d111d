// Package daemon wires storage, catalog and web service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/catalog"
	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/db"
	"github.com/fleamarket/fleamarket/internal/imagestore"
	"github.com/fleamarket/fleamarket/internal/web"
)

// Backend holds the opened database, image store and the catalog on top.
type Backend struct {
	DB      *gorm.DB
	Images  *imagestore.Store
	Catalog *catalog.Catalog
}

// OpenBackend opens the database and image store described by cfg.
func OpenBackend(cfg *config.Config) (*Backend, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	images, err := imagestore.New(cfg.Images)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image store")
	}

	return &Backend{
		DB:      gdb,
		Images:  images,
		Catalog: catalog.New(gdb, images, catalog.WithCaseInsensitiveSearch(cfg.Catalog.CaseInsensitiveSearch)),
	}, nil
}

// Close releases the database connections.
func (b *Backend) Close() error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	backend    *Backend
	webService *web.Service
}

// Start serves until a termination signal has been handled.
func (d *Daemon) Start() error {
	defer func() {
		if err := d.backend.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	backend, err := OpenBackend(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(context.Background(), cfg, backend); err != nil {
		_ = backend.Close()
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		backend:    backend,
		webService: web.New(cfg, catalog.NewService(backend.Catalog, backend.Images)),
	}, nil
}
