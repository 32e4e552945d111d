package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/config"
	seedfile "github.com/fleamarket/fleamarket/internal/seed"
)

// seed imports the configured items file if the catalog is still empty.
func seed(ctx context.Context, cfg *config.Config, b *Backend) error {
	if cfg.Catalog.SeedFile == "" {
		return nil
	}

	count, err := b.Catalog.Count(ctx)
	if err != nil {
		return err
	}

	if count > 0 {
		log.Debug().Int64("items", count).Msg("catalog not empty, skipping seed file")
		return nil
	}

	n, err := seedfile.NewImporter(b.Catalog, b.Images).ImportFile(ctx, cfg.Catalog.SeedFile)
	if err != nil {
		return errors.Wrapf(err, "seed import stopped after %d items", n)
	}

	return nil
}
