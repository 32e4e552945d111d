package handler

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/fleamarket/fleamarket/internal/catalog"
	"github.com/fleamarket/fleamarket/internal/config"
)

// Catalog is the catalog service the handlers call. Its errors are
// *fiber.Error values ready to be returned from a handler.
type Catalog interface {
	ListItems(ctx context.Context) ([]catalog.Item, error)
	GetItem(ctx context.Context, id uint64) (*catalog.Item, error)
	SearchItems(ctx context.Context, keyword string) ([]catalog.Item, error)
	AddItem(ctx context.Context, name, category string, image []byte) (*catalog.Item, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	GetImage(ctx context.Context, name string) (io.ReadCloser, error)
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, svc Catalog)
}
