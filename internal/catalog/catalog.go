// Package catalog implements the item catalog and the service the HTTP
// layer calls. Items reference a normalized category and optionally an image
// in the content-addressed image store.
package catalog

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/apperr"
	"github.com/fleamarket/fleamarket/internal/db/controller/category"
	"github.com/fleamarket/fleamarket/internal/db/controller/item"
	"github.com/fleamarket/fleamarket/internal/db/models"
	"github.com/fleamarket/fleamarket/internal/metrics"
)

// ImageStore is the part of the image store the catalog uses.
type ImageStore interface {
	Put(data []byte) (string, error)
	Get(ref string) (io.ReadCloser, error)
	Placeholder() []byte
}

// Catalog stores and queries items.
type Catalog struct {
	db              *gorm.DB
	images          ImageStore
	caseInsensitive bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCaseInsensitiveSearch makes Search ignore ASCII case.
func WithCaseInsensitiveSearch(enabled bool) Option {
	return func(c *Catalog) {
		c.caseInsensitive = enabled
	}
}

// New creates a catalog on db storing images in images.
func New(db *gorm.DB, images ImageStore, opts ...Option) *Catalog {
	c := &Catalog{
		db:     db,
		images: images,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Insert lists a new item. A non-empty image is stored first; the category
// lookup-or-create and the item row are then written in one transaction.
func (c *Catalog) Insert(ctx context.Context, name, categoryName string, image []byte) (*Item, error) {
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	if categoryName == "" {
		return nil, apperr.Validation("category is required")
	}

	var imageName string

	if len(image) > 0 {
		ref, err := c.images.Put(image)
		if err != nil {
			return nil, err
		}

		imageName = ref
	}

	var created models.Item

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cat, err := category.GetOrCreate(tx, categoryName)
		if err != nil {
			return err
		}

		created = models.Item{
			Name:       name,
			CategoryID: cat.ID,
			Category:   *cat,
			ImageName:  imageName,
		}

		return item.Create(tx, &created)
	})
	if err != nil {
		return nil, classify(err, "insert item")
	}

	metrics.ItemsCreated.Inc()
	log.Info().Uint64("id", created.ID).Str("category", categoryName).Str("image", imageName).Msg("item added")

	rec := newItem(&created)

	return &rec, nil
}

// Get returns the item with the given id.
func (c *Catalog) Get(ctx context.Context, id uint64) (*Item, error) {
	found, err := item.Get(c.db.WithContext(ctx), id)
	if err != nil {
		if errors.Is(err, item.ErrItemNotFound) {
			return nil, apperr.NotFound("item %d", id)
		}

		return nil, classify(err, "get item")
	}

	rec := newItem(found)

	return &rec, nil
}

// List returns every item in insertion order.
func (c *Catalog) List(ctx context.Context) ([]Item, error) {
	found, err := item.GetAll(c.db.WithContext(ctx))
	if err != nil {
		return nil, classify(err, "list items")
	}

	return newItems(found), nil
}

// Search returns the items whose name contains keyword, in insertion order.
// An empty keyword returns every item and no match returns an empty slice.
func (c *Catalog) Search(ctx context.Context, keyword string) ([]Item, error) {
	found, err := item.Search(c.db.WithContext(ctx), keyword, c.caseInsensitive)
	if err != nil {
		return nil, classify(err, "search items")
	}

	return newItems(found), nil
}

// Count returns the number of listed items.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	n, err := item.Count(c.db.WithContext(ctx))
	if err != nil {
		return 0, classify(err, "count items")
	}

	return n, nil
}

// Categories returns every category ordered by id.
func (c *Catalog) Categories(ctx context.Context) ([]Category, error) {
	found, err := category.GetAll(c.db.WithContext(ctx))
	if err != nil {
		return nil, classify(err, "list categories")
	}

	out := make([]Category, len(found))
	for i := range found {
		out[i] = Category{ID: found[i].ID, Name: found[i].Name}
	}

	return out, nil
}

// classify maps controller errors onto the apperr classes. Anything not
// recognised is a storage failure.
func classify(err error, msg string) error {
	switch {
	case errors.Is(err, item.ErrItemNameEmpty),
		errors.Is(err, item.ErrCategoryMissing),
		errors.Is(err, category.ErrCategoryNameEmpty):
		return apperr.Validation("%s: %v", msg, err)
	case errors.Is(err, item.ErrItemNotFound),
		errors.Is(err, category.ErrCategoryNotFound):
		return apperr.NotFound("%s: %v", msg, err)
	default:
		return apperr.Storage(err, msg)
	}
}
