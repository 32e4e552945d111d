package catalog

import (
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/apperr"
	"github.com/fleamarket/fleamarket/internal/metrics"
)

// Service is what the HTTP layer calls. It delegates to the catalog and the
// image store and turns their errors into *fiber.Error values.
type Service struct {
	catalog *Catalog
	images  ImageStore
}

// NewService creates the service.
func NewService(c *Catalog, images ImageStore) *Service {
	return &Service{
		catalog: c,
		images:  images,
	}
}

// ListItems returns all items.
func (s *Service) ListItems(ctx context.Context) ([]Item, error) {
	items, err := s.catalog.List(ctx)
	if err != nil {
		return nil, translate(err)
	}

	return items, nil
}

// GetItem returns one item.
func (s *Service) GetItem(ctx context.Context, id uint64) (*Item, error) {
	it, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}

	return it, nil
}

// SearchItems returns the items whose name contains keyword.
func (s *Service) SearchItems(ctx context.Context, keyword string) ([]Item, error) {
	items, err := s.catalog.Search(ctx, keyword)
	if err != nil {
		return nil, translate(err)
	}

	return items, nil
}

// AddItem lists a new item, image may be empty.
func (s *Service) AddItem(ctx context.Context, name, category string, image []byte) (*Item, error) {
	it, err := s.catalog.Insert(ctx, name, category, image)
	if err != nil {
		return nil, translate(err)
	}

	return it, nil
}

// ListCategories returns all categories.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		return nil, translate(err)
	}

	return categories, nil
}

// GetImage opens the image called name. A well formed name that is not
// stored yields the placeholder image instead of an error.
func (s *Service) GetImage(_ context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.images.Get(name)
	if err == nil {
		return rc, nil
	}

	if errors.Is(err, apperr.ErrNotFound) {
		metrics.ImagePlaceholders.Inc()
		log.Debug().Str("image", name).Msg("image not found, serving placeholder")

		return io.NopCloser(bytes.NewReader(s.images.Placeholder())), nil
	}

	return nil, translate(err)
}

// translate maps an apperr class onto an HTTP status. Storage and unknown
// failures are logged here and hidden behind a generic message.
func translate(err error) error {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidReference):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg("catalog operation failed")

		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}
}
