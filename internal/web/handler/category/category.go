// Package category lists the known item categories.
package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/web/handler"
)

// Path is the categories collection.
const Path = handler.RootPath + "categories"

// Service is the categories handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog handler.Catalog
}

// Handler is the categories handler.
var Handler = Service{}

// Init initializes the categories handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc handler.Catalog) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = svc

	app.Get(Path, s.List)
}

// List returns every category.
func (s *Service) List(c *fiber.Ctx) error {
	categories, err := s.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"categories": categories})
}
