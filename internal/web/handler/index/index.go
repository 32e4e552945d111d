// Package index renders the HTML listing page.
package index

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/web/handler"
)

const (
	// Path is the listing page.
	Path = handler.RootPath

	// TemplateName is the name of the listing template.
	TemplateName = "index/index"

	defaultTitle = "Flea market"
)

// Service is the listing page handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog handler.Catalog
}

// Handler is the listing page handler.
var Handler = Service{}

// Init initializes the listing page handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc handler.Catalog) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = svc

	app.Get(Path, s.Get)
}

// Get renders the items matching the optional keyword query parameter.
func (s *Service) Get(c *fiber.Ctx) error {
	keyword := c.Query("keyword")

	items, err := s.catalog.SearchItems(c.UserContext(), keyword)
	if err != nil {
		return err
	}

	categories, err := s.catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	title := s.cfg.Title
	if title == "" {
		title = defaultTitle
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      title,
		"Keyword":    keyword,
		"Items":      items,
		"Categories": categories,
	}, handler.BaseLayout)
}
