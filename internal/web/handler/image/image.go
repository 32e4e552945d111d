// Package image serves stored item images.
package image

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/web/handler"
)

const (
	// Path serves one image by file name.
	Path = handler.RootPath + "image/:name"

	// ContentType is sent with every image, stored or placeholder.
	ContentType = "image/jpeg"
)

// Service is the image handler service.
type Service struct {
	handler.Service
	cfg     *config.Config
	catalog handler.Catalog
}

// Handler is the image handler.
var Handler = Service{}

// Init initializes the image handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc handler.Catalog) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = svc

	app.Get(Path, s.Get)
}

// Get sends the image bytes, or the placeholder for an unknown image.
func (s *Service) Get(c *fiber.Ctx) error {
	rc, err := s.catalog.GetImage(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		log.Error().Err(err).Str("image", c.Params("name")).Msg("failed to read image")

		return fiber.NewError(fiber.StatusInternalServerError, "internal server error")
	}

	c.Set(fiber.HeaderContentType, ContentType)

	return c.Send(data)
}
