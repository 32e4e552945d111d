// Package item provides the JSON handlers to list, get, search and add items.
package item

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/web/handler"
)

const (
	// Path is the items collection.
	Path = handler.RootPath + "items"

	// ItemPath is a single item addressed by id.
	ItemPath = Path + "/:id"

	// SearchPath is the keyword search.
	SearchPath = handler.RootPath + "search"

	// ImageField is the multipart field carrying the optional image.
	ImageField = "image"
)

// AddForm is the multipart form of a new listing.
type AddForm struct {
	Name     string `form:"name" validate:"required,max=255"`
	Category string `form:"category" validate:"required,max=255"`
}

// Service is the items handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	catalog   handler.Catalog
	validator *validator.Validate
}

// Handler is the items handler.
var Handler = Service{}

// Init initializes the items handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc handler.Catalog) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.catalog = svc
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(Path, s.Add)
	app.Get(ItemPath, s.Get)
	app.Get(SearchPath, s.Search)
}

// List returns every item.
func (s *Service) List(c *fiber.Ctx) error {
	items, err := s.catalog.ListItems(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

// Get returns the item named by the id path parameter.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "item id must be a positive integer")
	}

	it, err := s.catalog.GetItem(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(it)
}

// Search returns the items whose name contains the keyword query parameter.
func (s *Service) Search(c *fiber.Ctx) error {
	items, err := s.catalog.SearchItems(c.UserContext(), c.Query("keyword"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"items": items})
}

// Add lists a new item from a multipart form.
func (s *Service) Add(c *fiber.Ctx) error {
	form := new(AddForm)
	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg("failed to parse add item form")

		return fiber.NewError(fiber.StatusBadRequest, "invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		errors.As(err, &validationErrors)

		messages := make([]string, len(validationErrors))
		for i, ve := range validationErrors {
			messages[i] = "field '" + strings.ToLower(ve.Field()) + "' failed validation tag '" + ve.Tag() + "'"
		}

		return fiber.NewError(fiber.StatusBadRequest, strings.Join(messages, "; "))
	}

	image, err := readImage(c)
	if err != nil {
		return err
	}

	it, err := s.catalog.AddItem(c.UserContext(), form.Name, form.Category, image)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(it)
}

// readImage returns the uploaded image, or nil when none was sent.
func readImage(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile(ImageField)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}

		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid image upload")
	}

	return readFile(fh)
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		log.Error().Err(err).Str("file", fh.Filename).Msg("failed to open uploaded image")

		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid image upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Error().Err(err).Str("file", fh.Filename).Msg("failed to read uploaded image")

		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid image upload")
	}

	return data, nil
}
