package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ErrorHandler renders handler errors. A *fiber.Error keeps its code and
// message, anything else becomes a 500 with a generic message. Not found
// answers carry no body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	}

	c.Status(code)

	if code == fiber.StatusNotFound {
		c.Response().ResetBody()
		return nil
	}

	return c.JSON(ErrorResponse{Message: message})
}
