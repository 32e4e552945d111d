// Package metrics provides a fiber middleware recording request counts and
// latencies in prometheus.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fleamarket/fleamarket/internal/metrics"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool
}

// New creates the request metrics middleware. Requests are labelled by the
// route pattern, not the raw path, so /items/1 and /items/2 share a series.
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		start := time.Now()
		chainErr := c.Next()

		route := c.Route().Path
		method := c.Method()

		metrics.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status(c, chainErr))).Inc()
		metrics.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())

		return chainErr
	}
}

// status is the code the error handler will send for chainErr.
func status(c *fiber.Ctx, chainErr error) int {
	if chainErr == nil {
		return c.Response().StatusCode()
	}

	var fe *fiber.Error
	if errors.As(chainErr, &fe) {
		return fe.Code
	}

	return fiber.StatusInternalServerError
}
