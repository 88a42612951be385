package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/eye-of-horus/internal/forecast"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *forecast.Service, defaultPageSize int) {
	if defaultPageSize <= 0 {
		defaultPageSize = forecast.DefaultPageSize
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "eyeofhorus",
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post("/eyeofhorus", func(c *fiber.Ctx) error {
		var req tablesRequest
		if err := req.bind(c.Body(), defaultPageSize); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		envelope, err := service.Tables(c.UserContext(), req.provider(), req.query(), req.Page, req.PageSize)
		if err != nil {
			return err
		}
		return c.JSON(envelope)
	})
}
