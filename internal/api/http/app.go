package httpapi

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/eye-of-horus/internal/forecast"
)

// writeMargin is added to the upstream timeout to get the server write timeout.
const writeMargin = 30 * time.Second

// NewApp returns a Fiber app with the service's error envelope and global
// middleware installed. corsOrigins is a comma separated origin list and
// upstreamTimeout the outbound client timeout.
func NewApp(corsOrigins string, upstreamTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "eyeofhorus",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          upstreamTimeout + writeMargin,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	return app
}

// ErrorHandler renders every error as {"error": true, "kind": ..., "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	kind := "internal"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		switch {
		case code == fiber.StatusBadRequest:
			kind = string(forecast.KindInvalidRequest)
		case code == fiber.StatusNotFound:
			kind = "not_found"
		default:
			kind = "http"
		}
	} else {
		switch k := forecast.KindOf(err); k {
		case forecast.KindUpstream, forecast.KindDecode:
			code = fiber.StatusBadGateway
			kind = string(k)
		case forecast.KindInvalidRequest:
			code = fiber.StatusBadRequest
			kind = string(k)
		case forecast.KindConfig:
			kind = string(k)
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"kind":    kind,
		"message": err.Error(),
	})
}
