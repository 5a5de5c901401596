package http

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// errorBody is the only failure body clients ever see.
const errorBody = "Sorry, something went wrong"

// reportError logs err and, when a response is available, answers with a plain
// 500. The diagnostic never reaches the client.
func reportError(c *fiber.Ctx, err error) error {
	if c == nil {
		slog.Error("request failed", "error", err)
		return nil
	}

	LoggerFromCtx(c.UserContext()).Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusInternalServerError).SendString(errorBody)
}

// ErrorHandler is installed as fiber's ErrorHandler. Framework errors keep their
// status (404 for unknown routes, 429 from the limiter); anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).SendString(fe.Message)
	}
	return reportError(c, err)
}

