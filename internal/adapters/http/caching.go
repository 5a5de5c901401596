package http

import (
	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Handlers that set their own header win.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if len(c.Response().Header.Peek(fiber.HeaderCacheControl)) > 0 {
			return err
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return err
		}

		var ttl string
		switch c.Path() {
		case "/health", "/ready", "/metrics":
			ttl = "no-cache"
		case "/location":
			ttl = "public, max-age=86400" // stored rows never change
		case "/weather":
			ttl = "public, max-age=900"
		case "/yelp", "/movies", "/trails":
			ttl = "public, max-age=3600"
		case "/docs", "/docs/openapi.yaml":
			ttl = "public, max-age=3600"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}
		return err
	}
}
