package http

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/cityexplorer/internal/pkg/telemetry"
)

type ctxKey int

const loggerKey ctxKey = 0

// RequestIDLogMiddleware builds the request-scoped context: a *slog.Logger carrying
// the Fiber request ID and a server span that upstream calls nest under.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		logger := slog.Default()

		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			logger = logger.With("request_id", rid)
		}

		ctx, span := telemetry.StartSpan(ctx, c.Method()+" "+c.Path())
		defer span.End()

		c.SetUserContext(context.WithValue(ctx, loggerKey, logger))
		return c.Next()
	}
}

// LoggerFromCtx extracts the per-request slog.Logger from a context.
// Falls back to the default logger if none is set.
func LoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

