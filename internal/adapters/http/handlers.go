package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// dataParam reads a nested query parameter sent either as data[key] or data.key.
func dataParam(c *fiber.Ctx, key string) string {
	if v := c.Query("data[" + key + "]"); v != "" {
		return v
	}
	return c.Query("data." + key)
}

// dataPoint parses data[latitude] and data[longitude].
func dataPoint(c *fiber.Ctx) (domain.GeoPoint, error) {
	lat, err := parseCoord(dataParam(c, "latitude"), "latitude")
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lon, err := parseCoord(dataParam(c, "longitude"), "longitude")
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

func parseCoord(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: data[%s] is required", domain.ErrInvalidQuery, name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: data[%s] %q is not a number", domain.ErrInvalidQuery, name, raw)
	}
	return v, nil
}

// LocationHandler resolves ?data=<query> to a stored location record.
func LocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := deps.Locations.Lookup(c.UserContext(), c.Query("data"))
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(rec)
	}
}

// WeatherHandler returns the daily forecast for a point.
func WeatherHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		at, err := dataPoint(c)
		if err != nil {
			return reportError(c, err)
		}
		days, err := deps.Weather.Forecast(c.UserContext(), at)
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(days)
	}
}

// YelpHandler lists businesses around data[search_query].
func YelpHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		businesses, err := deps.Businesses.Search(c.UserContext(), dataParam(c, "search_query"))
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(businesses)
	}
}

// MoviesHandler lists movies matching data[search_query].
func MoviesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		movies, err := deps.Movies.Search(c.UserContext(), dataParam(c, "search_query"))
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(movies)
	}
}

// TrailsHandler lists hiking trails near a point.
func TrailsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		at, err := dataPoint(c)
		if err != nil {
			return reportError(c, err)
		}
		trails, err := deps.Trails.Near(c.UserContext(), at)
		if err != nil {
			return reportError(c, err)
		}
		return c.JSON(trails)
	}
}
