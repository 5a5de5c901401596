package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/normalize"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
)

// WeatherService serves daily forecasts.
type WeatherService struct {
	provider ports.WeatherProvider
	cache    ports.CacheService
	ttl      int
	loc      *time.Location
}

// NewWeatherService creates a new WeatherService. loc selects the calendar used
// to label forecast days; nil means UTC.
func NewWeatherService(provider ports.WeatherProvider, cache ports.CacheService, ttlSeconds int, loc *time.Location) *WeatherService {
	return &WeatherService{provider: provider, cache: cache, ttl: ttlSeconds, loc: loc}
}

// Forecast returns one WeatherDay per upstream daily entry.
func (s *WeatherService) Forecast(ctx context.Context, at domain.GeoPoint) ([]domain.WeatherDay, error) {
	if err := at.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("weather:%.4f:%.4f", at.Lat, at.Lon)
	return readThrough(ctx, s.cache, s.ttl, "weather", key, func(ctx context.Context) ([]domain.WeatherDay, error) {
		items, err := s.provider.DailyForecast(ctx, at)
		if err != nil {
			return nil, fmt.Errorf("weather: %w", err)
		}
		return normalize.Map(items, func(it domain.ForecastItem) domain.WeatherDay {
			return normalize.Weather(it, s.loc)
		}), nil
	})
}
