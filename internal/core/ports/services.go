package ports

import (
	"context"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// Geocoder resolves a free-text query to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*domain.GeocodeResult, error)
}

// WeatherProvider returns a daily forecast for a point.
type WeatherProvider interface {
	DailyForecast(ctx context.Context, at domain.GeoPoint) ([]domain.ForecastItem, error)
}

// BusinessSearcher finds businesses around a place.
type BusinessSearcher interface {
	SearchBusinesses(ctx context.Context, location string) ([]domain.BusinessItem, error)
}

// MovieSearcher finds movies by title text.
type MovieSearcher interface {
	SearchMovies(ctx context.Context, query string) ([]domain.MovieItem, error)
}

// TrailFinder lists trails near a point.
type TrailFinder interface {
	TrailsNear(ctx context.Context, at domain.GeoPoint) ([]domain.TrailItem, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishLocationCreated(ctx context.Context, rec *domain.LocationRecord) error
	PublishPurgeRequest(ctx context.Context, req *domain.PurgeRequest) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribePurgeRequests(ctx context.Context, handler func(ctx context.Context, req *domain.PurgeRequest) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
