package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/normalize"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
)

// TrailService serves trails near a point.
type TrailService struct {
	finder ports.TrailFinder
	cache  ports.CacheService
	ttl    int
}

// NewTrailService creates a new TrailService.
func NewTrailService(finder ports.TrailFinder, cache ports.CacheService, ttlSeconds int) *TrailService {
	return &TrailService{finder: finder, cache: cache, ttl: ttlSeconds}
}

// Near lists trails around at.
func (s *TrailService) Near(ctx context.Context, at domain.GeoPoint) ([]domain.Trail, error) {
	if err := at.Validate(); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("trails:%.4f:%.4f", at.Lat, at.Lon)
	return readThrough(ctx, s.cache, s.ttl, "trails", key, func(ctx context.Context) ([]domain.Trail, error) {
		items, err := s.finder.TrailsNear(ctx, at)
		if err != nil {
			return nil, fmt.Errorf("trails: %w", err)
		}
		return normalize.Map(items, normalize.Trail), nil
	})
}
