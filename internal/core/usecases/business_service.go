package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/normalize"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
)

// BusinessService serves business listings around a place.
type BusinessService struct {
	searcher ports.BusinessSearcher
	cache    ports.CacheService
	ttl      int
}

// NewBusinessService creates a new BusinessService.
func NewBusinessService(searcher ports.BusinessSearcher, cache ports.CacheService, ttlSeconds int) *BusinessService {
	return &BusinessService{searcher: searcher, cache: cache, ttl: ttlSeconds}
}

// Search lists businesses around location.
func (s *BusinessService) Search(ctx context.Context, location string) ([]domain.Business, error) {
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: business search location must not be empty", domain.ErrInvalidQuery)
	}

	return readThrough(ctx, s.cache, s.ttl, "yelp", "yelp:"+location, func(ctx context.Context) ([]domain.Business, error) {
		items, err := s.searcher.SearchBusinesses(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("business search: %w", err)
		}
		return normalize.Map(items, normalize.Business), nil
	})
}
