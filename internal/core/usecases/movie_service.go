package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/normalize"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
)

// MovieService serves movie searches.
type MovieService struct {
	searcher ports.MovieSearcher
	cache    ports.CacheService
	ttl      int
}

// NewMovieService creates a new MovieService.
func NewMovieService(searcher ports.MovieSearcher, cache ports.CacheService, ttlSeconds int) *MovieService {
	return &MovieService{searcher: searcher, cache: cache, ttl: ttlSeconds}
}

// Search returns movies matching query.
func (s *MovieService) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: movie query must not be empty", domain.ErrInvalidQuery)
	}

	return readThrough(ctx, s.cache, s.ttl, "movies", "movies:"+query, func(ctx context.Context) ([]domain.Movie, error) {
		items, err := s.searcher.SearchMovies(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("movie search: %w", err)
		}
		return normalize.Map(items, normalize.Movie), nil
	})
}
