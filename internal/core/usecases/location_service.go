package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
	"github.com/samirrijal/cityexplorer/internal/pkg/metrics"
)

// LocationService resolves search queries to coordinates, caching results in the
// location repository. It owns the lifecycle of LocationRecord rows.
type LocationService struct {
	repo     ports.LocationRepository
	geocoder ports.Geocoder
	events   ports.EventPublisher
	now      func() time.Time
}

// NewLocationService creates a new LocationService. events may be nil.
func NewLocationService(repo ports.LocationRepository, geocoder ports.Geocoder, events ports.EventPublisher) *LocationService {
	return &LocationService{repo: repo, geocoder: geocoder, events: events, now: time.Now}
}

// Lookup returns the cached record for query, geocoding and storing it on a miss.
//
// When a concurrent request stores the same query first, the insert is skipped and
// the winning row is read back so the caller still gets its id.
func (s *LocationService) Lookup(ctx context.Context, query string) (*domain.LocationRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: location query must not be empty", domain.ErrInvalidQuery)
	}

	rec, found, err := s.repo.LookupBySearchQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if found {
		metrics.CacheHits.WithLabelValues("location").Inc()
		return rec, nil
	}
	metrics.CacheMisses.WithLabelValues("location").Inc()

	geo, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	rec = &domain.LocationRecord{
		SearchQuery:    query,
		FormattedQuery: geo.FormattedAddress,
		Latitude:       geo.Latitude,
		Longitude:      geo.Longitude,
		CreatedAt:      s.now().UTC(),
	}

	id, inserted, err := s.repo.InsertIfAbsent(ctx, rec)
	if err != nil {
		return nil, err
	}
	if !inserted {
		metrics.InsertRaces.Inc()
		winner, found, err := s.repo.LookupBySearchQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("location %q missing after conflicting insert", query)
		}
		return winner, nil
	}

	rec.ID = id
	metrics.LocationsCreated.Inc()

	if s.events != nil {
		if err := s.events.PublishLocationCreated(ctx, rec); err != nil {
			slog.WarnContext(ctx, "publish location event", "location_id", rec.ID, "error", err)
		}
	}
	return rec, nil
}

// DeleteStale removes every row of table tied to locationID. It is only ever
// invoked explicitly; lookups never trigger it.
func (s *LocationService) DeleteStale(ctx context.Context, table string, locationID int64) (int64, error) {
	if locationID <= 0 {
		return 0, fmt.Errorf("%w: location id must be positive, got %d", domain.ErrInvalidQuery, locationID)
	}
	n, err := s.repo.DeleteByLocation(ctx, table, locationID)
	if err != nil {
		return 0, err
	}
	metrics.StaleRowsDeleted.WithLabelValues(table).Add(float64(n))
	return n, nil
}
