package ports

import (
	"context"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// LocationRepository persists geocoding results.
type LocationRepository interface {
	// LookupBySearchQuery returns the row whose search_query equals query exactly.
	// found is false when no row matches.
	LookupBySearchQuery(ctx context.Context, query string) (rec *domain.LocationRecord, found bool, err error)
	// InsertIfAbsent stores rec unless a row with the same search_query exists.
	// inserted is false when the insert was skipped; id is then zero.
	InsertIfAbsent(ctx context.Context, rec *domain.LocationRecord) (id int64, inserted bool, err error)
	// DeleteByLocation removes every row of table whose location_id equals locationID.
	DeleteByLocation(ctx context.Context, table string, locationID int64) (int64, error)
}
