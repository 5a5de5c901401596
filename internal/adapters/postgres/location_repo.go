package postgres

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// LocationRepo implements ports.LocationRepository with pgx.
type LocationRepo struct {
	db *DB
}

// NewLocationRepo creates a new LocationRepo.
func NewLocationRepo(db *DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// LookupBySearchQuery returns the row whose search_query matches exactly (case-sensitive).
func (r *LocationRepo) LookupBySearchQuery(ctx context.Context, query string) (*domain.LocationRecord, bool, error) {
	var rec domain.LocationRecord
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, search_query, formatted_query, latitude, longitude, created_at
		FROM locations
		WHERE search_query = $1
		ORDER BY id
		LIMIT 1
	`, query).Scan(
		&rec.ID, &rec.SearchQuery, &rec.FormattedQuery,
		&rec.Latitude, &rec.Longitude, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup location: %w", err)
	}
	return &rec, true, nil
}

// InsertIfAbsent inserts rec unless search_query already exists. An existing row
// is left untouched and inserted is false.
func (r *LocationRepo) InsertIfAbsent(ctx context.Context, rec *domain.LocationRecord) (int64, bool, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO locations (search_query, formatted_query, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (search_query) DO NOTHING
		RETURNING id
	`, rec.SearchQuery, rec.FormattedQuery, rec.Latitude, rec.Longitude, rec.CreatedAt).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("insert location: %w", err)
	}
	return id, true, nil
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("invalid table name")

// DeleteByLocation removes every row of table tied to locationID and reports how many went.
func (r *LocationRepo) DeleteByLocation(ctx context.Context, table string, locationID int64) (int64, error) {
	if !identifierRe.MatchString(table) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	sql := fmt.Sprintf(`DELETE FROM %s WHERE location_id = $1`, pgx.Identifier{table}.Sanitize())
	tag, err := r.db.Pool.Exec(ctx, sql, locationID)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}
