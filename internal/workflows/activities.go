package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/samirrijal/cityexplorer/internal/adapters/postgres"
	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// StaleRowDeleter is the LocationService operation the purge activities drive.
type StaleRowDeleter interface {
	DeleteStale(ctx context.Context, table string, locationID int64) (int64, error)
}

// PurgeActivities holds the activity implementations for the stale purge workflow.
type PurgeActivities struct {
	Locations StaleRowDeleter
}

// DeleteStaleRows removes the rows of one table that belong to a location.
// Bad input is reported as non-retryable so the workflow does not spin on it.
func (a *PurgeActivities) DeleteStaleRows(ctx context.Context, table string, locationID int64) (int64, error) {
	n, err := a.Locations.DeleteStale(ctx, table, locationID)
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidTable) || errors.Is(err, domain.ErrInvalidQuery) {
			return 0, temporal.NewNonRetryableApplicationError(err.Error(), "InvalidPurgeRequest", err)
		}
		return 0, fmt.Errorf("delete stale rows from %s: %w", table, err)
	}

	activity.GetLogger(ctx).Info("stale rows deleted", "table", table, "location_id", locationID, "rows", n)
	return n, nil
}
