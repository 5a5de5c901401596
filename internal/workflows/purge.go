package workflows

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
)

// DeleteStaleRowsActivity is the registered name of PurgeActivities.DeleteStaleRows.
const DeleteStaleRowsActivity = "DeleteStaleRows"

// PurgeResult reports what a StalePurgeWorkflow run removed.
type PurgeResult struct {
	Deleted map[string]int64 `json:"deleted"`
	Failed  []string         `json:"failed,omitempty"`
}

// ErrEmptyPurge is returned for a purge request that names no tables.
var ErrEmptyPurge = errors.New("purge request names no tables")

// StalePurgeWorkflow deletes every row tied to a location from each listed table.
// Tables are purged one after another; a table that still fails after retries is
// recorded in the result and the remaining tables are still processed.
func StalePurgeWorkflow(ctx workflow.Context, req domain.PurgeRequest) (*PurgeResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("starting stale purge", "location_id", req.LocationID, "tables", len(req.Tables))

	if len(req.Tables) == 0 {
		return nil, temporal.NewNonRetryableApplicationError(ErrEmptyPurge.Error(), "InvalidPurgeRequest", ErrEmptyPurge)
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})

	result := &PurgeResult{Deleted: make(map[string]int64, len(req.Tables))}
	for _, table := range req.Tables {
		var n int64
		err := workflow.ExecuteActivity(ctx, DeleteStaleRowsActivity, table, req.LocationID).Get(ctx, &n)
		if err != nil {
			logger.Warn("purge failed for table", "table", table, "error", err)
			result.Failed = append(result.Failed, table)
			continue
		}
		result.Deleted[table] = n
	}

	if len(result.Failed) == len(req.Tables) {
		return result, temporal.NewApplicationError("every table failed to purge", "PurgeFailed")
	}
	logger.Info("stale purge finished", "location_id", req.LocationID, "failed", len(result.Failed))
	return result, nil
}
