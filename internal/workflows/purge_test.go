package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/cityexplorer/internal/adapters/postgres"
	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/workflows"
)

// fakeDeleter keeps rows per table as a list of location ids.
type fakeDeleter struct {
	mu     sync.Mutex
	tables map[string][]int64
	failFn func(table string) error
}

func (f *fakeDeleter) DeleteStale(ctx context.Context, table string, locationID int64) (int64, error) {
	if f.failFn != nil {
		if err := f.failFn(table); err != nil {
			return 0, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.tables[table]
	if !ok {
		return 0, fmt.Errorf("%w: %q", postgres.ErrInvalidTable, table)
	}
	var kept []int64
	var n int64
	for _, id := range rows {
		if id == locationID {
			n++
			continue
		}
		kept = append(kept, id)
	}
	f.tables[table] = kept
	return n, nil
}

func newEnv(t *testing.T, d *fakeDeleter) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(workflows.StalePurgeWorkflow)
	env.RegisterActivity(&workflows.PurgeActivities{Locations: d})
	return env
}

func TestStalePurgeWorkflow_DeletesPerTable(t *testing.T) {
	d := &fakeDeleter{tables: map[string][]int64{
		"weathers": {1, 2, 1},
		"yelps":    {1, 3},
		"movies":   {4},
	}}
	env := newEnv(t, d)

	env.ExecuteWorkflow(workflows.StalePurgeWorkflow, domain.PurgeRequest{
		LocationID: 1,
		Tables:     []string{"weathers", "yelps", "movies"},
	})

	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res workflows.PurgeResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatal(err)
	}
	if res.Deleted["weathers"] != 2 || res.Deleted["yelps"] != 1 || res.Deleted["movies"] != 0 {
		t.Errorf("unexpected deleted counts %v", res.Deleted)
	}
	if len(res.Failed) != 0 {
		t.Errorf("unexpected failures %v", res.Failed)
	}
	if got := d.tables["weathers"]; len(got) != 1 || got[0] != 2 {
		t.Errorf("rows of other locations touched: %v", got)
	}
}

func TestStalePurgeWorkflow_InvalidTableNotRetried(t *testing.T) {
	d := &fakeDeleter{tables: map[string][]int64{"weathers": {5}}}
	env := newEnv(t, d)

	env.ExecuteWorkflow(workflows.StalePurgeWorkflow, domain.PurgeRequest{
		LocationID: 5,
		Tables:     []string{"weathers", "no_such_table"},
	})

	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("a partial failure must not fail the workflow: %v", err)
	}
	var res workflows.PurgeResult
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatal(err)
	}
	if res.Deleted["weathers"] != 1 {
		t.Errorf("expected 1 weathers row deleted, got %d", res.Deleted["weathers"])
	}
	if len(res.Failed) != 1 || res.Failed[0] != "no_such_table" {
		t.Errorf("expected no_such_table to fail, got %v", res.Failed)
	}
}

func TestStalePurgeWorkflow_AllFail(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	d := &fakeDeleter{
		tables: map[string][]int64{"weathers": {1}},
		failFn: func(table string) error {
			mu.Lock()
			attempts++
			mu.Unlock()
			return errors.New("connection refused")
		},
	}
	env := newEnv(t, d)

	env.ExecuteWorkflow(workflows.StalePurgeWorkflow, domain.PurgeRequest{LocationID: 1, Tables: []string{"weathers"}})

	if err := env.GetWorkflowError(); err == nil {
		t.Fatal("expected workflow error when every table fails")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts for a transient error, got %d", attempts)
	}
}

func TestStalePurgeWorkflow_NoTables(t *testing.T) {
	env := newEnv(t, &fakeDeleter{})

	env.ExecuteWorkflow(workflows.StalePurgeWorkflow, domain.PurgeRequest{LocationID: 1})

	if err := env.GetWorkflowError(); err == nil {
		t.Fatal("expected error for an empty table list")
	}
}
