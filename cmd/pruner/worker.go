package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/samirrijal/cityexplorer/internal/adapters/nats"
	"github.com/samirrijal/cityexplorer/internal/adapters/postgres"
	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/core/ports"
	"github.com/samirrijal/cityexplorer/internal/core/usecases"
	"github.com/samirrijal/cityexplorer/internal/workflows"
)

var workerNoNATS bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the stale purge Temporal worker",
	Long: `Host StalePurgeWorkflow and its activities on the configured task queue.
Unless --no-nats is given, purge requests published on NATS are forwarded
into new workflow runs.`,
	Args: cobra.NoArgs,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().BoolVar(&workerNoNATS, "no-nats", false, "Do not consume purge requests from NATS")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	// Purging never geocodes, so the service runs without a geocoder or publisher.
	locations := usecases.NewLocationService(postgres.NewLocationRepo(db), nil, nil)

	tc, err := dialTemporal()
	if err != nil {
		return err
	}
	defer tc.Close()

	w := worker.New(tc, cfg.Temporal.TaskQueue, worker.Options{})
	w.RegisterWorkflow(workflows.StalePurgeWorkflow)
	w.RegisterActivity(&workflows.PurgeActivities{Locations: locations})

	if !workerNoNATS {
		sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, purge requests will not be consumed", "error", err)
		} else {
			defer sub.Close()
			if err := forwardPurgeRequests(ctx, sub, tc); err != nil {
				return fmt.Errorf("subscribe purge requests: %w", err)
			}
		}
	}

	if err := w.Start(); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	defer w.Stop()

	slog.Info("pruner worker started", "task_queue", cfg.Temporal.TaskQueue)
	<-ctx.Done()
	slog.Info("shutdown signal received, stopping worker")
	return nil
}

// forwardPurgeRequests starts one workflow per purge request received from the broker.
func forwardPurgeRequests(ctx context.Context, sub ports.EventSubscriber, tc client.Client) error {
	return sub.SubscribePurgeRequests(ctx, func(ctx context.Context, req *domain.PurgeRequest) error {
		run, err := startPurge(ctx, tc, *req)
		if err != nil {
			return err
		}
		slog.Info("purge workflow started", "workflow_id", run.GetID(), "location_id", req.LocationID)
		return nil
	})
}
