package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/cityexplorer/internal/core/domain"
	"github.com/samirrijal/cityexplorer/internal/pkg/config"
	"github.com/samirrijal/cityexplorer/internal/pkg/logging"
	"github.com/samirrijal/cityexplorer/internal/workflows"
)

const serviceName = "city-explorer-pruner"

var (
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pruner",
	Short: "Delete location-scoped rows through Temporal",
	Long: `pruner runs the stale purge worker and starts purge workflows.

Examples:
  pruner worker                                   # host the worker and consume NATS purge requests
  pruner run 42 --table weathers --table yelps    # start a purge workflow and wait for it
  pruner enqueue 42 --table weathers              # queue a purge request on NATS`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := os.Getenv("LOG_LEVEL")
		if level == "" {
			level = "info"
		}
		logging.Setup(serviceName, level, logFormat)

		var err error
		cfg, err = config.Load(serviceName)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "Log format: json or text")
}

// parsePurgeArgs turns "<location_id>" plus --table flags into a purge request.
func parsePurgeArgs(args []string, tables []string) (domain.PurgeRequest, error) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return domain.PurgeRequest{}, fmt.Errorf("location id must be a positive integer, got %q", args[0])
	}
	if len(tables) == 0 {
		return domain.PurgeRequest{}, fmt.Errorf("at least one --table is required")
	}
	return domain.PurgeRequest{LocationID: id, Tables: tables}, nil
}

func dialTemporal() (client.Client, error) {
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    slogAdapter{slog.Default()},
	})
	if err != nil {
		return nil, fmt.Errorf("temporal client: %w", err)
	}
	return c, nil
}

// startPurge starts one StalePurgeWorkflow with a unique id.
func startPurge(ctx context.Context, c client.Client, req domain.PurgeRequest) (client.WorkflowRun, error) {
	opts := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("stale-purge-%d-%s", req.LocationID, uuid.NewString()),
		TaskQueue: cfg.Temporal.TaskQueue,
	}
	return c.ExecuteWorkflow(ctx, opts, workflows.StalePurgeWorkflow, req)
}
