package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	natsadapter "github.com/samirrijal/cityexplorer/internal/adapters/nats"
	"github.com/samirrijal/cityexplorer/internal/workflows"
)

var (
	purgeTables []string
	runNoWait   bool
)

var runCmd = &cobra.Command{
	Use:   "run <location_id>",
	Short: "Start a purge workflow for one location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parsePurgeArgs(args, purgeTables)
		if err != nil {
			return err
		}

		tc, err := dialTemporal()
		if err != nil {
			return err
		}
		defer tc.Close()

		ctx := cmd.Context()
		run, err := startPurge(ctx, tc, req)
		if err != nil {
			return fmt.Errorf("start workflow: %w", err)
		}
		fmt.Fprintf(os.Stderr, "started %s\n", run.GetID())
		if runNoWait {
			return nil
		}

		var res workflows.PurgeResult
		if err := run.Get(ctx, &res); err != nil {
			return fmt.Errorf("workflow %s: %w", run.GetID(), err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	},
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue <location_id>",
	Short: "Queue a purge request on NATS for the worker to pick up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parsePurgeArgs(args, purgeTables)
		if err != nil {
			return err
		}

		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer pub.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		if err := pub.PublishPurgeRequest(ctx, &req); err != nil {
			return fmt.Errorf("publish purge request: %w", err)
		}
		fmt.Fprintf(os.Stderr, "queued purge of location %d from %v\n", req.LocationID, req.Tables)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{runCmd, enqueueCmd} {
		c.Flags().StringSliceVarP(&purgeTables, "table", "t", nil, "Table to purge (repeatable)")
	}
	runCmd.Flags().BoolVar(&runNoWait, "no-wait", false, "Return once the workflow has started")
	rootCmd.AddCommand(runCmd, enqueueCmd)
}
