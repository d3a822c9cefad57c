package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evidenceai/grounder/internal/telemetry"
)

func newStatsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recent query metrics from the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Telemetry.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "telemetry is disabled in config")
				return nil
			}

			store, err := telemetry.OpenStore(cfg.Telemetry.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			events, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "no recorded queries")
				return nil
			}

			for _, ev := range events {
				fmt.Fprintf(out, "%s  %-8s %-8s results=%-3d %4dms  %s\n",
					ev.At.Local().Format("2006-01-02 15:04:05"),
					ev.Domain, ev.Mode, ev.Results, ev.Latency.Milliseconds(), ev.Query)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of recent queries to show")

	return cmd
}
