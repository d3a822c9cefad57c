package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	grmcp "github.com/evidenceai/grounder/internal/mcp"
	"github.com/evidenceai/grounder/internal/watch"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the engine as MCP tools over stdio",
		Long: `Starts a Model Context Protocol server on stdin/stdout exposing
retrieve_evidence, ground_response, and format_evidence tools.

When watch is enabled in the configuration, changes to the curated
sources file or the dataset directory trigger an engine reload.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			engine, cfg, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			server, err := grmcp.NewServer(engine, slog.Default())
			if err != nil {
				return err
			}

			if cfg.Watch.Enabled {
				watcher := &watch.Watcher{
					Paths:    []string{cfg.Paths.SourcesConfig, cfg.Paths.DatasetDir},
					Debounce: cfg.Watch.Debounce,
					OnChange: func() { engine.Reload(ctx) },
					Logger:   slog.Default(),
				}
				go func() {
					if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
						slog.Warn("watcher stopped", slog.String("error", err.Error()))
					}
				}()
			}

			return server.Run(ctx)
		},
	}
	return cmd
}
