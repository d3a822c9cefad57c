// Package cmd provides the CLI commands for grounder.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/evidenceai/grounder/internal/config"
	"github.com/evidenceai/grounder/internal/logging"
	"github.com/evidenceai/grounder/internal/rag"
	"github.com/evidenceai/grounder/pkg/version"
)

var (
	configPath string
	logLevel   string
	noColor    bool

	loggingCleanup func()
)

// NewRootCmd creates the root command for the grounder CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grounder",
		Short: "Evidence retrieval and citation-grounding engine",
		Long: `Grounder retrieves ranked evidence sources for a query, formats
citations, and scores how well the evidence supports a response.

It loads curated sources from YAML configuration and bulk sources from
JSONL datasets, with semantic search when an embedding backend is
available and keyword search otherwise.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.SetVersionTemplate("grounder version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: built-in defaults)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRunE = setupLogging
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if loggingCleanup != nil {
			loggingCleanup()
		}
	}

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newRetrieveCmd())
	cmd.AddCommand(newGroundCmd())
	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func setupLogging(*cobra.Command, []string) error {
	cleanup, err := logging.SetupDefault(logLevel)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	loggingCleanup = cleanup
	return nil
}

// loadConfig loads the effective configuration, honoring the --config
// and --log-level flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// newEngine builds the engine from the effective configuration.
func newEngine(ctx context.Context) (*rag.Engine, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	engine, err := rag.New(ctx, cfg, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}
