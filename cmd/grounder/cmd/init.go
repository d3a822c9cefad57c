package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/evidenceai/grounder/configs"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and default sources config",
		Long: `Init creates the grounder data directories and writes the built-in
curated source set to the sources config path, ready for editing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			for _, dir := range []string{cfg.Paths.DatasetDir, cfg.Paths.CacheDir} {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create %s: %w", dir, err)
				}
			}

			path := cfg.Paths.SourcesConfig
			if _, err := os.Stat(path); err == nil && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "sources config already exists at %s (use --force to overwrite)\n", path)
				return nil
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, []byte(configs.DefaultSourcesConfig), 0o644); err != nil {
				return fmt.Errorf("write sources config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote default sources config to %s\n", path)
			fmt.Fprintf(cmd.OutOrStdout(), "dataset directory: %s\n", cfg.Paths.DatasetDir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing sources config")
	return cmd
}
