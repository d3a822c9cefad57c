package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newIndexCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build or refresh the embedding index and disk cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if force {
				if err := clearCache(cfg.Paths.CacheDir); err != nil {
					return fmt.Errorf("clear embedding cache: %w", err)
				}
			}

			engine, _, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			repo := engine.Repo()
			ix := engine.Index()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sources:  %d (%d curated, %d bulk)\n",
				repo.Len(), repo.CuratedCount(), repo.BulkCount())
			fmt.Fprintf(out, "embedded: %d\n", ix.Len())
			if ix.IsEmpty() {
				fmt.Fprintln(out, "mode:     keyword only (no embedding backend)")
			} else {
				fmt.Fprintf(out, "dims:     %d\n", ix.Dimensions())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Discard the disk cache and recompute all embeddings")

	return cmd
}

// clearCache removes cached embedding archives, forcing recomputation.
func clearCache(cacheDir string) error {
	archives, err := filepath.Glob(filepath.Join(cacheDir, "embeddings_*.gob"))
	if err != nil {
		return err
	}
	for _, path := range archives {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
