package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evidenceai/grounder/internal/ui"
)

func newRetrieveCmd() *cobra.Command {
	var domain string
	var topK int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "retrieve <query>",
		Short: "Retrieve ranked evidence sources for a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			engine, _, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			results := engine.Retrieve(cmd.Context(), query, domain, topK)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			renderer := ui.NewRenderer(noColor)
			fmt.Fprint(cmd.OutOrStdout(), renderer.RenderSources(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "general", "Domain to search: medical, finance, general")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of sources to return (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")

	return cmd
}
