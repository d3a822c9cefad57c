package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evidenceai/grounder/internal/rag"
	"github.com/evidenceai/grounder/internal/ui"
)

func newGroundCmd() *cobra.Command {
	var domain string
	var topK int
	var asJSON bool
	var showPrompt bool

	cmd := &cobra.Command{
		Use:   "ground <query>",
		Short: "Retrieve evidence and score how well it supports the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			engine, _, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = engine.Close() }()

			results := engine.Retrieve(cmd.Context(), query, domain, topK)
			sources := rag.Sources(results)
			res := engine.Ground(query, domain, sources)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			renderer := ui.NewRenderer(noColor)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderer.RenderSources(results))
			fmt.Fprint(out, renderer.RenderGrounding(res))

			if showPrompt {
				fmt.Fprintln(out)
				fmt.Fprint(out, engine.FormatForPrompt(sources))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&domain, "domain", "d", "general", "Domain to search: medical, finance, general")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of sources to use (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output raw JSON")
	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Also print the prompt-ready evidence block")

	return cmd
}
