// Package ui renders retrieval and grounding results for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/evidenceai/grounder/internal/ground"
	"github.com/evidenceai/grounder/internal/retrieve"
)

// Renderer formats engine output for terminal display.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer; noColor disables all styling.
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{styles: GetStyles(noColor)}
}

// RenderSources formats a ranked result list, one block per source.
func (r *Renderer) RenderSources(results []retrieve.ScoredSource) string {
	if len(results) == 0 {
		return r.styles.Dim.Render("no sources found") + "\n"
	}

	var b strings.Builder
	for i, res := range results {
		src := res.Source
		header := fmt.Sprintf("%d. %s", i+1, src.Title)
		b.WriteString(r.styles.Title.Render(header))
		b.WriteString("\n")

		meta := fmt.Sprintf("   %s  %s  reliability %.0f%%",
			src.ID, src.Type, src.Reliability*100)
		b.WriteString(r.styles.Label.Render(meta))
		b.WriteString("\n")

		score := fmt.Sprintf("   score %.3f (%s", res.Score, res.Mode)
		if res.Boosted {
			score += ", curated boost"
		}
		score += ")"
		b.WriteString(r.styles.Score.Render(score))
		b.WriteString("\n")

		if src.URL != "" {
			b.WriteString(r.styles.Dim.Render("   " + src.URL))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderGrounding formats a grounding result as a bordered panel.
func (r *Renderer) RenderGrounding(res ground.Result) string {
	lines := []string{
		r.styles.Header.Render("Grounding"),
		fmt.Sprintf("%s %.3f", r.styles.Label.Render("coverage          "), res.Coverage),
		fmt.Sprintf("%s %.3f", r.styles.Label.Render("citation quality  "), res.CitationQuality),
		fmt.Sprintf("%s %.3f", r.styles.Label.Render("faithfulness      "), res.Improvements.Faithfulness),
		fmt.Sprintf("%s %.3f", r.styles.Label.Render("citation accuracy "), res.Improvements.CitationAccuracy),
		fmt.Sprintf("%s %.3f", r.styles.Label.Render("factual consist.  "), res.Improvements.FactualConsistency),
	}
	return r.styles.Panel.Render(strings.Join(lines, "\n")) + "\n"
}
