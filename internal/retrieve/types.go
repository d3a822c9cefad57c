// Package retrieve ranks evidence sources against a query, semantically
// when embeddings are available and by keyword overlap otherwise.
package retrieve

import "github.com/evidenceai/grounder/internal/evidence"

// Mode records which scoring path produced a result.
type Mode string

const (
	// ModeSemantic scores by cosine similarity over embeddings.
	ModeSemantic Mode = "semantic"

	// ModeKeyword scores by term overlap. Used when no embeddings exist
	// for the candidate pool or the query could not be encoded.
	ModeKeyword Mode = "keyword"
)

// ScoredSource is one ranked retrieval result.
type ScoredSource struct {
	Source *evidence.Source

	// Score is the final ranking score, curated boost included.
	Score float64

	// Mode is the scoring path that produced the score.
	Mode Mode

	// Boosted reports whether the curated multiplier was applied.
	Boosted bool
}
