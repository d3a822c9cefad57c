package ground

import (
	"github.com/evidenceai/grounder/internal/cite"
	"github.com/evidenceai/grounder/internal/evidence"
)

// sourceReliability estimates a citation's trustworthiness from its type
// and relevance. Starts at a 0.5 base, adds the type weight, then a
// relevance-proportional bonus, capped at 1.
func sourceReliability(c cite.Citation) float64 {
	score := 0.5
	score += evidence.TypeReliabilityWeight(c.SourceType)
	score += c.Relevance * 0.15
	if score > 1.0 {
		score = 1.0
	}
	return score
}
