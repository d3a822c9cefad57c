package ground

import (
	"strings"

	"github.com/evidenceai/grounder/internal/evidence"
)

// complexityTechnicalTerms and complexityMarkers signal analytically
// demanding queries. Matching is by substring in the lowercased query.
var (
	complexityTechnicalTerms = []string{
		"analyze", "compare", "evaluate", "assess", "determine", "calculate",
	}
	complexityMarkers = []string{
		"why", "how", "what if", "compare", "difference", "relationship",
	}
)

// QueryComplexity scores a query in [0,1] from word count, technical
// vocabulary, and question markers. Empty queries score 0.
func QueryComplexity(query string) float64 {
	if query == "" {
		return 0
	}
	lower := strings.ToLower(query)

	var score float64
	switch wordCount := len(strings.Fields(query)); {
	case wordCount > 20:
		score += 0.3
	case wordCount > 10:
		score += 0.2
	case wordCount > 5:
		score += 0.1
	}

	technical := 0
	for _, term := range complexityTechnicalTerms {
		if strings.Contains(lower, term) {
			technical++
		}
	}
	score += min(float64(technical)*0.15, 0.3)

	markers := 0
	for _, marker := range complexityMarkers {
		if strings.Contains(lower, marker) {
			markers++
		}
	}
	score += min(float64(markers)*0.1, 0.2)

	return min(score, 1.0)
}

// EvidenceDiversity scores how varied a source set is in [0,1], averaging
// source-type variety and publication-year variety. Three distinct values
// of either saturates that half.
func EvidenceDiversity(sources []*evidence.Source) float64 {
	if len(sources) == 0 {
		return 0
	}

	types := make(map[evidence.SourceType]struct{})
	years := make(map[string]struct{})
	for _, src := range sources {
		types[src.Type] = struct{}{}
		if len(src.PublicationDate) >= 4 {
			years[src.PublicationDate[:4]] = struct{}{}
		}
	}

	typeDiversity := min(float64(len(types))/3.0, 1.0)
	temporalDiversity := min(float64(len(years))/3.0, 1.0)
	return (typeDiversity + temporalDiversity) / 2.0
}
