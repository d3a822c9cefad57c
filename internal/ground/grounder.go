// Package ground scores how well retrieved evidence supports a query:
// term coverage, citation quality, and the confidence improvement deltas
// callers apply to their answers.
package ground

import (
	"strings"

	"github.com/evidenceai/grounder/internal/cite"
	"github.com/evidenceai/grounder/internal/evidence"
)

// faithfulnessCap bounds the faithfulness improvement delta.
const faithfulnessCap = 0.45

// domainCoverageMultipliers weight how much coverage moves faithfulness
// per domain. Evidence-heavy domains weigh coverage more.
var domainCoverageMultipliers = map[string]float64{
	"medical":    0.40,
	"finance":    0.35,
	"scientific": 0.40,
	"legal":      0.45,
	"general":    0.30,
}

// defaultCoverageMultiplier applies to unknown domains.
const defaultCoverageMultiplier = 0.30

// Improvements are the confidence deltas a caller may apply to a
// response backed by this evidence.
type Improvements struct {
	Faithfulness       float64 `json:"faithfulness_improvement"`
	CitationAccuracy   float64 `json:"citation_accuracy_improvement"`
	FactualConsistency float64 `json:"factual_consistency_improvement"`
}

// Result is the grounding assessment for one query and source set.
type Result struct {
	Coverage        float64      `json:"evidence_coverage"`
	CitationQuality float64      `json:"citation_quality"`
	Improvements    Improvements `json:"improvements"`
}

// Ground scores the evidence set against the query. An empty source set
// yields all zeros; this is a report, never an error.
func Ground(query, domain string, sources []*evidence.Source) Result {
	coverage := Coverage(query, sources)
	citations := cite.Format(sources, cite.StyleSimple)
	quality := CitationQuality(citations)

	return Result{
		Coverage:        coverage,
		CitationQuality: quality,
		Improvements:    improvements(query, domain, coverage, quality, sources),
	}
}

// Coverage is the fraction of query terms found in the union of the
// sources' title and content terms, in [0,1].
func Coverage(query string, sources []*evidence.Source) float64 {
	if len(sources) == 0 {
		return 0
	}
	queryTerms := make(map[string]struct{})
	for _, t := range strings.Fields(strings.ToLower(query)) {
		queryTerms[t] = struct{}{}
	}
	if len(queryTerms) == 0 {
		return 0
	}

	covered := make(map[string]struct{})
	for _, src := range sources {
		for _, t := range strings.Fields(strings.ToLower(src.Title + " " + src.Content)) {
			if _, ok := queryTerms[t]; ok {
				covered[t] = struct{}{}
			}
		}
	}

	return min(float64(len(covered))/float64(len(queryTerms)), 1.0)
}

// CitationQuality combines mean relevance, source-type diversity, a
// reliability heuristic, and a diminishing-returns quantity factor into a
// [0,1] score. No citations scores 0.
func CitationQuality(citations []cite.Citation) float64 {
	if len(citations) == 0 {
		return 0
	}

	var relevanceSum, reliabilitySum float64
	types := make(map[evidence.SourceType]struct{})
	for _, c := range citations {
		relevanceSum += c.Relevance
		reliabilitySum += sourceReliability(c)
		types[c.SourceType] = struct{}{}
	}
	n := float64(len(citations))

	baseQuality := relevanceSum / n
	diversityBonus := min(float64(len(types))/3.0, 1.0) * 0.15
	reliabilityFactor := (reliabilitySum / n) * 0.25

	var quantityFactor float64
	switch len(citations) {
	case 1:
		quantityFactor = 0.0
	case 2:
		quantityFactor = 0.10
	case 3:
		quantityFactor = 0.20
	default:
		quantityFactor = 0.25
	}

	return min(baseQuality+diversityBonus+reliabilityFactor+quantityFactor, 1.0)
}

// improvements derives the three confidence deltas from coverage, quality,
// and the query/evidence characteristics.
func improvements(query, domain string, coverage, quality float64, sources []*evidence.Source) Improvements {
	var baseBoost float64
	if coverage > 0 {
		quantity := min(float64(len(sources))/3.0, 1.0)
		baseBoost = 0.03 + quality*quantity*0.07
	}

	multiplier, ok := domainCoverageMultipliers[strings.ToLower(domain)]
	if !ok {
		multiplier = defaultCoverageMultiplier
	}

	return Improvements{
		Faithfulness:       min(baseBoost+coverage*multiplier, faithfulnessCap),
		CitationAccuracy:   quality * (0.20 + QueryComplexity(query)*0.15),
		FactualConsistency: coverage * (0.25 + EvidenceDiversity(sources)*0.15),
	}
}
