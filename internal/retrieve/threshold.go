package retrieve

import "strings"

// Domain base thresholds. Specialized domains demand tighter similarity
// than general knowledge; legal is strictest.
var domainBaseThresholds = map[string]float64{
	"medical":    0.35,
	"finance":    0.32,
	"scientific": 0.35,
	"legal":      0.40,
	"general":    0.25,
}

// unknownDomainThreshold applies to domains without a configured base.
const unknownDomainThreshold = 0.30

// technicalStems mark analytically demanding queries. Matching is by
// substring containment, so "analyzing" and "calculates" both count;
// each stem counts once no matter how often it appears.
var technicalStems = []string{
	"analyze", "calculate", "determine", "evaluate", "assess", "compare",
}

// Threshold bounds.
const (
	minThreshold = 0.15
	maxThreshold = 0.50
)

// DynamicThreshold computes the minimum similarity a source must reach to
// count as relevant for this query. The base comes from the domain, then
// shifts for query length and technical density, clamped to [0.15, 0.50].
func DynamicThreshold(query, domain string) float64 {
	threshold, ok := domainBaseThresholds[strings.ToLower(domain)]
	if !ok {
		threshold = unknownDomainThreshold
	}

	lower := strings.ToLower(query)
	words := strings.Fields(lower)
	switch {
	case len(words) <= 3:
		threshold -= 0.05
	case len(words) > 8:
		threshold += 0.05
	}

	if len(words) > 0 {
		technical := 0
		for _, stem := range technicalStems {
			if strings.Contains(lower, stem) {
				technical++
			}
		}
		density := float64(technical) / float64(len(words))
		switch {
		case density > 0.3:
			threshold += 0.05
		case density > 0.1:
			threshold += 0.02
		}
	}

	if threshold < minThreshold {
		threshold = minThreshold
	}
	if threshold > maxThreshold {
		threshold = maxThreshold
	}
	return threshold
}
