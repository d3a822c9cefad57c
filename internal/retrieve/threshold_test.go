package retrieve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDynamicThreshold_DomainBases(t *testing.T) {
	// 5-word query: no length or density adjustment.
	query := "side effects of aspirin use"

	tests := []struct {
		domain string
		want   float64
	}{
		{"medical", 0.35},
		{"finance", 0.32},
		{"scientific", 0.35},
		{"legal", 0.40},
		{"general", 0.25},
		{"astrology", 0.30},
		{"", 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.InDelta(t, tt.want, DynamicThreshold(query, tt.domain), 1e-9)
		})
	}
}

func TestDynamicThreshold_LengthAdjustment(t *testing.T) {
	// Short queries relax the bar, long ones tighten it.
	assert.InDelta(t, 0.30, DynamicThreshold("aspirin side effects", "medical"), 1e-9)
	assert.InDelta(t, 0.35, DynamicThreshold("what are the side effects of aspirin", "medical"), 1e-9)

	long := "what are the most common side effects of taking aspirin every day"
	assert.InDelta(t, 0.40, DynamicThreshold(long, "medical"), 1e-9)
}

func TestDynamicThreshold_TechnicalDensity(t *testing.T) {
	// 4 words, 3 technical: density 0.75 exceeds the 0.3 tier.
	assert.InDelta(t, 0.40, DynamicThreshold("analyze compare evaluate data", "medical"), 1e-9)

	// 25 words with 3 technical verbs: density 0.12 lands in the 0.1 tier,
	// long-query adjustment applies too.
	query := "analyze and then evaluate and assess the long term cardiovascular risks associated with daily low dose aspirin therapy in elderly patients with prior bleeding history"
	assert.Equal(t, 25, len(strings.Fields(query)))
	assert.InDelta(t, 0.42, DynamicThreshold(query, "medical"), 1e-9)
}

func TestDynamicThreshold_RepeatedStemCountsOnce(t *testing.T) {
	// 6 words, one distinct technical stem: density 1/6 stays in the
	// 0.1 tier no matter how often the verb repeats.
	query := "analyze data analyze trends analyze patterns"
	assert.InDelta(t, 0.35+0.02, DynamicThreshold(query, "medical"), 1e-9)
}

func TestDynamicThreshold_SubstringStemMatch(t *testing.T) {
	// Inflected forms still count via substring containment.
	withStem := DynamicThreshold("calculates compounding analyzes growth", "finance")
	assert.InDelta(t, 0.32+0.05, withStem, 1e-9)
}

func TestDynamicThreshold_Bounds(t *testing.T) {
	queries := []string{
		"",
		"x",
		"analyze analyze analyze",
		"what are the side effects of aspirin",
		"analyze and evaluate and assess and compare and determine and calculate everything about markets",
	}
	domains := []string{"medical", "finance", "scientific", "legal", "general", "unknown", ""}

	for _, q := range queries {
		for _, d := range domains {
			got := DynamicThreshold(q, d)
			assert.GreaterOrEqual(t, got, 0.15, "query %q domain %q", q, d)
			assert.LessOrEqual(t, got, 0.50, "query %q domain %q", q, d)
		}
	}
}
