package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evidenceai/grounder/internal/evidence"
	"github.com/evidenceai/grounder/internal/ground"
	"github.com/evidenceai/grounder/internal/retrieve"
)

func TestRenderSources_Plain(t *testing.T) {
	r := NewRenderer(true)
	out := r.RenderSources([]retrieve.ScoredSource{
		{
			Source: &evidence.Source{
				ID:          "med_001",
				Title:       "Aspirin in Primary Prevention",
				Type:        "clinical_guideline",
				Reliability: 0.95,
				URL:         "https://example.org/aspirin",
			},
			Score:   0.84,
			Mode:    retrieve.ModeSemantic,
			Boosted: true,
		},
		{
			Source: &evidence.Source{ID: "fin_001", Title: "Index Fund Basics", Type: "textbook", Reliability: 0.8},
			Score:  0.41,
			Mode:   retrieve.ModeKeyword,
		},
	})

	assert.Contains(t, out, "1. Aspirin in Primary Prevention")
	assert.Contains(t, out, "med_001  clinical_guideline  reliability 95%")
	assert.Contains(t, out, "score 0.840 (semantic, curated boost)")
	assert.Contains(t, out, "https://example.org/aspirin")
	assert.Contains(t, out, "2. Index Fund Basics")
	assert.Contains(t, out, "score 0.410 (keyword)")
}

func TestRenderSources_Empty(t *testing.T) {
	out := NewRenderer(true).RenderSources(nil)
	assert.Contains(t, out, "no sources found")
}

func TestRenderGrounding_Plain(t *testing.T) {
	out := NewRenderer(true).RenderGrounding(ground.Result{
		Coverage:        0.75,
		CitationQuality: 0.9,
		Improvements: ground.Improvements{
			Faithfulness:       0.25,
			CitationAccuracy:   0.2,
			FactualConsistency: 0.3,
		},
	})

	assert.Contains(t, out, "Grounding")
	assert.Contains(t, out, "0.750")
	assert.Contains(t, out, "0.900")
	assert.Contains(t, out, "0.250")
}
