package rag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidenceai/grounder/internal/evidence"
)

func promptSources() []*evidence.Source {
	return []*evidence.Source{
		{
			ID:          "med_001",
			Title:       "Aspirin for Primary Prevention",
			Content:     "Low-dose aspirin reduces cardiovascular events.",
			Type:        evidence.TypeClinicalGuideline,
			Reliability: 0.95,
			URL:         "https://example.org/aspirin",
		},
		{
			ID:          "med_002",
			Title:       "Statin Therapy Guidelines",
			Content:     strings.Repeat("Statins lower LDL cholesterol. ", 30),
			Type:        evidence.TypeAcademicResearch,
			Reliability: 0.9,
		},
	}
}

func TestFormatForPrompt_Contract(t *testing.T) {
	block := FormatForPrompt(promptSources())

	assert.True(t, strings.HasPrefix(block, "=== EVIDENCE SOURCES ===\n\n"))
	assert.Contains(t, block, "[Source 1] Aspirin for Primary Prevention\n")
	assert.Contains(t, block, "Type: clinical_guideline\n")
	assert.Contains(t, block, "Reliability: 95%\n")
	assert.Contains(t, block, "URL: https://example.org/aspirin\n")
	assert.Contains(t, block, "[Source 2] Statin Therapy Guidelines\n")
	assert.Contains(t, block, "=== CITATION INSTRUCTIONS ===\n")
	assert.Contains(t, block, "[Source X]")

	// Content excerpts are bounded to 400 chars plus the ellipsis.
	for _, line := range strings.Split(block, "\n") {
		if rest, ok := strings.CutPrefix(line, "Content: "); ok {
			assert.LessOrEqual(t, len(rest), promptContentLimit+3)
			assert.True(t, strings.HasSuffix(rest, "..."))
		}
	}
}

func TestFormatForPrompt_TruncationPreservesRunes(t *testing.T) {
	// A three-byte rune straddles the content limit; the excerpt backs up
	// to the last rune boundary.
	content := strings.Repeat("x", promptContentLimit-1) + "日本語 follow-up text beyond the limit"
	block := FormatForPrompt([]*evidence.Source{{
		ID:      "med_003",
		Title:   "Multilingual Guideline",
		Content: content,
		Type:    evidence.TypeAcademicResearch,
	}})

	assert.True(t, utf8.ValidString(block))
	assert.Contains(t, block, "Content: "+strings.Repeat("x", promptContentLimit-1)+"...\n")
}

func TestFormatForPrompt_Empty(t *testing.T) {
	assert.Equal(t,
		"No specific evidence sources available for this query.",
		FormatForPrompt(nil))
}

func TestFormatForPrompt_RoundTrip(t *testing.T) {
	sources := promptSources()
	block := FormatForPrompt(sources)

	markers := ParseSourceMarkers(block)
	require.Len(t, markers, len(sources))
	for i, m := range markers {
		assert.Equal(t, i+1, m.Number)
		assert.Equal(t, sources[i].Title, m.Title)
	}
}
