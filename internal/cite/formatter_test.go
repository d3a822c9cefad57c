package cite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidenceai/grounder/internal/evidence"
)

func sampleSource() *evidence.Source {
	return &evidence.Source{
		ID:              "med_001",
		Title:           "Aspirin for Primary Prevention",
		Content:         "Low-dose aspirin reduces cardiovascular events. More detail follows.",
		Type:            evidence.TypeClinicalGuideline,
		Domain:          "medical",
		URL:             "https://example.org/aspirin",
		PublicationDate: "2023-05-01",
		Reliability:     0.95,
	}
}

func TestFormat_Simple(t *testing.T) {
	citations := Format([]*evidence.Source{sampleSource()}, StyleSimple)
	require.Len(t, citations, 1)

	c := citations[0]
	assert.Equal(t, "med_001", c.SourceID)
	assert.Equal(t, "[1] Aspirin for Primary Prevention", c.Formatted)
	assert.Equal(t, "Low-dose aspirin reduces cardiovascular events.", c.Snippet)
	assert.Equal(t, evidence.TypeClinicalGuideline, c.SourceType)
	assert.InDelta(t, 0.95, c.Relevance, 1e-9)
}

func TestFormat_APA(t *testing.T) {
	citations := Format([]*evidence.Source{sampleSource()}, StyleAPA)
	require.Len(t, citations, 1)
	assert.Equal(t,
		"[1] Aspirin for Primary Prevention. (2023-05-01). Clinical Guideline. Retrieved from https://example.org/aspirin",
		citations[0].Formatted)
}

func TestFormat_APA_NoDateNoURL(t *testing.T) {
	src := sampleSource()
	src.PublicationDate = ""
	src.URL = ""

	citations := Format([]*evidence.Source{src}, StyleAPA)
	require.Len(t, citations, 1)
	assert.Equal(t,
		"[1] Aspirin for Primary Prevention. (n.d.). Clinical Guideline.",
		citations[0].Formatted)
}

func TestFormat_MLA(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC) }
	defer func() { now = orig }()

	citations := Format([]*evidence.Source{sampleSource()}, StyleMLA)
	require.Len(t, citations, 1)
	assert.Equal(t,
		`[1] "Aspirin for Primary Prevention." Clinical Guideline, 2023-05-01. Web. 24 Aug 2026.`,
		citations[0].Formatted)
}

func TestFormat_Chicago(t *testing.T) {
	citations := Format([]*evidence.Source{sampleSource()}, StyleChicago)
	require.Len(t, citations, 1)
	assert.Equal(t,
		`[1] "Aspirin for Primary Prevention," Clinical Guideline, 2023-05-01. https://example.org/aspirin`,
		citations[0].Formatted)
}

func TestFormat_UnknownStyleFallsBackToSimple(t *testing.T) {
	citations := Format([]*evidence.Source{sampleSource()}, Style("harvard"))
	require.Len(t, citations, 1)
	assert.Equal(t, "[1] Aspirin for Primary Prevention", citations[0].Formatted)
}

func TestFormat_NumbersFollowInputOrder(t *testing.T) {
	a := sampleSource()
	b := sampleSource()
	b.ID = "med_002"
	b.Title = "Second Source"

	citations := Format([]*evidence.Source{a, b}, StyleSimple)
	require.Len(t, citations, 2)
	assert.Equal(t, "[1] Aspirin for Primary Prevention", citations[0].Formatted)
	assert.Equal(t, "[2] Second Source", citations[1].Formatted)
}

func TestFormat_Empty(t *testing.T) {
	assert.Empty(t, Format(nil, StyleSimple))
}
