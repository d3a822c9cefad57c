package mcp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evidenceai/grounder/internal/config"
	"github.com/evidenceai/grounder/internal/rag"
)

const testSourcesYAML = `
medical_sources:
  - id: med_001
    title: "Aspirin for Primary Prevention of Cardiovascular Disease"
    content: "Low-dose aspirin reduces the risk of cardiovascular events. Side effects of aspirin include gastrointestinal bleeding."
    source_type: clinical_guideline
    url: "https://example.org/aspirin"
    publication_date: "2023-05-01"
    reliability_score: 0.95
finance_sources:
  - id: fin_001
    title: "Portfolio Diversification Basics"
    content: "Spreading investments across asset classes reduces overall portfolio risk."
    source_type: financial_textbook
    reliability_score: 0.9
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("GROUNDER_EMBEDDER", "static")
	dir := t.TempDir()

	sourcesPath := filepath.Join(dir, "evidence_sources.yaml")
	require.NoError(t, os.WriteFile(sourcesPath, []byte(testSourcesYAML), 0o644))

	cfg := config.NewConfig()
	cfg.Paths.SourcesConfig = sourcesPath
	cfg.Paths.DatasetDir = filepath.Join(dir, "datasets")
	cfg.Paths.CacheDir = filepath.Join(dir, "cache")
	cfg.Embeddings.Provider = "static"
	cfg.Telemetry.Enabled = false

	logger := slog.New(slog.DiscardHandler)
	engine, err := rag.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = engine.Close() })

	srv, err := NewServer(engine, logger)
	require.NoError(t, err)
	return srv
}

func TestNewServer_RequiresEngine(t *testing.T) {
	_, err := NewServer(nil, slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestRetrieveHandler(t *testing.T) {
	srv := newTestServer(t)

	_, out, err := srv.retrieveHandler(context.Background(), nil, RetrieveInput{
		Query:  "What are the side effects of aspirin?",
		Domain: "medical",
		TopK:   3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.Sources)

	first := out.Sources[0]
	assert.Equal(t, "med_001", first.ID)
	assert.Equal(t, "clinical_guideline", first.Type)
	assert.InDelta(t, 0.95, first.Reliability, 1e-9)
	assert.Greater(t, first.Score, 0.0)
	assert.NotEmpty(t, first.Mode)
}

func TestRetrieveHandler_RequiresQuery(t *testing.T) {
	srv := newTestServer(t)

	_, _, err := srv.retrieveHandler(context.Background(), nil, RetrieveInput{})
	assert.Error(t, err)
}

func TestGroundHandler(t *testing.T) {
	srv := newTestServer(t)

	_, out, err := srv.groundHandler(context.Background(), nil, GroundInput{
		Query:  "What are the side effects of aspirin?",
		Domain: "medical",
	})
	require.NoError(t, err)

	assert.Positive(t, out.SourceCount)
	assert.Greater(t, out.CitationQuality, 0.0)
	assert.GreaterOrEqual(t, out.Coverage, 0.0)
	assert.LessOrEqual(t, out.Faithfulness, 0.45)
}

func TestFormatHandler(t *testing.T) {
	srv := newTestServer(t)

	_, out, err := srv.formatHandler(context.Background(), nil, FormatInput{
		Query:  "aspirin side effects",
		Domain: "medical",
	})
	require.NoError(t, err)

	assert.Positive(t, out.SourceCount)
	assert.Contains(t, out.Prompt, "=== EVIDENCE SOURCES ===")
	assert.Contains(t, out.Prompt, "[Source 1]")
	assert.Contains(t, out.Prompt, "=== CITATION INSTRUCTIONS ===")
}
