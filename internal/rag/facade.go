// Package rag composes the repository, embedding index, retriever,
// citation formatter, and grounder behind one engine facade.
package rag

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/evidenceai/grounder/internal/cite"
	"github.com/evidenceai/grounder/internal/config"
	"github.com/evidenceai/grounder/internal/embed"
	"github.com/evidenceai/grounder/internal/evidence"
	"github.com/evidenceai/grounder/internal/ground"
	"github.com/evidenceai/grounder/internal/index"
	"github.com/evidenceai/grounder/internal/retrieve"
	"github.com/evidenceai/grounder/internal/telemetry"
)

// state bundles the immutable per-build artifacts. Reload constructs a
// new state and swaps the pointer; in-flight queries keep the old one.
type state struct {
	repo      *evidence.Repository
	index     *index.Index
	retriever *retrieve.Retriever
}

// Engine is the public retrieval facade. Safe for concurrent use.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	embedder embed.Embedder

	state atomic.Pointer[state]

	collector *telemetry.Collector
	store     *telemetry.Store
}

// New builds the engine: loads sources, initializes the embedding
// backend, and constructs the index. Backend initialization failure is
// not fatal; the engine starts in keyword-only mode.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}

	embedder, err := embed.NewEmbedder(ctx, embed.FactoryConfig{
		Provider:       embed.ProviderType(cfg.Embeddings.Provider),
		Model:          cfg.Embeddings.Model,
		OllamaHost:     cfg.Embeddings.OllamaHost,
		Dimensions:     cfg.Embeddings.Dimensions,
		Timeout:        cfg.Embeddings.Timeout,
		MaxRetries:     cfg.Embeddings.MaxRetries,
		QueryCacheSize: cfg.Embeddings.QueryCacheSize,
	})
	if err != nil {
		logger.Warn("embedding backend unavailable, starting in keyword mode",
			slog.String("provider", cfg.Embeddings.Provider),
			slog.String("error", err.Error()))
		embedder = nil
	}

	e := &Engine{
		cfg:       cfg,
		logger:    logger,
		embedder:  embedder,
		collector: telemetry.NewCollector(),
	}

	if cfg.Telemetry.Enabled {
		store, err := telemetry.OpenStore(cfg.Telemetry.DBPath)
		if err != nil {
			logger.Warn("metrics store unavailable, continuing without persistence",
				slog.String("error", err.Error()))
		} else {
			e.store = store
		}
	}

	e.state.Store(e.buildState(ctx))
	return e, nil
}

// buildState loads the repository and builds a fresh index.
func (e *Engine) buildState(ctx context.Context) *state {
	repo := evidence.Load(e.cfg.Paths.SourcesConfig, e.cfg.Paths.DatasetDir, e.logger)

	builder := &index.Builder{
		Embedder:         e.embedder,
		CacheDir:         e.cfg.Paths.CacheDir,
		BatchSize:        e.cfg.Embeddings.BatchSize,
		Workers:          e.cfg.Embeddings.Workers,
		ANNMinCandidates: e.cfg.Retrieval.ANNMinCandidates,
		Logger:           e.logger,
	}
	ix := builder.Build(ctx, repo)

	retriever := retrieve.NewRetriever(repo, ix, e.embedder, e.logger)
	retriever.CuratedBoost = e.cfg.Retrieval.CuratedBoost

	e.logger.Info("engine state ready",
		slog.Int("sources", repo.Len()),
		slog.Int("curated", repo.CuratedCount()),
		slog.Int("bulk", repo.BulkCount()),
		slog.Int("embedded", ix.Len()))
	return &state{repo: repo, index: ix, retriever: retriever}
}

// Retrieve returns up to k ranked sources for the query within a domain.
func (e *Engine) Retrieve(ctx context.Context, query, domain string, k int) []retrieve.ScoredSource {
	if k <= 0 {
		k = e.cfg.Retrieval.DefaultTopK
	}
	if k > e.cfg.Retrieval.MaxTopK {
		k = e.cfg.Retrieval.MaxTopK
	}

	start := time.Now()
	results := e.state.Load().retriever.Retrieve(ctx, query, domain, k)
	e.record(ctx, query, domain, results, time.Since(start))
	return results
}

// Sources unwraps scored results to their sources, preserving order.
func Sources(results []retrieve.ScoredSource) []*evidence.Source {
	sources := make([]*evidence.Source, len(results))
	for i, r := range results {
		sources[i] = r.Source
	}
	return sources
}

// FormatForPrompt renders sources as the evidence block for the
// generation step.
func (e *Engine) FormatForPrompt(sources []*evidence.Source) string {
	return FormatForPrompt(sources)
}

// Cite formats citations for a ranked source list.
func (e *Engine) Cite(sources []*evidence.Source, style cite.Style) []cite.Citation {
	return cite.Format(sources, style)
}

// Ground scores how well the sources support the query.
func (e *Engine) Ground(query, domain string, sources []*evidence.Source) ground.Result {
	return ground.Ground(query, domain, sources)
}

// Enhance retrieves evidence for the query and grounds the response
// against it. The response text is returned unchanged; presentation is
// the caller's concern.
func (e *Engine) Enhance(ctx context.Context, response, query, domain string) (string, ground.Result) {
	results := e.Retrieve(ctx, query, domain, 0)
	sources := Sources(results)
	res := ground.Ground(query, domain, sources)
	e.logger.Info("grounded response",
		slog.Int("sources", len(sources)),
		slog.Float64("coverage", res.Coverage),
		slog.Float64("citation_quality", res.CitationQuality))
	return response, res
}

// Repo returns the current repository.
func (e *Engine) Repo() *evidence.Repository {
	return e.state.Load().repo
}

// Index returns the current embedding index.
func (e *Engine) Index() *index.Index {
	return e.state.Load().index
}

// Metrics returns a snapshot of the in-memory query metrics.
func (e *Engine) Metrics() telemetry.Snapshot {
	return e.collector.Snapshot(20)
}

// Reload rebuilds the repository and index from disk and atomically
// swaps them in. In-flight queries finish on the previous state.
func (e *Engine) Reload(ctx context.Context) {
	e.logger.Info("reloading engine state")
	e.state.Store(e.buildState(ctx))
}

// Close releases the embedding backend and metrics store.
func (e *Engine) Close() error {
	var firstErr error
	if e.embedder != nil {
		if err := e.embedder.Close(); err != nil {
			firstErr = err
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (e *Engine) record(ctx context.Context, query, domain string, results []retrieve.ScoredSource, latency time.Duration) {
	mode := "none"
	if len(results) > 0 {
		mode = string(results[0].Mode)
	}
	ev := telemetry.Event{
		Query:   query,
		Domain:  domain,
		Mode:    mode,
		Results: len(results),
		Latency: latency,
		At:      time.Now(),
	}
	e.collector.Record(ev)
	if e.store != nil {
		if err := e.store.Insert(ctx, ev); err != nil {
			e.logger.Debug("metrics insert failed", slog.String("error", err.Error()))
		}
	}
}
