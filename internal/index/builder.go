package index

import (
	"context"
	"log/slog"
	"sync"

	"github.com/coder/hnsw"
	"golang.org/x/sync/errgroup"

	"github.com/evidenceai/grounder/internal/embed"
	grounderrs "github.com/evidenceai/grounder/internal/errors"
	"github.com/evidenceai/grounder/internal/evidence"
)

// Builder constructs an Index from a source repository.
type Builder struct {
	// Embedder encodes source text. Nil yields an empty index and
	// keyword-only retrieval.
	Embedder embed.Embedder
	// CacheDir holds the embedding cache archives. Empty disables
	// disk caching.
	CacheDir string
	// BatchSize is the number of sources per encode call (default 10).
	BatchSize int
	// Workers bounds concurrent batch encodes (default 4).
	Workers int
	// ANNMinCandidates is the domain-bucket size at which an ANN graph
	// is built for that domain (default 256).
	ANNMinCandidates int
	// Logger receives build progress and degradation warnings.
	Logger *slog.Logger
}

// Build computes (or loads from cache) one embedding per source and
// returns the finished index. Build never fails: encoder trouble degrades
// to a partial or empty index, logged along the way.
func (b *Builder) Build(ctx context.Context, repo *evidence.Repository) *Index {
	logger := b.Logger
	if logger == nil {
		logger = slog.Default()
	}
	batchSize := b.BatchSize
	if batchSize <= 0 {
		batchSize = embed.DefaultBatchSize
	}
	workers := b.Workers
	if workers <= 0 {
		workers = 4
	}
	annMin := b.ANNMinCandidates
	if annMin <= 0 {
		annMin = 256
	}

	ids := repo.AllIDs()
	if b.Embedder == nil || len(ids) == 0 {
		if b.Embedder == nil {
			logger.Warn("no embedding backend, semantic search disabled")
		}
		return Empty()
	}

	// Cache hit requires coverage for every current id; any change to
	// the id set lands on a different key and recomputes.
	var cachePath string
	if b.CacheDir != "" {
		key := CacheKey(ids)
		cachePath = CachePath(b.CacheDir, key)
		if vectors, dims, ok := loadCache(cachePath, ids); ok {
			logger.Info("loaded embeddings from cache",
				slog.String("key", key),
				slog.Int("sources", len(vectors)))
			return b.assemble(repo, vectors, dims, annMin)
		}
	}

	vectors := b.encodeAll(ctx, repo, ids, batchSize, workers, logger)
	if len(vectors) == 0 {
		logger.Warn("no embeddings computed, semantic search disabled")
		return Empty()
	}

	dims := b.Embedder.Dimensions()
	if dims == 0 {
		for _, v := range vectors {
			dims = len(v)
			break
		}
	}

	if cachePath != "" {
		if err := saveCache(b.CacheDir, cachePath, dims, vectors); err != nil {
			gerr := grounderrs.New(grounderrs.ErrCodeCacheWrite, "could not persist embedding cache", err)
			logger.Warn(gerr.Message, slog.String("error", err.Error()))
		} else {
			logger.Info("saved embeddings to cache", slog.String("path", cachePath))
		}
	}

	return b.assemble(repo, vectors, dims, annMin)
}

// encodeAll embeds all sources in bounded-parallel batches. A failed
// batch degrades to sequential per-item encoding; items that still fail
// are dropped and logged.
func (b *Builder) encodeAll(ctx context.Context, repo *evidence.Repository, ids []string, batchSize, workers int, logger *slog.Logger) map[string][]float32 {
	vectors := make(map[string][]float32, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < len(ids); start += batchSize {
		end := min(start+batchSize, len(ids))
		batchIDs := ids[start:end]

		g.Go(func() error {
			texts := make([]string, len(batchIDs))
			for i, id := range batchIDs {
				src, _ := repo.Get(id)
				texts[i] = src.EmbeddingText()
			}

			batchVecs, err := b.Embedder.EmbedBatch(gctx, texts)
			if err == nil && len(batchVecs) == len(batchIDs) {
				mu.Lock()
				for i, id := range batchIDs {
					vectors[id] = batchVecs[i]
				}
				mu.Unlock()
				return nil
			}

			logger.Warn("batch encode failed, retrying items individually",
				slog.Int("batch_size", len(batchIDs)),
				slog.String("error", errString(err)))

			for i, id := range batchIDs {
				vec, itemErr := b.Embedder.Embed(gctx, texts[i])
				if itemErr != nil {
					gerr := grounderrs.New(grounderrs.ErrCodeItemEncode, "failed to encode source", itemErr).
						WithDetail("source_id", id)
					logger.Error(gerr.Message,
						slog.String("source_id", id),
						slog.String("error", itemErr.Error()))
					continue
				}
				mu.Lock()
				vectors[id] = vec
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers only return nil; Wait surfaces context cancellation.
	if err := g.Wait(); err != nil {
		logger.Warn("index build interrupted", slog.String("error", err.Error()))
	}

	logger.Info("computed embeddings",
		slog.Int("embedded", len(vectors)),
		slog.Int("sources", len(ids)))
	return vectors
}

// assemble wires vectors into an Index and builds ANN graphs for domain
// buckets that cross the threshold.
func (b *Builder) assemble(repo *evidence.Repository, vectors map[string][]float32, dims, annMin int) *Index {
	ix := &Index{
		vectors: vectors,
		dims:    dims,
		graphs:  make(map[string]*hnsw.Graph[string]),
	}

	for _, domain := range repo.Domains() {
		ix.addGraph(domain, repo.IDsForDomain(domain), annMin)
	}
	ix.addGraph("", repo.AllIDs(), annMin)
	return ix
}

// errString formats an error that may be nil (length-mismatch case).
func errString(err error) string {
	if err == nil {
		return "embedding count mismatch"
	}
	return err.Error()
}
