package retrieve

import (
	"context"
	"log/slog"
	"sort"

	"github.com/evidenceai/grounder/internal/embed"
	"github.com/evidenceai/grounder/internal/evidence"
	"github.com/evidenceai/grounder/internal/index"
)

// Defaults for result counts and ranking.
const (
	DefaultTopK = 3
	MaxTopK     = 10

	// DefaultCuratedBoost is the ranking multiplier for curated sources
	// in semantic mode.
	DefaultCuratedBoost = 1.2

	// fallbackCount caps the below-threshold fallback result set.
	fallbackCount = 3
)

// Retriever ranks sources from a repository against queries. The index
// may be empty; retrieval then runs in keyword mode.
type Retriever struct {
	Repo         *evidence.Repository
	Index        *index.Index
	Embedder     embed.Embedder
	CuratedBoost float64
	Logger       *slog.Logger
}

// NewRetriever wires a retriever with default boost.
func NewRetriever(repo *evidence.Repository, ix *index.Index, embedder embed.Embedder, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{
		Repo:         repo,
		Index:        ix,
		Embedder:     embedder,
		CuratedBoost: DefaultCuratedBoost,
		Logger:       logger,
	}
}

// Retrieve returns up to k sources ranked for the query within a domain.
// An unknown domain searches all sources. k is clamped to [1, MaxTopK];
// k <= 0 uses the default.
//
// Semantic ranking applies the curated boost and the dynamic threshold.
// When no source passes the threshold, the top min(3, k) by score are
// returned anyway so callers always see the best available evidence.
// Query-encode failure and an empty index degrade to keyword overlap
// ranking, which applies neither boost nor threshold.
func (r *Retriever) Retrieve(ctx context.Context, query, domain string, k int) []ScoredSource {
	if k <= 0 {
		k = DefaultTopK
	}
	if k > MaxTopK {
		k = MaxTopK
	}

	candidates := r.Repo.IDsForDomain(domain)
	if len(candidates) == 0 {
		return []ScoredSource{}
	}

	if r.Embedder == nil || r.Index.IsEmpty() {
		return r.keywordRank(query, candidates, k)
	}

	qvec, err := r.Embedder.Embed(ctx, query)
	if err != nil {
		r.Logger.Warn("query encode failed, falling back to keyword search",
			slog.String("error", err.Error()))
		return r.keywordRank(query, candidates, k)
	}

	return r.semanticRank(query, domain, qvec, candidates, k)
}

// semanticRank scores embedded candidates by cosine similarity, boosts
// curated sources, applies the dynamic threshold, and fills any remaining
// slots from unembedded candidates by keyword overlap.
func (r *Retriever) semanticRank(query, domain string, qvec []float32, candidates []string, k int) []ScoredSource {
	scorable := candidates
	if neighbors := r.annCandidates(domain, qvec, k); neighbors != nil {
		scorable = neighbors
	}

	boost := r.CuratedBoost
	if boost <= 0 {
		boost = DefaultCuratedBoost
	}

	scored := make([]ScoredSource, 0, len(scorable))
	for _, id := range scorable {
		vec, ok := r.Index.Get(id)
		if !ok {
			continue
		}
		src, ok := r.Repo.Get(id)
		if !ok {
			continue
		}
		score := index.Cosine(qvec, vec)
		curated := r.Repo.IsCurated(id)
		if curated {
			score *= boost
		}
		scored = append(scored, ScoredSource{
			Source:  src,
			Score:   score,
			Mode:    ModeSemantic,
			Boosted: curated,
		})
	}
	sortByScore(scored)

	threshold := DynamicThreshold(query, domain)
	passing := scored[:0:0]
	for _, s := range scored {
		if s.Score >= threshold {
			passing = append(passing, s)
		}
	}

	var results []ScoredSource
	if len(passing) > 0 {
		results = top(passing, k)
	} else if len(scored) > 0 {
		// Nothing cleared the bar; surface the best few regardless.
		n := min(fallbackCount, k)
		results = top(scored, n)
		r.Logger.Debug("no sources passed threshold, returning top results",
			slog.Float64("threshold", threshold),
			slog.Int("returned", len(results)))
	}

	if len(results) < k {
		results = r.fillUnembedded(query, candidates, results, k)
	}
	return results
}

// annCandidates asks the domain ANN graph for a candidate shortlist.
// Returns nil when no graph covers the domain; the caller then scores the
// full pool.
func (r *Retriever) annCandidates(domain string, qvec []float32, k int) []string {
	fetch := k * 4
	if fetch < 32 {
		fetch = 32
	}
	if !r.Repo.HasDomain(domain) {
		domain = ""
	}
	return r.Index.Neighbors(domain, qvec, fetch)
}

// fillUnembedded appends keyword-scored candidates that have no embedding
// until k results are reached. Sources the encoder skipped stay reachable
// this way.
func (r *Retriever) fillUnembedded(query string, candidates []string, results []ScoredSource, k int) []ScoredSource {
	taken := make(map[string]struct{}, len(results))
	for _, res := range results {
		taken[res.Source.ID] = struct{}{}
	}

	extras := make([]ScoredSource, 0)
	for _, id := range candidates {
		if _, ok := taken[id]; ok {
			continue
		}
		if r.Index.Has(id) {
			continue
		}
		src, ok := r.Repo.Get(id)
		if !ok {
			continue
		}
		score := KeywordRelevance(query, src)
		if score <= 0 {
			continue
		}
		extras = append(extras, ScoredSource{Source: src, Score: score, Mode: ModeKeyword})
	}
	sortByScore(extras)

	for _, e := range extras {
		if len(results) >= k {
			break
		}
		results = append(results, e)
	}
	return results
}

// keywordRank scores every candidate by term overlap. Zero-overlap
// sources are excluded; no curated boost applies in this mode.
func (r *Retriever) keywordRank(query string, candidates []string, k int) []ScoredSource {
	scored := make([]ScoredSource, 0, len(candidates))
	for _, id := range candidates {
		src, ok := r.Repo.Get(id)
		if !ok {
			continue
		}
		score := KeywordRelevance(query, src)
		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredSource{Source: src, Score: score, Mode: ModeKeyword})
	}
	sortByScore(scored)
	return top(scored, k)
}

// sortByScore orders results by score descending, breaking ties by source
// id so ranking is deterministic.
func sortByScore(results []ScoredSource) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Source.ID < results[j].Source.ID
	})
}

// top returns the first n results.
func top(results []ScoredSource, n int) []ScoredSource {
	if len(results) > n {
		results = results[:n]
	}
	out := make([]ScoredSource, len(results))
	copy(out, results)
	return out
}
