// Package index builds and serves the per-source embedding index, with a
// disk cache keyed by the source-id set and optional per-domain ANN graphs
// for large candidate pools.
package index

import (
	"math"

	"github.com/coder/hnsw"
)

// Index maps source ids to embedding vectors. It is immutable after
// construction; rebuilds create a new Index and swap the reference.
type Index struct {
	vectors map[string][]float32
	dims    int

	// graphs holds ANN graphs per domain; the "" key covers all sources.
	// Only populated for domains whose bucket crosses the ANN threshold.
	graphs map[string]*hnsw.Graph[string]
}

// Empty returns an index with no vectors. Retrieval over an empty index
// runs in keyword mode.
func Empty() *Index {
	return &Index{
		vectors: make(map[string][]float32),
		graphs:  make(map[string]*hnsw.Graph[string]),
	}
}

// Get returns the embedding for a source id.
func (ix *Index) Get(id string) ([]float32, bool) {
	v, ok := ix.vectors[id]
	return v, ok
}

// Has reports whether an embedding exists for the id.
func (ix *Index) Has(id string) bool {
	_, ok := ix.vectors[id]
	return ok
}

// Len returns the number of embedded sources.
func (ix *Index) Len() int {
	return len(ix.vectors)
}

// IsEmpty reports whether the index holds no vectors.
func (ix *Index) IsEmpty() bool {
	return len(ix.vectors) == 0
}

// Dimensions returns the embedding dimension (0 when empty).
func (ix *Index) Dimensions() int {
	return ix.dims
}

// Neighbors returns up to k approximate nearest source ids for the query
// within a domain graph. Returns nil when no graph exists for the domain,
// in which case the caller scores candidates exhaustively.
func (ix *Index) Neighbors(domain string, query []float32, k int) []string {
	g, ok := ix.graphs[domain]
	if !ok || g.Len() == 0 {
		return nil
	}
	nodes := g.Search(query, k)
	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.Key)
	}
	return ids
}

// addGraph builds an ANN graph over the embedded subset of ids when the
// bucket crosses the threshold. Smaller buckets stay on exhaustive scoring.
func (ix *Index) addGraph(domain string, ids []string, annMin int) {
	embedded := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := ix.vectors[id]; ok {
			embedded = append(embedded, id)
		}
	}
	if len(embedded) < annMin {
		return
	}

	g := newGraph()
	for _, id := range embedded {
		g.Add(hnsw.MakeNode(id, ix.vectors[id]))
	}
	ix.graphs[domain] = g
}

// newGraph creates an ANN graph with cosine distance.
func newGraph() *hnsw.Graph[string] {
	g := hnsw.NewGraph[string]()
	g.Distance = hnsw.CosineDistance
	g.M = 16
	g.EfSearch = 20
	g.Ml = 0.25
	return g
}

// Cosine computes the cosine similarity between two vectors.
// Mismatched lengths or zero vectors score 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
