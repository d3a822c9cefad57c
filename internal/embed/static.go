package embed

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"sync"
)

// StaticEmbedder generates embeddings using a hash-based approach.
// Works without external dependencies (no network, no model download).
// Deterministic and fast, with reduced semantic quality; used for
// offline operation and as the test backend.
type StaticEmbedder struct {
	mu     sync.RWMutex
	closed bool
}

// commonStopWords are high-frequency English words excluded from token
// hashing so they do not dominate the vector.
var commonStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "on": true, "for": true,
	"is": true, "are": true, "was": true, "be": true, "with": true,
	"that": true, "this": true, "it": true, "as": true, "at": true,
}

// Weights for vector generation.
const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

// staticTokenRegex matches alphanumeric sequences.
var staticTokenRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// Verify interface implementation at compile time.
var _ Embedder = (*StaticEmbedder)(nil)

// NewStaticEmbedder creates a new static embedder.
func NewStaticEmbedder() *StaticEmbedder {
	return &StaticEmbedder{}
}

// Embed generates an embedding for a single text.
func (e *StaticEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, fmt.Errorf("embedder is closed")
	}
	e.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return make([]float32, StaticDimensions), nil
	}
	return e.vectorize(trimmed), nil
}

// EmbedBatch generates embeddings for multiple texts.
func (e *StaticEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		results[i] = vec
	}
	return results, nil
}

// vectorize hashes word tokens and character n-grams into a fixed-length
// vector and normalizes the result.
func (e *StaticEmbedder) vectorize(text string) []float32 {
	vec := make([]float32, StaticDimensions)
	lower := strings.ToLower(text)

	for _, token := range staticTokenRegex.FindAllString(lower, -1) {
		if commonStopWords[token] || len(token) < 2 {
			continue
		}
		vec[bucket(token)] += tokenWeight
	}

	compact := strings.Join(strings.Fields(lower), " ")
	for i := 0; i+ngramSize <= len(compact); i++ {
		vec[bucket(compact[i:i+ngramSize])] += ngramWeight
	}

	return normalizeVector(vec)
}

// bucket maps a token to a vector index via FNV-1a.
func bucket(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % uint32(StaticDimensions))
}

// Dimensions returns the embedding dimension.
func (e *StaticEmbedder) Dimensions() int {
	return StaticDimensions
}

// ModelName returns the model identifier.
func (e *StaticEmbedder) ModelName() string {
	return "static-hash-256"
}

// Available always reports true: the static backend has no dependencies.
func (e *StaticEmbedder) Available(ctx context.Context) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.closed
}

// Close releases resources.
func (e *StaticEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return nil
}
