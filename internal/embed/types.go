// Package embed provides text embedding backends for the evidence index.
// Backends share the Embedder interface; the factory selects one at
// startup and wraps it with a query-embedding LRU cache.
package embed

import (
	"context"
	"math"
	"time"
)

// Common embedding constants.
const (
	// DefaultBatchSize is the default number of texts per encode call.
	DefaultBatchSize = 10

	// MaxBatchSize caps a single encode call to bound memory.
	MaxBatchSize = 256

	// DefaultTimeout is the default timeout for a single encode call.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxRetries is the default retry budget for transient
	// encoder failures.
	DefaultMaxRetries = 3

	// StaticDimensions is the embedding dimension of the static backend.
	StaticDimensions = 256
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int

	// ModelName returns the model identifier.
	ModelName() string

	// Available checks if the embedder is ready.
	Available(ctx context.Context) bool

	// Close releases resources.
	Close() error
}

// normalizeVector normalizes a vector to unit length.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}

	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, val := range v {
		normalized[i] = float32(float64(val) / magnitude)
	}
	return normalized
}
