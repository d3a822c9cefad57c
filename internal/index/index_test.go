package index

import (
	"testing"

	"github.com/coder/hnsw"
	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1.0},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0.0},
		{"opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, -1.0},
		{"scaled", []float32{2, 0, 0}, []float32{5, 0, 0}, 1.0},
		{"mismatched lengths", []float32{1, 0}, []float32{1, 0, 0}, 0.0},
		{"zero vector", []float32{0, 0, 0}, []float32{1, 0, 0}, 0.0},
		{"empty", nil, nil, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Cosine(tt.a, tt.b), 1e-9)
		})
	}
}

func TestEmptyIndex(t *testing.T) {
	ix := Empty()
	assert.True(t, ix.IsEmpty())
	assert.Zero(t, ix.Len())
	assert.False(t, ix.Has("anything"))
	assert.Nil(t, ix.Neighbors("medical", []float32{1, 0}, 5))

	_, ok := ix.Get("anything")
	assert.False(t, ok)
}

func TestIndex_AddGraphBelowThresholdStaysExhaustive(t *testing.T) {
	ix := &Index{
		vectors: map[string][]float32{
			"a": {1, 0},
			"b": {0, 1},
		},
		dims:   2,
		graphs: make(map[string]*hnsw.Graph[string]),
	}
	ix.addGraph("medical", []string{"a", "b"}, 10)

	// Bucket of 2 never crosses a threshold of 10.
	assert.Nil(t, ix.Neighbors("medical", []float32{1, 0}, 1))
}

func TestIndex_GraphReturnsNearestKeys(t *testing.T) {
	vectors := map[string][]float32{
		"x": {1, 0},
		"y": {0, 1},
		"z": {0.9, 0.1},
	}
	ix := &Index{vectors: vectors, dims: 2, graphs: make(map[string]*hnsw.Graph[string])}
	ix.addGraph("", []string{"x", "y", "z"}, 1)

	got := ix.Neighbors("", []float32{1, 0}, 2)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "x")
}
