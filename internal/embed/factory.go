package embed

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// ProviderType selects an embedding backend.
type ProviderType string

const (
	// ProviderOllama uses the Ollama API (default, local and free).
	ProviderOllama ProviderType = "ollama"

	// ProviderOpenAI uses the OpenAI embeddings API.
	ProviderOpenAI ProviderType = "openai"

	// ProviderStatic uses hash-based embeddings (offline fallback).
	ProviderStatic ProviderType = "static"
)

// FactoryConfig collects the settings needed to build a backend.
type FactoryConfig struct {
	Provider       ProviderType
	Model          string
	OllamaHost     string
	Dimensions     int
	Timeout        time.Duration
	MaxRetries     int
	QueryCacheSize int
}

// NewEmbedder creates an embedder for the configured provider and wraps it
// with the query LRU cache. The GROUNDER_EMBEDDER environment variable
// overrides the provider.
//
// Backend initialization failure is returned to the caller; the engine
// degrades to keyword-only retrieval rather than crashing.
func NewEmbedder(ctx context.Context, cfg FactoryConfig) (Embedder, error) {
	provider := cfg.Provider
	if env := os.Getenv("GROUNDER_EMBEDDER"); env != "" {
		provider = ProviderType(strings.ToLower(env))
	}

	var embedder Embedder
	var err error

	switch provider {
	case ProviderOllama:
		embedder, err = NewOllamaEmbedder(ctx, OllamaConfig{
			Host:       cfg.OllamaHost,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		})
	case ProviderOpenAI:
		embedder, err = NewOpenAIEmbedder(ctx, OpenAIConfig{
			Model: cfg.Model,
		})
	case ProviderStatic:
		embedder = NewStaticEmbedder()
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", provider)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("embedding backend ready",
		slog.String("provider", string(provider)),
		slog.String("model", embedder.ModelName()))

	return NewCachedEmbedder(embedder, cfg.QueryCacheSize), nil
}
