package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	grounderrs "github.com/evidenceai/grounder/internal/errors"
)

// Default Ollama settings.
const (
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultOllamaModel = "all-minilm"

	// ollamaConnectTimeout bounds the initial health check.
	ollamaConnectTimeout = 5 * time.Second
)

// OllamaConfig configures the Ollama backend.
type OllamaConfig struct {
	Host       string
	Model      string
	Dimensions int
	Timeout    time.Duration
	MaxRetries int
	// SkipHealthCheck disables the startup probe (used in tests).
	SkipHealthCheck bool
}

// OllamaEmbedder generates embeddings using Ollama's HTTP API.
type OllamaEmbedder struct {
	client *http.Client
	config OllamaConfig

	mu     sync.RWMutex
	closed bool
	dims   int
}

// Verify interface implementation at compile time.
var _ Embedder = (*OllamaEmbedder)(nil)

// ollamaEmbedRequest is the /api/embed request body.
type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// ollamaEmbedResponse is the /api/embed response body.
type ollamaEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// NewOllamaEmbedder creates a new Ollama embedder and probes the backend.
// A failed probe returns a retryable backend-unavailable error; the caller
// decides whether to degrade to keyword-only retrieval.
func NewOllamaEmbedder(ctx context.Context, cfg OllamaConfig) (*OllamaEmbedder, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultOllamaHost
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOllamaModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	// Per-request context timeouts, not a static client timeout, so the
	// caller's deadline always wins.
	e := &OllamaEmbedder{
		client: &http.Client{},
		config: cfg,
		dims:   cfg.Dimensions,
	}

	if !cfg.SkipHealthCheck {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		if !e.Available(checkCtx) {
			return nil, grounderrs.BackendError(
				fmt.Sprintf("ollama not reachable at %s", cfg.Host), nil).
				WithSuggestion("start Ollama or set GROUNDER_EMBEDDER=static")
		}
		if e.dims == 0 {
			vec, err := e.Embed(checkCtx, "dimension probe")
			if err != nil {
				return nil, grounderrs.BackendError("failed to detect embedding dimensions", err)
			}
			e.dims = len(vec)
		}
	}

	return e, nil
}

// Embed generates an embedding for a single text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vecs))
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one API call,
// retrying transient failures with backoff.
func (e *OllamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if len(texts) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(texts), MaxBatchSize)
	}

	e.mu.RLock()
	if e.closed {
		e.mu.RUnlock()
		return nil, fmt.Errorf("embedder is closed")
	}
	e.mu.RUnlock()

	var result [][]float32
	retryCfg := grounderrs.DefaultRetryConfig()
	retryCfg.MaxAttempts = e.config.MaxRetries

	err := grounderrs.Retry(ctx, retryCfg, func() error {
		vecs, err := e.doEmbed(ctx, texts)
		if err != nil {
			return grounderrs.New(grounderrs.ErrCodeBatchEncode, err.Error(), err)
		}
		result = vecs
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range result {
		result[i] = normalizeVector(result[i])
	}
	return result, nil
}

// doEmbed performs one /api/embed call.
func (e *OllamaEmbedder) doEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	reqCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	body, err := json.Marshal(ollamaEmbedRequest{Model: e.config.Model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, e.config.Host+"/api/embed", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(parsed.Embeddings))
	}
	return parsed.Embeddings, nil
}

// Dimensions returns the embedding dimension.
func (e *OllamaEmbedder) Dimensions() int {
	return e.dims
}

// ModelName returns the model identifier.
func (e *OllamaEmbedder) ModelName() string {
	return e.config.Model
}

// Available checks whether the Ollama API responds.
func (e *OllamaEmbedder) Available(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, ollamaConnectTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, e.config.Host+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode == http.StatusOK
}

// Close releases resources.
func (e *OllamaEmbedder) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.client.CloseIdleConnections()
	return nil
}
