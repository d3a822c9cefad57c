// Package config loads and validates the grounder engine configuration.
//
// Configuration hierarchy:
//  1. Hardcoded defaults (NewConfig)
//  2. YAML config file (Load)
//  3. Environment variables (GROUNDER_*), highest priority
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete grounder configuration.
type Config struct {
	Paths      PathsConfig      `yaml:"paths"`
	Embeddings EmbeddingsConfig `yaml:"embeddings"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Watch      WatchConfig      `yaml:"watch"`
	LogLevel   string           `yaml:"log_level"`
}

// PathsConfig configures input and cache locations.
type PathsConfig struct {
	// SourcesConfig is the YAML file of curated evidence sources.
	SourcesConfig string `yaml:"sources_config"`
	// DatasetDir is scanned recursively for *.jsonl bulk datasets.
	DatasetDir string `yaml:"dataset_dir"`
	// CacheDir holds the embedding cache archives.
	CacheDir string `yaml:"cache_dir"`
}

// EmbeddingsConfig configures the embedding provider.
type EmbeddingsConfig struct {
	// Provider selects the backend: "ollama", "openai", or "static".
	Provider string `yaml:"provider"`
	// Model is the embedding model identifier.
	Model string `yaml:"model"`
	// OllamaHost is the Ollama API endpoint.
	OllamaHost string `yaml:"ollama_host"`
	// Dimensions is the embedding dimension (0 = auto-detect).
	Dimensions int `yaml:"dimensions"`
	// BatchSize is the number of sources encoded per batch during
	// index construction.
	BatchSize int `yaml:"batch_size"`
	// Workers bounds concurrent batch encodes during index builds.
	Workers int `yaml:"workers"`
	// Timeout applies to a single encode call.
	Timeout time.Duration `yaml:"timeout"`
	// MaxRetries is the per-call retry budget for transient failures.
	MaxRetries int `yaml:"max_retries"`
	// QueryCacheSize is the LRU capacity for query embeddings.
	QueryCacheSize int `yaml:"query_cache_size"`
}

// RetrievalConfig tunes ranking behavior.
type RetrievalConfig struct {
	// DefaultTopK is used when the caller passes k <= 0.
	DefaultTopK int `yaml:"default_top_k"`
	// MaxTopK caps the requested result count.
	MaxTopK int `yaml:"max_top_k"`
	// CuratedBoost multiplies the similarity of curated sources.
	CuratedBoost float64 `yaml:"curated_boost"`
	// ANNMinCandidates is the candidate-set size above which the
	// per-domain ANN graph is consulted instead of brute-force scoring.
	ANNMinCandidates int `yaml:"ann_min_candidates"`
}

// TelemetryConfig configures the local query metrics store.
type TelemetryConfig struct {
	// Enabled toggles metrics collection.
	Enabled bool `yaml:"enabled"`
	// DBPath is the SQLite file for persisted metrics.
	DBPath string `yaml:"db_path"`
}

// WatchConfig configures automatic reload on input changes.
type WatchConfig struct {
	// Enabled toggles file watching in long-running modes.
	Enabled bool `yaml:"enabled"`
	// Debounce coalesces bursts of file events before a reload.
	Debounce time.Duration `yaml:"debounce"`
}

// NewConfig returns the hardcoded defaults.
func NewConfig() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Paths: PathsConfig{
			SourcesConfig: filepath.Join(dataDir, "evidence_sources.yaml"),
			DatasetDir:    filepath.Join(dataDir, "datasets"),
			CacheDir:      filepath.Join(dataDir, "embeddings_cache"),
		},
		Embeddings: EmbeddingsConfig{
			Provider:       "ollama",
			Model:          "all-minilm",
			OllamaHost:     "http://localhost:11434",
			BatchSize:      10,
			Workers:        4,
			Timeout:        60 * time.Second,
			MaxRetries:     3,
			QueryCacheSize: 1000,
		},
		Retrieval: RetrievalConfig{
			DefaultTopK:      3,
			MaxTopK:          10,
			CuratedBoost:     1.2,
			ANNMinCandidates: 256,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			DBPath:  filepath.Join(dataDir, "metrics.db"),
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 2 * time.Second,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from path, merging over defaults and applying
// environment overrides. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides fields from GROUNDER_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GROUNDER_EMBEDDER"); v != "" {
		c.Embeddings.Provider = v
	}
	if v := os.Getenv("GROUNDER_OLLAMA_HOST"); v != "" {
		c.Embeddings.OllamaHost = v
	}
	if v := os.Getenv("GROUNDER_EMBED_MODEL"); v != "" {
		c.Embeddings.Model = v
	}
	if v := os.Getenv("GROUNDER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GROUNDER_DATASET_DIR"); v != "" {
		c.Paths.DatasetDir = v
	}
	if v := os.Getenv("GROUNDER_CACHE_DIR"); v != "" {
		c.Paths.CacheDir = v
	}
	if v := os.Getenv("GROUNDER_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Embeddings.BatchSize = n
		}
	}
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	switch c.Embeddings.Provider {
	case "ollama", "openai", "static":
	default:
		return fmt.Errorf("unknown embeddings provider %q (supported: ollama, openai, static)", c.Embeddings.Provider)
	}

	if c.Embeddings.BatchSize <= 0 {
		c.Embeddings.BatchSize = 10
	}
	if c.Embeddings.Workers <= 0 {
		c.Embeddings.Workers = 4
	}
	if c.Embeddings.Timeout <= 0 {
		c.Embeddings.Timeout = 60 * time.Second
	}
	if c.Retrieval.DefaultTopK <= 0 {
		c.Retrieval.DefaultTopK = 3
	}
	if c.Retrieval.MaxTopK <= 0 {
		c.Retrieval.MaxTopK = 10
	}
	if c.Retrieval.DefaultTopK > c.Retrieval.MaxTopK {
		return fmt.Errorf("default_top_k %d exceeds max_top_k %d", c.Retrieval.DefaultTopK, c.Retrieval.MaxTopK)
	}
	if c.Retrieval.CuratedBoost <= 0 {
		c.Retrieval.CuratedBoost = 1.2
	}
	if c.Retrieval.ANNMinCandidates <= 0 {
		c.Retrieval.ANNMinCandidates = 256
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = 2 * time.Second
	}
	return nil
}

// defaultDataDir returns ~/.grounder, honoring GROUNDER_DATA_DIR.
func defaultDataDir() string {
	if dir := os.Getenv("GROUNDER_DATA_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".grounder"
	}
	return filepath.Join(home, ".grounder")
}
