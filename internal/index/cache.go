package index

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

// cacheKeyLen is the hex length of the cache key embedded in the file name.
const cacheKeyLen = 12

// cacheArchive is the on-disk embedding cache format.
type cacheArchive struct {
	Dims    int
	Vectors map[string][]float32
}

// CacheKey derives the cache key from the current source-id set. The set
// is sorted first, so the key is order-independent: any addition or
// removal of a source changes the key and transparently invalidates the
// cache. A source whose title or content changes without an id change
// does NOT invalidate the cache; this is a known limitation.
func CacheKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return hex.EncodeToString(sum[:])[:cacheKeyLen]
}

// CachePath returns the archive path for a cache key.
func CachePath(cacheDir, key string) string {
	return filepath.Join(cacheDir, fmt.Sprintf("embeddings_%s.gob", key))
}

// loadCache reads an archive and verifies it covers every current id.
// Any read, decode, or coverage failure is a cache miss.
func loadCache(path string, ids []string) (map[string][]float32, int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, false
	}
	defer func() { _ = f.Close() }()

	var archive cacheArchive
	if err := gob.NewDecoder(f).Decode(&archive); err != nil {
		return nil, 0, false
	}
	if archive.Vectors == nil {
		return nil, 0, false
	}
	for _, id := range ids {
		if _, ok := archive.Vectors[id]; !ok {
			return nil, 0, false
		}
	}
	return archive.Vectors, archive.Dims, true
}

// saveCache persists the archive atomically (temp file + rename) under a
// cross-process file lock, so concurrent builds do not interleave writes.
func saveCache(cacheDir, path string, dims int, vectors map[string][]float32) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	lock := flock.New(filepath.Join(cacheDir, ".cache.lock"))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire cache lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(cacheDir, "embeddings_*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := gob.NewEncoder(tmp).Encode(cacheArchive{Dims: dims, Vectors: vectors}); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename cache file: %w", err)
	}
	return nil
}
