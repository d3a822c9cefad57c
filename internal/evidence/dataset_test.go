package evidence

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDatasets_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "finqa.jsonl", strings.Join([]string{
		`{"question": "What is compound interest?", "answer": "Interest on interest."}`,
		`not json at all`,
		`{"answer": "missing question"}`,
		``,
		`{"question": "What is an ETF?", "answer": "A traded fund.", "extra": "ignored"}`,
	}, "\n"))

	repo := NewRepository(discardLogger())
	repo.loadDatasets(dir)

	assert.Equal(t, 2, repo.BulkCount())

	src, ok := repo.Get("dataset_fin_0000")
	require.True(t, ok)
	assert.Equal(t, "finance", src.Domain)
	assert.Equal(t, TypeQADataset, src.Type)
	assert.InDelta(t, BulkReliability, src.Reliability, 1e-9)
	assert.Equal(t, "Q: What is compound interest?\n\nA: Interest on interest.", src.Content)
	assert.True(t, strings.HasPrefix(src.Title, "Finance Q&A: "))
	assert.True(t, strings.HasSuffix(src.Title, "..."))
}

func TestLoadDatasets_RecursiveScanAndDomainInference(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "pubmedqa"), "train.jsonl",
		`{"question": "Does aspirin help?", "answer": "Sometimes."}`)
	writeDataset(t, filepath.Join(dir, "misc"), "trivia.jsonl",
		`{"question": "Sky color?", "answer": "Blue."}`)

	repo := NewRepository(discardLogger())
	repo.loadDatasets(dir)

	require.Equal(t, 2, repo.BulkCount())
	med, ok := repo.Get("dataset_med_0000")
	require.True(t, ok)
	assert.Equal(t, "medical", med.Domain)

	gen, ok := repo.Get("dataset_gen_0000")
	require.True(t, ok)
	assert.Equal(t, "general", gen.Domain)
}

func TestLoadDatasets_SameDomainFilesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "finqa_a.jsonl", `{"question": "Q one?", "answer": "A."}`)
	writeDataset(t, dir, "finqa_b.jsonl", `{"question": "Q two?", "answer": "B."}`)

	repo := NewRepository(discardLogger())
	repo.loadDatasets(dir)

	assert.Equal(t, 2, repo.BulkCount())
}

func TestLoadDatasets_MissingDirIsNotFatal(t *testing.T) {
	repo := NewRepository(discardLogger())
	repo.loadDatasets(filepath.Join(t.TempDir(), "nope"))
	assert.Zero(t, repo.BulkCount())
}

func TestQuestionPreview(t *testing.T) {
	long := strings.Repeat("x", 100)
	assert.Len(t, questionPreview(long), questionPreviewLen)
	assert.Equal(t, "short", questionPreview("short"))
}

func TestQuestionPreview_DoesNotSplitRunes(t *testing.T) {
	// A two-byte rune straddles the preview boundary; the cut backs up
	// instead of emitting half a rune.
	q := strings.Repeat("a", questionPreviewLen-1) + "é and more text to exceed the limit"
	got := questionPreview(q)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", questionPreviewLen-1), got)
}
