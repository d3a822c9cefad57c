package cite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSnippet_ShortFirstSentence(t *testing.T) {
	content := "Aspirin reduces cardiovascular risk. It also has side effects."
	assert.Equal(t, "Aspirin reduces cardiovascular risk.", ExtractSnippet(content))
}

func TestExtractSnippet_SingleSentence(t *testing.T) {
	assert.Equal(t, "Short note.", ExtractSnippet("Short note"))
}

func TestExtractSnippet_LongFirstSentenceTruncates(t *testing.T) {
	content := strings.Repeat("word ", 60) + "end. Second sentence."
	snippet := ExtractSnippet(content)

	assert.True(t, strings.HasSuffix(snippet, "..."))
	assert.LessOrEqual(t, len(snippet), maxSnippetLength)
	// Truncation lands on a word boundary, never mid-word.
	trimmed := strings.TrimSuffix(snippet, "...")
	assert.False(t, strings.HasSuffix(trimmed, "wor"))
	for _, w := range strings.Fields(trimmed) {
		assert.Equal(t, "word", w)
	}
}
