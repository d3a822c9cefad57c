// Package cite turns ranked evidence sources into citation records with
// short snippets and style-specific reference strings.
package cite

import "strings"

// maxSnippetLength bounds the extracted snippet.
const maxSnippetLength = 150

// ExtractSnippet returns the first sentence of content, truncated at a
// word boundary with an ellipsis when it exceeds the length bound.
func ExtractSnippet(content string) string {
	first, _, _ := strings.Cut(content, ". ")
	if len(first) <= maxSnippetLength {
		return first + "."
	}

	words := strings.Fields(first)
	var b strings.Builder
	length := 0
	for _, w := range words {
		if length+len(w)+1 > maxSnippetLength-3 {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
		length += len(w) + 1
	}
	return b.String() + "..."
}
