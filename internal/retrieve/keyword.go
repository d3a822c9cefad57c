package retrieve

import (
	"strings"

	"github.com/evidenceai/grounder/internal/evidence"
)

// KeywordRelevance scores a source by exact term overlap with the query.
// The content term set spans title and content, and title matches weigh
// double on top, so a term found only in the title scores 3x a
// content-only match. The sum is divided by the query term count.
// Returns 0 for an empty query or no overlap.
func KeywordRelevance(query string, src *evidence.Source) float64 {
	queryTerms := termSet(query)
	if len(queryTerms) == 0 {
		return 0
	}

	contentTerms := termSet(src.Title + " " + src.Content)
	titleTerms := termSet(src.Title)

	var contentOverlap, titleOverlap int
	for term := range queryTerms {
		if _, ok := contentTerms[term]; ok {
			contentOverlap++
		}
		if _, ok := titleTerms[term]; ok {
			titleOverlap++
		}
	}

	return (float64(contentOverlap) + 2*float64(titleOverlap)) / float64(len(queryTerms))
}

// termSet lowercases and splits text into a unique whitespace-delimited
// term set. No stemming; overlap is exact.
func termSet(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
