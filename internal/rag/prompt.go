package rag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/evidenceai/grounder/internal/evidence"
)

// promptContentLimit bounds the content excerpt per source in the prompt
// block.
const promptContentLimit = 400

// noEvidenceMessage is emitted when no sources were retrieved.
const noEvidenceMessage = "No specific evidence sources available for this query."

// FormatForPrompt renders ranked sources as the evidence block consumed
// by the downstream generation step. The header, the four lines per
// source, and the trailing citation instructions are a compatibility
// contract; do not restructure them.
func FormatForPrompt(sources []*evidence.Source) string {
	if len(sources) == 0 {
		return noEvidenceMessage
	}

	var b strings.Builder
	b.WriteString("=== EVIDENCE SOURCES ===\n\n")

	for i, src := range sources {
		fmt.Fprintf(&b, "[Source %d] %s\n", i+1, src.Title)
		fmt.Fprintf(&b, "Type: %s\n", src.Type)
		fmt.Fprintf(&b, "Reliability: %.0f%%\n", src.Reliability*100)
		fmt.Fprintf(&b, "Content: %s...\n", truncate(src.Content, promptContentLimit))
		if src.URL != "" {
			fmt.Fprintf(&b, "URL: %s\n", src.URL)
		}
		b.WriteString("\n")
	}

	b.WriteString("=== CITATION INSTRUCTIONS ===\n")
	b.WriteString("You MUST cite these sources in your response using [Source X] format.\n")
	b.WriteString("Example: 'Low-dose aspirin reduces cardiovascular risk [Source 1].'\n\n")

	return b.String()
}

var sourceMarkerRe = regexp.MustCompile(`(?m)^\[Source (\d+)\] (.*)$`)

// ParseSourceMarkers extracts the source numbers and titles from a
// formatted evidence block, in document order.
func ParseSourceMarkers(block string) []SourceMarker {
	matches := sourceMarkerRe.FindAllStringSubmatch(block, -1)
	markers := make([]SourceMarker, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		markers = append(markers, SourceMarker{Number: n, Title: m[2]})
	}
	return markers
}

// SourceMarker is one parsed `[Source N] title` line.
type SourceMarker struct {
	Number int
	Title  string
}

// truncate cuts s to at most n bytes, backing up so a multi-byte rune
// is never split.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
