package cite

import (
	"fmt"
	"strings"
	"time"

	"github.com/evidenceai/grounder/internal/evidence"
)

// Style selects a citation reference format.
type Style string

// Supported citation styles. Unknown styles fall back to simple.
const (
	StyleSimple  Style = "simple"
	StyleAPA     Style = "apa"
	StyleMLA     Style = "mla"
	StyleChicago Style = "chicago"
)

// Citation is one formatted reference to an evidence source.
type Citation struct {
	SourceID string
	// Snippet is the first sentence of the source content, bounded to
	// 150 characters.
	Snippet string
	// SourceType carries the provenance tag for downstream scoring.
	SourceType evidence.SourceType
	// Relevance is copied from the source's reliability at format time.
	Relevance float64
	// Formatted is the style-specific reference string.
	Formatted string
}

// now is stubbed in tests for the MLA access date.
var now = time.Now

// Format generates numbered citations for a ranked source list. Numbering
// starts at 1 and follows the input order.
func Format(sources []*evidence.Source, style Style) []Citation {
	citations := make([]Citation, 0, len(sources))
	for i, src := range sources {
		citations = append(citations, Citation{
			SourceID:   src.ID,
			Snippet:    ExtractSnippet(src.Content),
			SourceType: src.Type,
			Relevance:  src.Reliability,
			Formatted:  formatReference(src, i+1, style),
		})
	}
	return citations
}

func formatReference(src *evidence.Source, number int, style Style) string {
	switch style {
	case StyleAPA:
		return formatAPA(src, number)
	case StyleMLA:
		return formatMLA(src, number)
	case StyleChicago:
		return formatChicago(src, number)
	default:
		return formatSimple(src, number)
	}
}

func formatSimple(src *evidence.Source, number int) string {
	return fmt.Sprintf("[%d] %s", number, src.Title)
}

func formatAPA(src *evidence.Source, number int) string {
	urlPart := ""
	if src.URL != "" {
		urlPart = " Retrieved from " + src.URL
	}
	return fmt.Sprintf("[%d] %s. (%s). %s.%s",
		number, src.Title, dateOrND(src), typeLabel(src.Type), urlPart)
}

func formatMLA(src *evidence.Source, number int) string {
	urlPart := ""
	if src.URL != "" {
		urlPart = " Web. " + now().Format("02 Jan 2006") + "."
	}
	return fmt.Sprintf("[%d] %q %s, %s.%s",
		number, src.Title+".", typeLabel(src.Type), dateOrND(src), urlPart)
}

func formatChicago(src *evidence.Source, number int) string {
	urlPart := ""
	if src.URL != "" {
		urlPart = " " + src.URL
	}
	return fmt.Sprintf("[%d] %q %s, %s.%s",
		number, src.Title+",", typeLabel(src.Type), dateOrND(src), urlPart)
}

func dateOrND(src *evidence.Source) string {
	if src.PublicationDate == "" {
		return "n.d."
	}
	return src.PublicationDate
}

// typeLabel renders a source type tag as a title-cased label, e.g.
// "clinical_guideline" becomes "Clinical Guideline".
func typeLabel(t evidence.SourceType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
