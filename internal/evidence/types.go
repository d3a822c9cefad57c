// Package evidence defines the evidence source model and the repository
// that loads curated and bulk sources into an immutable, domain-indexed
// in-memory set.
package evidence

// SourceType tags the provenance category of an evidence source.
type SourceType string

// Known source types. Unrecognized values are carried through verbatim;
// they score the default reliability weight.
const (
	TypeClinicalGuideline SourceType = "clinical_guideline"
	TypeAcademicResearch  SourceType = "academic_research"
	TypeFinancialTextbook SourceType = "financial_textbook"
	TypeFinancialPlanning SourceType = "financial_planning"
	TypeMarketAnalysis    SourceType = "market_analysis"
	TypeGovernment        SourceType = "government_publication"
	TypeNewsReport        SourceType = "news_report"
	TypeQADataset         SourceType = "qa_dataset"
)

// typeReliabilityWeights maps each source type to the additive weight used
// by the citation-quality reliability heuristic. An explicit table instead
// of substring matching on the tag keeps new types from silently scoring
// as something they are not.
var typeReliabilityWeights = map[SourceType]float64{
	TypeAcademicResearch:  0.30,
	TypeClinicalGuideline: 0.25,
	TypeFinancialTextbook: 0.25,
	TypeFinancialPlanning: 0.25,
	TypeGovernment:        0.20,
	TypeNewsReport:        0.10,
	TypeMarketAnalysis:    0.05,
	TypeQADataset:         0.05,
}

// defaultTypeReliabilityWeight applies to unknown source types.
const defaultTypeReliabilityWeight = 0.05

// TypeReliabilityWeight returns the reliability weight contribution for a
// source type.
func TypeReliabilityWeight(t SourceType) float64 {
	if w, ok := typeReliabilityWeights[t]; ok {
		return w
	}
	return defaultTypeReliabilityWeight
}

// Class distinguishes how a source entered the repository.
type Class int

// Source classes. The class is assigned at load time and immutable; it
// drives the curated ranking boost.
const (
	ClassUnknown Class = iota
	ClassCurated
	ClassBulk
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassCurated:
		return "curated"
	case ClassBulk:
		return "bulk"
	default:
		return "unknown"
	}
}

// Source is a single evidence record. Sources are created at load time
// and read-only afterwards.
type Source struct {
	// ID is globally unique across the repository.
	ID string
	// Title and Content are the searchable text.
	Title   string
	Content string
	// Type is the provenance tag.
	Type SourceType
	// Domain buckets the source for retrieval ("medical", "finance", ...).
	Domain string
	// URL and PublicationDate are optional metadata.
	URL             string
	PublicationDate string
	// Reliability is the trust score in [0,1].
	Reliability float64
}

// EmbeddingText returns the text embedded for this source.
func (s *Source) EmbeddingText() string {
	return s.Title + ". " + s.Content
}

// DefaultReliability is used when the config omits reliability_score.
const DefaultReliability = 0.8

// BulkReliability is the fixed trust score for dataset-synthesized sources,
// deliberately below curated defaults.
const BulkReliability = 0.75
