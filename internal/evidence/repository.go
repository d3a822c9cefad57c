package evidence

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/evidenceai/grounder/configs"
	grounderrs "github.com/evidenceai/grounder/internal/errors"
)

// Repository holds all loaded evidence sources, indexed by id and domain.
// It is built once and read-only afterwards; rebuilds construct a new
// Repository and swap the reference.
type Repository struct {
	sources     map[string]*Source
	domainIndex map[string][]string
	curated     map[string]struct{}
	bulk        map[string]struct{}
	logger      *slog.Logger
}

// sourceYAML mirrors one entry of the curated sources config.
type sourceYAML struct {
	ID               string  `yaml:"id"`
	Title            string  `yaml:"title"`
	Content          string  `yaml:"content"`
	SourceType       string  `yaml:"source_type"`
	URL              string  `yaml:"url"`
	PublicationDate  string  `yaml:"publication_date"`
	ReliabilityScore float64 `yaml:"reliability_score"`
	Domain           string  `yaml:"domain"`
}

// sourcesConfigYAML mirrors the curated sources config document.
type sourcesConfigYAML struct {
	MedicalSources []sourceYAML `yaml:"medical_sources"`
	FinanceSources []sourceYAML `yaml:"finance_sources"`
}

// NewRepository creates an empty repository.
func NewRepository(logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		sources:     make(map[string]*Source),
		domainIndex: make(map[string][]string),
		curated:     make(map[string]struct{}),
		bulk:        make(map[string]struct{}),
		logger:      logger,
	}
}

// Load builds a repository from the curated config at configPath and the
// bulk datasets under datasetDir. Curated sources load first so bulk id
// collisions never displace them. Load never fails outright: a broken
// config degrades to the built-in default set, a missing dataset dir just
// yields zero bulk sources.
func Load(configPath, datasetDir string, logger *slog.Logger) *Repository {
	r := NewRepository(logger)
	r.loadCurated(configPath)
	r.loadDatasets(datasetDir)
	return r
}

// loadCurated loads the curated source lists, falling back to the embedded
// default set on any failure.
func (r *Repository) loadCurated(configPath string) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if configPath != "" && !os.IsNotExist(err) {
			r.logger.Warn("failed to read sources config, using built-in defaults",
				slog.String("path", configPath),
				slog.String("error", err.Error()))
		} else {
			r.logger.Warn("sources config not found, using built-in defaults",
				slog.String("path", configPath))
		}
		r.loadBuiltin()
		return
	}

	if err := r.addCuratedYAML(data); err != nil {
		gerr := grounderrs.ConfigError("failed to parse sources config", err).
			WithDetail("path", configPath)
		r.logger.Warn("curated source load failed, using built-in defaults",
			slog.String("error", gerr.Error()))
		r.loadBuiltin()
	}
}

// loadBuiltin parses the embedded default source set. The embedded
// document is validated by tests, so this cannot fail at runtime.
func (r *Repository) loadBuiltin() {
	if err := r.addCuratedYAML([]byte(configs.DefaultSourcesConfig)); err != nil {
		r.logger.Error("embedded default sources failed to parse",
			slog.String("error", err.Error()))
	}
}

// addCuratedYAML parses a curated config document and registers its
// sources. Domain defaults are inferred from the list name.
func (r *Repository) addCuratedYAML(data []byte) error {
	var cfg sourcesConfigYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	if len(cfg.MedicalSources) == 0 && len(cfg.FinanceSources) == 0 {
		return fmt.Errorf("config contains no source lists")
	}

	added := 0
	for _, sy := range cfg.MedicalSources {
		if r.addCurated(sy, "medical") {
			added++
		}
	}
	for _, sy := range cfg.FinanceSources {
		if r.addCurated(sy, "finance") {
			added++
		}
	}

	r.logger.Info("loaded curated evidence sources",
		slog.Int("count", added),
		slog.Int("medical", len(r.domainIndex["medical"])),
		slog.Int("finance", len(r.domainIndex["finance"])))
	return nil
}

// addCurated converts one YAML entry and registers it.
func (r *Repository) addCurated(sy sourceYAML, defaultDomain string) bool {
	if sy.ID == "" || sy.Title == "" {
		r.logger.Warn("skipping curated source with missing id or title",
			slog.String("id", sy.ID))
		return false
	}
	domain := sy.Domain
	if domain == "" {
		domain = defaultDomain
	}
	reliability := sy.ReliabilityScore
	if reliability <= 0 {
		reliability = DefaultReliability
	}
	return r.Add(&Source{
		ID:              sy.ID,
		Title:           sy.Title,
		Content:         strings.TrimSpace(sy.Content),
		Type:            SourceType(sy.SourceType),
		Domain:          domain,
		URL:             sy.URL,
		PublicationDate: sy.PublicationDate,
		Reliability:     reliability,
	}, ClassCurated)
}

// Add registers a source under the given class. Id collisions are
// first-writer-wins: the existing source stays and the new one is
// dropped with a warning. Curated sources load before bulk ones, so a
// bulk record can never displace a curated record.
func (r *Repository) Add(s *Source, class Class) bool {
	if _, exists := r.sources[s.ID]; exists {
		r.logger.Warn("duplicate source id, keeping first",
			slog.String("id", s.ID),
			slog.String("rejected_class", class.String()))
		return false
	}

	r.sources[s.ID] = s
	r.domainIndex[s.Domain] = append(r.domainIndex[s.Domain], s.ID)
	switch class {
	case ClassCurated:
		r.curated[s.ID] = struct{}{}
	case ClassBulk:
		r.bulk[s.ID] = struct{}{}
	}
	return true
}

// Get returns a source by id.
func (r *Repository) Get(id string) (*Source, bool) {
	s, ok := r.sources[id]
	return s, ok
}

// ClassOf returns the load class of a source id.
func (r *Repository) ClassOf(id string) Class {
	if _, ok := r.curated[id]; ok {
		return ClassCurated
	}
	if _, ok := r.bulk[id]; ok {
		return ClassBulk
	}
	return ClassUnknown
}

// IsCurated reports whether the id belongs to a curated source.
func (r *Repository) IsCurated(id string) bool {
	_, ok := r.curated[id]
	return ok
}

// IDsForDomain returns the candidate ids for a domain. An unknown domain
// falls back to every source id.
func (r *Repository) IDsForDomain(domain string) []string {
	if ids, ok := r.domainIndex[domain]; ok && len(ids) > 0 {
		return ids
	}
	return r.AllIDs()
}

// HasDomain reports whether the domain has its own bucket.
func (r *Repository) HasDomain(domain string) bool {
	ids, ok := r.domainIndex[domain]
	return ok && len(ids) > 0
}

// Domains returns all domain bucket names, sorted.
func (r *Repository) Domains() []string {
	out := make([]string, 0, len(r.domainIndex))
	for d := range r.domainIndex {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// AllIDs returns every source id, sorted for determinism.
func (r *Repository) AllIDs() []string {
	out := make([]string, 0, len(r.sources))
	for id := range r.sources {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of sources.
func (r *Repository) Len() int {
	return len(r.sources)
}

// CuratedCount returns the number of curated sources.
func (r *Repository) CuratedCount() int {
	return len(r.curated)
}

// BulkCount returns the number of bulk sources.
func (r *Repository) BulkCount() int {
	return len(r.bulk)
}
