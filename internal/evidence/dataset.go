package evidence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// datasetPublicationDate is stamped on bulk sources; the datasets carry no
// per-record dates.
const datasetPublicationDate = "2024-10-05"

// questionPreviewLen bounds the question excerpt used as the bulk source
// title.
const questionPreviewLen = 60

// qaRecord is one line of a question/answer dataset file. Extra fields
// are ignored.
type qaRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// loadDatasets scans datasetDir recursively for *.jsonl files and
// synthesizes one bulk source per well-formed record. A missing or
// unreadable directory yields zero bulk sources, never an error.
func (r *Repository) loadDatasets(datasetDir string) {
	if datasetDir == "" {
		return
	}

	var files []string
	err := filepath.WalkDir(datasetDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil || len(files) == 0 {
		r.logger.Info("no dataset files found, using curated sources only",
			slog.String("dir", datasetDir))
		return
	}

	// Ids number continuously per domain so two files of the same
	// domain never collide.
	seq := make(map[string]int)
	total := 0
	for _, path := range files {
		total += r.loadDatasetFile(path, inferDomain(path), seq)
	}

	r.logger.Info("hybrid evidence set active",
		slog.Int("curated", len(r.curated)),
		slog.Int("bulk", total))
}

// loadDatasetFile loads one JSONL file. Malformed lines are skipped and
// counted; they never fail the file.
func (r *Repository) loadDatasetFile(path, domain string, seq map[string]int) int {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Warn("could not open dataset file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return 0
	}
	defer func() { _ = f.Close() }()

	prefix := domainIDPrefix(domain)
	loaded, skipped := 0, 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec qaRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil || rec.Question == "" {
			skipped++
			continue
		}

		id := fmt.Sprintf("dataset_%s_%04d", prefix, seq[prefix])
		seq[prefix]++
		r.Add(&Source{
			ID:              id,
			Title:           fmt.Sprintf("%s Q&A: %s...", domainTitle(domain), questionPreview(rec.Question)),
			Content:         fmt.Sprintf("Q: %s\n\nA: %s", rec.Question, rec.Answer),
			Type:            TypeQADataset,
			Domain:          domain,
			PublicationDate: datasetPublicationDate,
			Reliability:     BulkReliability,
		}, ClassBulk)
		loaded++
	}

	if err := scanner.Err(); err != nil {
		r.logger.Warn("dataset scan stopped early",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}

	r.logger.Info("loaded dataset sources",
		slog.String("path", path),
		slog.String("domain", domain),
		slog.Int("loaded", loaded),
		slog.Int("skipped", skipped))
	return loaded
}

// inferDomain guesses the domain bucket from the dataset file path,
// matching the finqa/pubmedqa layout conventions.
func inferDomain(path string) string {
	p := strings.ToLower(path)
	switch {
	case strings.Contains(p, "fin"):
		return "finance"
	case strings.Contains(p, "med"), strings.Contains(p, "pubmed"):
		return "medical"
	default:
		return "general"
	}
}

// domainIDPrefix returns the short id segment for a domain.
func domainIDPrefix(domain string) string {
	switch domain {
	case "finance":
		return "fin"
	case "medical":
		return "med"
	default:
		return "gen"
	}
}

// domainTitle returns the display form of a domain for bulk titles.
func domainTitle(domain string) string {
	switch domain {
	case "finance":
		return "Finance"
	case "medical":
		return "Medical"
	default:
		return "General"
	}
}

// questionPreview truncates a question to the title preview length,
// backing up so a multi-byte rune is never split.
func questionPreview(q string) string {
	if len(q) <= questionPreviewLen {
		return q
	}
	cut := questionPreviewLen
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}
