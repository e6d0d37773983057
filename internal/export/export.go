// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the per-run report files: the master CSV, the JSON
// archive, BibTeX references, the research-gaps text report, and the
// session metadata record. All files live in a session directory named
// after the query and the run timestamp.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

const (
	masterCSVFile = "MASTER_REPORT_FINAL.csv"
	jsonFile      = "research_data.json"
	bibtexFile    = "references.bib"
	gapReportFile = "RESEARCH_GAPS.txt"
	sessionFile   = "session.yaml"
)

// csvColumns is the fixed column order of the master report.
var csvColumns = []string{
	"relevance_score", "source_count", "ieee_authors", "title", "venue",
	"year", "citations", "doi", "url", "abstract", "keywords", "tldr",
	"recency_boosted",
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Session owns one run's output directory and metadata.
type Session struct {
	// Dir is the created session directory.
	Dir string

	Query             string
	StartTime         time.Time
	EndTime           time.Time
	SuccessfulEngines []string
	FailedEngines     []string
}

// NewSession creates the session directory SROrch_{query}_{timestamp} under
// outputDir, with the query squashed to underscore-separated alphanumerics.
func NewSession(outputDir, query string, now time.Time) (*Session, error) {
	clean := strings.Trim(nonAlnum.ReplaceAllString(query, "_"), "_")
	name := fmt.Sprintf("SROrch_%s_%s", clean, now.Format("20060102_150405"))

	dir := filepath.Join(outputDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}

	return &Session{Dir: dir, Query: query, StartTime: now}, nil
}

// WriteCSV writes the master report with the fixed column set.
func (s *Session) WriteCSV(papers []types.AggregatedPaper) error {
	f, err := os.Create(filepath.Join(s.Dir, masterCSVFile))
	if err != nil {
		return fmt.Errorf("creating master CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		row := []string{
			strconv.Itoa(p.RelevanceScore),
			strconv.Itoa(p.SourceCount),
			p.AuthorsDisplay,
			p.Title,
			p.Venue,
			p.Year,
			strconv.Itoa(p.CitationsInt),
			p.DOI,
			p.URL,
			p.Abstract,
			p.Keywords,
			p.TLDR,
			strconv.FormatBool(p.RecencyBoosted),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// jsonExport is the shape of the JSON archive.
type jsonExport struct {
	Metadata jsonMetadata            `json:"metadata"`
	Papers   []types.AggregatedPaper `json:"papers"`
}

type jsonMetadata struct {
	Query                string   `json:"query"`
	SearchDate           string   `json:"search_date"`
	TotalPapers          int      `json:"total_papers"`
	SuccessfulEngines    []string `json:"successful_engines"`
	FailedEngines        []string `json:"failed_engines"`
	ExecutionTimeSeconds float64  `json:"execution_time_seconds"`
}

// WriteJSON writes the full result set with run metadata.
func (s *Session) WriteJSON(papers []types.AggregatedPaper) error {
	out := jsonExport{
		Metadata: jsonMetadata{
			Query:                s.Query,
			SearchDate:           s.StartTime.Format(time.RFC3339),
			TotalPapers:          len(papers),
			SuccessfulEngines:    s.SuccessfulEngines,
			FailedEngines:        s.FailedEngines,
			ExecutionTimeSeconds: s.EndTime.Sub(s.StartTime).Seconds(),
		},
		Papers: papers,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, jsonFile), data, 0o644); err != nil {
		return fmt.Errorf("writing JSON export: %w", err)
	}
	return nil
}

// LoadJSON reads papers back from a JSON archive produced by WriteJSON.
// Used by the standalone gaps subcommand.
func LoadJSON(path string) (string, []types.AggregatedPaper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("reading JSON export: %w", err)
	}
	var in jsonExport
	if err := json.Unmarshal(data, &in); err != nil {
		return "", nil, fmt.Errorf("parsing JSON export: %w", err)
	}
	return in.Metadata.Query, in.Papers, nil
}

// WriteBibTeX writes one entry per paper. The entry type follows the venue:
// inproceedings for conferences, misc for arXiv preprints, article otherwise.
func (s *Session) WriteBibTeX(papers []types.AggregatedPaper) error {
	var b strings.Builder
	for i, p := range papers {
		firstAuthor := strings.ReplaceAll(strings.TrimSpace(strings.SplitN(p.AuthorsDisplay, ",", 2)[0]), " ", "")
		if firstAuthor == "" {
			firstAuthor = "Unknown"
		}
		year := p.Year
		if year == "" {
			year = "n.d."
		}
		citeKey := fmt.Sprintf("%s%s_%d", firstAuthor, year, i+1)

		venue := strings.ToLower(p.Venue)
		entryType := "article"
		switch {
		case strings.Contains(venue, "conference") || strings.Contains(venue, "proceedings"):
			entryType = "inproceedings"
		case strings.Contains(venue, "arxiv"):
			entryType = "misc"
		}

		fmt.Fprintf(&b, "@%s{%s,\n", entryType, citeKey)
		fmt.Fprintf(&b, "  title = {%s},\n", p.Title)
		fmt.Fprintf(&b, "  author = {%s},\n", p.AuthorsDisplay)
		fmt.Fprintf(&b, "  year = {%s},\n", year)

		if p.Venue != "" {
			venueKey := "journal"
			if entryType == "inproceedings" {
				venueKey = "booktitle"
			}
			fmt.Fprintf(&b, "  %s = {%s},\n", venueKey, p.Venue)
		}
		if p.DOI != "" && p.DOI != "N/A" {
			fmt.Fprintf(&b, "  doi = {%s},\n", p.DOI)
		}
		if p.URL != "" {
			fmt.Fprintf(&b, "  url = {%s},\n", p.URL)
		}
		if p.Abstract != "" {
			abstract := strings.NewReplacer("{", `\{`, "}", `\}`).Replace(p.Abstract)
			fmt.Fprintf(&b, "  abstract = {%s},\n", abstract)
		}
		fmt.Fprintf(&b, "  note = {Citations: %d, Sources: %d}\n", p.CitationsInt, p.SourceCount)
		b.WriteString("}\n\n")
	}

	if err := os.WriteFile(filepath.Join(s.Dir, bibtexFile), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing BibTeX export: %w", err)
	}
	return nil
}

// WriteGapReport writes the human-readable research-gaps report. Gaps are
// written in the report's order, which the miner has already sorted by
// composite impact.
func (s *Session) WriteGapReport(report types.GapReport) error {
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	b.WriteString("=== IDENTIFIED RESEARCH GAPS & FUTURE DIRECTIONS ===\n")
	fmt.Fprintf(&b, "QUERY: %s\n", s.Query)
	fmt.Fprintf(&b, "DATE: %s\n", s.StartTime.Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY:\n")
	fmt.Fprintf(&b, "  Total gaps found: %d\n", report.TotalGapsFound)
	fmt.Fprintf(&b, "  Papers analyzed: %d\n", report.PapersAnalyzed)
	fmt.Fprintf(&b, "  Pattern types used: %s\n", strings.Join(report.PatternPacksUsed, ", "))
	fmt.Fprintf(&b, "  Top keywords: %s\n", topKeywordList(report.TopKeywords, 5))
	b.WriteString("\n" + rule + "\n\n")

	if len(report.Categories) > 0 {
		b.WriteString("GAP CATEGORIES:\n")
		b.WriteString(rule + "\n")
		for _, c := range sortedCategories(report.Categories) {
			fmt.Fprintf(&b, "  - %s: %d gaps\n", c.name, c.count)
		}
		b.WriteString("\n" + rule + "\n\n")
	}

	if len(report.Gaps) > 0 {
		b.WriteString("DETAILED GAP STATEMENTS (Sorted by Citation Impact):\n")
		b.WriteString(rule + "\n\n")
		for i, gap := range report.Gaps {
			fmt.Fprintf(&b, "[%d] SOURCE: %s (%s)\n", i+1, gap.Title, gap.Year)
			fmt.Fprintf(&b, "    CATEGORY: %s\n", gap.Category)
			fmt.Fprintf(&b, "    CITATIONS: %d\n", gap.Citations)
			fmt.Fprintf(&b, "    GAP SIGNAL: %q\n", gap.Statement)
			b.WriteString(strings.Repeat("-", 60) + "\n\n")
		}
	} else {
		b.WriteString("No explicit research gap statements found in the analyzed papers.\n")
		b.WriteString("This may indicate:\n")
		b.WriteString("  - Papers don't have abstracts available\n")
		b.WriteString("  - Gap statements use different phrasing\n")
		b.WriteString("  - Field is well-established with fewer open questions\n\n")
	}

	if len(report.TopKeywords) > 0 {
		b.WriteString("\n" + rule + "\n")
		b.WriteString("TOP RESEARCH KEYWORDS (Emerging Themes):\n")
		b.WriteString(rule + "\n\n")
		for _, kw := range report.TopKeywords {
			fmt.Fprintf(&b, "  - %s (appears in %d papers)\n", titleCase(kw.Keyword), kw.Count)
		}
	}

	if err := os.WriteFile(filepath.Join(s.Dir, gapReportFile), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing gap report: %w", err)
	}
	return nil
}

// sessionRecord is the session.yaml shape.
type sessionRecord struct {
	Query             string   `yaml:"query"`
	StartTime         string   `yaml:"start_time"`
	EndTime           string   `yaml:"end_time"`
	DurationSeconds   float64  `yaml:"duration_seconds"`
	TotalPapers       int      `yaml:"total_papers"`
	SuccessfulEngines []string `yaml:"successful_engines"`
	FailedEngines     []string `yaml:"failed_engines,omitempty"`
}

// WriteMetadata writes the session.yaml record. Call after EndTime is set.
func (s *Session) WriteMetadata(totalPapers int) error {
	rec := sessionRecord{
		Query:             s.Query,
		StartTime:         s.StartTime.Format(time.RFC3339),
		EndTime:           s.EndTime.Format(time.RFC3339),
		DurationSeconds:   s.EndTime.Sub(s.StartTime).Seconds(),
		TotalPapers:       totalPapers,
		SuccessfulEngines: s.SuccessfulEngines,
		FailedEngines:     s.FailedEngines,
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding session metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, sessionFile), data, 0o644); err != nil {
		return fmt.Errorf("writing session metadata: %w", err)
	}
	return nil
}

type categoryCount struct {
	name  string
	count int
}

// sortedCategories orders a category histogram by count descending, name
// ascending on ties.
func sortedCategories(m map[string]int) []categoryCount {
	out := make([]categoryCount, 0, len(m))
	for name, count := range m {
		out = append(out, categoryCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}

func topKeywordList(kws []types.KeywordFrequency, n int) string {
	if len(kws) > n {
		kws = kws[:n]
	}
	names := make([]string, len(kws))
	for i, kw := range kws {
		names[i] = kw.Keyword
	}
	return strings.Join(names, ", ")
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
