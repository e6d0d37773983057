// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// MineGaps scans the abstracts and TLDRs of a ranked corpus for research
// gap statements and returns the full report: clustered gap list sorted
// by composite score, category and keyword tables, and summary counts.
//
// A corpus where no paper carries an abstract or TLDR yields a well-formed
// report with zero counts and empty lists. MineGaps is pure computation
// over already-validated input and does not fail.
func MineGaps(papers []types.AggregatedPaper, query string, cfg types.GapConfig) types.GapReport {
	patterns, packsUsed, domainScores := selectPacks(query)

	report := types.GapReport{
		Categories:           make(map[string]int),
		TemporalDistribution: make(map[string]int),
		PatternPacksUsed:     packsUsed,
		DomainScores:         domainScores,
	}

	var found []types.GapStatement
	var allKeywords []string
	authorOrder := []string{}
	authorCounts := make(map[string]int)

	for i := range papers {
		paper := &papers[i]
		if paper.Abstract == "" && paper.TLDR == "" {
			continue
		}
		report.PapersAnalyzed++

		text := paper.TLDR + " " + paper.Abstract
		sentences := splitSentences(text)
		report.SentencesAnalyzed += len(sentences)

		if decade, ok := decadeOf(paper.Year); ok {
			report.TemporalDistribution[decade]++
		}

		for _, sentence := range sentences {
			sentence = strings.TrimSpace(sentence)
			if len(strings.Fields(sentence)) < 5 || len(sentence) > 500 {
				continue
			}

			// First matching pattern wins: one gap category per
			// sentence, to avoid double-counting.
			matched := -1
			for pi, p := range patterns {
				if p.Expr.MatchString(sentence) {
					matched = pi
					break
				}
			}
			if matched < 0 {
				continue
			}

			analysis := AnalyzeSentence(sentence)
			if analysis.Confidence < cfg.MinConfidence {
				continue
			}

			p := patterns[matched]
			gap := types.GapStatement{
				Title:          orDefault(paper.Title, "Unknown Title"),
				Year:           orDefault(paper.Year, "N/A"),
				Citations:      paper.CitationsInt,
				DOI:            orDefault(paper.DOI, "N/A"),
				Venue:          orDefault(paper.Venue, "N/A"),
				Authors:        orDefault(paper.AuthorsDisplay, "Unknown"),
				Statement:      sentence,
				Category:       p.Category,
				Subcategory:    detailedSubcategory(sentence, p.Category),
				Analysis:       analysis,
				Keywords:       contextKeywords(sentence, query),
				PatternMatched: truncatePattern(p.Expr.String()),
			}

			found = append(found, gap)
			report.Categories[gap.Category]++
			if _, seen := authorCounts[gap.Authors]; !seen {
				authorOrder = append(authorOrder, gap.Authors)
			}
			authorCounts[gap.Authors]++
		}

		if paper.Keywords != "" {
			for _, kw := range strings.Split(paper.Keywords, ",") {
				kw = strings.ToLower(strings.TrimSpace(kw))
				if kw != "" {
					allKeywords = append(allKeywords, kw)
				}
			}
		}
	}

	clustered := clusterGaps(found, cfg.SimilarityThreshold)

	sort.SliceStable(clustered, func(i, j int) bool {
		return compositeScore(clustered[i]) > compositeScore(clustered[j])
	})

	report.TotalGapsFound = len(found)
	report.UniqueGapsAfterClustering = len(clustered)
	report.Gaps = clustered
	report.TopKeywords = keywordTable(allKeywords, 20)
	report.Subcategories = subcategoryCounts(clustered)
	report.RecurringGaps = recurringGaps(found, 10)
	report.TopAuthors = topAuthors(authorOrder, authorCounts, 5)

	for _, g := range clustered {
		if g.Citations >= 100 {
			report.HighImpactGaps++
		}
		if g.Analysis.Confidence >= 0.7 {
			report.HighConfidenceGaps++
		}
	}

	return report
}

// compositeScore is the report's general relevance sort: citation impact,
// detection confidence, a flat bonus for gaps from 2020 onward, and a
// bonus per absorbed cluster member.
func compositeScore(g types.GapStatement) float64 {
	score := float64(g.Citations) + g.Analysis.Confidence*100
	if year, ok := atoiDigits(g.Year); ok && year >= 2020 {
		score += 50
	}
	size := g.ClusterSize
	if size < 1 {
		size = 1
	}
	return score + float64(size)*10
}

// splitSentences splits text after sentence-ending punctuation followed
// by whitespace, consuming the whitespace run.
func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) {
			continue
		}
		// Boundary only when the punctuation is followed by whitespace.
		if i+1 >= len(runes) || !isSpace(runes[i+1]) {
			continue
		}
		out = append(out, string(runes[start:i+1]))
		i++
		for i < len(runes) && isSpace(runes[i]) {
			i++
		}
		start = i
		i--
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
}

// contextKeyword patterns pull domain-specific terms out of a gap
// sentence for the keyword annotation.
var contextKeywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:neural|deep|machine|artificial|reinforcement|supervised|unsupervised)\s+\w+`),
	regexp.MustCompile(`(?i)\b(?:algorithm|model|architecture|framework|approach|method)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:dataset|benchmark|corpus)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:classification|regression|clustering|generation|prediction)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:patient|clinical|therapeutic|diagnostic|prognostic)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:disease|syndrome|disorder|condition|pathology)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:treatment|therapy|intervention|regimen|dosage)\w*\b`),
	regexp.MustCompile(`(?i)\b(?:biomarker|genetic|molecular|cellular)\w*\b`),
}

// contextKeywords extracts up to five distinct keywords from the sentence:
// domain-term matches plus query words longer than three characters that
// appear in the sentence.
func contextKeywords(sentence, query string) []string {
	var keywords []string
	seen := make(map[string]bool)
	add := func(kw string) {
		if !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	for _, re := range contextKeywordPatterns {
		for _, m := range re.FindAllString(sentence, -1) {
			add(m)
		}
	}

	sentenceLower := strings.ToLower(sentence)
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if len(term) > 3 && strings.Contains(sentenceLower, term) {
			add(term)
		}
	}

	if len(keywords) > 5 {
		keywords = keywords[:5]
	}
	return keywords
}

// detailedSubcategory refines the matched category with a qualifier when
// the sentence carries temporal, population, methodological, or scale
// hints.
func detailedSubcategory(sentence, category string) string {
	lower := strings.ToLower(sentence)

	if containsAny(lower, []string{"long-term", "longitudinal", "future", "prospective"}) {
		return category + " - Temporal"
	}
	if containsAny(lower, []string{"population", "patient", "participant", "subject", "demographic"}) {
		return category + " - Population-specific"
	}
	if containsAny(lower, []string{"method", "approach", "technique", "methodology", "design"}) {
		return category + " - Methodological"
	}
	if containsAny(lower, []string{"large-scale", "small-scale", "sample size", "underpowered"}) {
		return category + " - Scale-related"
	}
	return category
}

func subcategoryCounts(gaps []types.GapStatement) map[string]int {
	counts := make(map[string]int)
	for _, g := range gaps {
		sub := g.Subcategory
		if sub == "" {
			sub = "Unknown"
		}
		counts[sub]++
	}
	return counts
}

// keywordTable counts keyword occurrences and returns the top entries by
// count (first-seen order for ties) with each keyword's share of all
// mentions.
func keywordTable(keywords []string, limit int) []types.KeywordFrequency {
	counts := make(map[string]int)
	var order []string
	for _, kw := range keywords {
		if counts[kw] == 0 {
			order = append(order, kw)
		}
		counts[kw]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	total := len(keywords)
	if total < 1 {
		total = 1
	}
	table := make([]types.KeywordFrequency, len(order))
	for i, kw := range order {
		table[i] = types.KeywordFrequency{
			Keyword: kw,
			Count:   counts[kw],
			Share:   round3(float64(counts[kw]) / float64(total)),
		}
	}
	return table
}

// recurringGaps finds pre-cluster statements whose 100-character prefix
// appeared more than once.
func recurringGaps(found []types.GapStatement, limit int) []types.RecurringGap {
	counts := make(map[string]int)
	var order []string
	for _, g := range found {
		prefix := truncate(g.Statement, 100)
		if counts[prefix] == 0 {
			order = append(order, prefix)
		}
		counts[prefix]++
	}

	var out []types.RecurringGap
	for _, prefix := range order {
		if counts[prefix] > 1 {
			out = append(out, types.RecurringGap{Statement: prefix, Count: counts[prefix]})
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

func topAuthors(order []string, counts map[string]int, limit int) []types.AuthorGapCount {
	sorted := append([]string{}, order...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return counts[sorted[i]] > counts[sorted[j]]
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]types.AuthorGapCount, len(sorted))
	for i, a := range sorted {
		out[i] = types.AuthorGapCount{Author: a, Count: counts[a]}
	}
	return out
}

// decadeOf maps a numeric year string to its decade label ("2020s").
func decadeOf(year string) (string, bool) {
	year = strings.TrimSpace(year)
	if _, ok := atoiDigits(year); !ok {
		return "", false
	}
	prefix := year
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return prefix + "0s", true
}

// atoiDigits parses a non-empty decimal-digit string.
func atoiDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func truncatePattern(p string) string {
	// Strip the case-insensitivity flag prepended at compile time so the
	// diagnostic mirrors the pattern table entry.
	p = strings.TrimPrefix(p, "(?i)")
	if len(p) > 50 {
		return p[:50] + "..."
	}
	return p
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
