// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges paper records from all source adapters into a
// unique set, accumulates cross-source consensus counts, and computes a
// composite relevance score.
package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// Option adjusts the behavior of MergeAndScore.
type Option func(*options)

type options struct {
	now             func() time.Time
	onHighConsensus func(types.AggregatedPaper)
}

// WithNow substitutes the clock used for recency eligibility. Tests use
// this to pin the current year.
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithOnHighConsensus registers a callback fired exactly once per identity,
// at the moment its source count first reaches the configured
// high-consensus threshold.
func WithOnHighConsensus(fn func(types.AggregatedPaper)) Option {
	return func(o *options) { o.onHighConsensus = fn }
}

// MergeAndScore collapses records believed to reference the same paper
// into one AggregatedPaper each, then scores and ranks the unique set.
// Records are processed in input order; the returned slice is ordered
// descending by relevance score with ties kept in merge order.
//
// Malformed individual records degrade gracefully: unparseable citation
// counts become 0 and unparseable years are simply not recency-eligible.
// The function never fails on well-typed input.
func MergeAndScore(papers []types.PaperRecord, cfg types.ScoringConfig, opts ...Option) []types.AggregatedPaper {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int) // identity → position in unique
	var unique []*types.AggregatedPaper

	for _, p := range papers {
		key := identityKey(p)
		cites := coerceCitations(p.Citations)

		if i, ok := index[key]; ok {
			entry := unique[i]
			entry.SourceCount++
			if cites > entry.CitationsInt {
				entry.CitationsInt = cites
				entry.Citations = p.Citations
			}
			if o.onHighConsensus != nil && cfg.HighConsensusThreshold > 0 &&
				entry.SourceCount == cfg.HighConsensusThreshold {
				o.onHighConsensus(*entry)
			}
			continue
		}

		index[key] = len(unique)
		unique = append(unique, &types.AggregatedPaper{
			PaperRecord:  p,
			SourceCount:  1,
			CitationsInt: cites,
		})
	}

	currentYear := o.now().Year()
	out := make([]types.AggregatedPaper, len(unique))
	for i, entry := range unique {
		base := float64(entry.SourceCount)*cfg.SourceWeight +
			float64(entry.CitationsInt)*cfg.CitationWeight

		if cfg.RecencyBoost {
			if year, ok := parseYear(entry.Year); ok && year >= currentYear-cfg.RecencyYears {
				base *= cfg.RecencyMultiplier
				entry.RecencyBoosted = true
			}
		}

		entry.RelevanceScore = int(base)
		out[i] = *entry
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RelevanceScore > out[j].RelevanceScore
	})
	return out
}

// identityKey returns the dedup key for a record: the lowercased DOI when
// it is present and informative (longer than 5 characters), otherwise the
// title stripped to lowercase alphanumerics. Sources report DOIs
// inconsistently, but normalized title text is a robust fallback for the
// same paper indexed with minor formatting differences.
func identityKey(p types.PaperRecord) string {
	doi := strings.ToLower(strings.TrimSpace(p.DOI))
	if doi != "" && doi != "n/a" && len(doi) > 5 {
		return doi
	}
	return squashTitle(p.Title)
}

// squashTitle removes every non-alphanumeric character from the
// lowercased, trimmed title.
func squashTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// coerceCitations converts a raw citation field to a non-negative count.
// Only decimal-digit strings parse; anything else ("N/A", empty, negative)
// is 0.
func coerceCitations(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// parseYear reports the year as an int when the field is a 4-digit number
// in the plausible publication range [1900, 2100].
func parseYear(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if len(s) != 4 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1900 || n > 2100 {
		return 0, false
	}
	return n, true
}
