// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholar-orchestrator
// pipeline: the normalized paper record every source adapter produces, the
// aggregated record the scoring engine emits, and the research-gap report
// structures.
package types

// PaperRecord is the common normalized shape every source adapter must
// produce. Source APIs report fields inconsistently (venue as string or
// list, year as int or "n.d.", citations as int or "N/A"), so adapters
// normalize at their boundary and the core never sees raw provider JSON.
type PaperRecord struct {
	// Title is the paper title. Required; it is the fallback dedup key
	// when no informative DOI is present.
	Title string `json:"title" yaml:"title"`

	// AuthorsDisplay is the formatted author string for display
	// ("I. Surname", "I. Surname1 and I. Surname2", "I. Surname et al.",
	// or "Unknown Author"). Not used in dedup or scoring.
	AuthorsDisplay string `json:"ieee_authors" yaml:"ieee_authors"`

	// SortKey is the first author's full name, used only for an
	// adapter's own output ordering. "Unknown" when no authors.
	SortKey string `json:"-" yaml:"-"`

	// Venue is the journal or conference name, already joined to a
	// single string at the adapter boundary.
	Venue string `json:"venue" yaml:"venue"`

	// Year is the publication year as reported by the source: a 4-digit
	// numeric string when known, otherwise "n.d." or empty.
	Year string `json:"year" yaml:"year"`

	// Citations is the citation count as reported: a decimal string,
	// or "N/A" for sources that do not track citations.
	Citations string `json:"citations" yaml:"citations"`

	// DOI is the persistent identifier, or "N/A" when the source does
	// not report one.
	DOI string `json:"doi" yaml:"doi"`

	// URL links to the paper at the source.
	URL string `json:"url" yaml:"url"`

	// Abstract, TLDR, and Keywords are free text consumed only by the
	// gap-mining pipeline. Keywords is comma-separated.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	TLDR     string `json:"tldr,omitempty" yaml:"tldr,omitempty"`
	Keywords string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Source identifies the adapter that produced this record
	// (e.g. "arxiv", "semantic_scholar").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// AggregatedPaper is a PaperRecord enriched with merge-derived fields.
// Created once per unique identity during the merge pass, mutated in place
// as duplicates fold in, read-only after scoring.
type AggregatedPaper struct {
	PaperRecord `yaml:",inline"`

	// SourceCount is the number of distinct adapters that produced a
	// record collapsing to this identity. Always >= 1.
	SourceCount int `json:"source_count" yaml:"source_count"`

	// CitationsInt is the maximum citation count observed across all
	// contributing records.
	CitationsInt int `json:"citations_int" yaml:"citations_int"`

	// RelevanceScore is the computed composite ranking score.
	RelevanceScore int `json:"relevance_score" yaml:"relevance_score"`

	// RecencyBoosted reports whether the recency multiplier was applied.
	RecencyBoosted bool `json:"recency_boosted" yaml:"recency_boosted"`
}
