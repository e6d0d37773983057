// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SentenceAnalysis holds the linguistic features extracted from a single
// gap-candidate sentence. Owned by exactly one GapStatement, never shared.
// All scores are deterministic given the sentence text.
type SentenceAnalysis struct {
	HasNegation      bool `json:"has_negation" yaml:"has_negation"`
	HasUncertainty   bool `json:"has_uncertainty" yaml:"has_uncertainty"`
	IsFutureOriented bool `json:"is_future_oriented" yaml:"is_future_oriented"`
	IsRecommendation bool `json:"is_recommendation" yaml:"is_recommendation"`
	IsLimitation     bool `json:"is_limitation" yaml:"is_limitation"`

	// SentenceLength is the whitespace-token count; WordCount is the
	// size of the distinct lowercase word set.
	SentenceLength int `json:"sentence_length" yaml:"sentence_length"`
	WordCount      int `json:"word_count" yaml:"word_count"`

	// ComplexityScore, CertaintyScore, and Confidence are in [0,1].
	// Confidence gates inclusion against GapConfig.MinConfidence.
	ComplexityScore float64 `json:"complexity_score" yaml:"complexity_score"`
	CertaintyScore  float64 `json:"certainty_score" yaml:"certainty_score"`
	Confidence      float64 `json:"confidence" yaml:"confidence"`
}

// GapStatement is a sentence matched against the pattern library as
// expressing a research limitation or open question, carrying the
// bibliographic fields of the paper it came from.
type GapStatement struct {
	Title     string `json:"title" yaml:"title"`
	Year      string `json:"year" yaml:"year"`
	Citations int    `json:"citations" yaml:"citations"`
	DOI       string `json:"doi" yaml:"doi"`
	Venue     string `json:"venue" yaml:"venue"`
	Authors   string `json:"authors" yaml:"authors"`

	// Statement is the exact matched sentence.
	Statement string `json:"gap_statement" yaml:"gap_statement"`

	// Category is the label of the first pattern that matched;
	// Subcategory refines it with temporal/population/method/scale hints.
	Category    string `json:"category" yaml:"category"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`

	Analysis SentenceAnalysis `json:"analysis" yaml:"analysis"`

	// Keywords holds up to five context keywords pulled from the sentence.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// PatternMatched is a truncated diagnostic copy of the winning pattern.
	PatternMatched string `json:"pattern_matched" yaml:"pattern_matched"`

	// ClusterSize and ClusterMembers are populated only after clustering.
	ClusterSize    int      `json:"cluster_size,omitempty" yaml:"cluster_size,omitempty"`
	ClusterMembers []string `json:"cluster_members,omitempty" yaml:"cluster_members,omitempty"`
}

// PriorityGap is a clustered gap re-scored by the actionability rubric.
// The rubric is deliberately separate from the report's composite sort:
// one orders by general relevance, the other curates what to act on first.
type PriorityGap struct {
	GapStatement `yaml:",inline"`

	PriorityScore   int      `json:"priority_score" yaml:"priority_score"`
	PriorityReasons []string `json:"priority_reasons" yaml:"priority_reasons"`
}

// KeywordFrequency is one entry in the report's keyword table: the keyword,
// how many papers it appeared in, and its share of all keyword mentions.
type KeywordFrequency struct {
	Keyword string  `json:"keyword" yaml:"keyword"`
	Count   int     `json:"count" yaml:"count"`
	Share   float64 `json:"share" yaml:"share"`
}

// AuthorGapCount pairs an author display string with the number of gap
// statements found in that author's papers.
type AuthorGapCount struct {
	Author string `json:"author" yaml:"author"`
	Count  int    `json:"count" yaml:"count"`
}

// RecurringGap is a gap statement prefix that appeared more than once
// before clustering.
type RecurringGap struct {
	Statement string `json:"statement" yaml:"statement"`
	Count     int    `json:"count" yaml:"count"`
}

// GapReport is the full output of the gap-mining pipeline. A corpus with
// no abstracts yields a well-formed report with zero counts, not an error.
type GapReport struct {
	TotalGapsFound           int            `json:"total_gaps_found" yaml:"total_gaps_found"`
	UniqueGapsAfterClustering int           `json:"unique_gaps_after_clustering" yaml:"unique_gaps_after_clustering"`
	Gaps                     []GapStatement `json:"gap_list" yaml:"gap_list"`

	TopKeywords  []KeywordFrequency `json:"top_keywords" yaml:"top_keywords"`
	Categories   map[string]int     `json:"gap_categories" yaml:"gap_categories"`
	Subcategories map[string]int    `json:"subcategories" yaml:"subcategories"`

	// PatternPacksUsed lists the activated pack names; DomainScores maps
	// conditional packs to the number of query terms that activated them.
	PatternPacksUsed []string       `json:"pattern_types_used" yaml:"pattern_types_used"`
	DomainScores     map[string]int `json:"domain_scores" yaml:"domain_scores"`

	PapersAnalyzed    int            `json:"papers_analyzed" yaml:"papers_analyzed"`
	SentencesAnalyzed int            `json:"sentences_analyzed" yaml:"sentences_analyzed"`
	TemporalDistribution map[string]int `json:"temporal_distribution" yaml:"temporal_distribution"`

	HighImpactGaps     int              `json:"high_impact_gaps" yaml:"high_impact_gaps"`
	HighConfidenceGaps int              `json:"high_confidence_gaps" yaml:"high_confidence_gaps"`
	RecurringGaps      []RecurringGap   `json:"recurring_gaps" yaml:"recurring_gaps"`
	TopAuthors         []AuthorGapCount `json:"authors_with_most_gaps" yaml:"authors_with_most_gaps"`
}

// GapSummaryStats is the statistical digest computed over a GapReport.
type GapSummaryStats struct {
	TotalGaps      int     `json:"total_gaps" yaml:"total_gaps"`
	UniqueGaps     int     `json:"unique_gaps" yaml:"unique_gaps"`
	ReductionRatio float64 `json:"reduction_ratio" yaml:"reduction_ratio"`
	PapersWithGaps int     `json:"papers_with_gaps" yaml:"papers_with_gaps"`
	GapsPerPaper   float64 `json:"avg_gaps_per_paper" yaml:"avg_gaps_per_paper"`

	AvgCitations    float64 `json:"avg_citations" yaml:"avg_citations"`
	MedianCitations int     `json:"median_citations" yaml:"median_citations"`
	MaxCitations    int     `json:"max_citations" yaml:"max_citations"`
	HighImpactCount int     `json:"high_impact_count" yaml:"high_impact_count"`

	AvgConfidence       float64 `json:"avg_confidence" yaml:"avg_confidence"`
	HighConfidenceCount int     `json:"high_confidence_count" yaml:"high_confidence_count"`
	LowConfidenceCount  int     `json:"low_confidence_count" yaml:"low_confidence_count"`

	YearDistribution map[string]int `json:"year_distribution" yaml:"year_distribution"`
}
