// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-orchestrator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig holds settings for the concurrent adapter fan-out.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// LimitPerSource is the maximum number of records requested from
	// each adapter (default 15).
	LimitPerSource int `json:"limit_per_source" yaml:"limit_per_source" mapstructure:"limit_per_source"`

	// MaxWorkers bounds the number of adapters fetching concurrently
	// (default 20).
	MaxWorkers int `json:"max_workers" yaml:"max_workers" mapstructure:"max_workers"`

	// Per-source enable switches. Sources requiring an API key are
	// skipped when no key is loaded regardless of these flags.
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv" mapstructure:"enable_arxiv"`
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar" mapstructure:"enable_semantic_scholar"`
	EnableCrossref        bool `json:"enable_crossref" yaml:"enable_crossref" mapstructure:"enable_crossref"`
	EnableOpenAlex        bool `json:"enable_openalex" yaml:"enable_openalex" mapstructure:"enable_openalex"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed" mapstructure:"enable_pubmed"`
	EnableEuropePMC       bool `json:"enable_europe_pmc" yaml:"enable_europe_pmc" mapstructure:"enable_europe_pmc"`
	EnableDBLP            bool `json:"enable_dblp" yaml:"enable_dblp" mapstructure:"enable_dblp"`
	EnablePLOS            bool `json:"enable_plos" yaml:"enable_plos" mapstructure:"enable_plos"`

	// ContactEmail is sent to APIs with a polite pool (OpenAlex, Crossref).
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty" mapstructure:"contact_email"`
}

// ScoringConfig holds the tunable weights of the deduplication and
// relevance-scoring engine.
type ScoringConfig struct {
	// SourceWeight and CitationWeight are the linear coefficients of the
	// base score: sources*SourceWeight + citations*CitationWeight.
	SourceWeight   float64 `json:"source_weight" yaml:"source_weight" mapstructure:"source_weight"`
	CitationWeight float64 `json:"citation_weight" yaml:"citation_weight" mapstructure:"citation_weight"`

	// HighConsensusThreshold is the source count at which the one-time
	// high-consensus event fires for an identity (default 4).
	HighConsensusThreshold int `json:"high_consensus_threshold" yaml:"high_consensus_threshold" mapstructure:"high_consensus_threshold"`

	// RecencyBoost enables the multiplicative bonus for papers published
	// within the last RecencyYears years.
	RecencyBoost      bool    `json:"recency_boost" yaml:"recency_boost" mapstructure:"recency_boost"`
	RecencyYears      int     `json:"recency_years" yaml:"recency_years" mapstructure:"recency_years"`
	RecencyMultiplier float64 `json:"recency_multiplier" yaml:"recency_multiplier" mapstructure:"recency_multiplier"`
}

// DefaultScoringConfig returns the scoring weights used when no
// configuration file overrides them.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		SourceWeight:           100,
		CitationWeight:         1,
		HighConsensusThreshold: 4,
		RecencyBoost:           true,
		RecencyYears:           5,
		RecencyMultiplier:      1.2,
	}
}

// GapConfig holds settings for the gap-mining pipeline.
type GapConfig struct {
	// MinConfidence is the analyzer confidence below which a pattern
	// match is discarded (default 0.3).
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence" mapstructure:"min_confidence"`

	// SimilarityThreshold is the lexical similarity at or above which a
	// gap statement is absorbed into an existing cluster (default 0.65).
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
}

// DefaultGapConfig returns the gap-mining settings used when no
// configuration file overrides them.
func DefaultGapConfig() GapConfig {
	return GapConfig{
		MinConfidence:       0.3,
		SimilarityThreshold: 0.65,
	}
}

// ExportConfig holds settings for report generation.
type ExportConfig struct {
	// OutputDir is the directory under which per-run session directories
	// are created (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Formats selects the export formats: any of "csv", "json", "bibtex".
	Formats []string `json:"export_formats" yaml:"export_formats" mapstructure:"export_formats"`

	// AbstractLimit is how many top-ranked papers receive the deep-look
	// abstract enrichment pass before export (default 5).
	AbstractLimit int `json:"abstract_limit" yaml:"abstract_limit" mapstructure:"abstract_limit"`
}

// HistoryConfig holds settings for the run archive.
type HistoryConfig struct {
	// DBPath is the SQLite database path (default "history/scholar.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`

	// MaxResults is the default maximum number of history search
	// results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring" mapstructure:"scoring"`
	Gaps    GapConfig     `json:"gaps" yaml:"gaps" mapstructure:"gaps"`
	Export  ExportConfig  `json:"export" yaml:"export" mapstructure:"export"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
