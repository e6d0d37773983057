// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

const defaultUserAgent = "scholar-orchestrator/0.1"

func init() {
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("limit_per_source", 15)
	viper.SetDefault("max_workers", 20)

	viper.SetDefault("enable_arxiv", true)
	viper.SetDefault("enable_semantic_scholar", true)
	viper.SetDefault("enable_crossref", true)
	viper.SetDefault("enable_openalex", true)
	viper.SetDefault("enable_pubmed", true)
	viper.SetDefault("enable_europe_pmc", true)
	viper.SetDefault("enable_dblp", true)
	viper.SetDefault("enable_plos", true)

	viper.SetDefault("source_weight", 100.0)
	viper.SetDefault("citation_weight", 1.0)
	viper.SetDefault("high_consensus_threshold", 4)
	viper.SetDefault("recency_boost", true)
	viper.SetDefault("recency_years", 5)
	viper.SetDefault("recency_multiplier", 1.2)

	viper.SetDefault("min_confidence", 0.3)
	viper.SetDefault("similarity_threshold", 0.65)

	viper.SetDefault("output_dir", ".")
	viper.SetDefault("export_formats", []string{"csv", "json", "bibtex"})
	viper.SetDefault("abstract_limit", 5)

	viper.SetDefault("db_path", "history/scholar.db")
	viper.SetDefault("max_results", 20)
}

// pipelineConfig assembles the stage configurations from viper, which has
// already layered defaults, the config file, and environment variables.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Source: types.SourceConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("timeout"),
				UserAgent: viper.GetString("user_agent"),
			},
			LimitPerSource:        viper.GetInt("limit_per_source"),
			MaxWorkers:            viper.GetInt("max_workers"),
			EnableArxiv:           viper.GetBool("enable_arxiv"),
			EnableSemanticScholar: viper.GetBool("enable_semantic_scholar"),
			EnableCrossref:        viper.GetBool("enable_crossref"),
			EnableOpenAlex:        viper.GetBool("enable_openalex"),
			EnablePubMed:          viper.GetBool("enable_pubmed"),
			EnableEuropePMC:       viper.GetBool("enable_europe_pmc"),
			EnableDBLP:            viper.GetBool("enable_dblp"),
			EnablePLOS:            viper.GetBool("enable_plos"),
			ContactEmail:          viper.GetString("contact_email"),
		},
		Scoring: types.ScoringConfig{
			SourceWeight:           viper.GetFloat64("source_weight"),
			CitationWeight:         viper.GetFloat64("citation_weight"),
			HighConsensusThreshold: viper.GetInt("high_consensus_threshold"),
			RecencyBoost:           viper.GetBool("recency_boost"),
			RecencyYears:           viper.GetInt("recency_years"),
			RecencyMultiplier:      viper.GetFloat64("recency_multiplier"),
		},
		Gaps: types.GapConfig{
			MinConfidence:       viper.GetFloat64("min_confidence"),
			SimilarityThreshold: viper.GetFloat64("similarity_threshold"),
		},
		Export: types.ExportConfig{
			OutputDir:     viper.GetString("output_dir"),
			Formats:       viper.GetStringSlice("export_formats"),
			AbstractLimit: viper.GetInt("abstract_limit"),
		},
		History: types.HistoryConfig{
			DBPath:     viper.GetString("db_path"),
			MaxResults: viper.GetInt("max_results"),
		},
	}
}
