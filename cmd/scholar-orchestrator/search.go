// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-orchestrator/internal/aggregate"
	"github.com/pdiddy/scholar-orchestrator/internal/enrich"
	"github.com/pdiddy/scholar-orchestrator/internal/export"
	"github.com/pdiddy/scholar-orchestrator/internal/gaps"
	"github.com/pdiddy/scholar-orchestrator/internal/history"
	"github.com/pdiddy/scholar-orchestrator/internal/secrets"
	"github.com/pdiddy/scholar-orchestrator/internal/source"
	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// minCorpusSize is the number of unique papers below which report
// generation is aborted.
const minCorpusSize = 3

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search academic APIs, rank results, and mine research gaps",
	Long: `Search fans the query out to all enabled academic APIs concurrently,
deduplicates the results across sources, and ranks the merged set by
citations, source consensus, and recency. The top papers are enriched with
abstracts, the corpus is mined for research-gap statements, and a session
directory is written with the selected export formats.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "max results per source (overrides limit_per_source)")
	searchCmd.Flags().String("output-dir", "", "directory for the session directory (overrides output_dir)")
	searchCmd.Flags().Bool("no-history", false, "skip archiving this run")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("provide a search query")
	}

	cfg := pipelineConfig()
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		cfg.Source.LimitPerSource = limit
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.Export.OutputDir = dir
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := export.NewSession(cfg.Export.OutputDir, query, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Created session directory: %s\n", session.Dir)

	client := &http.Client{Timeout: cfg.Source.Timeout}
	apiKey := loadedSecrets[secrets.KeySemanticScholar]

	adapters, skipped := buildAdapters(cfg.Source, client, apiKey)
	for _, note := range skipped {
		fmt.Fprintf(os.Stderr, "warning: skipping %s\n", note)
	}
	if len(adapters) == 0 {
		return fmt.Errorf("no sources enabled")
	}

	papers, summary := source.Run(ctx, adapters, query,
		cfg.Source.LimitPerSource, cfg.Source.MaxWorkers, os.Stdout)

	merged := aggregate.MergeAndScore(papers, cfg.Scoring,
		aggregate.WithOnHighConsensus(func(p types.AggregatedPaper) {
			fmt.Fprintf(os.Stderr, "ALERT: high consensus (%d sources): %s\n",
				p.SourceCount, p.Title)
		}))
	fmt.Printf("Merged %d records into %d unique papers\n", summary.Total, len(merged))

	session.SuccessfulEngines = succeededNames(summary)
	session.FailedEngines = append(skipped, failedNotes(summary)...)

	if len(merged) < minCorpusSize {
		return fmt.Errorf("insufficient corpus: %d unique papers, need at least %d for report generation",
			len(merged), minCorpusSize)
	}

	enricher := &enrich.Enricher{
		Client:    client,
		UserAgent: cfg.Source.UserAgent,
		APIKey:    apiKey,
	}
	enriched := enricher.Run(ctx, merged, cfg.Export.AbstractLimit, os.Stdout)
	fmt.Printf("Enriched %d papers with abstracts\n", enriched)

	fmt.Println("Scanning for research gaps and future directions...")
	report := gaps.MineGaps(merged, query, cfg.Gaps)
	fmt.Printf("Found %d gap statements in %d categories\n",
		report.TotalGapsFound, len(report.Categories))

	session.EndTime = time.Now()
	if err := writeExports(session, cfg.Export, merged, report); err != nil {
		return err
	}

	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		archiveRun(ctx, cfg.History, session, merged, report)
	}

	printTopDiscoveries(merged)
	return nil
}

// buildAdapters constructs the enabled source adapters. Sources that need
// an unavailable API key are skipped; their names are returned for the
// session record.
func buildAdapters(cfg types.SourceConfig, client *http.Client, apiKey string) ([]source.Adapter, []string) {
	email := secretDefault(secrets.KeyContactEmail, cfg.ContactEmail)

	var adapters []source.Adapter
	var skipped []string

	if cfg.EnableArxiv {
		adapters = append(adapters, &source.ArxivAdapter{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableSemanticScholar {
		if apiKey == "" {
			skipped = append(skipped, "semantic_scholar (no API key)")
		} else {
			adapters = append(adapters, &source.SemanticScholarAdapter{
				Client: client, UserAgent: cfg.UserAgent, APIKey: apiKey,
			})
		}
	}
	if cfg.EnableCrossref {
		adapters = append(adapters, &source.CrossrefAdapter{
			Client: client, UserAgent: cfg.UserAgent, Email: email,
		})
	}
	if cfg.EnableOpenAlex {
		adapters = append(adapters, &source.OpenAlexAdapter{
			Client: client, UserAgent: cfg.UserAgent, Email: email,
		})
	}
	if cfg.EnablePubMed {
		adapters = append(adapters, &source.PubMedAdapter{
			Client: client, UserAgent: cfg.UserAgent, Email: email,
		})
	}
	if cfg.EnableEuropePMC {
		adapters = append(adapters, &source.EuropePMCAdapter{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnableDBLP {
		adapters = append(adapters, &source.DBLPAdapter{Client: client, UserAgent: cfg.UserAgent})
	}
	if cfg.EnablePLOS {
		adapters = append(adapters, &source.PLOSAdapter{Client: client, UserAgent: cfg.UserAgent})
	}

	return adapters, skipped
}

func succeededNames(summary source.RunSummary) []string {
	names := make([]string, 0, len(summary.Succeeded))
	for name := range summary.Succeeded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func failedNotes(summary source.RunSummary) []string {
	notes := make([]string, 0, len(summary.Failed))
	for name, errMsg := range summary.Failed {
		if len(errMsg) > 50 {
			errMsg = errMsg[:50]
		}
		notes = append(notes, fmt.Sprintf("%s (error: %s)", name, errMsg))
	}
	sort.Strings(notes)
	return notes
}

func writeExports(session *export.Session, cfg types.ExportConfig, merged []types.AggregatedPaper, report types.GapReport) error {
	formats := make(map[string]bool, len(cfg.Formats))
	for _, f := range cfg.Formats {
		formats[strings.ToLower(f)] = true
	}

	if formats["csv"] {
		if err := session.WriteCSV(merged); err != nil {
			return err
		}
	}
	if formats["json"] {
		if err := session.WriteJSON(merged); err != nil {
			return err
		}
	}
	if formats["bibtex"] {
		if err := session.WriteBibTeX(merged); err != nil {
			return err
		}
	}
	if err := session.WriteGapReport(report); err != nil {
		return err
	}
	return session.WriteMetadata(len(merged))
}

// archiveRun saves the run to the history database. Archive failures are
// warnings; the reports on disk are the primary output.
func archiveRun(ctx context.Context, cfg types.HistoryConfig, session *export.Session, merged []types.AggregatedPaper, report types.GapReport) {
	store, err := history.NewStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history store: %v\n", err)
		return
	}
	defer store.Close()

	_, err = store.Save(ctx, history.RunRecord{
		Query:           session.Query,
		StartedAt:       session.StartTime,
		DurationSeconds: session.EndTime.Sub(session.StartTime).Seconds(),
		Engines:         session.SuccessfulEngines,
		Papers:          merged,
		Gaps:            report.Gaps,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not archive run: %v\n", err)
	}
}

func printTopDiscoveries(merged []types.AggregatedPaper) {
	fmt.Println("\n--- TOP 5 DISCOVERIES ---")
	for i, p := range merged {
		if i == 5 {
			break
		}
		boost := ""
		if p.RecencyBoosted {
			boost = " (recent)"
		}
		fmt.Printf("[%d] Score: %d | Sources: %d%s\n", i+1, p.RelevanceScore, p.SourceCount, boost)
		fmt.Printf("    %s, %q\n", p.AuthorsDisplay, p.Title)
		if p.URL != "" {
			fmt.Printf("    Link: %s\n", p.URL)
		}
		if p.TLDR != "" {
			tldr := p.TLDR
			if len(tldr) > 100 {
				tldr = tldr[:100] + "..."
			}
			fmt.Printf("    TLDR: %s\n", tldr)
		}
	}
}
