// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-orchestrator/internal/export"
	"github.com/pdiddy/scholar-orchestrator/internal/gaps"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps [research_data.json]",
	Short: "Mine research gaps from a previously exported JSON file",
	Long: `Gaps re-runs the research-gap mining pipeline over the papers in a JSON
export produced by the search command, without hitting any APIs. Useful for
tuning min_confidence or re-analyzing an archived corpus.`,
	Args: cobra.ExactArgs(1),
	RunE: runGaps,
}

func init() {
	gapsCmd.Flags().String("query", "", "override the recorded query for pattern-pack selection")
	gapsCmd.Flags().Bool("json", false, "output the full gap report as JSON")

	rootCmd.AddCommand(gapsCmd)
}

func runGaps(cmd *cobra.Command, args []string) error {
	query, papers, err := export.LoadJSON(args[0])
	if err != nil {
		return err
	}
	if override, _ := cmd.Flags().GetString("query"); override != "" {
		query = override
	}

	cfg := pipelineConfig()
	report := gaps.MineGaps(papers, query, cfg.Gaps)

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	stats := gaps.SummaryStats(report)
	fmt.Printf("Query: %s\n", query)
	fmt.Printf("Papers analyzed: %d (sentences: %d)\n", report.PapersAnalyzed, report.SentencesAnalyzed)
	fmt.Printf("Gaps found: %d (%d after clustering)\n", report.TotalGapsFound, report.UniqueGapsAfterClustering)
	fmt.Printf("Pattern packs: %s\n", strings.Join(report.PatternPacksUsed, ", "))
	fmt.Printf("Avg confidence: %.2f | Avg citations: %.1f\n", stats.AvgConfidence, stats.AvgCitations)

	if len(report.Gaps) > 0 {
		fmt.Println("\nTop gap statements:")
		for i, gap := range report.Gaps {
			if i == 5 {
				break
			}
			fmt.Printf("[%d] %s (%s, %d citations)\n", i+1, gap.Category, gap.Year, gap.Citations)
			fmt.Printf("    %q\n", gap.Statement)
		}
	}

	priorities := gaps.IdentifyPriorityGaps(report, 3)
	if len(priorities) > 0 {
		fmt.Println("\nPriority gaps:")
		for i, pg := range priorities {
			fmt.Printf("[%d] score %d: %s\n", i+1, pg.PriorityScore, strings.Join(pg.PriorityReasons, "; "))
		}
	}
	return nil
}
