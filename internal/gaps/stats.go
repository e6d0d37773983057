// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"math"
	"sort"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// SummaryStats computes the statistical digest of a gap report: citation
// and confidence distributions over the clustered gaps, clustering
// reduction, and gap density.
func SummaryStats(report types.GapReport) types.GapSummaryStats {
	stats := types.GapSummaryStats{
		TotalGaps:        report.TotalGapsFound,
		UniqueGaps:       report.UniqueGapsAfterClustering,
		YearDistribution: make(map[string]int),
	}

	total := report.TotalGapsFound
	if total < 1 {
		total = 1
	}
	stats.ReductionRatio = round2(1 - float64(report.UniqueGapsAfterClustering)/float64(total))

	papers := report.PapersAnalyzed
	if papers < 1 {
		papers = 1
	}
	stats.GapsPerPaper = round2(float64(report.TotalGapsFound) / float64(papers))

	titles := make(map[string]bool)
	var citations []int
	var confidenceSum float64
	for _, g := range report.Gaps {
		titles[g.Title] = true
		citations = append(citations, g.Citations)

		conf := g.Analysis.Confidence
		confidenceSum += conf
		if conf >= 0.7 {
			stats.HighConfidenceCount++
		}
		if conf < 0.4 {
			stats.LowConfidenceCount++
		}

		if _, ok := atoiDigits(g.Year); ok {
			stats.YearDistribution[g.Year]++
		}
	}
	stats.PapersWithGaps = len(titles)

	if len(citations) > 0 {
		sum, maxCites := 0, 0
		for _, c := range citations {
			sum += c
			if c > maxCites {
				maxCites = c
			}
			if c >= 100 {
				stats.HighImpactCount++
			}
		}
		stats.AvgCitations = math.Round(float64(sum)/float64(len(citations))*10) / 10
		stats.MaxCitations = maxCites

		sorted := append([]int{}, citations...)
		sort.Ints(sorted)
		stats.MedianCitations = sorted[len(sorted)/2]

		stats.AvgConfidence = round2(confidenceSum / float64(len(report.Gaps)))
	}

	return stats
}
