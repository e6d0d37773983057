// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"fmt"
	"sort"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// IdentifyPriorityGaps re-scores the report's clustered gaps with an
// additive actionability rubric and returns the top N with the reasons
// each earned its score. This pass is intentionally independent of the
// report's composite relevance sort: one ranks general relevance, the
// other curates what to act on first.
func IdentifyPriorityGaps(report types.GapReport, topN int) []types.PriorityGap {
	scored := make([]types.PriorityGap, 0, len(report.Gaps))

	for _, gap := range report.Gaps {
		score := 0
		var reasons []string

		switch {
		case gap.Citations >= 100:
			score += 3
			reasons = append(reasons, "High-impact paper")
		case gap.Citations >= 50:
			score += 2
			reasons = append(reasons, "Well-cited paper")
		}

		if gap.Analysis.Confidence >= 0.8 {
			score += 2
			reasons = append(reasons, "High confidence detection")
		}

		if year, ok := atoiDigits(gap.Year); ok && year >= 2022 {
			score += 2
			reasons = append(reasons, "Recent finding")
		}

		if gap.ClusterSize > 1 {
			score += gap.ClusterSize
			reasons = append(reasons, fmt.Sprintf("Recurring theme (cluster of %d)", gap.ClusterSize))
		}

		if gap.Analysis.IsLimitation {
			score += 1
			reasons = append(reasons, "Explicit limitation")
		}

		scored = append(scored, types.PriorityGap{
			GapStatement:    gap,
			PriorityScore:   score,
			PriorityReasons: reasons,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
