// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import "github.com/pdiddy/scholar-orchestrator/pkg/types"

// clusterGaps groups near-duplicate gap statements and returns one
// representative per cluster.
//
// Clustering is greedy and seed-only: statements are walked in emission
// order, each unclustered statement seeds a new cluster and absorbs every
// later unclustered statement whose similarity TO THE SEED is at or above
// the threshold. A later member is never compared to other absorbed
// members. This asymmetry changes which representative surfaces per
// cluster and is deliberate behavior, not a defect to correct.
func clusterGaps(gaps []types.GapStatement, threshold float64) []types.GapStatement {
	if len(gaps) == 0 {
		return nil
	}

	visited := make([]bool, len(gaps))
	var representatives []types.GapStatement

	for i := range gaps {
		if visited[i] {
			continue
		}
		cluster := []int{i}
		visited[i] = true

		for j := i + 1; j < len(gaps); j++ {
			if visited[j] {
				continue
			}
			if Similarity(gaps[i].Statement, gaps[j].Statement) >= threshold {
				cluster = append(cluster, j)
				visited[j] = true
			}
		}

		representatives = append(representatives, pickRepresentative(gaps, cluster))
	}

	return representatives
}

// pickRepresentative selects the cluster member maximizing
// citations + confidence*100 (first wins ties), attaching the cluster
// size and truncated previews of every member.
func pickRepresentative(gaps []types.GapStatement, cluster []int) types.GapStatement {
	best := cluster[0]
	bestScore := repScore(gaps[best])
	for _, idx := range cluster[1:] {
		if s := repScore(gaps[idx]); s > bestScore {
			best, bestScore = idx, s
		}
	}

	rep := gaps[best]
	rep.ClusterSize = len(cluster)
	rep.ClusterMembers = make([]string, len(cluster))
	for i, idx := range cluster {
		rep.ClusterMembers[i] = truncate(gaps[idx].Statement, 100) + "..."
	}
	return rep
}

func repScore(g types.GapStatement) float64 {
	return float64(g.Citations) + g.Analysis.Confidence*100
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
