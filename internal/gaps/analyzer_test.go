// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"math"
	"testing"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

func TestAnalyzeSentenceDeterminism(t *testing.T) {
	sentence := "However, the mechanisms underlying this effect remain unclear and subsequent work is needed."
	a := AnalyzeSentence(sentence)
	b := AnalyzeSentence(sentence)
	if a != b {
		t.Errorf("two analyses of the same sentence differ:\n%+v\n%+v", a, b)
	}
}

func TestAnalyzeSentenceFeatures(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		check    func(t *testing.T, a types.SentenceAnalysis)
	}{
		{
			name:     "uncertainty and future orientation",
			sentence: "However, the mechanisms underlying this effect remain unclear and subsequent work is needed.",
			check: func(t *testing.T, a types.SentenceAnalysis) {
				if a.HasNegation {
					t.Error("HasNegation = true, want false")
				}
				if !a.HasUncertainty {
					t.Error("HasUncertainty = false, want true")
				}
				if !a.IsFutureOriented {
					t.Error("IsFutureOriented = false, want true")
				}
				// 0.5 + 0.15 (future), no other adjustments.
				if a.Confidence != 0.65 {
					t.Errorf("Confidence = %v, want 0.65", a.Confidence)
				}
			},
		},
		{
			name:     "negation uncertainty future and limitation",
			sentence: "Further validation is not possible because the approach remains unclear and is limited by data availability.",
			check: func(t *testing.T, a types.SentenceAnalysis) {
				if !a.HasNegation || !a.HasUncertainty || !a.IsFutureOriented {
					t.Errorf("flags = neg:%v unc:%v fut:%v, want all true",
						a.HasNegation, a.HasUncertainty, a.IsFutureOriented)
				}
				if !a.IsLimitation {
					t.Error("IsLimitation = false, want true")
				}
				if a.IsRecommendation {
					t.Error("IsRecommendation = true, want false")
				}
				// 0.5 + 0.2 + 0.15 + 0.1.
				if a.Confidence != 0.95 {
					t.Errorf("Confidence = %v, want 0.95", a.Confidence)
				}
			},
		},
		{
			name:     "short sentence penalized",
			sentence: "More data is needed.",
			check: func(t *testing.T, a types.SentenceAnalysis) {
				if a.SentenceLength != 4 {
					t.Errorf("SentenceLength = %d, want 4", a.SentenceLength)
				}
				if a.Confidence != 0.4 {
					t.Errorf("Confidence = %v, want 0.4", a.Confidence)
				}
			},
		},
		{
			name:     "recommendation detected",
			sentence: "We recommend that future studies enroll larger and more diverse patient cohorts.",
			check: func(t *testing.T, a types.SentenceAnalysis) {
				if !a.IsRecommendation {
					t.Error("IsRecommendation = false, want true")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, AnalyzeSentence(tt.sentence))
		})
	}
}

func TestCertaintyScore(t *testing.T) {
	tests := []struct {
		sentence string
		want     float64
	}{
		// Three certainty markers.
		{"it is clearly established and proven.", 0.8},
		// "unproven" counts for uncertainty and contains "proven", so the
		// two substring counts cancel.
		{"the theory remains unproven.", 0.5},
		// Two uncertainty terms.
		{"whether this holds is unclear and unknown.", 0.3},
		{"neutral statement about results.", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			got := certaintyScore(tt.sentence)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("certaintyScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplexityScoreBounds(t *testing.T) {
	if got := complexityScore(""); got != 0.0 {
		t.Errorf("empty sentence complexity = %v, want 0", got)
	}
	long := "Notwithstanding, comprehensively heterogeneous methodological considerations, intervariable dependencies; longitudinal, multifactorial interrelationships: irreproducibility."
	if got := complexityScore(long); got > 1.0 {
		t.Errorf("complexity = %v, exceeds 1.0", got)
	}
	if got := complexityScore("a b c"); got < 0.0 {
		t.Errorf("complexity = %v, below 0", got)
	}
}

func TestConfidenceClampedToUnitInterval(t *testing.T) {
	// All boosts at once still clamp to 1.0.
	sentence := "Further research is needed since findings are not proven, remain unclear, and future studies should address the limitation imposed by scale."
	a := AnalyzeSentence(sentence)
	if a.Confidence < 0 || a.Confidence > 1 {
		t.Errorf("Confidence = %v, outside [0,1]", a.Confidence)
	}
}
