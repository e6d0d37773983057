// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"math"
	"regexp"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

var wordRe = regexp.MustCompile(`\w+`)

// Closed vocabularies for the boolean sentence features. These are part
// of the detection contract and are matched against the sentence's word
// set, not as substrings.
var negationTerms = wordSet(
	"not", "no", "never", "neither", "nor", "none", "nothing", "nobody",
	"nowhere", "hardly", "scarcely", "barely", "don't", "doesn't",
	"didn't", "won't", "wouldn't", "shouldn't", "couldn't", "can't",
	"isn't", "aren't", "wasn't", "weren't", "hasn't", "haven't",
	"hadn't", "lack", "lacking", "absence", "absent", "without",
)

var uncertaintyTerms = wordSet(
	"unclear", "unknown", "uncertain", "ambiguous", "obscure", "vague",
	"puzzling", "perplexing", "enigmatic", "mysterious", "debatable",
	"questionable", "doubtful", "dubious", "inconclusive", "unresolved",
	"undetermined", "unverified", "unproven", "speculative", "tentative",
)

var futureTerms = wordSet(
	"future", "further", "next", "subsequent", "forthcoming", "upcoming",
	"prospective", "planned", "intended", "proposed", "recommended",
	"suggested", "should", "needs to", "must", "require", "warrant",
)

// certaintyMarkers is a separate small vocabulary counted as substrings
// for the certainty score, distinct from uncertaintyTerms.
var certaintyMarkers = []string{
	"definitely", "certainly", "clearly", "obviously", "demonstrably",
	"proven", "established", "confirmed", "verified", "conclusive",
}

var recommendationStarters = []string{
	"we recommend", "it is recommended", "future work should",
	"researchers should", "studies should", "further research",
	"future studies", "investigation should", "attention should",
}

var limitationIndicators = []string{
	"limitation", "limited by", "constrained by", "restricted by",
	"hindered by", "hampered by", "impeded by", "bottleneck",
}

func wordSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// AnalyzeSentence extracts the gap-indicator features of a sentence and
// its heuristic detection confidence. The result depends only on the
// sentence text: no randomness, no external state.
func AnalyzeSentence(sentence string) types.SentenceAnalysis {
	lower := strings.ToLower(sentence)
	words := make(map[string]bool)
	for _, w := range wordRe.FindAllString(lower, -1) {
		words[w] = true
	}

	a := types.SentenceAnalysis{
		HasNegation:      intersects(words, negationTerms),
		HasUncertainty:   intersects(words, uncertaintyTerms),
		IsFutureOriented: intersects(words, futureTerms),
		SentenceLength:   len(strings.Fields(sentence)),
		WordCount:        len(words),
		ComplexityScore:  complexityScore(sentence),
		CertaintyScore:   certaintyScore(lower),
		IsRecommendation: containsAny(lower, recommendationStarters),
		IsLimitation:     containsAny(lower, limitationIndicators),
	}
	a.Confidence = confidence(a)
	return a
}

func intersects(words, vocab map[string]bool) bool {
	for w := range vocab {
		if words[w] {
			return true
		}
	}
	return false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// complexityScore is a cheap proxy for syntactic density: average word
// length scaled by clause count (approximated by punctuation), normalized
// to [0,1]. The exact formula is the contract, not a validated
// readability metric.
func complexityScore(sentence string) float64 {
	fields := strings.Fields(sentence)
	if len(fields) == 0 {
		return 0.0
	}
	total := 0
	for _, w := range fields {
		total += len(w)
	}
	avgWordLength := float64(total) / float64(len(fields))

	clauses := 1
	for _, r := range sentence {
		switch r {
		case ',', ';', ':', '.':
			clauses++
		}
	}

	complexity := math.Min(1.0, (avgWordLength/10)*(float64(clauses)/5))
	return round2(complexity)
}

// certaintyScore rates the sentence from 0 (uncertain) to 1 (certain)
// based on substring counts of certainty markers against uncertainty
// terms, anchored at 0.5.
func certaintyScore(lower string) float64 {
	uncertain := 0
	for term := range uncertaintyTerms {
		if strings.Contains(lower, term) {
			uncertain++
		}
	}
	certain := 0
	for _, term := range certaintyMarkers {
		if strings.Contains(lower, term) {
			certain++
		}
	}
	return clamp01(0.5 + float64(certain-uncertain)*0.1)
}

// confidence combines the extracted features into the detection score.
// The coefficients are the reproducibility contract for downstream
// confidence filtering.
func confidence(a types.SentenceAnalysis) float64 {
	score := 0.5
	if a.HasNegation && a.HasUncertainty {
		score += 0.2
	}
	if a.IsFutureOriented {
		score += 0.15
	}
	if a.SentenceLength < 8 {
		score -= 0.1
	}
	if a.IsRecommendation {
		score += 0.1
	}
	if a.IsLimitation {
		score += 0.1
	}
	return round2(clamp01(score))
}

func clamp01(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
