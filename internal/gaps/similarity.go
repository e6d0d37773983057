// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import "strings"

// similarityStopwords are removed before the word-overlap comparison.
var similarityStopwords = wordSet(
	"the", "a", "an", "is", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "do", "does", "did", "will",
	"would", "could", "should", "may", "might", "must", "shall",
	"can", "need", "dare", "ought", "used", "to", "of", "in",
	"for", "on", "with", "at", "by", "from", "as", "into",
	"through", "during", "before", "after", "above", "below",
	"between", "under", "again", "further", "then", "once", "and",
	"but", "if", "or", "because", "until", "while", "so", "than",
	"that", "this", "these", "those", "i", "me", "my", "myself",
	"we", "our", "ours", "ourselves", "you", "your", "yours",
	"it", "its", "itself", "they", "them", "their", "theirs",
)

// Similarity computes the lexical similarity of two gap statements as a
// proxy for semantic similarity: Jaccard overlap of stopword-filtered
// word sets weighted 0.6, plus bigram overlap weighted 0.4, rounded to
// three decimals.
func Similarity(a, b string) float64 {
	setA := contentWords(a)
	setB := contentWords(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	jaccard := 0.0
	if union > 0 {
		jaccard = float64(intersection) / float64(union)
	}

	bigramsA := bigrams(a)
	bigramsB := bigrams(b)
	bigramSim := 0.0
	if len(bigramsA) > 0 && len(bigramsB) > 0 {
		common := 0
		for bg := range bigramsA {
			if bigramsB[bg] {
				common++
			}
		}
		bigramSim = float64(common) / float64(max(len(bigramsA), len(bigramsB)))
	}

	return round3(0.6*jaccard + 0.4*bigramSim)
}

// contentWords returns the lowercase word set with stopwords and words of
// one or two characters removed.
func contentWords(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 2 && !similarityStopwords[w] {
			set[w] = true
		}
	}
	return set
}

// bigrams returns the set of adjacent word pairs over the full token
// stream (stopwords included).
func bigrams(text string) map[string]bool {
	words := wordRe.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool)
	for i := 0; i+1 < len(words); i++ {
		set[words[i]+" "+words[i+1]] = true
	}
	return set
}
