// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import "testing"

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{
			// Word sets share 3 of 4 content words (Jaccard 0.75) and
			// 2 of max 4 bigrams (0.5): 0.6*0.75 + 0.4*0.5 = 0.65.
			name: "superset statement",
			a:    "alpha beta gamma",
			b:    "alpha beta gamma the delta",
			want: 0.65,
		},
		{
			// Same content words but the stopword breaks the shared
			// bigrams down to 1 of 4: 0.45 + 0.1 = 0.55.
			name: "reordered words weaken bigram overlap",
			a:    "alpha beta gamma",
			b:    "alpha beta the gamma delta",
			want: 0.55,
		},
		{
			name: "identical statements",
			a:    "data scarcity remains a problem",
			b:    "data scarcity remains a problem",
			want: 1.0,
		},
		{
			name: "empty side",
			a:    "",
			b:    "alpha beta gamma",
			want: 0.0,
		},
		{
			name: "stopwords only on one side",
			a:    "the is of an",
			b:    "alpha beta gamma",
			want: 0.0,
		},
		{
			name: "disjoint vocabularies",
			a:    "quantum entanglement decoherence",
			b:    "agricultural irrigation scheduling",
			want: 0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "further research is needed on data scarcity"
	b := "more evidence is required regarding data scarcity"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("Similarity is not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
	}
}
