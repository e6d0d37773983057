// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gaps

import (
	"reflect"
	"testing"
)

func TestSelectPacksUnconditional(t *testing.T) {
	patterns, packsUsed, domainScores := selectPacks("quantum materials synthesis")

	wantPacks := []string{packGeneral, packEmerging}
	if !reflect.DeepEqual(packsUsed, wantPacks) {
		t.Errorf("packsUsed = %v, want %v", packsUsed, wantPacks)
	}
	if want := len(generalPack) + len(emergingPack); len(patterns) != want {
		t.Errorf("pattern count = %d, want %d", len(patterns), want)
	}
	if len(domainScores) != 0 {
		t.Errorf("domainScores = %v, want empty", domainScores)
	}
}

func TestSelectPacksAdditiveActivation(t *testing.T) {
	patterns, packsUsed, domainScores := selectPacks("deep learning for cancer treatment")

	wantPacks := []string{packGeneral, packTechnical, packClinical, packEmerging}
	if !reflect.DeepEqual(packsUsed, wantPacks) {
		t.Errorf("packsUsed = %v, want %v", packsUsed, wantPacks)
	}
	want := len(generalPack) + len(technicalPack) + len(clinicalPack) + len(emergingPack)
	if len(patterns) != want {
		t.Errorf("pattern count = %d, want %d", len(patterns), want)
	}
	if domainScores[packTechnical] != 1 {
		t.Errorf("tech score = %d, want 1 (deep learning)", domainScores[packTechnical])
	}
	if domainScores[packClinical] != 1 {
		t.Errorf("clinical score = %d, want 1 (treatment)", domainScores[packClinical])
	}
}

func TestSelectPacksCountsAllMatchingTerms(t *testing.T) {
	_, _, domainScores := selectPacks("machine learning model prediction")
	// machine learning, model, prediction.
	if domainScores[packTechnical] != 3 {
		t.Errorf("tech score = %d, want 3", domainScores[packTechnical])
	}
}

func TestSelectPacksGeneralComesFirst(t *testing.T) {
	patterns, _, _ := selectPacks("deep learning diagnosis")
	if patterns[0].Category != generalPack[0].Category {
		t.Errorf("first pattern category = %q, want the general pack's first entry", patterns[0].Category)
	}
}

func TestPatternsAreCaseInsensitive(t *testing.T) {
	// First general entry against an all-caps rendering.
	if !generalPack[0].Expr.MatchString("FURTHER RESEARCH IS NEEDED") {
		t.Error("general pack pattern failed to match uppercase text")
	}
}
