// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

func aggregated(title, doi string) types.AggregatedPaper {
	return types.AggregatedPaper{
		PaperRecord: types.PaperRecord{Title: title, DOI: doi},
	}
}

func TestEnricherRunDOILookup(t *testing.T) {
	detailServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "10.1000") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"abstract": "Detailed abstract text.",
			"url": "https://semanticscholar.org/paper/x",
			"tldr": {"text": "Short gist."},
			"fieldsOfStudy": ["Biology", "Medicine"]
		}`)
	}))
	defer detailServer.Close()

	old := semanticPaperBase
	semanticPaperBase = detailServer.URL + "/"
	defer func() { semanticPaperBase = old }()

	papers := []types.AggregatedPaper{aggregated("Paper A", "10.1000/a")}
	e := &Enricher{Client: detailServer.Client()}

	var log strings.Builder
	got := e.Run(context.Background(), papers, 5, &log)

	if got != 1 {
		t.Errorf("enriched = %d, want 1", got)
	}
	p := papers[0]
	if p.Abstract != "Detailed abstract text." {
		t.Errorf("Abstract = %q", p.Abstract)
	}
	if p.TLDR != "Short gist." {
		t.Errorf("TLDR = %q", p.TLDR)
	}
	if p.Keywords != "Biology, Medicine" {
		t.Errorf("Keywords = %q", p.Keywords)
	}
	if p.URL != "https://semanticscholar.org/paper/x" {
		t.Errorf("URL = %q", p.URL)
	}
}

func TestEnricherRunTitleFallback(t *testing.T) {
	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("limit = %q, want 1", got)
		}
		fmt.Fprint(w, `{"data": [{
			"abstract": "Found by title.",
			"externalIds": {"DOI": "10.2000/found"}
		}]}`)
	}))
	defer searchServer.Close()

	old := semanticSearchBase
	semanticSearchBase = searchServer.URL
	defer func() { semanticSearchBase = old }()

	// DOI "N/A" skips the DOI lookup entirely.
	papers := []types.AggregatedPaper{aggregated("Only A Title", "N/A")}
	e := &Enricher{Client: searchServer.Client()}

	var log strings.Builder
	got := e.Run(context.Background(), papers, 5, &log)

	if got != 1 {
		t.Errorf("enriched = %d, want 1", got)
	}
	if papers[0].Abstract != "Found by title." {
		t.Errorf("Abstract = %q", papers[0].Abstract)
	}
	if papers[0].DOI != "10.2000/found" {
		t.Errorf("DOI = %q, want backfilled from search hit", papers[0].DOI)
	}
}

func TestEnricherRunIsolatedFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer failing.Close()

	oldPaper, oldSearch := semanticPaperBase, semanticSearchBase
	semanticPaperBase, semanticSearchBase = failing.URL+"/", failing.URL
	defer func() { semanticPaperBase, semanticSearchBase = oldPaper, oldSearch }()

	papers := []types.AggregatedPaper{aggregated("Unfindable", "10.9999/x")}
	e := &Enricher{Client: failing.Client()}

	var log strings.Builder
	got := e.Run(context.Background(), papers, 5, &log)

	if got != 0 {
		t.Errorf("enriched = %d, want 0", got)
	}
	if papers[0].Abstract != "Abstract not available." {
		t.Errorf("Abstract = %q, want placeholder", papers[0].Abstract)
	}
	if !strings.Contains(log.String(), "warning: no abstract found") {
		t.Errorf("log = %q, missing warning", log.String())
	}
}

func TestEnricherRunRespectsLimit(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"abstract": "text"}`)
	}))
	defer ts.Close()

	old := semanticPaperBase
	semanticPaperBase = ts.URL + "/"
	defer func() { semanticPaperBase = old }()

	papers := []types.AggregatedPaper{
		aggregated("One", "10.1/1"),
		aggregated("Two", "10.1/2"),
		aggregated("Three", "10.1/3"),
	}
	e := &Enricher{Client: ts.Client()}

	var log strings.Builder
	e.Run(context.Background(), papers, 2, &log)

	if calls != 2 {
		t.Errorf("API calls = %d, want 2", calls)
	}
	if papers[2].Abstract != "" {
		t.Errorf("paper beyond limit was touched: %q", papers[2].Abstract)
	}
}
