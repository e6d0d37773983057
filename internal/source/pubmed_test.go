// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const pubmedESearchJSON = `{"esearchresult": {"idlist": ["100", "200"]}}`

const pubmedESummaryJSON = `{
  "result": {
    "uids": ["100", "200"],
    "100": {
      "title": "Immunotherapy Response Markers",
      "fulljournalname": "Journal of Clinical Oncology",
      "pubdate": "2023 Oct 24",
      "authors": [{"name": "Suzuki H"}, {"name": "Patel RK"}],
      "articleids": [{"idtype": "doi", "value": "10.1200/jco.2023.1"}]
    },
    "200": {
      "title": "Case Report",
      "fulljournalname": "",
      "pubdate": "",
      "authors": [],
      "articleids": []
    }
  }
}`

func TestPubMedFetch(t *testing.T) {
	searchServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("db"); got != "pubmed" {
			t.Errorf("esearch db = %q", got)
		}
		if got := r.URL.Query().Get("retmax"); got != "7" {
			t.Errorf("esearch retmax = %q, want 7", got)
		}
		fmt.Fprint(w, pubmedESearchJSON)
	}))
	defer searchServer.Close()

	summaryServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "100,200" {
			t.Errorf("esummary id = %q, want 100,200", got)
		}
		fmt.Fprint(w, pubmedESummaryJSON)
	}))
	defer summaryServer.Close()

	oldSearch, oldSummary := pubmedESearchBase, pubmedESummaryBase
	pubmedESearchBase, pubmedESummaryBase = searchServer.URL, summaryServer.URL
	defer func() { pubmedESearchBase, pubmedESummaryBase = oldSearch, oldSummary }()

	a := &PubMedAdapter{Client: searchServer.Client(), Email: "dev@example.org"}
	records, err := a.Fetch(context.Background(), "immunotherapy", 7)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Sorted by first-author name: "Suzuki H" before "Unknown".
	r := records[0]
	if r.Title != "Immunotherapy Response Markers" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.AuthorsDisplay != "H. Suzuki and R. Patel" {
		t.Errorf("AuthorsDisplay = %q", r.AuthorsDisplay)
	}
	if r.Venue != "J. of Clinical Oncology" {
		t.Errorf("Venue = %q, want abbreviated journal", r.Venue)
	}
	if r.Year != "2023" {
		t.Errorf("Year = %q, want 2023", r.Year)
	}
	if r.Citations != "N/A" {
		t.Errorf("Citations = %q, want N/A", r.Citations)
	}
	if r.DOI != "10.1200/jco.2023.1" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.URL != "https://pubmed.ncbi.nlm.nih.gov/100/" {
		t.Errorf("URL = %q", r.URL)
	}

	sparse := records[1]
	if sparse.AuthorsDisplay != "Unknown Author" || sparse.Year != "n.d." || sparse.DOI != "N/A" {
		t.Errorf("sparse record = %+v", sparse)
	}
}

func TestPubMedFetchNoHits(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"esearchresult": {"idlist": []}}`)
	}))
	defer ts.Close()

	old := pubmedESearchBase
	pubmedESearchBase = ts.URL
	defer func() { pubmedESearchBase = old }()

	a := &PubMedAdapter{Client: ts.Client()}
	records, err := a.Fetch(context.Background(), "nothing", 5)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0 without an esummary call", len(records))
	}
}

func TestFormatPubMedAuthor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Suzuki H", "H. Suzuki"},
		{"van der Berg JP", "J. van der Berg"},
		{"Collective", "Collective"},
	}
	for _, tt := range tests {
		if got := formatPubMedAuthor(tt.in); got != tt.want {
			t.Errorf("formatPubMedAuthor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
