// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const semanticBulkJSON = `{
  "total": 2,
  "data": [
    {
      "paperId": "p1",
      "title": "Attention Mechanisms Revisited",
      "year": 2021,
      "venue": "Journal of Artificial Intelligence Research",
      "url": "https://semanticscholar.org/paper/p1",
      "citationCount": 421,
      "authors": [{"authorId": "1", "name": "Mara Chen"}, {"authorId": "2", "name": "Luis Ortega"}],
      "externalIds": {"DOI": "10.1000/jair.2021.1"}
    },
    {
      "paperId": "p2",
      "title": "",
      "year": 0,
      "venue": "",
      "citationCount": 0,
      "authors": []
    }
  ]
}`

func TestSemanticScholarFetch(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, semanticBulkJSON)
	}))
	defer ts.Close()

	old := semanticBulkBase
	semanticBulkBase = ts.URL
	defer func() { semanticBulkBase = old }()

	a := &SemanticScholarAdapter{Client: ts.Client(), APIKey: "key-123", UserAgent: "test"}
	records, err := a.Fetch(context.Background(), "attention", 25)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("query"); got != "attention" {
		t.Errorf("query param = %q", got)
	}
	if got := q.Get("limit"); got != "25" {
		t.Errorf("limit param = %q, want 25", got)
	}
	if got := capturedReq.Header.Get("x-api-key"); got != "key-123" {
		t.Errorf("x-api-key = %q", got)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Author-sorted: "Mara Chen" before "Unknown".
	r := records[0]
	if r.AuthorsDisplay != "M. Chen and L. Ortega" {
		t.Errorf("AuthorsDisplay = %q", r.AuthorsDisplay)
	}
	if r.Venue != "J. of Artificial Intell. Res." {
		t.Errorf("Venue = %q, want abbreviated form", r.Venue)
	}
	if r.Year != "2021" || r.Citations != "421" || r.DOI != "10.1000/jair.2021.1" {
		t.Errorf("Year/Citations/DOI = %q/%q/%q", r.Year, r.Citations, r.DOI)
	}
	if r.Source != "semantic_scholar" {
		t.Errorf("Source = %q", r.Source)
	}

	// Sparse record falls back to defaults.
	sparse := records[1]
	if sparse.Title != "Untitled Document" {
		t.Errorf("sparse Title = %q, want Untitled Document", sparse.Title)
	}
	if sparse.AuthorsDisplay != "Unknown Author" || sparse.SortKey != "Unknown" {
		t.Errorf("sparse authors = %q/%q", sparse.AuthorsDisplay, sparse.SortKey)
	}
	if sparse.Year != "n.d." || sparse.DOI != "N/A" {
		t.Errorf("sparse Year/DOI = %q/%q", sparse.Year, sparse.DOI)
	}
	if sparse.Venue != "Unknown Venue" {
		t.Errorf("sparse Venue = %q", sparse.Venue)
	}
}

func TestSemanticScholarFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := semanticBulkBase
	semanticBulkBase = ts.URL
	defer func() { semanticBulkBase = old }()

	a := &SemanticScholarAdapter{Client: ts.Client()}
	if _, err := a.Fetch(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on HTTP 403")
	}
}
