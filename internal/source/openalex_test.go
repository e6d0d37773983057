// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const openAlexJSON = `{
  "results": [
    {
      "id": "https://openalex.org/W1",
      "title": "Graph Neural Networks for Molecules",
      "doi": "https://doi.org/10.1000/gnn.1",
      "publication_year": 2022,
      "cited_by_count": 134,
      "authorships": [
        {"author": {"id": "A1", "display_name": "Nina Petrova"}},
        {"author": {"id": "A2", "display_name": "Omar Haddad"}}
      ],
      "primary_location": {"source": {"display_name": "Nature Machine Intelligence"}},
      "abstract_inverted_index": {
        "remains": [2], "mechanism": [1], "The": [0], "unclear": [3]
      }
    }
  ]
}`

func TestOpenAlexFetch(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, openAlexJSON)
	}))
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	a := &OpenAlexAdapter{Client: ts.Client(), Email: "dev@example.org"}
	records, err := a.Fetch(context.Background(), "graph networks", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if got := capturedReq.URL.Query().Get("mailto"); got != "dev@example.org" {
		t.Errorf("mailto = %q", got)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.AuthorsDisplay != "N. Petrova and O. Haddad" {
		t.Errorf("AuthorsDisplay = %q", r.AuthorsDisplay)
	}
	if r.SortKey != "Petrova" {
		t.Errorf("SortKey = %q, want first author's surname", r.SortKey)
	}
	if r.Abstract != "The mechanism remains unclear" {
		t.Errorf("Abstract = %q, want inverted index rebuilt in order", r.Abstract)
	}
	if r.DOI != "10.1000/gnn.1" {
		t.Errorf("DOI = %q, want https prefix stripped", r.DOI)
	}
	if r.Venue != "Nature Machine Intelligence" || r.Year != "2022" || r.Citations != "134" {
		t.Errorf("Venue/Year/Citations = %q/%q/%q", r.Venue, r.Year, r.Citations)
	}
	if r.URL != "https://openalex.org/W1" {
		t.Errorf("URL = %q", r.URL)
	}
}

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"empty", nil, ""},
		{
			"repeated word",
			map[string][]int{"data": {0, 2}, "beats": {1}},
			"data beats data",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenAlexFetchCapsLimit(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		fmt.Fprint(w, `{"results":[]}`)
	}))
	defer ts.Close()

	old := openAlexAPIBase
	openAlexAPIBase = ts.URL
	defer func() { openAlexAPIBase = old }()

	a := &OpenAlexAdapter{Client: ts.Client()}
	if _, err := a.Fetch(context.Background(), "anything", 5000); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := capturedReq.URL.Query().Get("per_page"); got != "200" {
		t.Errorf("per_page = %q, want capped 200", got)
	}
}
