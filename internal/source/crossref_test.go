// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const crossrefJSON = `{
  "message": {
    "items": [
      {
        "DOI": "10.1145/1234.5678",
        "title": ["Distributed Consensus at Scale"],
        "container-title": ["Communications of the ACM"],
        "URL": "https://doi.org/10.1145/1234.5678",
        "is-referenced-by-count": 87,
        "author": [
          {"given": "Grace", "family": "Hopper"},
          {"given": "Edsger", "family": "Dijkstra"},
          {"given": "Barbara", "family": "Liskov"}
        ],
        "published-print": {"date-parts": [[2019, 4]]}
      },
      {
        "DOI": "10.1000/online.only",
        "title": ["Online-first Article"],
        "container-title": [],
        "is-referenced-by-count": 3,
        "author": [],
        "published-online": {"date-parts": [[2024]]}
      }
    ]
  }
}`

func TestCrossrefFetch(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, crossrefJSON)
	}))
	defer ts.Close()

	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	defer func() { crossrefAPIBase = old }()

	a := &CrossrefAdapter{Client: ts.Client(), Email: "dev@example.org"}
	records, err := a.Fetch(context.Background(), "consensus", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("mailto"); got != "dev@example.org" {
		t.Errorf("mailto = %q", got)
	}
	if got := q.Get("rows"); got != "10" {
		t.Errorf("rows = %q, want 10", got)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Sorted by first-author surname: "Hopper" before "Unknown".
	r := records[0]
	if r.AuthorsDisplay != "G. Hopper et al." {
		t.Errorf("AuthorsDisplay = %q", r.AuthorsDisplay)
	}
	if r.SortKey != "Hopper" {
		t.Errorf("SortKey = %q, want Hopper", r.SortKey)
	}
	if r.Year != "2019" {
		t.Errorf("Year = %q, want print year 2019", r.Year)
	}
	if r.Venue != "Communications of the ACM" {
		t.Errorf("Venue = %q", r.Venue)
	}
	if r.Citations != "87" || r.DOI != "10.1145/1234.5678" {
		t.Errorf("Citations/DOI = %q/%q", r.Citations, r.DOI)
	}

	online := records[1]
	if online.Year != "2024" {
		t.Errorf("online Year = %q, want fallback to published-online", online.Year)
	}
	if online.Venue != "Unknown Venue" {
		t.Errorf("online Venue = %q", online.Venue)
	}
	if online.URL != "https://doi.org/10.1000/online.only" {
		t.Errorf("online URL = %q, want DOI link fallback", online.URL)
	}
}

func TestCrossrefFetchHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	old := crossrefAPIBase
	crossrefAPIBase = ts.URL
	defer func() { crossrefAPIBase = old }()

	a := &CrossrefAdapter{Client: ts.Client()}
	if _, err := a.Fetch(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on HTTP 500")
	}
}
