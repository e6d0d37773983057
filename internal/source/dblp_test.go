// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const dblpJSON = `{
  "result": {
    "hits": {
      "hit": [
        {
          "info": {
            "title": "Streaming Joins Reconsidered",
            "venue": "SIGMOD",
            "year": "2021",
            "doi": "10.1145/sigmod.2021.42",
            "ee": "https://doi.org/10.1145/sigmod.2021.42",
            "authors": {"author": [{"text": "Wei Luo"}, {"text": "Ana Sousa Ferreira"}]}
          }
        },
        {
          "info": {
            "title": "Solo Author Note",
            "year": "2020",
            "ee": "https://example.org/note",
            "authors": {"author": {"text": "Grete Hermann"}}
          }
        }
      ]
    }
  }
}`

func TestDBLPFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("h"); got != "10" {
			t.Errorf("h = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, dblpJSON)
	}))
	defer ts.Close()

	old := dblpAPIBase
	dblpAPIBase = ts.URL
	defer func() { dblpAPIBase = old }()

	a := &DBLPAdapter{Client: ts.Client()}
	records, err := a.Fetch(context.Background(), "streaming joins", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Sorted by first-author name: Grete before Wei.
	solo := records[0]
	if solo.AuthorsDisplay != "G. Hermann" {
		t.Errorf("single-object author = %q, want G. Hermann", solo.AuthorsDisplay)
	}
	if solo.Venue != "DBLP Indexed" || solo.DOI != "N/A" {
		t.Errorf("solo Venue/DOI = %q/%q", solo.Venue, solo.DOI)
	}

	multi := records[1]
	// DBLP surname is the final token only.
	if multi.AuthorsDisplay != "W. Luo and A. Ferreira" {
		t.Errorf("AuthorsDisplay = %q", multi.AuthorsDisplay)
	}
	if multi.Citations != "0" {
		t.Errorf("Citations = %q, want 0", multi.Citations)
	}
	if multi.Year != "2021" || multi.Venue != "SIGMOD" {
		t.Errorf("Year/Venue = %q/%q", multi.Year, multi.Venue)
	}
}

func TestDBLPFetchRejectsNonJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html>captcha</html>")
	}))
	defer ts.Close()

	old := dblpAPIBase
	dblpAPIBase = ts.URL
	defer func() { dblpAPIBase = old }()

	a := &DBLPAdapter{Client: ts.Client()}
	if _, err := a.Fetch(context.Background(), "anything", 5); err == nil {
		t.Error("expected error on non-JSON content type")
	}
}
