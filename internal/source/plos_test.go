// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const plosJSON = `{
  "response": {
    "docs": [
      {
        "id": "10.1371/journal.pone.0291234",
        "title": "Microbiome Shifts Under Antibiotic Exposure",
        "journal": "PLOS ONE",
        "publication_date": "2023-10-24T00:00:00Z",
        "author_display": ["Silva, Joana", "Novak, Petr"],
        "counter_total_all": 4521,
        "abstract": ["  Further research is needed on dosage effects.  "]
      }
    ]
  }
}`

func TestPLOSFetch(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, plosJSON)
	}))
	defer ts.Close()

	old := plosAPIBase
	plosAPIBase = ts.URL
	defer func() { plosAPIBase = old }()

	a := &PLOSAdapter{Client: ts.Client()}
	records, err := a.Fetch(context.Background(), "microbiome antibiotics", 10)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("q"); !strings.Contains(got, `title:"microbiome antibiotics"`) {
		t.Errorf("q param = %q, want title clause", got)
	}
	if got := q.Get("wt"); got != "json" {
		t.Errorf("wt = %q, want json", got)
	}

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	r := records[0]
	if r.AuthorsDisplay != "J. Silva and P. Novak" {
		t.Errorf("AuthorsDisplay = %q", r.AuthorsDisplay)
	}
	if r.SortKey != "Silva, Joana" {
		t.Errorf("SortKey = %q", r.SortKey)
	}
	if r.Year != "2023" {
		t.Errorf("Year = %q, want 2023", r.Year)
	}
	if r.Citations != "4521" {
		t.Errorf("Citations = %q, want usage counter", r.Citations)
	}
	if r.DOI != "10.1371/journal.pone.0291234" {
		t.Errorf("DOI = %q", r.DOI)
	}
	if r.URL != "https://journals.plos.org/plosone/article?id=10.1371/journal.pone.0291234" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Abstract != "Further research is needed on dosage effects." {
		t.Errorf("Abstract = %q, want trimmed", r.Abstract)
	}
}

func TestFormatPLOSAuthors(t *testing.T) {
	tests := []struct {
		in          []string
		wantDisplay string
	}{
		{[]string{"Silva, Joana"}, "J. Silva"},
		{[]string{"Silva, Joana", "Novak, Petr", "Oyelaran, Bisi"}, "J. Silva et al."},
		{[]string{"The PLOS Editors"}, "The PLOS Editors"},
		{nil, "Unknown Author"},
	}
	for _, tt := range tests {
		display, _ := formatPLOSAuthors(tt.in)
		if display != tt.wantDisplay {
			t.Errorf("formatPLOSAuthors(%v) = %q, want %q", tt.in, display, tt.wantDisplay)
		}
	}
}
