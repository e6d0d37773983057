// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich backfills abstracts, TLDRs, and keywords for the
// top-ranked papers via the Semantic Scholar graph API before gap mining
// and export. Most source APIs return sparse records; this second pass
// fills the fields the text pipeline feeds on.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/internal/httputil"
	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// Semantic Scholar graph endpoints. Declared as vars so tests can
// substitute httptest servers.
var (
	semanticPaperBase  = "https://api.semanticscholar.org/graph/v1/paper/DOI:"
	semanticSearchBase = "https://api.semanticscholar.org/graph/v1/paper/search"
)

const noAbstract = "Abstract not available."

// Enricher fetches paper details from Semantic Scholar.
type Enricher struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Run enriches the first limit papers in place: a DOI lookup first, then
// a title search fallback when the DOI is missing or yields no abstract.
// Lookup failures are isolated per paper; a paper that stays sparse keeps
// the "Abstract not available." placeholder. Returns how many papers
// gained an abstract.
func (e *Enricher) Run(ctx context.Context, papers []types.AggregatedPaper, limit int, w io.Writer) int {
	if limit <= 0 || limit > len(papers) {
		limit = len(papers)
	}

	enriched := 0
	for i := 0; i < limit; i++ {
		paper := &papers[i]

		doi := strings.TrimSpace(paper.DOI)
		if doi != "" && !strings.EqualFold(doi, "n/a") {
			if e.lookupByDOI(ctx, paper, doi) {
				enriched++
				continue
			}
		}

		if paper.Title != "" && e.searchByTitle(ctx, paper) {
			enriched++
			continue
		}

		if paper.Abstract == "" {
			paper.Abstract = noAbstract
			fmt.Fprintf(w, "warning: no abstract found for %q\n", paper.Title)
		}
	}
	return enriched
}

// lookupByDOI fetches details for a known DOI. Reports whether an
// abstract was obtained.
func (e *Enricher) lookupByDOI(ctx context.Context, paper *types.AggregatedPaper, doi string) bool {
	reqURL := semanticPaperBase + url.PathEscape(doi) + "?fields=abstract,url,title,tldr,fieldsOfStudy"

	var detail paperDetail
	if !e.get(ctx, reqURL, &detail) {
		return false
	}
	return applyDetail(paper, detail, false)
}

// searchByTitle falls back to a single-result title search. Reports
// whether an abstract was obtained.
func (e *Enricher) searchByTitle(ctx context.Context, paper *types.AggregatedPaper) bool {
	params := url.Values{
		"query":  {paper.Title},
		"limit":  {"1"},
		"fields": {"abstract,url,externalIds,tldr,fieldsOfStudy"},
	}

	var sr searchResponse
	if !e.get(ctx, semanticSearchBase+"?"+params.Encode(), &sr) {
		return false
	}
	if len(sr.Data) == 0 {
		return false
	}
	return applyDetail(paper, sr.Data[0], true)
}

// get performs a JSON GET, treating any transport or decode failure as a
// miss. Enrichment never aborts the pipeline.
func (e *Enricher) get(ctx context.Context, reqURL string, out interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", e.UserAgent)
	if e.APIKey != "" {
		req.Header.Set("x-api-key", e.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, e.Client, req, 0)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}

// applyDetail copies the fetched fields onto the paper. Only non-empty
// values overwrite; adoptDOI also backfills the DOI from a title-search
// hit. Reports whether an abstract was set.
func applyDetail(paper *types.AggregatedPaper, detail paperDetail, adoptDOI bool) bool {
	if detail.URL != "" {
		paper.URL = detail.URL
	}
	if detail.TLDR.Text != "" {
		paper.TLDR = detail.TLDR.Text
	}
	if len(detail.FieldsOfStudy) > 0 {
		paper.Keywords = strings.Join(detail.FieldsOfStudy, ", ")
	}
	if adoptDOI && detail.ExternalIDs.DOI != "" {
		paper.DOI = detail.ExternalIDs.DOI
	}
	if detail.Abstract != "" {
		paper.Abstract = detail.Abstract
		return true
	}
	return false
}

// Semantic Scholar detail JSON structures.
type paperDetail struct {
	Title         string      `json:"title"`
	Abstract      string      `json:"abstract"`
	URL           string      `json:"url"`
	TLDR          tldr        `json:"tldr"`
	FieldsOfStudy []string    `json:"fieldsOfStudy"`
	ExternalIDs   externalIDs `json:"externalIds"`
}

type tldr struct {
	Text string `json:"text"`
}

type externalIDs struct {
	DOI string `json:"DOI"`
}

type searchResponse struct {
	Data []paperDetail `json:"data"`
}
