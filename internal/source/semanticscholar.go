// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-orchestrator/internal/httputil"
	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// semanticBulkBase is the Semantic Scholar bulk search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticBulkBase = "https://api.semanticscholar.org/graph/v1/paper/search/bulk"

const semanticBulkFields = "paperId,title,year,authors,venue,url,citationCount,externalIds"

// SemanticScholarAdapter queries the Semantic Scholar bulk API. The bulk
// endpoint is aggressively rate limited, so requests go through the 429
// retry helper.
type SemanticScholarAdapter struct {
	Client    *http.Client
	UserAgent string
	APIKey    string
}

// Name returns the adapter identifier.
func (a *SemanticScholarAdapter) Name() string { return "semantic_scholar" }

// Fetch queries the bulk endpoint and normalizes the results.
func (a *SemanticScholarAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"fields": {semanticBulkFields},
		"limit":  {strconv.Itoa(limit)},
	}
	reqURL := semanticBulkBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	if a.APIKey != "" {
		req.Header.Set("x-api-key", a.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, a.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticBulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var records []types.PaperRecord
	for _, paper := range sr.Data {
		var formatted []string
		for _, au := range paper.Authors {
			formatted = append(formatted, FormatNameFirstLast(au.Name))
		}
		sortKey := "Unknown"
		if len(paper.Authors) > 0 {
			sortKey = paper.Authors[0].Name
		}

		year := "n.d."
		if paper.Year > 0 {
			year = strconv.Itoa(paper.Year)
		}

		doi := paper.ExternalIDs.DOI
		if doi == "" {
			doi = "N/A"
		}

		title := paper.Title
		if title == "" {
			title = "Untitled Document"
		}

		records = append(records, types.PaperRecord{
			Title:          title,
			AuthorsDisplay: JoinAuthors(formatted),
			SortKey:        sortKey,
			Venue:          AbbreviateVenue(paper.Venue),
			Year:           year,
			Citations:      strconv.Itoa(paper.CitationCount),
			DOI:            doi,
			URL:            paper.URL,
			Source:         "semantic_scholar",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// Semantic Scholar bulk API JSON structures.
type semanticBulkResponse struct {
	Total int                 `json:"total"`
	Data  []semanticBulkPaper `json:"data"`
}

type semanticBulkPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Year          int                 `json:"year"`
	Venue         string              `json:"venue"`
	URL           string              `json:"url"`
	CitationCount int                 `json:"citationCount"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
