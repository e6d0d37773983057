// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefAdapter queries the Crossref DOI registry. An email in the
// mailto parameter routes requests through the polite pool.
type CrossrefAdapter struct {
	Client    *http.Client
	UserAgent string
	Email     string
}

// Name returns the adapter identifier.
func (a *CrossrefAdapter) Name() string { return "crossref" }

// Fetch queries Crossref and normalizes the work items.
func (a *CrossrefAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":  {query},
		"rows":   {strconv.Itoa(limit)},
		"select": {"DOI,title,author,container-title,published-print,published-online,URL,is-referenced-by-count"},
	}
	if a.Email != "" {
		params.Set("mailto", a.Email)
	}
	reqURL := crossrefAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	var records []types.PaperRecord
	for _, item := range cr.Message.Items {
		var formatted []string
		for _, au := range item.Authors {
			formatted = append(formatted, formatCrossrefAuthor(au))
		}
		sortKey := "Unknown"
		if len(item.Authors) > 0 && item.Authors[0].Family != "" {
			sortKey = item.Authors[0].Family
		}

		// Crossref nests dates: prefer the print date, fall back to online.
		year := "n.d."
		if y := crossrefYear(item.PublishedPrint); y != "" {
			year = y
		} else if y := crossrefYear(item.PublishedOnline); y != "" {
			year = y
		}

		title := "Untitled"
		if len(item.Title) > 0 && item.Title[0] != "" {
			title = item.Title[0]
		}
		venue := "Unknown Venue"
		if len(item.ContainerTitle) > 0 && item.ContainerTitle[0] != "" {
			venue = item.ContainerTitle[0]
		}

		doi := item.DOI
		if doi == "" {
			doi = "N/A"
		}
		link := item.URL
		if link == "" && item.DOI != "" {
			link = "https://doi.org/" + item.DOI
		}

		records = append(records, types.PaperRecord{
			Title:          title,
			AuthorsDisplay: JoinAuthors(formatted),
			SortKey:        sortKey,
			Venue:          venue,
			Year:           year,
			Citations:      strconv.Itoa(item.ReferencedByCount),
			DOI:            doi,
			URL:            link,
			Source:         "crossref",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// formatCrossrefAuthor renders a given/family pair as "G. Family".
func formatCrossrefAuthor(au crossrefAuthor) string {
	if au.Family != "" && au.Given != "" {
		return initialOf(au.Given) + ". " + au.Family
	}
	if au.Family != "" {
		return au.Family
	}
	return "Unknown"
}

func crossrefYear(d crossrefDate) string {
	if len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
		return strconv.Itoa(d.DateParts[0][0])
	}
	return ""
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI               string           `json:"DOI"`
	Title             []string         `json:"title"`
	ContainerTitle    []string         `json:"container-title"`
	URL               string           `json:"URL"`
	ReferencedByCount int              `json:"is-referenced-by-count"`
	Authors           []crossrefAuthor `json:"author"`
	PublishedPrint    crossrefDate     `json:"published-print"`
	PublishedOnline   crossrefDate     `json:"published-online"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}
