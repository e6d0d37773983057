// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// europePMCAPIBase is the Europe PMC REST search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCAPIBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// EuropePMCAdapter queries the Europe PMC REST API.
type EuropePMCAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *EuropePMCAdapter) Name() string { return "europe_pmc" }

// Fetch queries Europe PMC and normalizes the result list.
func (a *EuropePMCAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"query":      {query},
		"format":     {"json"},
		"pageSize":   {strconv.Itoa(limit)},
		"resultType": {"core"},
	}
	reqURL := europePMCAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Europe PMC API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Europe PMC API returned HTTP %d", resp.StatusCode)
	}

	var er europePMCResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing Europe PMC response: %w", err)
	}

	var records []types.PaperRecord
	seen := make(map[string]bool)
	for _, entry := range er.ResultList.Result {
		entryID := entry.DOI
		if entryID == "" {
			entryID = entry.ID
		}
		if seen[entryID] {
			continue
		}
		seen[entryID] = true

		display, sortKey := formatEPMCAuthors(entry.AuthorString)

		venue := "Europe PMC Indexed Journal"
		if entry.JournalTitle != "" {
			venue = entry.JournalTitle
		}
		year := "n.d."
		if entry.PubYear != "" {
			year = entry.PubYear
		}
		doi := "N/A"
		if entry.DOI != "" {
			doi = entry.DOI
		}
		link := ""
		if entry.ID != "" {
			link = "https://europepmc.org/article/MED/" + entry.ID
		}

		records = append(records, types.PaperRecord{
			Title:          entry.Title,
			AuthorsDisplay: display,
			SortKey:        sortKey,
			Venue:          venue,
			Year:           year,
			Citations:      strconv.Itoa(entry.CitedByCount),
			DOI:            doi,
			URL:            link,
			Abstract:       entry.AbstractText,
			Source:         "europe_pmc",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// formatEPMCAuthors splits the comma-joined "Surname I, Surname I" author
// string and returns the display form plus the first author as sort key.
func formatEPMCAuthors(authorString string) (string, string) {
	if authorString == "" {
		return "Unknown Author", "Unknown"
	}

	var authors []string
	for _, a := range strings.Split(authorString, ",") {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) == 0 {
		return "Unknown Author", "Unknown"
	}

	formatted := make([]string, len(authors))
	for i, au := range authors {
		idx := strings.LastIndex(au, " ")
		if idx < 0 {
			formatted[i] = au
			continue
		}
		surname, initials := au[:idx], au[idx+1:]
		formatted[i] = initialOf(initials) + ". " + surname
	}

	return JoinAuthors(formatted), authors[0]
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	ResultList europePMCResultList `json:"resultList"`
}

type europePMCResultList struct {
	Result []europePMCEntry `json:"result"`
}

type europePMCEntry struct {
	ID           string `json:"id"`
	DOI          string `json:"doi"`
	Title        string `json:"title"`
	AuthorString string `json:"authorString"`
	JournalTitle string `json:"journalTitle"`
	PubYear      string `json:"pubYear"`
	CitedByCount int    `json:"citedByCount"`
	AbstractText string `json:"abstractText"`
}
