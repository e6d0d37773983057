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

// plosAPIBase is the PLOS Solr search endpoint. Declared as a var so
// tests can substitute an httptest server.
var plosAPIBase = "https://api.plos.org/search"

// PLOSAdapter queries the PLOS Solr search API. PLOS reports total
// article usage rather than citations; that count fills the citations
// column.
type PLOSAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *PLOSAdapter) Name() string { return "plos" }

// Fetch queries PLOS over title and abstract and normalizes the docs.
func (a *PLOSAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"q":    {fmt.Sprintf("title:%q OR abstract:%q", query, query)},
		"fl":   {"author_display,title,journal,publication_date,id,counter_total_all,abstract"},
		"wt":   {"json"},
		"rows": {strconv.Itoa(limit)},
	}
	reqURL := plosAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PLOS API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PLOS API returned HTTP %d", resp.StatusCode)
	}

	var pr plosResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing PLOS response: %w", err)
	}

	var records []types.PaperRecord
	seen := make(map[string]bool)
	for _, doc := range pr.Response.Docs {
		if doc.ID == "" || seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true

		display, sortKey := formatPLOSAuthors(doc.AuthorDisplay)

		// publication_date is "2023-10-24T00:00:00Z".
		year := "n.d."
		if idx := strings.Index(doc.PublicationDate, "-"); idx > 0 {
			year = doc.PublicationDate[:idx]
		}

		venue := "PLOS Indexed Journal"
		if doc.Journal != "" {
			venue = doc.Journal
		}

		records = append(records, types.PaperRecord{
			Title:          doc.Title,
			AuthorsDisplay: display,
			SortKey:        sortKey,
			Venue:          venue,
			Year:           year,
			Citations:      strconv.Itoa(doc.CounterTotalAll),
			DOI:            doc.ID,
			URL:            "https://journals.plos.org/plosone/article?id=" + doc.ID,
			Abstract:       strings.TrimSpace(strings.Join(doc.Abstract, " ")),
			Source:         "plos",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// formatPLOSAuthors renders the "Surname, Firstname" author display list
// as "F. Surname" entries, returning the first raw entry as sort key.
func formatPLOSAuthors(authors []string) (string, string) {
	if len(authors) == 0 {
		return "Unknown Author", "Unknown"
	}

	formatted := make([]string, 0, len(authors))
	for _, au := range authors {
		parts := strings.SplitN(au, ",", 2)
		if len(parts) == 2 {
			surname := strings.TrimSpace(parts[0])
			first := strings.TrimSpace(parts[1])
			if first != "" {
				formatted = append(formatted, initialOf(first)+". "+surname)
				continue
			}
		}
		formatted = append(formatted, au)
	}

	return JoinAuthors(formatted), authors[0]
}

// PLOS API JSON structures.
type plosResponse struct {
	Response plosDocs `json:"response"`
}

type plosDocs struct {
	Docs []plosDoc `json:"docs"`
}

type plosDoc struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Journal         string   `json:"journal"`
	PublicationDate string   `json:"publication_date"`
	AuthorDisplay   []string `json:"author_display"`
	CounterTotalAll int      `json:"counter_total_all"`
	Abstract        []string `json:"abstract"`
}
