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

// dblpAPIBase is the DBLP publication search endpoint. Declared as a var
// so tests can substitute an httptest server.
var dblpAPIBase = "https://dblp.org/search/publ/api"

// DBLPAdapter queries the DBLP bibliography. DBLP does not track citation
// counts, so records carry "0".
type DBLPAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *DBLPAdapter) Name() string { return "dblp" }

// Fetch queries DBLP and normalizes the hits.
func (a *DBLPAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"h":      {strconv.Itoa(limit)},
	}
	reqURL := dblpAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DBLP API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DBLP API returned HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("DBLP returned non-JSON content type %q", ct)
	}

	var dr dblpResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("parsing DBLP response: %w", err)
	}

	var records []types.PaperRecord
	seen := make(map[string]bool)
	for _, hit := range dr.Result.Hits.Hit {
		info := hit.Info

		entryID := info.DOI
		if entryID == "" {
			entryID = info.EE
		}
		if entryID == "" {
			entryID = info.Title
		}
		if seen[entryID] {
			continue
		}
		seen[entryID] = true

		display, sortKey := formatDBLPAuthors(info.Authors.Author)

		venue := "DBLP Indexed"
		if info.Venue != "" {
			venue = info.Venue
		}
		year := "n.d."
		if info.Year != "" {
			year = info.Year
		}
		doi := "N/A"
		if info.DOI != "" {
			doi = info.DOI
		}
		title := "No Title"
		if info.Title != "" {
			title = info.Title
		}

		records = append(records, types.PaperRecord{
			Title:          title,
			AuthorsDisplay: display,
			SortKey:        sortKey,
			Venue:          venue,
			Year:           year,
			Citations:      "0",
			DOI:            doi,
			URL:            info.EE,
			Source:         "dblp",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// formatDBLPAuthors renders DBLP "First Last" names as "F. Last", keeping
// only the final token as surname.
func formatDBLPAuthors(authors []dblpAuthor) (string, string) {
	var formatted []string
	sortKey := "Unknown"
	for i, au := range authors {
		if au.Text == "" {
			continue
		}
		if i == 0 {
			sortKey = au.Text
		}
		parts := strings.Fields(au.Text)
		if len(parts) > 1 {
			formatted = append(formatted, initialOf(parts[0])+". "+parts[len(parts)-1])
		} else {
			formatted = append(formatted, au.Text)
		}
	}
	return JoinAuthors(formatted), sortKey
}

// DBLP API JSON structures. The author field is a single object when a
// publication has one author and a list otherwise, so it gets a custom
// decoder.
type dblpResponse struct {
	Result dblpResult `json:"result"`
}

type dblpResult struct {
	Hits dblpHits `json:"hits"`
}

type dblpHits struct {
	Hit []dblpHit `json:"hit"`
}

type dblpHit struct {
	Info dblpInfo `json:"info"`
}

type dblpInfo struct {
	Title   string          `json:"title"`
	Venue   string          `json:"venue"`
	Year    string          `json:"year"`
	DOI     string          `json:"doi"`
	EE      string          `json:"ee"`
	Authors dblpAuthorsWrap `json:"authors"`
}

type dblpAuthorsWrap struct {
	Author []dblpAuthor `json:"author"`
}

type dblpAuthor struct {
	Text string `json:"text"`
}

// UnmarshalJSON accepts either a single author object or a list.
func (d *dblpAuthorsWrap) UnmarshalJSON(data []byte) error {
	var multi struct {
		Author []dblpAuthor `json:"author"`
	}
	if err := json.Unmarshal(data, &multi); err == nil {
		d.Author = multi.Author
		return nil
	}
	var single struct {
		Author dblpAuthor `json:"author"`
	}
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	d.Author = []dblpAuthor{single.Author}
	return nil
}
