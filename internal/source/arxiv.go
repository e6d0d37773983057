// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivAdapter queries the arXiv Atom API. arXiv does not track citation
// counts, so every record carries "N/A" citations.
type ArxivAdapter struct {
	Client    *http.Client
	UserAgent string
}

// Name returns the adapter identifier.
func (a *ArxivAdapter) Name() string { return "arxiv" }

var arxivIDRe = regexp.MustCompile(`[0-9]{4}\.[0-9]{4,5}(v[0-9]+)?`)

// Fetch queries arXiv and normalizes the Atom entries.
func (a *ArxivAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=relevance&sortOrder=descending",
		arxivAPIBase, url.QueryEscape("all:"+query), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.PaperRecord
	seen := make(map[string]bool)
	for _, entry := range feed.Entries {
		if seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true

		arxivID := arxivIDRe.FindString(entry.ID)
		if arxivID == "" {
			arxivID = "N/A"
		}

		var formatted []string
		for _, au := range entry.Authors {
			formatted = append(formatted, FormatNameFirstLast(strings.TrimSpace(au.Name)))
		}
		sortKey := "Unknown"
		if len(entry.Authors) > 0 {
			sortKey = strings.TrimSpace(entry.Authors[0].Name)
		}

		year := ""
		if len(entry.Published) >= 4 {
			year = entry.Published[:4]
		}

		records = append(records, types.PaperRecord{
			Title:          strings.Join(strings.Fields(entry.Title), " "),
			AuthorsDisplay: JoinAuthors(formatted),
			SortKey:        sortKey,
			Venue:          "arXiv preprint arXiv:" + arxivID,
			Year:           year,
			Citations:      "N/A",
			DOI:            "N/A",
			URL:            entry.ID,
			Abstract:       strings.TrimSpace(entry.Summary),
			Source:         "arxiv",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
