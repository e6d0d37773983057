// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// openAlexAPIBase is the OpenAlex works endpoint. Declared as a var so
// tests can substitute an httptest server.
var openAlexAPIBase = "https://api.openalex.org/works"

// OpenAlexAdapter queries the OpenAlex API. No API key is required; an
// email in the mailto parameter grants polite pool access.
type OpenAlexAdapter struct {
	Client    *http.Client
	UserAgent string
	Email     string
}

// Name returns the adapter identifier.
func (a *OpenAlexAdapter) Name() string { return "openalex" }

// Fetch queries OpenAlex and normalizes the works, reconstructing each
// abstract from the inverted index OpenAlex stores instead of plain text.
func (a *OpenAlexAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 200 {
		limit = 200
	}

	params := url.Values{
		"search":   {query},
		"per_page": {strconv.Itoa(limit)},
		"select":   {"id,title,publication_year,authorships,primary_location,cited_by_count,doi,abstract_inverted_index"},
	}
	if a.Email != "" {
		params.Set("mailto", a.Email)
	}
	reqURL := openAlexAPIBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var oar openAlexResponse
	if err := json.NewDecoder(resp.Body).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var records []types.PaperRecord
	for _, work := range oar.Results {
		var formatted []string
		for _, authorship := range work.Authorships {
			name := authorship.Author.DisplayName
			if name == "" {
				formatted = append(formatted, "Unknown")
				continue
			}
			formatted = append(formatted, FormatNameFirstLast(name))
		}

		// Sort key is the first author's surname.
		sortKey := "Unknown"
		if len(work.Authorships) > 0 {
			full := work.Authorships[0].Author.DisplayName
			if parts := strings.Fields(full); len(parts) > 0 {
				sortKey = parts[len(parts)-1]
			}
		}

		venue := "Unknown Venue"
		if work.PrimaryLocation.Source.DisplayName != "" {
			venue = work.PrimaryLocation.Source.DisplayName
		}

		year := "n.d."
		if work.PublicationYear > 0 {
			year = strconv.Itoa(work.PublicationYear)
		}

		// OpenAlex DOIs are full URLs; strip to the bare DOI.
		doi := "N/A"
		if work.DOI != "" {
			doi = strings.TrimPrefix(work.DOI, "https://doi.org/")
		}

		title := work.Title
		if title == "" {
			title = "Untitled Document"
		}

		records = append(records, types.PaperRecord{
			Title:          title,
			AuthorsDisplay: JoinAuthors(formatted),
			SortKey:        sortKey,
			Venue:          venue,
			Year:           year,
			Citations:      strconv.Itoa(work.CitedByCount),
			DOI:            doi,
			URL:            work.ID,
			Abstract:       reconstructAbstract(work.AbstractInvertedIndex),
			Source:         "openalex",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to the list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexLocation struct {
	Source openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName string `json:"display_name"`
}
