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

// pubmedESearchBase and pubmedESummaryBase are the NCBI E-utilities
// endpoints. Declared as vars so tests can substitute httptest servers.
var (
	pubmedESearchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedESummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// PubMedAdapter queries PubMed in two steps: esearch for PMIDs, then
// esummary for the article details. PubMed does not report citation
// counts, so records carry "N/A".
type PubMedAdapter struct {
	Client    *http.Client
	UserAgent string
	Email     string
}

// Name returns the adapter identifier.
func (a *PubMedAdapter) Name() string { return "pubmed" }

// Fetch runs the esearch + esummary pair and normalizes the summaries.
func (a *PubMedAdapter) Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	ids, err := a.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return a.summaries(ctx, ids)
}

func (a *PubMedAdapter) search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(limit)},
		"retmode": {"json"},
	}
	if a.Email != "" {
		params.Set("email", a.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubmedESearchBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PubMed esearch request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed esearch returned HTTP %d", resp.StatusCode)
	}

	var sr pubmedSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing PubMed esearch response: %w", err)
	}
	return sr.ESearchResult.IDList, nil
}

func (a *PubMedAdapter) summaries(ctx context.Context, ids []string) ([]types.PaperRecord, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pubmedESummaryBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.UserAgent)

	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PubMed esummary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PubMed esummary returned HTTP %d", resp.StatusCode)
	}

	var sum pubmedSummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		return nil, fmt.Errorf("parsing PubMed esummary response: %w", err)
	}

	var records []types.PaperRecord
	for _, pmid := range sum.Result.UIDs {
		doc, ok := sum.Result.Docs[pmid]
		if !ok {
			continue
		}

		var formatted []string
		for _, au := range doc.Authors {
			formatted = append(formatted, formatPubMedAuthor(au.Name))
		}
		sortKey := "Unknown"
		if len(doc.Authors) > 0 {
			sortKey = doc.Authors[0].Name
		}

		// PubDate looks like "2023 Oct 24" or just "2023".
		year := "n.d."
		if fields := strings.Fields(doc.PubDate); len(fields) > 0 {
			year = fields[0]
		}

		title := doc.Title
		if title == "" {
			title = "Untitled Document"
		}

		records = append(records, types.PaperRecord{
			Title:          title,
			AuthorsDisplay: JoinAuthors(formatted),
			SortKey:        sortKey,
			Venue:          AbbreviateVenue(doc.FullJournalName),
			Year:           year,
			Citations:      "N/A",
			DOI:            pubmedDOI(doc),
			URL:            "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/",
			Source:         "pubmed",
		})
	}

	sortBySortKey(records)
	return records, nil
}

// formatPubMedAuthor renders the esummary "Surname IN" form as
// "I. Surname".
func formatPubMedAuthor(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	initials := parts[len(parts)-1]
	surname := strings.Join(parts[:len(parts)-1], " ")
	return initialOf(initials) + ". " + surname
}

func pubmedDOI(doc pubmedDoc) string {
	for _, id := range doc.ArticleIDs {
		if id.IDType == "doi" && id.Value != "" {
			return id.Value
		}
	}
	return "N/A"
}

// PubMed E-utilities JSON structures.
type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// pubmedSummaryResponse carries per-PMID documents keyed by ID alongside
// the "uids" ordering list, so the document map is decoded in a second
// pass over the raw JSON.
type pubmedSummaryResponse struct {
	Result pubmedResult `json:"result"`
}

type pubmedResult struct {
	UIDs []string
	Docs map[string]pubmedDoc
}

// UnmarshalJSON splits the mixed result object: the "uids" key lists the
// order, every other key is a document.
func (r *pubmedResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if uids, ok := raw["uids"]; ok {
		if err := json.Unmarshal(uids, &r.UIDs); err != nil {
			return err
		}
	}
	r.Docs = make(map[string]pubmedDoc)
	for key, msg := range raw {
		if key == "uids" {
			continue
		}
		var doc pubmedDoc
		if err := json.Unmarshal(msg, &doc); err != nil {
			continue
		}
		r.Docs[key] = doc
	}
	return nil
}

type pubmedDoc struct {
	Title           string            `json:"title"`
	FullJournalName string            `json:"fulljournalname"`
	PubDate         string            `json:"pubdate"`
	Authors         []pubmedAuthor    `json:"authors"`
	ArticleIDs      []pubmedArticleID `json:"articleids"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}

type pubmedArticleID struct {
	IDType string `json:"idtype"`
	Value  string `json:"value"`
}
