// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source queries academic search APIs and normalizes their
// responses into the shared paper record shape. Each API is wrapped in an
// Adapter; Run fans a query out to every configured adapter concurrently
// and collects whatever arrives, isolating per-adapter failures.
package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

// Adapter fetches papers from a single academic API. Each adapter
// implements this interface per the Strategy pattern.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, limit int) ([]types.PaperRecord, error)
}

// RunSummary reports the outcome of a fan-out: how many records each
// adapter contributed and which adapters failed with what error.
type RunSummary struct {
	Succeeded map[string]int
	Failed    map[string]string
	Total     int
}

const defaultMaxWorkers = 20

// Run fans the query out to all adapters, at most maxWorkers at a time,
// and returns the combined records in completion order. A failing adapter
// loses only its own records: the error is recorded in the summary and a
// warning is written to w, and collection continues. Run itself does not
// fail; zero adapters yield an empty result.
func Run(ctx context.Context, adapters []Adapter, query string, limit, maxWorkers int, w io.Writer) ([]types.PaperRecord, RunSummary) {
	summary := RunSummary{
		Succeeded: make(map[string]int),
		Failed:    make(map[string]string),
	}
	if len(adapters) == 0 {
		return nil, summary
	}
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}

	type adapterResult struct {
		records []types.PaperRecord
		err     error
		name    string
	}

	ch := make(chan adapterResult, len(adapters))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, a := range adapters {
		wg.Add(1)
		go func(a Adapter) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			records, err := a.Fetch(ctx, query, limit)
			ch <- adapterResult{records: records, err: err, name: a.Name()}
		}(a)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	var all []types.PaperRecord
	for ar := range ch {
		if ar.err != nil {
			summary.Failed[ar.name] = ar.err.Error()
			fmt.Fprintf(w, "warning: source %s failed: %v\n", ar.name, ar.err)
			continue
		}
		summary.Succeeded[ar.name] = len(ar.records)
		all = append(all, ar.records...)
	}
	summary.Total = len(all)

	return all, summary
}

// sortBySortKey orders an adapter's records alphabetically by first-author
// name, the order each adapter returns its own batch in.
func sortBySortKey(records []types.PaperRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].SortKey) < strings.ToLower(records[j].SortKey)
	})
}
