// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-orchestrator/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and search past search runs",
	Long: `History queries the local run archive. Every completed search is saved
with its ranked papers and gap statements; list shows past runs and search
runs a full-text match over archived paper titles and gap statements.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Full-text search over archived titles and gap statements",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistorySearch,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	return history.NewStore(pipelineConfig().History)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-19s  %-40s  %-7s  %-5s  %s\n",
		"ID", "Started", "Query", "Papers", "Gaps", "Engines")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range runs {
		query := r.Query
		if len(query) > 40 {
			query = query[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-19s  %-40s  %-7d  %-5d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), query,
			r.TotalPapers, r.GapsFound, strings.Join(r.Engines, ","))
	}
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	hits, err := store.Search(context.Background(), args[0])
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	for _, h := range hits {
		text := h.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Fprintf(os.Stdout, "[run %d, %s] %s: %s (citations: %d)\n",
			h.RunID, h.RunQuery, h.Kind, text, h.Citations)
	}
	fmt.Fprintf(os.Stdout, "\n%d matches\n", len(hits))
	return nil
}
