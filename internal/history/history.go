// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history archives completed search runs in a SQLite database so
// past result sets and gap statements stay queryable across sessions.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-orchestrator/pkg/types"
)

const defaultDBPath = "history/scholar.db"

// Store manages the run archive database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at cfg.DBPath, creating
// parent directories and the schema as needed.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			started_at TEXT NOT NULL,
			duration_seconds REAL,
			total_papers INTEGER,
			gaps_found INTEGER,
			engines TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS papers (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			title TEXT NOT NULL,
			authors TEXT,
			venue TEXT,
			year TEXT,
			citations INTEGER,
			doi TEXT,
			url TEXT,
			relevance_score INTEGER,
			source_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_run_id ON papers(run_id)`,
		`CREATE TABLE IF NOT EXISTS gaps (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			title TEXT,
			category TEXT,
			statement TEXT NOT NULL,
			confidence REAL,
			citations INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gaps_run_id ON gaps(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual tables over paper titles and gap statements. The
	// archive is append-only, so insert triggers are enough to keep the
	// indexes in sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='papers_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE papers_fts USING fts5(title, content=papers, content_rowid=rowid)`,
			`CREATE TRIGGER papers_ai AFTER INSERT ON papers BEGIN
				INSERT INTO papers_fts(rowid, title) VALUES (new.rowid, new.title);
			END`,
			`CREATE VIRTUAL TABLE gaps_fts USING fts5(statement, content=gaps, content_rowid=rowid)`,
			`CREATE TRIGGER gaps_ai AFTER INSERT ON gaps BEGIN
				INSERT INTO gaps_fts(rowid, statement) VALUES (new.rowid, new.statement);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// RunRecord is one completed search run to archive.
type RunRecord struct {
	Query           string
	StartedAt       time.Time
	DurationSeconds float64
	Engines         []string
	Papers          []types.AggregatedPaper
	Gaps            []types.GapStatement
}

// Save archives a run with its papers and gap statements in one
// transaction and returns the new run ID.
func (s *Store) Save(ctx context.Context, run RunRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	enginesJSON, _ := json.Marshal(run.Engines)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (query, started_at, duration_seconds, total_papers, gaps_found, engines)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.Query, run.StartedAt.UTC().Format(time.RFC3339),
		run.DurationSeconds, len(run.Papers), len(run.Gaps), string(enginesJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run ID: %w", err)
	}

	paperStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO papers (run_id, title, authors, venue, year, citations, doi, url, relevance_score, source_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing paper insert: %w", err)
	}
	defer paperStmt.Close()

	for _, p := range run.Papers {
		_, err := paperStmt.ExecContext(ctx,
			runID, p.Title, p.AuthorsDisplay, p.Venue, p.Year,
			p.CitationsInt, p.DOI, p.URL, p.RelevanceScore, p.SourceCount,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting paper %q: %w", p.Title, err)
		}
	}

	gapStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO gaps (run_id, title, category, statement, confidence, citations)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing gap insert: %w", err)
	}
	defer gapStmt.Close()

	for _, g := range run.Gaps {
		_, err := gapStmt.ExecContext(ctx,
			runID, g.Title, g.Category, g.Statement, g.Analysis.Confidence, g.Citations,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting gap statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunInfo is one row of the run listing.
type RunInfo struct {
	ID              int64
	Query           string
	StartedAt       time.Time
	DurationSeconds float64
	TotalPapers     int
	GapsFound       int
	Engines         []string
}

// List returns archived runs, newest first.
func (s *Store) List(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, started_at, duration_seconds, total_papers, gaps_found, engines
		 FROM runs ORDER BY id DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var (
			info        RunInfo
			startedAt   string
			duration    sql.NullFloat64
			enginesJSON sql.NullString
		)
		if err := rows.Scan(&info.ID, &info.Query, &startedAt,
			&duration, &info.TotalPapers, &info.GapsFound, &enginesJSON); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		info.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		if duration.Valid {
			info.DurationSeconds = duration.Float64
		}
		if enginesJSON.Valid {
			json.Unmarshal([]byte(enginesJSON.String), &info.Engines)
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// SearchHit is one full-text match from the archive: either a paper title
// or a gap statement, with the run it came from.
type SearchHit struct {
	Kind      string // "paper" or "gap"
	RunID     int64
	RunQuery  string
	Text      string
	Year      string
	Citations int
}

// Search runs an FTS5 match over archived paper titles and gap statements.
// Paper hits come first, each group ranked by relevance.
func (s *Store) Search(ctx context.Context, term string) ([]SearchHit, error) {
	var hits []SearchHit

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.run_id, r.query, p.title, p.year, p.citations
		 FROM papers_fts
		 JOIN papers p ON p.rowid = papers_fts.rowid
		 JOIN runs r ON r.id = p.run_id
		 WHERE papers_fts MATCH ?
		 ORDER BY papers_fts.rank LIMIT ?`, term, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching paper titles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		hit := SearchHit{Kind: "paper"}
		if err := rows.Scan(&hit.RunID, &hit.RunQuery, &hit.Text, &hit.Year, &hit.Citations); err != nil {
			return nil, fmt.Errorf("scanning paper hit: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	gapRows, err := s.db.QueryContext(ctx,
		`SELECT g.run_id, r.query, g.statement, g.citations
		 FROM gaps_fts
		 JOIN gaps g ON g.rowid = gaps_fts.rowid
		 JOIN runs r ON r.id = g.run_id
		 WHERE gaps_fts MATCH ?
		 ORDER BY gaps_fts.rank LIMIT ?`, term, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching gap statements: %w", err)
	}
	defer gapRows.Close()

	for gapRows.Next() {
		hit := SearchHit{Kind: "gap"}
		if err := gapRows.Scan(&hit.RunID, &hit.RunQuery, &hit.Text, &hit.Citations); err != nil {
			return nil, fmt.Errorf("scanning gap hit: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, gapRows.Err()
}
