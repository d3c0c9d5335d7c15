// Package archive keeps a SQLite history of what each generator run
// emitted. The feed files only ever hold the latest scrape; the archive is
// the durable record of when each article was seen and with what metadata.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/olshansky/rss-feeds/scrape"
)

// Store manages the run archive using SQLite.
type Store struct {
	db *sql.DB
}

// Run summarizes one recorded generator run.
type Run struct {
	RunID        uuid.UUID
	Source       string
	RanAt        time.Time
	ArticleCount int
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize archive schema: %w", err)
	}

	return store, nil
}

// initSchema creates the archive tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		ran_at TIMESTAMP NOT NULL,
		article_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS articles (
		run_id TEXT NOT NULL,
		link TEXT NOT NULL,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		published_at TIMESTAMP NOT NULL,
		PRIMARY KEY (run_id, link),
		FOREIGN KEY (run_id) REFERENCES runs(run_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores one run and its validated articles atomically.
func (s *Store) RecordRun(runID uuid.UUID, source string, ranAt time.Time, articles []scrape.Article) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, source, ran_at, article_count) VALUES (?, ?, ?, ?)",
		runID.String(), source, ranAt.UTC(), len(articles),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, a := range articles {
		_, err = tx.Exec(
			"INSERT INTO articles (run_id, link, title, category, published_at) VALUES (?, ?, ?, ?, ?)",
			runID.String(), a.Link, a.Title, a.Category, a.Date.UTC(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert article %s: %w", a.Link, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// Runs lists the recorded runs for a source, most recent first.
func (s *Store) Runs(source string) ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT run_id, source, ran_at, article_count FROM runs WHERE source = ? ORDER BY ran_at DESC",
		source,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var id string
		if err := rows.Scan(&id, &r.Source, &r.RanAt, &r.ArticleCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.RunID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid run_id %q: %w", id, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Articles returns the articles recorded for one run, in insertion order.
func (s *Store) Articles(runID uuid.UUID) ([]scrape.Article, error) {
	rows, err := s.db.Query(
		"SELECT link, title, category, published_at FROM articles WHERE run_id = ? ORDER BY rowid",
		runID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []scrape.Article
	for rows.Next() {
		var a scrape.Article
		if err := rows.Scan(&a.Link, &a.Title, &a.Category, &a.Date); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
