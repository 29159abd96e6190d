// ABOUTME: SQLite persistence for opportunities, ingest runs, and sources
// ABOUTME: UNIQUE(url) on opportunities is the dedup backstop for racing runs

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"ao-radar-api/core/domain"
	"ao-radar-api/core/interfaces"
)

// Store implements OpportunityStore, RunStore, and SourceRegistry on top of
// a single SQLite database file.
type Store struct {
	db       *sql.DB
	filePath string
}

// NewStore opens (or creates) the database at filePath and ensures the
// schema exists.
func NewStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "ao-radar.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &Store{
		db:       db,
		filePath: filePath,
	}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS opportunities (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			url TEXT NOT NULL UNIQUE,
			published_at TEXT,
			score INTEGER NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			summary TEXT NOT NULL DEFAULT '',
			raw TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			family TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_opportunities_status ON opportunities(status);
		CREATE INDEX IF NOT EXISTS idx_opportunities_created_at ON opportunities(created_at);

		CREATE TABLE IF NOT EXISTS ingest_runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			created_count INTEGER NOT NULL DEFAULT 0,
			scanned_count INTEGER NOT NULL DEFAULT 0,
			sources TEXT NOT NULL DEFAULT '[]',
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS sources (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			url TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		);
	`

	_, err := s.db.Exec(query)
	return err
}

// FindByLink returns the opportunity stored under the given link, or
// (nil, nil) when the link is unknown.
func (s *Store) FindByLink(ctx context.Context, link string) (*domain.Opportunity, error) {
	if link == "" {
		return nil, errors.New("link cannot be empty")
	}

	query := `
		SELECT id, title, url, published_at, score, tags, summary, raw, status, family, created_at
		FROM opportunities WHERE url = ?
	`

	var (
		opp       domain.Opportunity
		published sql.NullString
		tags      string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, link).Scan(
		&opp.ID, &opp.Title, &opp.Link, &published, &opp.Score,
		&tags, &opp.Summary, &opp.Raw, &opp.Status, &opp.Family, &createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query opportunity: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &opp.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}
	if published.Valid {
		if ts, err := time.Parse(time.RFC3339, published.String); err == nil {
			opp.Published = &ts
		}
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		opp.CreatedAt = ts
	}

	return &opp, nil
}

// Insert persists a new opportunity, assigning an id when the caller left it
// empty. A unique-constraint violation on the url column is reported as
// interfaces.ErrDuplicateLink.
func (s *Store) Insert(ctx context.Context, opp *domain.Opportunity) error {
	if opp == nil {
		return errors.New("opportunity cannot be nil")
	}
	if opp.ID == "" {
		opp.ID = uuid.New().String()
	}

	tags, err := json.Marshal(opp.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	var published interface{}
	if opp.Published != nil {
		published = opp.Published.UTC().Format(time.RFC3339)
	}

	query := `
		INSERT INTO opportunities
			(id, title, url, published_at, score, tags, summary, raw, status, family, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.ExecContext(ctx, query,
		opp.ID, opp.Title, opp.Link, published, opp.Score,
		string(tags), opp.Summary, opp.Raw, string(opp.Status), opp.Family,
		opp.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return interfaces.ErrDuplicateLink
		}
		return fmt.Errorf("failed to insert opportunity: %w", err)
	}

	return nil
}

// Create opens a run record and returns its identifier.
func (s *Store) Create(ctx context.Context, startedAt time.Time) (string, error) {
	runID := uuid.New().String()

	query := "INSERT INTO ingest_runs (id, started_at) VALUES (?, ?)"
	_, err := s.db.ExecContext(ctx, query, runID, startedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("failed to create run record: %w", err)
	}

	return runID, nil
}

// Finalize closes the run record with its aggregate result. The per-source
// outcomes are stored as a JSON document.
func (s *Store) Finalize(ctx context.Context, runID string, result domain.RunResult) error {
	if runID == "" {
		return errors.New("run id cannot be empty")
	}

	sources, err := json.Marshal(result.Sources)
	if err != nil {
		return fmt.Errorf("failed to encode source outcomes: %w", err)
	}

	query := `
		UPDATE ingest_runs
		SET finished_at = ?, created_count = ?, scanned_count = ?, sources = ?, error = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		result.FinishedAt.UTC().Format(time.RFC3339),
		result.Created, result.Scanned, string(sources), result.Error, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize run: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("run %s not found", runID)
	}

	return nil
}

// ActiveSources returns all sources with the active flag set, ordered by name.
func (s *Store) ActiveSources(ctx context.Context) ([]domain.Source, error) {
	query := "SELECT id, name, type, url, active FROM sources WHERE active = 1 ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var src domain.Source
		var active int
		if err := rows.Scan(&src.ID, &src.Name, &src.Type, &src.URL, &active); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		src.Active = active != 0
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sources: %w", err)
	}

	return sources, nil
}

// UpsertSource inserts or replaces a source row. Used at startup to seed the
// registry with the configured defaults.
func (s *Store) UpsertSource(ctx context.Context, src domain.Source) error {
	if src.ID == "" {
		return errors.New("source id cannot be empty")
	}
	if err := src.Validate(); err != nil {
		return err
	}

	active := 0
	if src.Active {
		active = 1
	}

	query := `
		INSERT INTO sources (id, name, type, url, active)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, type = excluded.type,
			url = excluded.url, active = excluded.active
	`

	_, err := s.db.ExecContext(ctx, query, src.ID, src.Name, string(src.Type), src.URL, active)
	if err != nil {
		return fmt.Errorf("failed to upsert source: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
