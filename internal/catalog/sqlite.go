package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"orbitfolio/internal/logging"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// SQLiteStore persists records in a local SQLite database. Records keep an
// explicit position so the catalog order is stable across sessions.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

// OpenSQLiteStore opens (creating if needed) the catalog database at path.
// ":memory:" is accepted for tests.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	timer := logging.StartTimer(logging.CategoryCatalog, "OpenSQLiteStore")
	defer timer.Stop()

	if path == "" {
		return nil, fmt.Errorf("database path required")
	}
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.CatalogError("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		logging.CatalogError("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.CatalogDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			logging.CatalogDebug("Failed to set sqlite journal_mode=WAL: %v", err)
		}
	}

	s := &SQLiteStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		logging.CatalogError("Failed to initialize catalog schema: %v", err)
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	logging.Catalog("Catalog store opened at %s", path)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	projectsTable := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		codename TEXT,
		title TEXT NOT NULL,
		status TEXT NOT NULL,
		classification TEXT,
		summary TEXT,
		description TEXT,
		metrics TEXT,
		tech TEXT,
		links TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_projects_position ON projects(position);
	CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
	`
	if _, err := s.db.Exec(projectsTable); err != nil {
		return fmt.Errorf("failed to create projects table: %w", err)
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Fetch implements Source.
func (s *SQLiteStore) Fetch(ctx context.Context) ([]Record, error) {
	return s.List(ctx)
}

const selectColumns = `id, codename, title, status, classification, summary, description, metrics, tech, links`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		r                          Record
		status                     string
		codename, class, sum, desc sql.NullString
		metrics, tech, links       sql.NullString
	)
	if err := row.Scan(&r.ID, &codename, &r.Title, &status, &class, &sum, &desc, &metrics, &tech, &links); err != nil {
		return Record{}, err
	}
	r.Status = Status(status)
	r.Codename = codename.String
	r.Classification = class.String
	r.Summary = sum.String
	r.Description = desc.String

	for _, col := range []struct {
		raw  sql.NullString
		into any
	}{{metrics, &r.Metrics}, {tech, &r.Tech}, {links, &r.Links}} {
		if !col.raw.Valid || col.raw.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw.String), col.into); err != nil {
			return Record{}, fmt.Errorf("record %s: decode column: %w", r.ID, err)
		}
	}
	return r, nil
}

// List returns all records in catalog order.
func (s *SQLiteStore) List(ctx context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM projects ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get returns one record by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM projects WHERE id = ?`, id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r, err
}

// Put inserts or replaces a record and returns it. An empty id is assigned
// a new UUID; new records are appended to the end of the catalog.
func (s *SQLiteStore) Put(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusInProgress
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}

	metrics, err := json.Marshal(r.Metrics)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode metrics: %w", err)
	}
	tech, err := json.Marshal(r.Tech)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode tech: %w", err)
	}
	links, err := json.Marshal(r.Links)
	if err != nil {
		return Record{}, fmt.Errorf("failed to encode links: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO projects (id, position, codename, title, status, classification, summary, description, metrics, tech, links)
	VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM projects), ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		codename = excluded.codename,
		title = excluded.title,
		status = excluded.status,
		classification = excluded.classification,
		summary = excluded.summary,
		description = excluded.description,
		metrics = excluded.metrics,
		tech = excluded.tech,
		links = excluded.links,
		updated_at = CURRENT_TIMESTAMP`,
		r.ID, r.Codename, r.Title, string(r.Status), r.Classification, r.Summary, r.Description,
		string(metrics), string(tech), string(links))
	if err != nil {
		return Record{}, fmt.Errorf("failed to upsert project %s: %w", r.ID, err)
	}
	logging.CatalogDebug("Stored project %s (%s)", r.ID, r.Title)
	return r, nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return n, nil
}
