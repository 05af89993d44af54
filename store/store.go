// Package store persists named diagrams, together with their edit history,
// in a SQLite database.
package store

import (
	"asciid/core"
	"asciid/history"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Common errors
var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidName  = errors.New("document name must not be empty")
	ErrSchemaTooNew = errors.New("database schema is newer than this program")
)

// Document is a saved diagram: its text, the grid size it was drawn on and
// the undo/redo log that produced it.
type Document struct {
	Name     string
	Rows     int
	Cols     int
	Text     string
	Versions []history.Version
	Cursor   int
	Updated  time.Time
}

// Summary describes a stored document without loading its history.
type Summary struct {
	Name     string
	Rows     int
	Cols     int
	Versions int
	Updated  time.Time
}

// Store is a SQLite-backed document store.
type Store struct {
	db *sql.DB
}

// Current schema version - increment this when the schema changes
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS documents (
    name    TEXT PRIMARY KEY,
    rows    INTEGER NOT NULL,
    cols    INTEGER NOT NULL,
    content TEXT NOT NULL,
    cursor  INTEGER NOT NULL,
    updated INTEGER NOT NULL     -- UnixNano
);

-- One row per cell edit; (version, seq) keeps replay order.
CREATE TABLE IF NOT EXISTS edits (
    document  TEXT NOT NULL,
    version   INTEGER NOT NULL,
    seq       INTEGER NOT NULL,
    idx       INTEGER NOT NULL,
    from_char INTEGER NOT NULL,
    to_char   INTEGER NOT NULL,
    tool      INTEGER NOT NULL,
    PRIMARY KEY (document, version, seq)
);
`

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}

	return &Store{db: db}, nil
}

// migrate records the schema version, refusing databases written by a newer schema.
func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	switch {
	case current == schemaVersion:
		return nil
	case current > schemaVersion:
		return fmt.Errorf("%w: version %d", ErrSchemaTooNew, current)
	case current > 0:
		log.Printf("[STORE] Migrating schema from version %d to %d", current, schemaVersion)
	}

	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores doc under doc.Name, replacing any previous document and history
// with that name.
func (s *Store) Save(ctx context.Context, doc Document) error {
	if doc.Name == "" {
		return ErrInvalidName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM edits WHERE document = ?", doc.Name); err != nil {
		return fmt.Errorf("failed to clear history of %q: %w", doc.Name, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO documents (name, rows, cols, content, cursor, updated)
		VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Name, doc.Rows, doc.Cols, doc.Text, doc.Cursor, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", doc.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edits (document, version, seq, idx, from_char, to_char, tool)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for vi, v := range doc.Versions {
		for seq, e := range v.Edits() {
			if _, err := stmt.ExecContext(ctx, doc.Name, vi, seq, e.Index, e.From, e.To, int(e.Tool)); err != nil {
				return fmt.Errorf("failed to save history of %q: %w", doc.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %q: %w", doc.Name, err)
	}
	return nil
}

// Load returns the document stored under name.
func (s *Store) Load(ctx context.Context, name string) (Document, error) {
	doc := Document{Name: name}

	var updated int64
	err := s.db.QueryRowContext(ctx,
		"SELECT rows, cols, content, cursor, updated FROM documents WHERE name = ?", name,
	).Scan(&doc.Rows, &doc.Cols, &doc.Text, &doc.Cursor, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to load %q: %w", name, err)
	}
	doc.Updated = time.Unix(0, updated)

	rows, err := s.db.QueryContext(ctx, `
		SELECT version, idx, from_char, to_char, tool FROM edits
		WHERE document = ? ORDER BY version, seq`, name)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load history of %q: %w", name, err)
	}
	defer rows.Close()

	last := -1
	var current history.Version
	for rows.Next() {
		var version, idx, tool int
		var from, to rune
		if err := rows.Scan(&version, &idx, &from, &to, &tool); err != nil {
			return Document{}, fmt.Errorf("failed to scan history of %q: %w", name, err)
		}
		if version != last && last >= 0 {
			doc.Versions = append(doc.Versions, current)
			current = history.Version{}
		}
		last = version
		current.Push(idx, from, to, core.Tool(tool))
	}
	if err := rows.Err(); err != nil {
		return Document{}, fmt.Errorf("failed to read history of %q: %w", name, err)
	}
	if last >= 0 {
		doc.Versions = append(doc.Versions, current)
	}

	return doc, nil
}

// List returns every stored document, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.name, d.rows, d.cols, d.updated,
		       (SELECT COUNT(DISTINCT e.version) FROM edits e WHERE e.document = d.name)
		FROM documents d
		ORDER BY d.updated DESC, d.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var list []Summary
	for rows.Next() {
		var sum Summary
		var updated int64
		if err := rows.Scan(&sum.Name, &sum.Rows, &sum.Cols, &updated, &sum.Versions); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		sum.Updated = time.Unix(0, updated)
		list = append(list, sum)
	}
	return list, rows.Err()
}

// Delete removes the document stored under name and its history.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM edits WHERE document = ?", name); err != nil {
		return fmt.Errorf("failed to delete history of %q: %w", name, err)
	}

	return tx.Commit()
}
