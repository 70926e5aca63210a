// Package registry caches discovered application bundles in a small SQLite
// database, so repeated generation runs skip the filesystem probe.
package registry

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"goxa/bridge"
)

// Store is the bundle cache. Safe for use from one process at a time; the
// busy timeout covers concurrent goxa invocations.
type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the registry database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create registry directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS bundles (
		name      TEXT PRIMARY KEY,
		bundle_id TEXT NOT NULL,
		path      TEXT NOT NULL,
		sdef_path TEXT NOT NULL,
		cached_at TIMESTAMP NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bundles table: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath is the registry location used when none is configured.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".goxa", "bundles.db"), nil
}

// Get returns the cached bundle for name, if present. Lookup is
// case-insensitive.
func (s *Store) Get(name string) (*bridge.Bundle, bool, error) {
	row := s.db.QueryRow(
		"SELECT name, bundle_id, path, sdef_path FROM bundles WHERE name = ?",
		strings.ToLower(name),
	)
	var b bridge.Bundle
	err := row.Scan(&b.Name, &b.ID, &b.Path, &b.SdefPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query bundle %q: %w", name, err)
	}
	b.Name = name
	return &b, true, nil
}

// Put inserts or refreshes the cached bundle.
func (s *Store) Put(b *bridge.Bundle) error {
	_, err := s.db.Exec(
		`INSERT INTO bundles (name, bundle_id, path, sdef_path, cached_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   bundle_id = excluded.bundle_id,
		   path      = excluded.path,
		   sdef_path = excluded.sdef_path,
		   cached_at = excluded.cached_at`,
		strings.ToLower(b.Name), b.ID, b.Path, b.SdefPath, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("store bundle %q: %w", b.Name, err)
	}
	return nil
}

// List returns every cached bundle, ordered by name.
func (s *Store) List() ([]bridge.Bundle, error) {
	rows, err := s.db.Query("SELECT name, bundle_id, path, sdef_path FROM bundles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list bundles: %w", err)
	}
	defer rows.Close()

	var out []bridge.Bundle
	for rows.Next() {
		var b bridge.Bundle
		if err := rows.Scan(&b.Name, &b.ID, &b.Path, &b.SdefPath); err != nil {
			return nil, fmt.Errorf("scan bundle: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }
