// Package cache persists resolution results between runs so drivers can
// tell unchanged modules apart from modified ones. It is purely advisory:
// resolution never reads name bindings back from it.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/calyx-lang/calyx/internal/signature"
)

const schema = `
CREATE TABLE IF NOT EXISTS signatures (
	module      TEXT PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	run_id      TEXT NOT NULL,
	resolved_at INTEGER NOT NULL,
	export_sets TEXT NOT NULL
);`

// Cache is an on-disk signature cache. Every Cache instance stamps its
// writes with a fresh run ID so a later inspection can tell which run last
// touched an entry.
type Cache struct {
	db    *sql.DB
	runID string
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: initializing %s: %w", path, err)
	}
	return &Cache{db: db, runID: uuid.NewString()}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// RunID identifies this cache instance's writes.
func (c *Cache) RunID() string {
	return c.runID
}

// Entry is one cached resolution result.
type Entry struct {
	Module      string
	Fingerprint string
	RunID       string
	ResolvedAt  time.Time
	ExportSets  []string
}

// Put records a successful resolution of the named module, replacing any
// earlier entry. Export set names are stored as a JSON array; the default
// set's name is the empty string, which a separator-joined encoding would
// conflate with no sets at all.
func (c *Cache) Put(moduleName, fingerprint string, sig *signature.ModuleSignature) error {
	sets, err := json.Marshal(sig.SortedExportSets())
	if err != nil {
		return err
	}
	_, err = c.db.Exec(
		`INSERT INTO signatures (module, fingerprint, run_id, resolved_at, export_sets)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(module) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			run_id      = excluded.run_id,
			resolved_at = excluded.resolved_at,
			export_sets = excluded.export_sets`,
		moduleName, fingerprint, c.runID, time.Now().Unix(), string(sets),
	)
	return err
}

// Get returns the cached entry for the named module, if any.
func (c *Cache) Get(moduleName string) (*Entry, bool, error) {
	row := c.db.QueryRow(
		`SELECT module, fingerprint, run_id, resolved_at, export_sets
		 FROM signatures WHERE module = ?`, moduleName)
	var e Entry
	var resolvedAt int64
	var sets string
	err := row.Scan(&e.Module, &e.Fingerprint, &e.RunID, &resolvedAt, &sets)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	e.ResolvedAt = time.Unix(resolvedAt, 0)
	if err := json.Unmarshal([]byte(sets), &e.ExportSets); err != nil {
		return nil, false, fmt.Errorf("cache: decoding export sets for %s: %w", e.Module, err)
	}
	return &e, true, nil
}

// Unchanged reports whether the named module's cached fingerprint matches.
func (c *Cache) Unchanged(moduleName, fingerprint string) (bool, error) {
	e, ok, err := c.Get(moduleName)
	if err != nil || !ok {
		return false, err
	}
	return e.Fingerprint == fingerprint, nil
}
