// Package store persists lookup caches, provider toggles, and lookup
// history in a local sqlite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/propmatch/internal/model"
)

// Store wraps the sqlite database used by the CLI.
type Store struct {
	db *sql.DB
}

// New opens a sqlite database at the given path and configures WAL mode.
func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &Store{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS lookup_cache (
	fingerprint TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	cached_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS provider_toggles (
	name       TEXT PRIMARY KEY,
	enabled    INTEGER NOT NULL DEFAULT 1,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS lookups (
	id           TEXT PRIMARY KEY,
	query        TEXT NOT NULL,
	result_count INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_lookup_cache_expires_at ON lookup_cache(expires_at);
CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
`

// Migrate creates the schema if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetCachedLookup returns the cached lookup result for a query fingerprint.
// Expired or missing entries report ok=false.
func (s *Store) GetCachedLookup(ctx context.Context, fingerprint string) (*model.LookupResult, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM lookup_cache WHERE fingerprint = ? AND expires_at > ?`,
		fingerprint, time.Now().UTC(),
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, eris.Wrap(err, "sqlite: get cached lookup")
	}

	var result model.LookupResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, false, eris.Wrap(err, "sqlite: unmarshal cached lookup")
	}
	result.FromCache = true
	return &result, true, nil
}

// PutCachedLookup stores a lookup result under the query fingerprint.
func (s *Store) PutCachedLookup(ctx context.Context, fingerprint string, result *model.LookupResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal lookup")
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lookup_cache (fingerprint, payload, cached_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO UPDATE SET
			payload    = excluded.payload,
			cached_at  = excluded.cached_at,
			expires_at = excluded.expires_at`,
		fingerprint, string(payload), now, now.Add(ttl),
	)
	return eris.Wrap(err, "sqlite: put cached lookup")
}

// PurgeExpired deletes expired cache entries and returns how many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM lookup_cache WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge expired")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: purge rows affected")
	}
	return n, nil
}

// ProviderEnabled reports whether a provider is enabled. Providers with no
// stored toggle default to enabled.
func (s *Store) ProviderEnabled(ctx context.Context, name string) (bool, error) {
	var enabled int
	err := s.db.QueryRowContext(ctx,
		`SELECT enabled FROM provider_toggles WHERE name = ?`, name,
	).Scan(&enabled)
	if err == sql.ErrNoRows {
		return true, nil
	}
	if err != nil {
		return false, eris.Wrap(err, "sqlite: provider enabled")
	}
	return enabled != 0, nil
}

// SetProviderEnabled persists a provider toggle.
func (s *Store) SetProviderEnabled(ctx context.Context, name string, enabled bool) error {
	val := 0
	if enabled {
		val = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO provider_toggles (name, enabled, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			enabled    = excluded.enabled,
			updated_at = excluded.updated_at`,
		name, val, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: set provider enabled")
}

// ListProviderToggles returns all stored toggles ordered by name.
func (s *Store) ListProviderToggles(ctx context.Context) ([]model.ProviderToggle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, enabled, updated_at FROM provider_toggles ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list toggles")
	}
	defer rows.Close()

	var toggles []model.ProviderToggle
	for rows.Next() {
		var t model.ProviderToggle
		var enabled int
		if err := rows.Scan(&t.Name, &enabled, &t.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan toggle")
		}
		t.Enabled = enabled != 0
		toggles = append(toggles, t)
	}
	return toggles, eris.Wrap(rows.Err(), "sqlite: iterate toggles")
}

// RecordLookup appends one row of lookup history.
func (s *Store) RecordLookup(ctx context.Context, query string, resultCount int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (id, query, result_count, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), query, resultCount, time.Now().UTC(),
	)
	return eris.Wrap(err, "sqlite: record lookup")
}

// RecentLookups returns the most recent lookup records, newest first.
func (s *Store) RecentLookups(ctx context.Context, limit int) ([]model.LookupRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, result_count, created_at FROM lookups ORDER BY created_at DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent lookups")
	}
	defer rows.Close()

	var records []model.LookupRecord
	for rows.Next() {
		var r model.LookupRecord
		if err := rows.Scan(&r.ID, &r.Query, &r.ResultCount, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lookup record")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate lookup records")
}
