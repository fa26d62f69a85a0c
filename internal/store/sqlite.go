package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/progress"
)

// Progress is stored as one JSON document per user, versioned so the
// migration step can upgrade old payloads in one explicit place at load
// time. The state is an aggregate root; there is nothing to join against.
const schema = `
CREATE TABLE IF NOT EXISTS progress (
    user_key   TEXT PRIMARY KEY,
    version    INTEGER NOT NULL,
    state      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// SQLiteStore persists progress documents in a local SQLite database.
type SQLiteStore struct {
	db      *sql.DB
	catalog *catalog.Catalog
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens (creating if needed) the database at dbPath. The catalog
// is needed to migrate old payloads, which predate per-tier totals.
func NewSQLite(dbPath string, c *catalog.Catalog) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db, catalog: c}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadProgress reads and, when necessary, migrates a user's progress.
// A migrated state is written back immediately so the upgrade runs once.
func (s *SQLiteStore) LoadProgress(ctx context.Context, userKey string) (*progress.State, error) {
	var version int
	var raw []byte

	err := s.db.QueryRowContext(ctx,
		"SELECT version, state FROM progress WHERE user_key = ?", userKey,
	).Scan(&version, &raw)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	state, migrated, err := Migrate(raw, version, s.catalog)
	if err != nil {
		return nil, err
	}
	if migrated {
		if err := s.SaveProgress(ctx, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// SaveProgress upserts the user's progress document.
func (s *SQLiteStore) SaveProgress(ctx context.Context, state *progress.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (user_key, version, state, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(user_key) DO UPDATE SET
			version = excluded.version,
			state = excluded.state,
			updated_at = excluded.updated_at
	`, state.UserKey, state.Version, raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ListProgress returns every user's progress, migrated as needed but not
// written back (leaderboard reads should stay cheap).
func (s *SQLiteStore) ListProgress(ctx context.Context) ([]*progress.State, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT version, state FROM progress")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var states []*progress.State
	for rows.Next() {
		var version int
		var raw []byte
		if err := rows.Scan(&version, &raw); err != nil {
			return nil, err
		}
		state, _, err := Migrate(raw, version, s.catalog)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}
