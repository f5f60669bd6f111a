// Package store persists whole-game snapshots in SQLite, keyed by game id.
// The engine does not depend on any particular storage shape; this package
// just round-trips snapshots losslessly.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/aracataca/game"
)

// ErrNotFound is returned when no snapshot exists for a game id.
var ErrNotFound = errors.New("no snapshot for this game")

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	snapshot BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	log.Debug().Str("path", path).Msg("opened snapshot store")
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a game snapshot.
func (s *Store) Save(ctx context.Context, snap *game.Snapshot) error {
	blob, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games (id, snapshot, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET snapshot = excluded.snapshot,
		 updated_at = excluded.updated_at`,
		snap.ID, blob, time.Now().UTC())
	return err
}

// Load fetches the snapshot for a game id.
func (s *Store) Load(ctx context.Context, id string) (*game.Snapshot, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM games WHERE id = ?`, id).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	snap := &game.Snapshot{}
	if err := json.Unmarshal(blob, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Delete removes a game's snapshot. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	return err
}
