// Package server is the remote save service: a SQLite-backed store of full
// game-state snapshots keyed by device id, fronted by a small JSON API.
package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go driver, no CGO

	"rabbitcare/internal/game"
)

// SaveStore persists one game-state row per device.
type SaveStore struct {
	db *sql.DB
}

// OpenSaveStore creates or opens the save database at dbPath, creating
// parent directories and running migrations.
func OpenSaveStore(dbPath string) (*SaveStore, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("server: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("server: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: cannot connect to database: %w", err)
	}

	store := &SaveStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("server: migration failed: %w", err)
	}
	return store, nil
}

func (s *SaveStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS game_saves (
			id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			last_save_time INTEGER NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SaveStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the saved state for a device. A device with no row gets a
// default-valued state rather than a miss, matching what first-run clients
// expect from the API.
func (s *SaveStore) Get(id string, nowMS int64) (game.State, error) {
	var raw string
	err := s.db.QueryRow("SELECT state FROM game_saves WHERE id = ?", id).Scan(&raw)
	if err == sql.ErrNoRows {
		st := game.DefaultState(nowMS)
		st.ID = id
		return st, nil
	}
	if err != nil {
		return game.State{}, fmt.Errorf("server: cannot query save: %w", err)
	}

	var st game.State
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return game.State{}, fmt.Errorf("server: cannot decode save %s: %w", id, err)
	}
	return st, nil
}

// Put upserts the full snapshot for a device, stamping LastSaveTime so
// clients can reconcile by recency.
func (s *SaveStore) Put(id string, st game.State, nowMS int64) (game.State, error) {
	st.ID = id
	st.LastSaveTime = nowMS

	raw, err := json.Marshal(st)
	if err != nil {
		return game.State{}, fmt.Errorf("server: cannot encode save: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO game_saves (id, state, last_save_time) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET state = excluded.state, last_save_time = excluded.last_save_time`,
		id, string(raw), nowMS,
	)
	if err != nil {
		return game.State{}, fmt.Errorf("server: cannot upsert save: %w", err)
	}
	return st, nil
}

// Delete removes a device's save row. Deleting a missing row is not an error.
func (s *SaveStore) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM game_saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("server: cannot delete save: %w", err)
	}
	return nil
}
