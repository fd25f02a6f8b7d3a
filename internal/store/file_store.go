package store

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"rabbitcare/internal/game"
)

// SchemaVersion is the current on-disk save format. Bump it together with a
// new entry in the migration chain, never instead of one.
const SchemaVersion = 3

// envelope wraps the persisted state with its schema version so old saves
// can be migrated forward instead of silently discarded.
type envelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// FileStore persists the game state to a single JSON file under dataDir.
// The namespace becomes the file name, so multiple profiles can share a
// data directory without colliding.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

func NewFileStore(dataDir, namespace string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &FileStore{
		path:   filepath.Join(dataDir, namespace+".json"),
		logger: logger,
	}, nil
}

// Load reads and migrates the save file. A missing file means a fresh game.
// A corrupt file is logged and also treated as fresh: losing a save beats
// refusing to start.
func (s *FileStore) Load() (game.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return game.State{}, false, nil
		}
		return game.State{}, false, err
	}

	version, raw, err := unwrap(data)
	if err != nil {
		s.logger.Warn("discarding unreadable save file", "path", s.path, "err", err)
		return game.State{}, false, nil
	}

	raw, err = migrate(version, raw)
	if err != nil {
		s.logger.Warn("discarding unmigratable save file", "path", s.path, "version", version, "err", err)
		return game.State{}, false, nil
	}

	var st game.State
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.Warn("discarding corrupt save file", "path", s.path, "err", err)
		return game.State{}, false, nil
	}
	return st, true, nil
}

// Save writes the state atomically: temp file in the same directory, then
// rename over the target.
func (s *FileStore) Save(st game.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(envelope{Version: SchemaVersion, State: raw}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// unwrap extracts the schema version and raw state. Saves written before the
// envelope existed are a bare state object; they count as version 1.
func unwrap(data []byte) (int, json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, nil, err
	}
	if env.Version == 0 || env.State == nil {
		return 1, json.RawMessage(data), nil
	}
	return env.Version, env.State, nil
}
