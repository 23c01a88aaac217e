// Package history persists conversation-collection snapshots in SQLite.
// The database is opened lazily and created on first use. If opening the DB
// or executing queries fails, the package falls back to in-memory storage so
// the application keeps working without durability.
package history

import (
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/glebarez/go-sqlite"

	"github.com/lumachat/luma/internal/chat"
	"github.com/lumachat/luma/internal/logger"
)

// Store implements chat.Persister on a single-row SQLite table. Each Save
// overwrites the whole snapshot, matching the collection's
// full-serialization persistence model.
type Store struct {
	path string

	once    sync.Once
	db      *sql.DB
	initErr error

	mu  sync.Mutex
	mem []byte // in-memory fallback copy of the last snapshot
}

// New creates a snapshot store at the given path. An empty path falls back
// to the HISTORY_DB_PATH environment variable, then to "history.db".
func New(path string) *Store {
	if path == "" {
		path = os.Getenv("HISTORY_DB_PATH")
	}
	if path == "" {
		path = "history.db"
	}
	return &Store{path: path}
}

func (s *Store) init() {
	var err error
	s.db, err = sql.Open("sqlite", "file:"+s.path+"?_busy_timeout=10000")
	if err != nil {
		s.initErr = err
		logger.L.Warn("sqlite open failed; using in-memory snapshots", "error", err)
		return
	}
	if _, err = s.db.Exec(`CREATE TABLE IF NOT EXISTS snapshot (
        id INTEGER PRIMARY KEY CHECK (id = 1),
        data TEXT NOT NULL,
        saved_at DATETIME NOT NULL
    );`); err != nil {
		s.initErr = err
		logger.L.Warn("sqlite table creation failed; using in-memory snapshots", "error", err)
		return
	}
	logger.L.Info("sqlite snapshot store initialized", "path", s.path)
}

// Save serializes the snapshot and overwrites the stored row. An in-memory
// copy is always kept as fallback.
func (s *Store) Save(snap chat.Snapshot) error {
	s.once.Do(s.init)

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.mem = data
	s.mu.Unlock()

	if s.initErr != nil || s.db == nil {
		return nil
	}
	_, err = s.db.Exec(`INSERT INTO snapshot (id, data, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at;`, string(data))
	if err != nil {
		logger.L.Error("failed to store snapshot in sqlite; falling back to memory", "error", err)
	}
	return nil
}

// Load retrieves the last stored snapshot. ok is false when nothing has been
// stored yet; a present but unparseable snapshot returns an error so the
// caller can seed a fresh collection.
func (s *Store) Load() (chat.Snapshot, bool, error) {
	s.once.Do(s.init)

	var data string
	if s.initErr == nil && s.db != nil {
		err := s.db.QueryRow(`SELECT data FROM snapshot WHERE id = 1;`).Scan(&data)
		switch {
		case err == sql.ErrNoRows:
			return nil, false, nil
		case err != nil:
			return nil, false, err
		}
	} else {
		s.mu.Lock()
		data = string(s.mem)
		s.mu.Unlock()
		if data == "" {
			return nil, false, nil
		}
	}

	var snap chat.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
