package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Snapshot keys in the snapshots table.
const (
	snapshotLabels    = "labels"
	snapshotTemplates = "templates"
)

// Store holds the label and template collections in memory and mirrors
// them to a durable key-value snapshot after every committed mutation.
// The in-memory state is authoritative; a failed write is remembered
// and surfaced once, never raised from the mutation itself.
type Store struct {
	db *sql.DB

	labels     []Label
	templates  []Template
	clipboard  *Clip
	scheduleID string
	nextID     int64

	persistErr error
}

// labelSnapshot is the persisted shape under the "labels" key.
type labelSnapshot struct {
	Labels    []Label `json:"labels"`
	CurrentID string  `json:"currentId"`
}

// New opens (or creates) the SQLite database at dbPath, runs
// migrations, and loads the persisted snapshots.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, nextID: 1}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.load()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// load pulls both snapshots into memory. Absent or corrupt data resets
// to empty collections rather than failing startup.
func (s *Store) load() {
	if raw, ok := s.getSnapshot(snapshotLabels); ok {
		var snap labelSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			s.labels = snap.Labels
			s.scheduleID = snap.CurrentID
		} else {
			s.labels = nil
			s.scheduleID = ""
			s.persistErr = &StorageError{Op: "load labels", Err: err}
		}
	}
	if raw, ok := s.getSnapshot(snapshotTemplates); ok {
		var ts []Template
		if err := json.Unmarshal([]byte(raw), &ts); err == nil {
			s.templates = ts
		} else {
			s.templates = nil
			s.persistErr = &StorageError{Op: "load templates", Err: err}
		}
	}
	s.nextID = maxID(s.labels) + 1
}

func maxID(labels []Label) int64 {
	var m int64
	for _, l := range labels {
		if l.ID > m {
			m = l.ID
		}
	}
	return m
}

func (s *Store) getSnapshot(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		s.persistErr = &StorageError{Op: "read " + key, Err: err}
		return "", false
	}
	return value, true
}

func (s *Store) putSnapshot(key, value string) {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		s.persistErr = &StorageError{Op: "write " + key, Err: err}
	}
}

// persistLabels writes the full label collection plus the schedule id.
// Called after the in-memory mutation completes, never before.
func (s *Store) persistLabels() {
	data, err := json.Marshal(labelSnapshot{Labels: s.labels, CurrentID: s.scheduleID})
	if err != nil {
		s.persistErr = &StorageError{Op: "encode labels", Err: err}
		return
	}
	s.putSnapshot(snapshotLabels, string(data))
}

func (s *Store) persistTemplates() {
	data, err := json.Marshal(s.templates)
	if err != nil {
		s.persistErr = &StorageError{Op: "encode templates", Err: err}
		return
	}
	s.putSnapshot(snapshotTemplates, string(data))
}

// TakeStorageError returns and clears the last persistence failure, if
// any. The in-memory state stays authoritative either way.
func (s *Store) TakeStorageError() error {
	err := s.persistErr
	s.persistErr = nil
	return err
}

// DefaultDBPath returns ~/.config/stickycal/stickycal.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "stickycal", "stickycal.db"), nil
}
