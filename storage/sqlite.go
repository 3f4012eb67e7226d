// Package storage persists save slots in SQLite. Each slot holds a
// msgpack-encoded progress snapshot.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/milk9111/savematter/progress"
)

// ErrNoSave is returned when a slot has never been written.
var ErrNoSave = errors.New("storage: no save in slot")

// Store manages the SQLite database connection for save slots.
type Store struct {
	db *sql.DB
}

// Slot is one saved run.
type Slot struct {
	Slot      int
	Snapshot  progress.Snapshot
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path, creating the
// parent directories if needed, and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot INTEGER PRIMARY KEY,
			payload BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save writes snap to slot, replacing what was there.
func (s *Store) Save(slot int, snap progress.Snapshot) error {
	payload, err := msgpack.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("storage: encode slot %d: %w", slot, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (slot, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		slot, payload,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %d: %w", slot, err)
	}
	return nil
}

// Load reads slot. It returns ErrNoSave for an empty slot.
func (s *Store) Load(slot int) (progress.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM saves WHERE slot = ?", slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Snapshot{}, fmt.Errorf("slot %d: %w", slot, ErrNoSave)
	}
	if err != nil {
		return progress.Snapshot{}, fmt.Errorf("storage: cannot load slot %d: %w", slot, err)
	}

	var snap progress.Snapshot
	if err := msgpack.Unmarshal(payload, &snap); err != nil {
		return progress.Snapshot{}, fmt.Errorf("storage: decode slot %d: %w", slot, err)
	}
	return snap, nil
}

// Delete clears slot. Clearing an empty slot is not an error.
func (s *Store) Delete(slot int) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %d: %w", slot, err)
	}
	return nil
}

// Slots lists every saved slot in slot order.
func (s *Store) Slots() ([]Slot, error) {
	rows, err := s.db.Query("SELECT slot, payload, updated_at FROM saves ORDER BY slot")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var (
			sl      Slot
			payload []byte
		)
		if err := rows.Scan(&sl.Slot, &payload, &sl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan slot: %w", err)
		}
		if err := msgpack.Unmarshal(payload, &sl.Snapshot); err != nil {
			return nil, fmt.Errorf("storage: decode slot %d: %w", sl.Slot, err)
		}
		slots = append(slots, sl)
	}
	return slots, rows.Err()
}
