package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the key-value namespace in a single kv table.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create storage directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'deskcal init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent; running it here lets databases made by
	// older builds pick up the table without a migration step.
	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value BLOB NOT NULL
		)
	`)
	return err
}

func (s *SQLiteStore) Save(key string, value any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, Prefix+key, raw)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(key string, out any) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, Prefix+key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse value for %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, Prefix+key); err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, err := s.db.Exec(`DELETE FROM kv WHERE key LIKE ? ESCAPE '\'`, likePrefix()); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListAll() (map[string]json.RawMessage, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT key, value FROM kv WHERE key LIKE ? ESCAPE '\'`, likePrefix())
	if err != nil {
		return nil, fmt.Errorf("failed to list storage: %w", err)
	}
	defer rows.Close()

	all := make(map[string]json.RawMessage)
	for rows.Next() {
		var key string
		var raw []byte
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		all[strings.TrimPrefix(key, Prefix)] = json.RawMessage(raw)
	}
	return all, rows.Err()
}

func (s *SQLiteStore) Usage() (UsageInfo, error) {
	if s.db == nil {
		return UsageInfo{}, fmt.Errorf("storage not loaded")
	}

	var info UsageInfo
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(LENGTH(key) + LENGTH(value)), 0)
		FROM kv WHERE key LIKE ? ESCAPE '\'
	`, likePrefix()).Scan(&info.ItemCount, &info.ByteSize)
	if err != nil {
		return UsageInfo{}, fmt.Errorf("failed to read usage: %w", err)
	}
	return info, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// likePrefix escapes the namespace prefix for use in a LIKE pattern.
func likePrefix() string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(Prefix)
	return escaped + "%"
}
