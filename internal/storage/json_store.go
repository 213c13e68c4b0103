package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/deskcal/internal/logger"
)

type fileStore struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// JSONStore persists the key-value namespace in a single JSON file.
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	// Create storage directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &fileStore{
		Version: 1,
		Data:    make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'deskcal init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &fileStore{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// A corrupt file yields an empty store rather than a dead app; the
		// damaged content is superseded on the next successful save.
		logger.Warn("storage file unreadable, starting empty", "path", s.path, "err", err)
		s.store = &fileStore{Version: 1}
	}

	if s.store.Data == nil {
		s.store.Data = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Save(key string, value any) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value for %q: %w", key, err)
	}

	s.store.Data[Prefix+key] = raw
	return s.save()
}

func (s *JSONStore) Get(key string, out any) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, ok := s.store.Data[Prefix+key]
	if !ok {
		return ErrNotFound
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse value for %q: %w", key, err)
	}
	return nil
}

func (s *JSONStore) Remove(key string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	delete(s.store.Data, Prefix+key)
	return s.save()
}

func (s *JSONStore) Clear() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for k := range s.store.Data {
		if strings.HasPrefix(k, Prefix) {
			delete(s.store.Data, k)
		}
	}
	return s.save()
}

func (s *JSONStore) ListAll() (map[string]json.RawMessage, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	all := make(map[string]json.RawMessage, len(s.store.Data))
	for k, v := range s.store.Data {
		if strings.HasPrefix(k, Prefix) {
			all[strings.TrimPrefix(k, Prefix)] = v
		}
	}
	return all, nil
}

func (s *JSONStore) Usage() (UsageInfo, error) {
	if s.store == nil {
		return UsageInfo{}, fmt.Errorf("storage not loaded")
	}

	var info UsageInfo
	for k, v := range s.store.Data {
		if strings.HasPrefix(k, Prefix) {
			info.ItemCount++
			info.ByteSize += int64(len(k) + len(v))
		}
	}
	return info, nil
}

func (s *JSONStore) Path() string {
	return s.path
}
