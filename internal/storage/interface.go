package storage

import (
	"encoding/json"
	"errors"
)

// Prefix namespaces every key this app writes so its records can coexist
// with unrelated data in a shared underlying store. Clear only ever touches
// keys under this prefix.
const Prefix = "deskcal/"

// ErrNotFound is returned by Get when a key has never been saved.
var ErrNotFound = errors.New("storage: key not found")

// UsageInfo summarizes how much of the underlying store this app occupies.
type UsageInfo struct {
	ByteSize  int64 `json:"byte_size"`
	ItemCount int   `json:"item_count"`
}

// Provider is the persistence boundary: a namespaced key-value store with
// JSON-serialized values. Implementations report failures as returned
// errors and never panic; callers treat a failed write as "not persisted",
// never as fatal.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value operations. Keys are given without the namespace prefix;
	// implementations apply it internally.
	Save(key string, value any) error
	Get(key string, out any) error
	Remove(key string) error
	Clear() error
	ListAll() (map[string]json.RawMessage, error)
	Usage() (UsageInfo, error)

	// Utils
	Path() string
}

// Well-known keys. "events" holds the event collection; "settings" and
// "theme" are opaque UI blobs stored on behalf of the widget layer.
const (
	KeyEvents   = "events"
	KeySettings = "settings"
	KeyTheme    = "theme"
)
