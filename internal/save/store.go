package save

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("save: not found")

// Store is a key-value blob store.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a store.
type Options struct {
	Backend  string  `yaml:"backend"`
	Dir      string  `yaml:"dir"`
	Codec    string  `yaml:"codec"`
	Key      string  `yaml:"key"`
	Autosave float64 `yaml:"autosave_seconds"`
}

// DefaultOptions stores JSON files under ./saves every thirty seconds.
func DefaultOptions() Options {
	return Options{
		Backend:  "file",
		Dir:      "saves",
		Codec:    "json",
		Key:      DefaultKey,
		Autosave: 30,
	}
}

// Validate fills empty fields with defaults.
func (o *Options) Validate() {
	d := DefaultOptions()
	if o.Backend == "" {
		o.Backend = d.Backend
	}
	if o.Dir == "" {
		o.Dir = d.Dir
	}
	if o.Codec == "" {
		o.Codec = d.Codec
	}
	if o.Key == "" {
		o.Key = d.Key
	}
	if o.Autosave < 0 {
		o.Autosave = 0
	}
}

// Open returns the store named by o.Backend.
func Open(o Options) (Store, error) {
	switch o.Backend {
	case "file":
		return NewFileStore(o.Dir), nil
	case "sqlite":
		return OpenSQLite(filepath.Join(o.Dir, "deep-miner.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown save backend %q", o.Backend)
	}
}

// MemoryStore keeps blobs in a map.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
