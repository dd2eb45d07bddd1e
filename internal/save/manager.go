package save

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// Manager writes snapshots with one codec and reads back whichever codec
// produced the stored bytes.
type Manager struct {
	store Store
	codec Codec
	key   string
	now   func() time.Time
}

func NewManager(store Store, codec Codec, key string) *Manager {
	if codec == nil {
		codec = JSONCodec{}
	}
	if key == "" {
		key = DefaultKey
	}
	return &Manager{store: store, codec: codec, key: key, now: time.Now}
}

// Key returns the storage key.
func (m *Manager) Key() string { return m.key }

// Save stamps and stores s.
func (m *Manager) Save(ctx context.Context, s *Snapshot) error {
	s.Version = CurrentVersion
	s.SavedAt = m.now().Unix()
	data, err := m.codec.Encode(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := m.store.Put(ctx, m.key, data); err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

// Load decodes the stored snapshot on top of defaults(). A missing or
// unreadable save yields a fresh defaults() and false; corruption is logged,
// never returned.
func (m *Manager) Load(ctx context.Context, defaults func() *Snapshot) (*Snapshot, bool) {
	data, err := m.store.Get(ctx, m.key)
	if errors.Is(err, ErrNotFound) {
		return defaults(), false
	}
	if err != nil {
		log.Printf("save: read %s: %v", m.key, err)
		return defaults(), false
	}
	s := defaults()
	if err := Detect(data).Decode(data, s); err != nil {
		log.Printf("save: discarding %s: %v", m.key, err)
		return defaults(), false
	}
	return s, true
}

// Clear removes the stored snapshot.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, m.key)
}

// Close releases the store.
func (m *Manager) Close() error { return m.store.Close() }

// OpenManager opens the store and codec named by o.
func OpenManager(o Options) (*Manager, error) {
	o.Validate()
	codec, err := CodecByName(o.Codec)
	if err != nil {
		return nil, err
	}
	store, err := Open(o)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", o.Backend, err)
	}
	return NewManager(store, codec, o.Key), nil
}
