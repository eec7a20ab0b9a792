// Package save persists the high-score table between runs.
package save

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/quasilyte/gdata"
)

// recordKey is the item name the record is stored under
const recordKey = "record"

// Items is the key/value surface of a gdata manager
type Items interface {
	LoadItem(name string) ([]byte, error)
	SaveItem(name string, data []byte) error
}

// Record is the persisted result table
type Record struct {
	HighScore   int `json:"highScore"`
	Games       int `json:"games"`
	Completions int `json:"completions"`
}

// Store reads and writes the Record through an Items backend
type Store struct {
	items Items
}

// NewStore wraps an Items backend
func NewStore(items Items) *Store {
	return &Store{items: items}
}

// Open creates a store in the per-user data directory of appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return NewStore(m), nil
}

// Load returns the saved record, a zero record if nothing was saved yet
func (s *Store) Load() (Record, error) {
	var rec Record
	data, err := s.items.LoadItem(recordKey)
	if err != nil {
		return rec, fmt.Errorf("failed to load %s: %w", recordKey, err)
	}
	if len(data) == 0 {
		return rec, nil
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse %s: %w", recordKey, err)
	}
	return rec, nil
}

// Save overwrites the saved record
func (s *Store) Save(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", recordKey, err)
	}
	if err := s.items.SaveItem(recordKey, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", recordKey, err)
	}
	return nil
}

// Submit folds a finished game into the record and saves it.
// It reports whether score set a new high score.
func (s *Store) Submit(score int, completed bool) (Record, bool, error) {
	rec, err := s.Load()
	if err != nil {
		return rec, false, err
	}

	rec.Games++
	if completed {
		rec.Completions++
	}
	best := score > rec.HighScore
	if best {
		rec.HighScore = score
	}
	return rec, best, s.Save(rec)
}

// MemoryItems is an in-process Items backend
type MemoryItems struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryItems creates an empty in-memory backend
func NewMemoryItems() *MemoryItems {
	return &MemoryItems{items: make(map[string][]byte)}
}

// LoadItem returns a copy of the stored item, nil if absent
func (m *MemoryItems) LoadItem(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.items[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// SaveItem stores a copy of data
func (m *MemoryItems) SaveItem(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[name] = append([]byte(nil), data...)
	return nil
}
