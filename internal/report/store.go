package report

import (
	"slices"
	"sync"
)

// Store is the in-memory, append-only list of report cards for one process.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []StudentRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Append adds records in order.
func (s *Store) Append(recs ...StudentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, recs...)
}

// List returns a copy of all records in insertion order.
func (s *Store) List() []StudentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (StudentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return StudentRecord{}, ErrNotFound
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear drops every record.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
