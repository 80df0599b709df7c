package audit

import (
	"context"
	"sync"
)

// MemoryStorage keeps audit records in memory. It backs tests and
// single-process development setups; production wiring uses PostgresStorage.
type MemoryStorage struct {
	mu      sync.RWMutex
	records []Record
}

// NewMemoryStorage creates an empty in-memory audit store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends the record.
func (s *MemoryStorage) Store(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// Records returns a copy of all stored records in insertion order.
func (s *MemoryStorage) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len reports the number of stored records.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
