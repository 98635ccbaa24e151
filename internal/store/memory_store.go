// internal/store/memory_store.go
package store

import (
	"context"
	"sync"
)

// MemStore is an in-process Store used by tests and ephemeral runs that
// should not leave a session on disk.
type MemStore struct {
	mu  sync.Mutex
	rec Record
	ok  bool

	// Saves and Clears count calls for assertions in tests.
	Saves  int
	Clears int
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

// Seed installs a record directly, bypassing Save bookkeeping.
func (s *MemStore) Seed(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.ok = true
}

func (s *MemStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.ok = true
	s.Saves++
	return nil
}

func (s *MemStore) Load(_ context.Context) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok || !s.rec.Complete() {
		return Record{}, false, nil
	}
	return s.rec, true, nil
}

func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = Record{}
	s.ok = false
	s.Clears++
	return nil
}
