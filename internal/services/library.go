package services

import (
	"sync"

	"github.com/vytor/wordflash/internal/store"
)

// Library serialises every access to the shared store. Each request holds the
// lock for the whole operation, answer submission and save included.
type Library struct {
	mu         sync.Mutex
	store      *store.Store
	generation uint64
}

// NewLibrary wraps s for concurrent use.
func NewLibrary(s *store.Store) *Library {
	return &Library{store: s}
}

// with runs fn while holding the lock.
func (l *Library) with(fn func(s *store.Store) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.store)
}

// replaced must be called under the lock after the word list was swapped out;
// sessions built from the old list become stale.
func (l *Library) replaced() {
	l.generation++
}
