// Package memory provides an in-memory quote storage.
// Nothing survives a restart, so this is only useful for tests and test mode.
package memory

import (
	"context"
	"sync"

	"github.com/starshine-sys/quotebot/store"
)

var _ store.Storage = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	quotes []store.Quote
	saved  bool
	saves  int
}

// New returns an empty Store. If quotes are given, the store is seeded with them.
func New(quotes ...store.Quote) *Store {
	s := &Store{}
	if len(quotes) > 0 {
		s.quotes = store.Copy(quotes)
		s.saved = true
	}
	return s
}

// Load returns the stored quotes, or store.ErrNoData if nothing was ever saved.
func (s *Store) Load(context.Context) ([]store.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return nil, store.ErrNoData
	}
	return store.Copy(s.quotes), nil
}

func (s *Store) SaveAll(_ context.Context, quotes []store.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = store.Copy(quotes)
	s.saved = true
	s.saves++
	return nil
}

// Saves returns how often SaveAll has been called.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
