// Package store holds the in-memory trade collection for the active session.
package store

import (
	"errors"
	"fmt"
	"sync"

	"trading-journal-go/internal/models"
)

// ErrDuplicateID is returned by Add when a trade with the same id is
// already present. The store is a set keyed by id; last-write-wins is not
// permitted.
var ErrDuplicateID = errors.New("duplicate trade id")

// TradeStore is the single in-memory source of truth for all views during
// a session. It preserves insertion order and enforces id uniqueness.
// Display-time ordering is a presentation concern, not stored here.
type TradeStore struct {
	mu     sync.RWMutex
	trades []models.Trade
	index  map[string]int
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		index: make(map[string]int),
	}
}

// ReplaceAll atomically replaces the full collection. Used after a
// successful remote read.
func (s *TradeStore) ReplaceAll(trades []models.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = make([]models.Trade, len(trades))
	copy(s.trades, trades)
	s.index = make(map[string]int, len(trades))
	for i, t := range s.trades {
		s.index[t.ID] = i
	}
}

// Add appends a trade. The id must not already be present; a duplicate
// leaves the store untouched.
func (s *TradeStore) Add(trade models.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[trade.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, trade.ID)
	}
	s.index[trade.ID] = len(s.trades)
	s.trades = append(s.trades, trade)
	return nil
}

// Remove deletes the trade with the given id and reports whether one was
// found. Removing an absent id is a no-op, not an error.
func (s *TradeStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, exists := s.index[id]
	if !exists {
		return false
	}
	s.trades = append(s.trades[:pos], s.trades[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.trades); i++ {
		s.index[s.trades[i].ID] = i
	}
	return true
}

// All returns a snapshot of the collection in insertion order. The caller
// may retain or modify the slice freely.
func (s *TradeStore) All() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// Len returns the number of trades currently held.
func (s *TradeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}
