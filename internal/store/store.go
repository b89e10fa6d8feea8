// Package store holds the in-memory trade collection. Readers get immutable
// snapshots; the single writer builds a new snapshot, persists it, and only
// then swaps it in, so readers never observe a half-applied append.
package store

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tradevault/trades-api/internal/types"
)

// Persister is the durable side of the store. SaveAll is called with the
// candidate collection before it becomes visible to readers; if it fails
// the append is abandoned.
type Persister interface {
	Load() ([]types.Trade, error)
	SaveAll(trades []types.Trade) error
}

// Store is the single source of truth for trade records.
type Store struct {
	mu        sync.Mutex   // serializes Append so id assignment is race-free
	snapshot  atomic.Value // []types.Trade
	persister Persister
}

// NewStore builds a store seeded from the persister.
func NewStore(p Persister) (*Store, error) {
	trades, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}

	s := &Store{persister: p}
	seed := make([]types.Trade, len(trades))
	copy(seed, trades)
	s.snapshot.Store(seed)
	return s, nil
}

// All returns a defensive copy of the current snapshot in insertion order.
func (s *Store) All() []types.Trade {
	snap := s.snapshot.Load().([]types.Trade)
	out := make([]types.Trade, len(snap))
	copy(out, snap)
	return out
}

// ByID returns the trade with the given id, or nil when there is none.
func (s *Store) ByID(id int64) *types.Trade {
	snap := s.snapshot.Load().([]types.Trade)
	for _, t := range snap {
		if t.TradeID == id {
			match := t
			return &match
		}
	}
	return nil
}

// Append assigns the next trade id, persists the grown collection, and
// swaps it in. On a persistence failure nothing becomes visible and the
// next append reuses the same id.
func (s *Store) Append(trade types.Trade) (types.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot.Load().([]types.Trade)

	var maxID int64
	for _, t := range snap {
		if t.TradeID > maxID {
			maxID = t.TradeID
		}
	}
	trade.TradeID = maxID + 1

	next := make([]types.Trade, len(snap)+1)
	copy(next, snap)
	next[len(snap)] = trade

	if err := s.persister.SaveAll(next); err != nil {
		return types.Trade{}, fmt.Errorf("failed to persist trades: %w", err)
	}

	s.snapshot.Store(next)
	return trade, nil
}
