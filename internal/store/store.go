// Package store is the single source of truth for inventory items, builds and
// sale records. Every mutation flows through one of its operations, which
// enforce the cross-collection status invariants and write the full state
// through to the persistence adapter before returning.
package store

import (
	"context"
	"log"
	"sync"

	"flipdeck-api/internal/model"
	"flipdeck-api/internal/persist"
	"flipdeck-api/pkg/apierror"
)

// Store owns the three record collections. All operations serialize on one
// mutex; no operation suspends mid-mutation, so callers always observe the
// collections in a consistent state.
type Store struct {
	mu     sync.Mutex
	items  []model.InventoryItem
	builds []model.Build
	sales  []model.SaleRecord

	persister persist.SnapshotStore
	onMutate  func()
}

// Open constructs the store and loads the last saved snapshot. A corrupt or
// unreadable snapshot is logged and treated as an empty initial state; it
// never prevents startup.
func Open(ctx context.Context, p persist.SnapshotStore) *Store {
	s := &Store{persister: p}

	if p != nil {
		snap, err := p.Load(ctx)
		switch {
		case err != nil:
			log.Printf("[Store] WARNING: could not load saved state, starting empty: %v", err)
		case snap != nil:
			s.items = snap.Inventory
			s.builds = snap.Builds
			s.sales = snap.Sales
			log.Printf("[Store] Loaded %d items, %d builds, %d sales",
				len(s.items), len(s.builds), len(s.sales))
		}
	}

	return s
}

// SetOnMutate registers a hook invoked after every successful mutation,
// whether or not the write-through save succeeded. Used for cache
// invalidation.
func (s *Store) SetOnMutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMutate = fn
}

// currentLocked assembles the live snapshot without copying. Only safe while
// the lock is held and the result is consumed before release.
func (s *Store) currentLocked() *model.Snapshot {
	return &model.Snapshot{
		Inventory: s.items,
		Builds:    s.builds,
		Sales:     s.sales,
	}
}

// commitLocked writes the mutated state through to storage. A failed save is
// returned as a PersistenceError warning: the in-memory mutation already
// happened and is not rolled back, memory stays authoritative.
func (s *Store) commitLocked(ctx context.Context) error {
	var warn error
	if s.persister != nil {
		if err := s.persister.Save(ctx, s.currentLocked()); err != nil {
			log.Printf("[Store] WARNING: write-through save failed: %v", err)
			warn = apierror.Persistence("state changed in memory but could not be saved: " + err.Error())
		}
	}
	if s.onMutate != nil {
		s.onMutate()
	}
	return warn
}

func (s *Store) itemIndexLocked(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) buildIndexLocked(id int64) int {
	for i := range s.builds {
		if s.builds[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) saleIndexLocked(id int64) int {
	for i := range s.sales {
		if s.sales[i].ID == id {
			return i
		}
	}
	return -1
}
