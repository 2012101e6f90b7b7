package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/repository"
)

// Store is the single source of truth for the three collections. All
// mutation goes through whole-snapshot replacement: callers receive a
// copy, compute a new snapshot, and hand it back. Every committed
// replacement is flushed to the snapshot repository.
type Store struct {
	mu   sync.Mutex
	snap model.Snapshot
	repo repository.SnapshotRepository
}

// New creates a store backed by the given repository. The store starts
// empty; call Load to read the durable slot.
func New(repo repository.SnapshotRepository) *Store {
	return &Store{
		snap: model.Empty(),
		repo: repo,
	}
}

// Load reads the persisted snapshot into memory. Missing or malformed
// data falls back to an empty snapshot; the parse failure is returned so
// the caller can log it, but the store is usable either way.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, repository.ErrParse) {
			log.Printf("[Store] Stored snapshot unreadable, starting empty: %v", err)
		}
		return err
	}
	return nil
}

// Snapshot returns a copy of the current snapshot. Mutating the result
// has no effect on the store.
func (s *Store) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Update runs fn against a copy of the current snapshot and, if fn
// succeeds, replaces the store's state with the result and flushes it.
// Updates are serialized: fn always sees the latest committed snapshot,
// never one captured before an earlier mutation finished. If fn returns
// an error nothing changes.
func (s *Store) Update(ctx context.Context, fn func(model.Snapshot) (model.Snapshot, error)) (model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.snap.Clone())
	if err != nil {
		return model.Snapshot{}, err
	}

	s.snap = next
	s.flush(ctx)
	return next.Clone(), nil
}

// Replace swaps in a full snapshot unconditionally and flushes it.
func (s *Store) Replace(ctx context.Context, snap model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = snap.Clone()
	s.flush(ctx)
}

// flush persists the current snapshot. A flush failure is logged, not
// propagated: the in-memory state stands and the worst outcome of losing
// the write is an empty-state restart. Callers hold s.mu.
func (s *Store) flush(ctx context.Context) {
	if err := s.repo.Save(ctx, s.snap); err != nil {
		log.Printf("[Store] Snapshot flush failed: %v", err)
	}
}
