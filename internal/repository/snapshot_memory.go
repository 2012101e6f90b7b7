package repository

import (
	"context"
	"encoding/json"
	"sync"

	"prizehouse-api/internal/model"
)

// MemorySnapshotRepository implements SnapshotRepository in process
// memory. Nothing survives a restart; use it for tests and throwaway
// development runs. It round-trips through JSON like the real backends
// so serialization bugs still surface.
type MemorySnapshotRepository struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemorySnapshotRepository creates an empty in-memory repository.
func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{}
}

// Load decodes the stored payload. An empty slot yields an empty snapshot.
func (r *MemorySnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.payload == nil {
		return model.Empty(), nil
	}
	return decodeSnapshot(r.payload)
}

// Save replaces the stored payload with the serialized snapshot.
func (r *MemorySnapshotRepository) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = payload
	return nil
}

// SeedRaw injects a raw payload without going through Save. Tests use it
// to simulate a corrupted or legacy slot.
func (r *MemorySnapshotRepository) SeedRaw(payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = payload
}

// Close is a no-op.
func (r *MemorySnapshotRepository) Close() error {
	return nil
}

// Ensure MemorySnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*MemorySnapshotRepository)(nil)
