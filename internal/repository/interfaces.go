package repository

import (
	"context"
	"errors"

	"prizehouse-api/internal/model"
)

// ErrParse indicates the durable slot held data that could not be decoded.
// Callers recover by falling back to an empty snapshot; the error exists
// only so the fallback can be logged.
var ErrParse = errors.New("snapshot parse failure")

// SnapshotRepository is the persistence adapter: a durable round-trip of
// the full snapshot under one fixed storage key. The whole blob is
// replaced on every write; there is no partial-key storage and no schema
// versioning.
type SnapshotRepository interface {
	// Load reads and deserializes the stored snapshot. A missing slot
	// yields an empty snapshot and nil error. Malformed content yields an
	// empty snapshot and an error wrapping ErrParse.
	Load(ctx context.Context) (model.Snapshot, error)

	// Save serializes the snapshot and overwrites the slot wholly.
	Save(ctx context.Context, snap model.Snapshot) error

	// Close releases the underlying connection.
	Close() error
}
