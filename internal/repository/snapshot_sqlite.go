package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"prizehouse-api/internal/model"

	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// SQLiteSnapshotRepository implements SnapshotRepository using a single-row
// key/value table in SQLite. This is the default backend for a kiosk
// running on one machine.
type SQLiteSnapshotRepository struct {
	db  *sql.DB
	key string
	mu  sync.RWMutex
}

// NewSQLiteSnapshotRepository opens (or creates) the SQLite database at
// dbPath and prepares the snapshot table. storageKey names the one slot
// this repository reads and writes.
func NewSQLiteSnapshotRepository(dbPath, storageKey string) (*SQLiteSnapshotRepository, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		storage_key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	log.Printf("[SQLiteSnapshotRepository] Initialized with database: %s (key=%s)", dbPath, storageKey)
	return &SQLiteSnapshotRepository{db: db, key: storageKey}, nil
}

// Load reads the stored snapshot. Missing rows yield an empty snapshot.
func (r *SQLiteSnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE storage_key = ?`, r.key).Scan(&payload)
	if err == sql.ErrNoRows {
		return model.Empty(), nil
	}
	if err != nil {
		return model.Empty(), fmt.Errorf("failed to read snapshot: %w", err)
	}

	return decodeSnapshot([]byte(payload))
}

// Save overwrites the slot with the serialized snapshot.
func (r *SQLiteSnapshotRepository) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	query := `
		INSERT INTO snapshots (storage_key, payload, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(storage_key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = datetime('now')`

	if _, err := r.db.ExecContext(ctx, query, r.key, string(payload)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteSnapshotRepository) Close() error {
	return r.db.Close()
}

// decodeSnapshot unmarshals a stored payload, converting decode failures
// into ErrParse so callers can fall back to an empty snapshot.
func decodeSnapshot(payload []byte) (model.Snapshot, error) {
	var snap model.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return model.Empty(), fmt.Errorf("%w: %v", ErrParse, err)
	}
	// Stored blobs may predate one of the collections; never hand out nil slices.
	if snap.Students == nil {
		snap.Students = []model.Student{}
	}
	if snap.Prizes == nil {
		snap.Prizes = []model.Prize{}
	}
	if snap.Logs == nil {
		snap.Logs = []model.RedemptionLog{}
	}
	return snap, nil
}

// Ensure SQLiteSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*SQLiteSnapshotRepository)(nil)
