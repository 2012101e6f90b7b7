package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"prizehouse-api/internal/model"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLSnapshotRepository implements SnapshotRepository on MySQL, for
// deployments where the school already runs a shared database server.
// Same single-slot shape as the SQLite backend.
type MySQLSnapshotRepository struct {
	db  *sql.DB
	key string
}

// NewMySQLSnapshotRepository connects to MySQL and prepares the snapshot table.
func NewMySQLSnapshotRepository(dsn, storageKey string) (*MySQLSnapshotRepository, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		storage_key VARCHAR(191) PRIMARY KEY,
		payload LONGTEXT NOT NULL,
		updated_at DATETIME NOT NULL
	)`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}

	log.Printf("[MySQLSnapshotRepository] Initialized (key=%s)", storageKey)
	return &MySQLSnapshotRepository{db: db, key: storageKey}, nil
}

// Load reads the stored snapshot. Missing rows yield an empty snapshot.
func (r *MySQLSnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
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
func (r *MySQLSnapshotRepository) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (storage_key, payload, updated_at)
		VALUES (?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, r.key, string(payload)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *MySQLSnapshotRepository) Close() error {
	return r.db.Close()
}

// Ensure MySQLSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*MySQLSnapshotRepository)(nil)
