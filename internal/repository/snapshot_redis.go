package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"prizehouse-api/internal/model"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotRepository implements SnapshotRepository as a single Redis
// key. Suited to classrooms that already run Redis for other tooling;
// the snapshot is small enough that a full SET per mutation is cheap.
type RedisSnapshotRepository struct {
	client *redis.Client
	key    string
}

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisSnapshotRepository connects to Redis and verifies the connection.
func NewRedisSnapshotRepository(cfg RedisConfig, storageKey string) (*RedisSnapshotRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	log.Printf("[RedisSnapshotRepository] Initialized (key=%s)", storageKey)
	return &RedisSnapshotRepository{client: client, key: storageKey}, nil
}

// Load reads the stored snapshot. A missing key yields an empty snapshot.
func (r *RedisSnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return model.Empty(), nil
	}
	if err != nil {
		return model.Empty(), fmt.Errorf("failed to read snapshot: %w", err)
	}

	return decodeSnapshot(payload)
}

// Save overwrites the key with the serialized snapshot. No TTL: the
// snapshot is the system of record, not a cache entry.
func (r *RedisSnapshotRepository) Save(ctx context.Context, snap model.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (r *RedisSnapshotRepository) Close() error {
	return r.client.Close()
}

// Ensure RedisSnapshotRepository implements SnapshotRepository
var _ SnapshotRepository = (*RedisSnapshotRepository)(nil)
