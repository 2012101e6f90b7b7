package repository

import (
	"context"
	"testing"

	"prizehouse-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemorySnapshotRepository()

	snap := model.Snapshot{
		Students: []model.Student{{ID: "s1", Name: "小明", Points: 3}},
		Prizes:   []model.Prize{{ID: "p1", Name: "貼紙", Price: 10, Stock: 1, Category: "文具"}},
		Logs: []model.RedemptionLog{
			{ID: "l1", StudentName: "小明", PrizeName: "貼紙", Cost: 10, Timestamp: "2026/8/28 10:00:00"},
		},
	}

	require.NoError(t, repo.Save(context.Background(), snap))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestMemoryRepositoryEmptySlot(t *testing.T) {
	repo := NewMemorySnapshotRepository()

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Empty(), loaded)
}

func TestMemoryRepositoryMalformedPayload(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	repo.SeedRaw([]byte(`{"students": [truncated`))

	loaded, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrParse)
	assert.Equal(t, model.Empty(), loaded)
}

func TestMemoryRepositoryLegacyPayloadWithoutLogs(t *testing.T) {
	repo := NewMemorySnapshotRepository()
	repo.SeedRaw([]byte(`{"students":[{"id":"s1","name":"小明","points":5}],"prizes":[]}`))

	loaded, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded.Students, 1)
	assert.NotNil(t, loaded.Logs)
	assert.NotNil(t, loaded.Prizes)
}
