package store

import (
	"context"
	"errors"
	"testing"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Students: []model.Student{{ID: "s1", Name: "小明", Points: 10}},
		Prizes:   []model.Prize{{ID: "p1", Name: "貼紙", Price: 10, Stock: 1}},
		Logs:     []model.RedemptionLog{},
	}
}

func TestLoadMissingSlotYieldsEmpty(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	st := New(repo)

	require.NoError(t, st.Load(context.Background()))
	assert.Equal(t, model.Empty(), st.Snapshot())
}

func TestLoadMalformedSlotFallsBackToEmpty(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	repo.SeedRaw([]byte(`{not json at all`))
	st := New(repo)

	err := st.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrParse)
	// The failure is diagnostic only; the store is usable and empty.
	assert.Equal(t, model.Empty(), st.Snapshot())
}

func TestReplacePersists(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	st := New(repo)

	st.Replace(context.Background(), sampleSnapshot())

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), stored)
}

func TestRoundTrip(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	st := New(repo)
	snap := sampleSnapshot()
	snap.Logs = []model.RedemptionLog{
		{ID: "l1", StudentName: "小明", PrizeName: "貼紙", Cost: 10, Timestamp: "2026/8/28 10:00:00"},
	}

	st.Replace(context.Background(), snap)

	st2 := New(repo)
	require.NoError(t, st2.Load(context.Background()))
	assert.Equal(t, snap, st2.Snapshot())
}

func TestUpdateCommitsAndPersists(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	st := New(repo)
	st.Replace(context.Background(), sampleSnapshot())

	result, err := st.Update(context.Background(), func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Students[0].Points = 99
		return snap, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 99, result.Students[0].Points)
	assert.Equal(t, 99, st.Snapshot().Students[0].Points)

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, stored.Students[0].Points)
}

func TestUpdateRejectionLeavesStateUntouched(t *testing.T) {
	repo := repository.NewMemorySnapshotRepository()
	st := New(repo)
	st.Replace(context.Background(), sampleSnapshot())
	before := st.Snapshot()

	boom := errors.New("rejected")
	_, err := st.Update(context.Background(), func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Students[0].Points = 0
		return model.Snapshot{}, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, before, st.Snapshot())

	// The rejected mutation must not have been flushed either.
	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, stored)
}

func TestSnapshotIsACopy(t *testing.T) {
	st := New(repository.NewMemorySnapshotRepository())
	st.Replace(context.Background(), sampleSnapshot())

	snap := st.Snapshot()
	snap.Students[0].Points = 0
	snap.Prizes[0].Stock = 0

	assert.Equal(t, 10, st.Snapshot().Students[0].Points)
	assert.Equal(t, 1, st.Snapshot().Prizes[0].Stock)
}
