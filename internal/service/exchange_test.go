package service

import (
	"context"
	"testing"
	"time"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/repository"
	"prizehouse-api/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	effects chan string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{effects: make(chan string, 8)}
}

func (s *recordingSink) Trigger(effect string) {
	s.effects <- effect
}

func newTestStore(t *testing.T, snap model.Snapshot) *store.Store {
	t.Helper()
	st := store.New(repository.NewMemorySnapshotRepository())
	st.Replace(context.Background(), snap)
	return st
}

func kioskSnapshot() model.Snapshot {
	return model.Snapshot{
		Students: []model.Student{
			{ID: "s1", Name: "小明", Points: 10},
			{ID: "s2", Name: "小華", Points: 5},
		},
		Prizes: []model.Prize{
			{ID: "p1", Name: "貼紙", Price: 10, Stock: 1},
			{ID: "p2", Name: "鉛筆", Price: 3, Stock: 5},
			{ID: "p3", Name: "蓋章卡", Price: 0, Stock: 2},
		},
		Logs: []model.RedemptionLog{},
	}
}

func TestExchangeSuccess(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sink := newRecordingSink()
	svc := NewExchangeService(st, sink)

	result, err := svc.Exchange(context.Background(), "s1", "p1")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Student.Points)
	assert.Equal(t, 0, result.Prize.Stock)
	assert.Equal(t, 10, result.Log.Cost)
	assert.Equal(t, "小明", result.Log.StudentName)
	assert.Equal(t, "貼紙", result.Log.PrizeName)

	snap := st.Snapshot()
	student, _ := snap.FindStudent("s1")
	prize, _ := snap.FindPrize("p1")
	assert.Equal(t, 0, student.Points)
	assert.Equal(t, 0, prize.Stock)
	require.Len(t, snap.Logs, 1)
	assert.Equal(t, result.Log.ID, snap.Logs[0].ID)
}

func TestExchangeFiresSuccessEffectOnce(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sink := newRecordingSink()
	svc := NewExchangeService(st, sink)

	_, err := svc.Exchange(context.Background(), "s1", "p2")
	require.NoError(t, err)

	select {
	case effect := <-sink.effects:
		assert.Equal(t, EffectSuccess, effect)
	case <-time.After(time.Second):
		t.Fatal("expected a success effect")
	}

	select {
	case effect := <-sink.effects:
		t.Fatalf("unexpected second effect %q", effect)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExchangeNoEffectOnRejection(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	sink := newRecordingSink()
	svc := NewExchangeService(st, sink)

	_, err := svc.Exchange(context.Background(), "s2", "p1")
	require.ErrorIs(t, err, ErrInsufficientPoints)

	select {
	case effect := <-sink.effects:
		t.Fatalf("unexpected effect %q after rejection", effect)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExchangeInsufficientPoints(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())
	before := st.Snapshot()

	_, err := svc.Exchange(context.Background(), "s2", "p1")
	require.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, before, st.Snapshot(), "rejection must leave state untouched")
}

func TestExchangeOutOfStock(t *testing.T) {
	snap := kioskSnapshot()
	snap.Prizes[1].Stock = 0 // 鉛筆, affordable for everyone
	st := newTestStore(t, snap)
	svc := NewExchangeService(st, newRecordingSink())
	before := st.Snapshot()

	_, err := svc.Exchange(context.Background(), "s1", "p2")
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, before, st.Snapshot())
}

func TestExchangeSecondAttemptAfterSellout(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())

	_, err := svc.Exchange(context.Background(), "s1", "p1")
	require.NoError(t, err)
	after := st.Snapshot()

	// The shelf is empty and the buyer is broke; affordability is
	// checked first, so that is the reported reason. Either way the
	// state from the first exchange stands.
	_, err = svc.Exchange(context.Background(), "s1", "p1")
	require.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, after, st.Snapshot())
}

func TestExchangeZeroPriceAlwaysSucceeds(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())

	// s2 has 5 points; the free prize must not require any.
	result, err := svc.Exchange(context.Background(), "s2", "p3")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Student.Points)
	assert.Equal(t, 1, result.Prize.Stock)
	assert.Equal(t, 0, result.Log.Cost)
}

func TestExchangeUnknownStudent(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())
	before := st.Snapshot()

	_, err := svc.Exchange(context.Background(), "nope", "p1")
	require.ErrorIs(t, err, ErrStudentNotFound)
	assert.Equal(t, before, st.Snapshot())
}

func TestExchangeUnknownPrize(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())

	_, err := svc.Exchange(context.Background(), "s1", "nope")
	require.ErrorIs(t, err, ErrPrizeNotFound)
}

func TestExchangeConservation(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())

	before := st.Snapshot()
	studentBefore, _ := before.FindStudent("s1")
	prizeBefore, _ := before.FindPrize("p2")

	result, err := svc.Exchange(context.Background(), "s1", "p2")
	require.NoError(t, err)

	assert.Equal(t, studentBefore.Points-prizeBefore.Price, result.Student.Points)
	assert.Equal(t, prizeBefore.Stock-1, result.Prize.Stock)

	after := st.Snapshot()
	require.Len(t, after.Logs, len(before.Logs)+1)
	assert.Equal(t, prizeBefore.Price, after.Logs[0].Cost)
}

func TestLogSnapshotSurvivesRename(t *testing.T) {
	st := newTestStore(t, kioskSnapshot())
	svc := NewExchangeService(st, newRecordingSink())
	catalog := NewCatalogService(st)

	_, err := svc.Exchange(context.Background(), "s1", "p2")
	require.NoError(t, err)

	// Rename the prize; the ledger must keep the old name.
	price, stock := 3, 4
	_, err = catalog.UpdatePrize(context.Background(), "p2", PrizeDraft{
		Name:  "新鉛筆",
		Price: &price,
		Stock: &stock,
	})
	require.NoError(t, err)

	snap := st.Snapshot()
	require.Len(t, snap.Logs, 1)
	assert.Equal(t, "鉛筆", snap.Logs[0].PrizeName)
}
