package service

import (
	"context"
	"time"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/store"
	"prizehouse-api/pkg/uid"
)

// timestampLayout renders the wall-clock instant the way the kiosk
// displays it in the ledger.
const timestampLayout = "2006/1/2 15:04:05"

// ExchangeResult carries everything the kiosk renders after a successful
// redemption: the debited student, the decremented prize, and the new
// ledger line.
type ExchangeResult struct {
	Student model.Student       `json:"student"`
	Prize   model.Prize         `json:"prize"`
	Log     model.RedemptionLog `json:"log"`
}

// ExchangeService executes redemptions as single logical transactions:
// point debit, stock decrement, and ledger append commit together or not
// at all.
type ExchangeService struct {
	store    *store.Store
	feedback FeedbackSink
	now      func() time.Time
}

// NewExchangeService creates the exchange engine. A nil sink falls back
// to the logging sink.
func NewExchangeService(st *store.Store, sink FeedbackSink) *ExchangeService {
	if sink == nil {
		sink = LogFeedbackSink{}
	}
	return &ExchangeService{
		store:    st,
		feedback: sink,
		now:      time.Now,
	}
}

// Exchange redeems one unit of the prize for the student. On success the
// committed state transition is complete before the celebratory cue
// fires; the cue is fire-and-forget and never awaited.
func (s *ExchangeService) Exchange(ctx context.Context, studentID, prizeID string) (ExchangeResult, error) {
	var result ExchangeResult

	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		next, res, err := applyExchange(snap, studentID, prizeID, uid.New(), s.now())
		if err != nil {
			return model.Snapshot{}, err
		}
		result = res
		return next, nil
	})
	if err != nil {
		return ExchangeResult{}, err
	}

	go s.feedback.Trigger(EffectSuccess)
	return result, nil
}

// applyExchange produces the three derived collections in one pass.
// Preconditions are checked in order, short-circuiting; if any fails the
// input snapshot is returned untouched. A zero-price prize always
// succeeds when stock allows.
func applyExchange(snap model.Snapshot, studentID, prizeID, logID string, now time.Time) (model.Snapshot, ExchangeResult, error) {
	student, ok := snap.FindStudent(studentID)
	if !ok {
		return snap, ExchangeResult{}, ErrStudentNotFound
	}
	prize, ok := snap.FindPrize(prizeID)
	if !ok {
		return snap, ExchangeResult{}, ErrPrizeNotFound
	}
	if student.Points < prize.Price {
		return snap, ExchangeResult{}, ErrInsufficientPoints
	}
	if prize.Stock <= 0 {
		return snap, ExchangeResult{}, ErrOutOfStock
	}

	student.Points -= prize.Price
	prize.Stock--

	for i := range snap.Students {
		if snap.Students[i].ID == studentID {
			snap.Students[i] = student
		}
	}
	for i := range snap.Prizes {
		if snap.Prizes[i].ID == prizeID {
			snap.Prizes[i] = prize
		}
	}

	entry := model.RedemptionLog{
		ID:          logID,
		StudentName: student.Name,
		PrizeName:   prize.Name,
		Cost:        prize.Price,
		Timestamp:   now.Format(timestampLayout),
	}
	snap.Logs = append([]model.RedemptionLog{entry}, snap.Logs...)

	return snap, ExchangeResult{Student: student, Prize: prize, Log: entry}, nil
}
