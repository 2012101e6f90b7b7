package service

import (
	"context"
	"strings"

	"prizehouse-api/internal/model"
	"prizehouse-api/internal/store"
	"prizehouse-api/pkg/uid"
)

// PrizeDraft is an admin-entered prize. Price and Stock are pointers so
// an absent field is distinguishable from an explicit zero: zero price
// and zero stock are valid listings, missing ones are not.
type PrizeDraft struct {
	Name     string `json:"name"`
	Price    *int   `json:"price"`
	Stock    *int   `json:"stock"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

// validate checks presence of required fields and rejects negative
// price or stock. Zero is allowed for both.
func (d PrizeDraft) validate() error {
	var fields []string
	if strings.TrimSpace(d.Name) == "" {
		fields = append(fields, "name")
	}
	if d.Price == nil {
		fields = append(fields, "price")
	} else if *d.Price < 0 {
		fields = append(fields, "price must not be negative")
	}
	if d.Stock == nil {
		fields = append(fields, "stock")
	} else if *d.Stock < 0 {
		fields = append(fields, "stock must not be negative")
	}
	if len(fields) > 0 {
		return NewValidationError(fields...)
	}
	return nil
}

// CatalogService handles administrative CRUD: prize listings, the class
// roster, manual point adjustment, and the ledger.
type CatalogService struct {
	store *store.Store
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// CreatePrize validates the draft, assigns a fresh id, and prepends the
// listing to the catalog.
func (s *CatalogService) CreatePrize(ctx context.Context, draft PrizeDraft) (model.Prize, error) {
	if err := draft.validate(); err != nil {
		return model.Prize{}, err
	}

	prize := model.Prize{
		ID:       uid.New(),
		Name:     strings.TrimSpace(draft.Name),
		Price:    *draft.Price,
		Stock:    *draft.Stock,
		Image:    draft.Image,
		Category: draft.Category,
	}

	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Prizes = append([]model.Prize{prize}, snap.Prizes...)
		return snap, nil
	})
	if err != nil {
		return model.Prize{}, err
	}
	return prize, nil
}

// UpdatePrize replaces the full record matching id. An unknown id is a
// silent no-op, not an error. This is also the restocking path: stock
// only ever goes up through an explicit edit here.
func (s *CatalogService) UpdatePrize(ctx context.Context, id string, draft PrizeDraft) (model.Prize, error) {
	if err := draft.validate(); err != nil {
		return model.Prize{}, err
	}

	updated := model.Prize{
		ID:       id,
		Name:     strings.TrimSpace(draft.Name),
		Price:    *draft.Price,
		Stock:    *draft.Stock,
		Image:    draft.Image,
		Category: draft.Category,
	}

	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		for i := range snap.Prizes {
			if snap.Prizes[i].ID == id {
				snap.Prizes[i] = updated
			}
		}
		return snap, nil
	})
	if err != nil {
		return model.Prize{}, err
	}
	return updated, nil
}

// DeletePrize removes the listing by id; an absent id is a silent no-op.
func (s *CatalogService) DeletePrize(ctx context.Context, id string) error {
	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		kept := snap.Prizes[:0:0]
		for _, p := range snap.Prizes {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if kept == nil {
			kept = []model.Prize{}
		}
		snap.Prizes = kept
		return snap, nil
	})
	return err
}

// AddStudent appends one student with zero points.
func (s *CatalogService) AddStudent(ctx context.Context, name string) (model.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Student{}, NewValidationError("name")
	}

	student := model.Student{ID: uid.New(), Name: name, Points: 0}
	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Students = append(snap.Students, student)
		return snap, nil
	})
	if err != nil {
		return model.Student{}, err
	}
	return student, nil
}

// ImportStudents splits the raw text on line breaks, trims each line,
// discards blanks, and appends one zero-point student per remaining
// line. Duplicate names are permitted; id is the identity key.
func (s *CatalogService) ImportStudents(ctx context.Context, rawText string) ([]model.Student, error) {
	var added []model.Student
	for _, line := range strings.Split(rawText, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		added = append(added, model.Student{ID: uid.New(), Name: name, Points: 0})
	}
	if added == nil {
		added = []model.Student{}
	}

	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Students = append(snap.Students, added...)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// DeleteStudent removes the student by id; an absent id is a silent no-op.
func (s *CatalogService) DeleteStudent(ctx context.Context, id string) error {
	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		kept := snap.Students[:0:0]
		for _, st := range snap.Students {
			if st.ID != id {
				kept = append(kept, st)
			}
		}
		if kept == nil {
			kept = []model.Student{}
		}
		snap.Students = kept
		return snap, nil
	})
	return err
}

// AdjustPoints sets points = max(0, points+delta). The clamp at zero is
// silent: requesting a larger debit than the balance is not an error.
func (s *CatalogService) AdjustPoints(ctx context.Context, studentID string, delta int) (model.Student, error) {
	var adjusted model.Student
	found := false

	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		for i := range snap.Students {
			if snap.Students[i].ID == studentID {
				points := snap.Students[i].Points + delta
				if points < 0 {
					points = 0
				}
				snap.Students[i].Points = points
				adjusted = snap.Students[i]
				found = true
			}
		}
		return snap, nil
	})
	if err != nil {
		return model.Student{}, err
	}
	if !found {
		return model.Student{}, ErrStudentNotFound
	}
	return adjusted, nil
}

// ClearLog empties the redemption ledger unconditionally. Irreversible;
// confirmation, if any, is the caller's concern.
func (s *CatalogService) ClearLog(ctx context.Context) error {
	_, err := s.store.Update(ctx, func(snap model.Snapshot) (model.Snapshot, error) {
		snap.Logs = []model.RedemptionLog{}
		return snap, nil
	})
	return err
}
