package model

// Snapshot is the full persisted state: the three collections stored and
// replaced together under a single storage key. Logs are ordered newest-first.
type Snapshot struct {
	Students []Student       `json:"students"`
	Prizes   []Prize         `json:"prizes"`
	Logs     []RedemptionLog `json:"logs"`
}

// Empty returns a snapshot with all three collections initialized and empty.
// Used as the fallback when the durable slot is missing or unreadable.
func Empty() Snapshot {
	return Snapshot{
		Students: []Student{},
		Prizes:   []Prize{},
		Logs:     []RedemptionLog{},
	}
}

// Clone returns a deep copy. Entities are plain value structs, so copying
// the slices is enough to keep callers from mutating the store's state
// in place.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Students: make([]Student, len(s.Students)),
		Prizes:   make([]Prize, len(s.Prizes)),
		Logs:     make([]RedemptionLog, len(s.Logs)),
	}
	copy(out.Students, s.Students)
	copy(out.Prizes, s.Prizes)
	copy(out.Logs, s.Logs)
	return out
}

// FindStudent returns the student with the given id, or false.
func (s Snapshot) FindStudent(id string) (Student, bool) {
	for _, st := range s.Students {
		if st.ID == id {
			return st, true
		}
	}
	return Student{}, false
}

// FindPrize returns the prize with the given id, or false.
func (s Snapshot) FindPrize(id string) (Prize, bool) {
	for _, p := range s.Prizes {
		if p.ID == id {
			return p, true
		}
	}
	return Prize{}, false
}
