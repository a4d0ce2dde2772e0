package domain

// PersistedSlot is a slot confirmed by the platform. ID is assigned by the
// platform and is never generated or changed here.
type PersistedSlot struct {
	ID string `json:"_id"`
	TimeSlot
	IsActive bool `json:"isActive"`
}

// PersistedEntry is the platform's availability record for one date
type PersistedEntry struct {
	Date      string          `json:"date"`
	Slots     []PersistedSlot `json:"slots"`
	IsActive  bool            `json:"isActive"`
	IsHoliday bool            `json:"isHoliday"`
}

// FindSlot returns the slot with the given id or nil
func (e *PersistedEntry) FindSlot(id string) *PersistedSlot {
	for i := range e.Slots {
		if e.Slots[i].ID == id {
			return &e.Slots[i]
		}
	}
	return nil
}

// HasSlot reports whether the entry already holds a slot with the same range
func (e *PersistedEntry) HasSlot(slot TimeSlot) bool {
	for _, s := range e.Slots {
		if s.TimeSlot.Equal(slot) {
			return true
		}
	}
	return false
}

// AnySlotActive reports whether at least one slot is active
func (e *PersistedEntry) AnySlotActive() bool {
	for _, s := range e.Slots {
		if s.IsActive {
			return true
		}
	}
	return false
}

// Clone returns a deep copy
func (e PersistedEntry) Clone() PersistedEntry {
	slots := make([]PersistedSlot, len(e.Slots))
	copy(slots, e.Slots)
	e.Slots = slots
	return e
}

// PayloadEntry is one date of the save request sent to the platform
type PayloadEntry struct {
	Date      string     `json:"date"`
	Slots     []TimeSlot `json:"slots"`
	IsActive  bool       `json:"isActive"`
	IsHoliday bool       `json:"isHoliday"`
}
