package domain

import "time"

// SlotEligibility explains whether a catalog slot may be picked for a date
type SlotEligibility struct {
	Elapsed   bool // start time already passed
	Persisted bool // same range already saved on the platform
}

// Eligible reports whether the slot may be toggled in a draft
func (e SlotEligibility) Eligible() bool {
	return !e.Elapsed && !e.Persisted
}

// CheckSlotEligibility evaluates slot on date against now and the saved entry for
// that date. persisted may be nil when nothing is saved for the date.
func CheckSlotEligibility(slot TimeSlot, date string, now time.Time, persisted *PersistedEntry) (SlotEligibility, error) {
	started, err := slot.HasStarted(date, now)
	if err != nil {
		return SlotEligibility{}, err
	}
	result := SlotEligibility{Elapsed: started}
	if persisted != nil {
		result.Persisted = persisted.HasSlot(slot)
	}
	return result, nil
}
