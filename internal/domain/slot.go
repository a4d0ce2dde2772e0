package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// TimeSlot is a time-of-day range within one date
type TimeSlot struct {
	From types.TimeString `json:"from"`
	Till types.TimeString `json:"till"`
}

// NewTimeSlot parses and validates a slot
func NewTimeSlot(from, till string) (TimeSlot, error) {
	slot := TimeSlot{From: types.TimeString(from), Till: types.TimeString(till)}
	if err := slot.Validate(); err != nil {
		return TimeSlot{}, err
	}
	return slot, nil
}

// Validate checks both bounds are HH:MM and From is strictly before Till
func (s TimeSlot) Validate() error {
	if err := s.From.Validate(); err != nil {
		return fmt.Errorf("%w: from: %v", ErrInvalidTimeSlot, err)
	}
	if err := s.Till.Validate(); err != nil {
		return fmt.Errorf("%w: till: %v", ErrInvalidTimeSlot, err)
	}
	if !s.From.IsBefore(s.Till) {
		return fmt.Errorf("%w: from %s must be before till %s", ErrInvalidTimeSlot, s.From, s.Till)
	}
	return nil
}

// Equal compares slots by value
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.From == other.From && s.Till == other.Till
}

// String returns "HH:MM-HH:MM"
func (s TimeSlot) String() string {
	return s.From.String() + "-" + s.Till.String()
}

// HasStarted reports whether the slot start is at or before now on the given date.
// Dates before today are always started, dates after today never are.
func (s TimeSlot) HasStarted(date string, now time.Time) (bool, error) {
	day, err := ParseDate(date, now.Location())
	if err != nil {
		return false, err
	}
	start, err := s.From.On(day)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	return !start.After(now), nil
}

// ContainsSlot reports whether slots has an entry equal to slot
func ContainsSlot(slots []TimeSlot, slot TimeSlot) bool {
	return indexOfSlot(slots, slot) >= 0
}

func indexOfSlot(slots []TimeSlot, slot TimeSlot) int {
	for i, s := range slots {
		if s.Equal(slot) {
			return i
		}
	}
	return -1
}

// ParseDate parses a YYYY-MM-DD date in loc
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// ValidateDate checks the YYYY-MM-DD format
func ValidateDate(date string) error {
	_, err := ParseDate(date, time.UTC)
	return err
}
