package domain

import (
	"fmt"
	"sort"
	"time"
)

// DayMode describes which kind of availability a draft proposes
type DayMode string

const (
	ModeRegular DayMode = "regular" // slots from the catalog
	ModeHoliday DayMode = "holiday" // arbitrary custom slots
	ModeClosed  DayMode = "closed"  // day explicitly unavailable
)

// DayDraft is the unsaved availability proposal for a single date.
//
// IsClosed and IsHoliday are mutually exclusive. In regular mode Slots only holds
// catalog slots; in holiday mode it holds custom slots. Slots has set semantics,
// the order is kept for display only.
type DayDraft struct {
	Slots     []TimeSlot `json:"slots"`
	IsClosed  bool       `json:"isClosed"`
	IsHoliday bool       `json:"isHoliday"`
}

// Mode returns the current draft mode
func (d *DayDraft) Mode() DayMode {
	switch {
	case d.IsClosed:
		return ModeClosed
	case d.IsHoliday:
		return ModeHoliday
	default:
		return ModeRegular
	}
}

// SetClosed marks the day closed (dropping holiday mode and slots) or reopens it.
func (d *DayDraft) SetClosed(on bool) bool {
	if !on {
		if !d.IsClosed {
			return false
		}
		d.IsClosed = false
		return true
	}
	if d.IsClosed && !d.IsHoliday && len(d.Slots) == 0 {
		return false
	}
	d.IsClosed = true
	d.IsHoliday = false
	d.Slots = []TimeSlot{}
	return true
}

// SetHoliday switches holiday mode on or off. Switching modes discards the slots.
func (d *DayDraft) SetHoliday(on bool) bool {
	if on == d.IsHoliday {
		if on && d.IsClosed {
			d.IsClosed = false
			return true
		}
		return false
	}
	d.IsHoliday = on
	d.Slots = []TimeSlot{}
	if on {
		d.IsClosed = false
	}
	return true
}

// ToggleCatalogSlot removes slot if present, otherwise appends it.
// Only applies in regular mode and only to catalog slots.
func (d *DayDraft) ToggleCatalogSlot(slot TimeSlot) bool {
	if d.Mode() != ModeRegular || !IsCatalogSlot(slot) {
		return false
	}
	if i := indexOfSlot(d.Slots, slot); i >= 0 {
		d.Slots = append(d.Slots[:i:i], d.Slots[i+1:]...)
		return true
	}
	d.Slots = append(d.Slots, slot)
	return true
}

// AddCustomSlot appends a custom slot in holiday mode.
// Malformed slots, from >= till and duplicates are ignored.
func (d *DayDraft) AddCustomSlot(slot TimeSlot) bool {
	if d.Mode() != ModeHoliday || slot.Validate() != nil || ContainsSlot(d.Slots, slot) {
		return false
	}
	d.Slots = append(d.Slots, slot)
	return true
}

// RemoveSlotAt removes the slot at index; out of range is a no-op
func (d *DayDraft) RemoveSlotAt(index int) bool {
	if index < 0 || index >= len(d.Slots) {
		return false
	}
	d.Slots = append(d.Slots[:index:index], d.Slots[index+1:]...)
	return true
}

// Clear resets the draft to empty
func (d *DayDraft) Clear() {
	d.Slots = []TimeSlot{}
	d.IsClosed = false
	d.IsHoliday = false
}

// IsEmpty true for a draft nobody touched (or one that was cleared)
func (d *DayDraft) IsEmpty() bool {
	return !d.IsClosed && !d.IsHoliday && len(d.Slots) == 0
}

// IsSubmittable reports whether exactly one of: closed; holiday with slots;
// regular with slots.
func (d *DayDraft) IsSubmittable() bool {
	switch d.Mode() {
	case ModeClosed:
		return true
	default:
		return len(d.Slots) > 0
	}
}

// Clone returns a deep copy
func (d *DayDraft) Clone() *DayDraft {
	slots := make([]TimeSlot, len(d.Slots))
	copy(slots, d.Slots)
	return &DayDraft{Slots: slots, IsClosed: d.IsClosed, IsHoliday: d.IsHoliday}
}

// DraftAction is a user action on a day draft
type DraftAction string

const (
	ActionClose      DraftAction = "close"
	ActionOpen       DraftAction = "open"
	ActionHolidayOn  DraftAction = "holiday_on"
	ActionHolidayOff DraftAction = "holiday_off"
	ActionToggleSlot DraftAction = "toggle_slot"
	ActionAddSlot    DraftAction = "add_slot"
	ActionRemoveSlot DraftAction = "remove_slot"
)

// DraftChange is a single action with its arguments
type DraftChange struct {
	Action DraftAction
	Slot   TimeSlot // toggle_slot, add_slot
	Index  int      // remove_slot
}

// Apply runs the change against d and reports whether d was modified
func (c DraftChange) Apply(d *DayDraft) (bool, error) {
	switch c.Action {
	case ActionClose:
		return d.SetClosed(true), nil
	case ActionOpen:
		return d.SetClosed(false), nil
	case ActionHolidayOn:
		return d.SetHoliday(true), nil
	case ActionHolidayOff:
		return d.SetHoliday(false), nil
	case ActionToggleSlot:
		return d.ToggleCatalogSlot(c.Slot), nil
	case ActionAddSlot:
		return d.AddCustomSlot(c.Slot), nil
	case ActionRemoveSlot:
		return d.RemoveSlotAt(c.Index), nil
	default:
		return false, fmt.Errorf("unknown draft action %q", c.Action)
	}
}

// DraftSet maps ISO dates to day drafts
type DraftSet map[string]*DayDraft

// Day returns the draft for date, creating an empty one on first access
func (s DraftSet) Day(date string) *DayDraft {
	d, ok := s[date]
	if !ok {
		d = &DayDraft{Slots: []TimeSlot{}}
		s[date] = d
	}
	return d
}

func (s DraftSet) SetClosed(date string, on bool) bool {
	return s.Day(date).SetClosed(on)
}

func (s DraftSet) SetHoliday(date string, on bool) bool {
	return s.Day(date).SetHoliday(on)
}

func (s DraftSet) ToggleCatalogSlot(date string, slot TimeSlot) bool {
	return s.Day(date).ToggleCatalogSlot(slot)
}

func (s DraftSet) AddCustomSlot(date string, slot TimeSlot) bool {
	return s.Day(date).AddCustomSlot(slot)
}

func (s DraftSet) RemoveSlotAt(date string, index int) bool {
	return s.Day(date).RemoveSlotAt(index)
}

func (s DraftSet) Clear(date string) {
	s.Day(date).Clear()
}

// Dates returns the keys in ascending order
func (s DraftSet) Dates() []string {
	dates := make([]string, 0, len(s))
	for date := range s {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a deep copy of the set
func (s DraftSet) Clone() DraftSet {
	out := make(DraftSet, len(s))
	for date, d := range s {
		out[date] = d.Clone()
	}
	return out
}

// DraftRecord is a stored day draft. Version grows on every change and is
// never reused, so it identifies the exact draft content that was read.
type DraftRecord struct {
	StylistID string
	Date      string
	Draft     DayDraft
	Version   int64
	UpdatedAt time.Time
}
