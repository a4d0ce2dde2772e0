package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDate = "2025-01-10"

func TestDraftSet_ClosedHolidayMutuallyExclusive(t *testing.T) {
	// Перебираем все последовательности длины 4 из действий close/holiday on/off
	actions := []func(s DraftSet){
		func(s DraftSet) { s.SetClosed(testDate, true) },
		func(s DraftSet) { s.SetClosed(testDate, false) },
		func(s DraftSet) { s.SetHoliday(testDate, true) },
		func(s DraftSet) { s.SetHoliday(testDate, false) },
	}

	var walk func(depth int, seq []int)
	walk = func(depth int, seq []int) {
		if depth == 0 {
			s := DraftSet{}
			for _, i := range seq {
				actions[i](s)
			}
			d := s.Day(testDate)
			assert.False(t, d.IsClosed && d.IsHoliday, "sequence %v", seq)
			return
		}
		for i := range actions {
			walk(depth-1, append(append([]int{}, seq...), i))
		}
	}
	walk(4, nil)
}

func TestDayDraft_SetClosed(t *testing.T) {
	d := &DayDraft{Slots: []TimeSlot{{From: "09:00", Till: "10:00"}}}

	assert.True(t, d.SetClosed(true))
	assert.True(t, d.IsClosed)
	assert.False(t, d.IsHoliday)
	assert.Empty(t, d.Slots)

	// Идемпотентность
	assert.False(t, d.SetClosed(true))
	assert.True(t, d.IsClosed)

	assert.True(t, d.SetClosed(false))
	assert.True(t, d.IsEmpty())
}

func TestDayDraft_SetHoliday(t *testing.T) {
	t.Run("switching on clears catalog slots", func(t *testing.T) {
		d := &DayDraft{Slots: []TimeSlot{{From: "09:00", Till: "10:00"}}}

		assert.True(t, d.SetHoliday(true))
		assert.True(t, d.IsHoliday)
		assert.Empty(t, d.Slots)
	})

	t.Run("switching on drops closed flag", func(t *testing.T) {
		d := &DayDraft{}
		d.SetClosed(true)

		assert.True(t, d.SetHoliday(true))
		assert.False(t, d.IsClosed)
		assert.True(t, d.IsHoliday)
	})

	t.Run("already holiday keeps custom slots", func(t *testing.T) {
		d := &DayDraft{}
		d.SetHoliday(true)
		require.True(t, d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"}))

		assert.False(t, d.SetHoliday(true))
		assert.Len(t, d.Slots, 1)
	})

	t.Run("switching off clears custom slots", func(t *testing.T) {
		d := &DayDraft{}
		d.SetHoliday(true)
		d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"})

		assert.True(t, d.SetHoliday(false))
		assert.False(t, d.IsHoliday)
		assert.Empty(t, d.Slots)
	})
}

func TestDayDraft_ToggleCatalogSlotSymmetry(t *testing.T) {
	d := &DayDraft{Slots: []TimeSlot{{From: "09:00", Till: "10:00"}, {From: "16:00", Till: "17:00"}}}
	original := append([]TimeSlot{}, d.Slots...)

	for _, slot := range CatalogSlots() {
		require.True(t, d.ToggleCatalogSlot(slot))
		require.True(t, d.ToggleCatalogSlot(slot))
		assert.ElementsMatch(t, original, d.Slots, "slot %s", slot)
	}
}

func TestDayDraft_ToggleCatalogSlotRejectsOutsideRegularMode(t *testing.T) {
	slot := TimeSlot{From: "09:00", Till: "10:00"}

	closed := &DayDraft{}
	closed.SetClosed(true)
	assert.False(t, closed.ToggleCatalogSlot(slot))
	assert.Empty(t, closed.Slots)

	holiday := &DayDraft{}
	holiday.SetHoliday(true)
	assert.False(t, holiday.ToggleCatalogSlot(slot))
	assert.Empty(t, holiday.Slots)
}

func TestDayDraft_RegularSlotsStayInCatalog(t *testing.T) {
	d := &DayDraft{}

	candidates := append(CatalogSlots(),
		TimeSlot{From: "10:00", Till: "10:30"},
		TimeSlot{From: "19:00", Till: "20:00"},
		TimeSlot{From: "08:00", Till: "09:00"},
	)
	for _, slot := range candidates {
		d.ToggleCatalogSlot(slot)
	}

	assert.Len(t, d.Slots, len(CatalogSlots()))
	for _, slot := range d.Slots {
		assert.True(t, IsCatalogSlot(slot), "slot %s is not a catalog slot", slot)
	}
}

func TestDayDraft_AddCustomSlot(t *testing.T) {
	d := &DayDraft{}

	// Не в режиме праздника
	assert.False(t, d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"}))

	d.SetHoliday(true)
	assert.True(t, d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"}))
	assert.False(t, d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"}), "duplicate")
	assert.False(t, d.AddCustomSlot(TimeSlot{From: "11:00", Till: "11:00"}), "empty range")
	assert.False(t, d.AddCustomSlot(TimeSlot{From: "12:00", Till: "11:00"}), "reversed range")
	assert.False(t, d.AddCustomSlot(TimeSlot{From: "1:00", Till: "11:00"}), "malformed")
	assert.True(t, d.AddCustomSlot(TimeSlot{From: "07:15", Till: "08:45"}))

	assert.Equal(t, []TimeSlot{{From: "10:00", Till: "10:30"}, {From: "07:15", Till: "08:45"}}, d.Slots)
}

func TestDayDraft_RemoveSlotAt(t *testing.T) {
	d := &DayDraft{}
	d.SetHoliday(true)
	d.AddCustomSlot(TimeSlot{From: "10:00", Till: "10:30"})
	d.AddCustomSlot(TimeSlot{From: "11:00", Till: "11:30"})
	d.AddCustomSlot(TimeSlot{From: "12:00", Till: "12:30"})

	assert.False(t, d.RemoveSlotAt(3))
	assert.False(t, d.RemoveSlotAt(-1))
	assert.True(t, d.RemoveSlotAt(1))
	assert.Equal(t, []TimeSlot{{From: "10:00", Till: "10:30"}, {From: "12:00", Till: "12:30"}}, d.Slots)
}

func TestDayDraft_IsSubmittable(t *testing.T) {
	tests := []struct {
		name  string
		draft DayDraft
		want  bool
	}{
		{name: "empty", draft: DayDraft{}, want: false},
		{name: "closed", draft: DayDraft{IsClosed: true}, want: true},
		{name: "holiday without slots", draft: DayDraft{IsHoliday: true}, want: false},
		{name: "holiday with slots", draft: DayDraft{IsHoliday: true, Slots: []TimeSlot{{From: "10:00", Till: "10:30"}}}, want: true},
		{name: "regular with slots", draft: DayDraft{Slots: []TimeSlot{{From: "09:00", Till: "10:00"}}}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.draft.IsSubmittable())
		})
	}
}

func TestDraftSet_ClearAndClone(t *testing.T) {
	s := DraftSet{}
	s.ToggleCatalogSlot(testDate, TimeSlot{From: "09:00", Till: "10:00"})
	s.SetClosed("2025-01-11", true)

	clone := s.Clone()
	s.Clear(testDate)

	assert.True(t, s.Day(testDate).IsEmpty())
	assert.Len(t, clone[testDate].Slots, 1)
	assert.Equal(t, []string{testDate, "2025-01-11"}, s.Dates())
}

func TestDraftChange_Apply(t *testing.T) {
	d := &DayDraft{}

	changed, err := DraftChange{Action: ActionHolidayOn}.Apply(d)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = DraftChange{Action: ActionAddSlot, Slot: TimeSlot{From: "10:00", Till: "10:30"}}.Apply(d)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = DraftChange{Action: ActionRemoveSlot, Index: 0}.Apply(d)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = DraftChange{Action: "explode"}.Apply(d)
	require.Error(t, err)
}
