package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func TestBuildPayload_SkipsDraftsThatCannotBeSubmitted(t *testing.T) {
	drafts := domain.DraftSet{
		"2025-01-09": {Slots: []domain.TimeSlot{}},
		"2025-01-10": {IsClosed: true, Slots: []domain.TimeSlot{}},
	}

	got := BuildPayload(drafts)

	assert.Equal(t, []domain.PayloadEntry{
		{Date: "2025-01-10", Slots: []domain.TimeSlot{}, IsActive: false, IsHoliday: false},
	}, got)
}

func TestBuildPayload_HolidayWithSlots(t *testing.T) {
	drafts := domain.DraftSet{
		"2025-02-01": {IsHoliday: true, Slots: []domain.TimeSlot{{From: "10:00", Till: "10:30"}}},
	}

	got := BuildPayload(drafts)

	assert.Equal(t, []domain.PayloadEntry{
		{Date: "2025-02-01", Slots: []domain.TimeSlot{{From: "10:00", Till: "10:30"}}, IsActive: true, IsHoliday: true},
	}, got)
}

func TestBuildPayload_RegularAndSorted(t *testing.T) {
	drafts := domain.DraftSet{
		"2025-03-02": {Slots: []domain.TimeSlot{{From: "12:00", Till: "13:00"}, {From: "09:00", Till: "10:00"}}},
		"2025-03-01": {IsClosed: true},
		"2025-03-03": {IsHoliday: true},
	}

	got := BuildPayload(drafts)

	assert.Equal(t, []domain.PayloadEntry{
		{Date: "2025-03-01", Slots: []domain.TimeSlot{}, IsActive: false, IsHoliday: false},
		{Date: "2025-03-02", Slots: []domain.TimeSlot{{From: "12:00", Till: "13:00"}, {From: "09:00", Till: "10:00"}}, IsActive: true, IsHoliday: false},
	}, got)
}

func TestBuildPayload_EmptyInput(t *testing.T) {
	assert.Empty(t, BuildPayload(nil))
	assert.Empty(t, BuildPayload(domain.DraftSet{"2025-01-01": nil}))
}

func TestToPayloadEntry_HolidayWithoutSlots(t *testing.T) {
	got := toPayloadEntry("2025-01-10", &domain.DayDraft{IsHoliday: true})

	assert.Equal(t, domain.PayloadEntry{Date: "2025-01-10", Slots: []domain.TimeSlot{}, IsActive: false, IsHoliday: true}, got)
}

func TestBuildPayload_DoesNotAliasDraftSlots(t *testing.T) {
	draft := &domain.DayDraft{Slots: []domain.TimeSlot{{From: "09:00", Till: "10:00"}}}

	got := BuildPayload(domain.DraftSet{"2025-01-10": draft})
	draft.Slots[0] = domain.TimeSlot{From: "18:00", Till: "19:00"}

	assert.Equal(t, domain.TimeSlot{From: "09:00", Till: "10:00"}, got[0].Slots[0])
}
