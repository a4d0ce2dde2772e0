package availability

import "github.com/m04kA/SMC-AvailabilityService/internal/domain"

// BuildPayload превращает черновики в записи для платформы.
// Черновики, которые нельзя отправить (см. DayDraft.IsSubmittable), пропускаются.
// Результат отсортирован по дате.
func BuildPayload(drafts domain.DraftSet) []domain.PayloadEntry {
	payload := make([]domain.PayloadEntry, 0, len(drafts))
	for _, date := range drafts.Dates() {
		draft := drafts[date]
		if draft == nil || !draft.IsSubmittable() {
			continue
		}
		payload = append(payload, toPayloadEntry(date, draft))
	}
	return payload
}

// toPayloadEntry строит запись для одной даты. Ровно один вариант из:
// праздник со слотами, праздник без слотов, закрытый день, обычный день.
func toPayloadEntry(date string, draft *domain.DayDraft) domain.PayloadEntry {
	switch {
	case draft.IsHoliday && len(draft.Slots) > 0:
		return domain.PayloadEntry{Date: date, Slots: copySlots(draft.Slots), IsActive: true, IsHoliday: true}
	case draft.IsHoliday:
		return domain.PayloadEntry{Date: date, Slots: []domain.TimeSlot{}, IsActive: false, IsHoliday: true}
	case draft.IsClosed:
		return domain.PayloadEntry{Date: date, Slots: []domain.TimeSlot{}, IsActive: false, IsHoliday: false}
	default:
		return domain.PayloadEntry{Date: date, Slots: copySlots(draft.Slots), IsActive: len(draft.Slots) > 0, IsHoliday: false}
	}
}

func copySlots(slots []domain.TimeSlot) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(slots))
	copy(out, slots)
	return out
}
