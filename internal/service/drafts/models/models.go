package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DraftResponse черновик на одну дату
type DraftResponse struct {
	Date        string
	Mode        domain.DayMode
	Slots       []domain.TimeSlot
	IsClosed    bool
	IsHoliday   bool
	Submittable bool
	Version     int64
	UpdatedAt   time.Time
}

// DraftListResponse все черновики стилиста
type DraftListResponse struct {
	StylistID        string
	Drafts           []DraftResponse
	SubmittableCount int // Сколько черновиков уйдет при сохранении
}

// FromDomainRecord конвертирует запись хранилища в модель ответа
func FromDomainRecord(rec domain.DraftRecord) DraftResponse {
	slots := make([]domain.TimeSlot, len(rec.Draft.Slots))
	copy(slots, rec.Draft.Slots)
	return DraftResponse{
		Date:        rec.Date,
		Mode:        rec.Draft.Mode(),
		Slots:       slots,
		IsClosed:    rec.Draft.IsClosed,
		IsHoliday:   rec.Draft.IsHoliday,
		Submittable: rec.Draft.IsSubmittable(),
		Version:     rec.Version,
		UpdatedAt:   rec.UpdatedAt,
	}
}
