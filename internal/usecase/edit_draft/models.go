package edit_draft

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на изменение черновика
type Request struct {
	Session   domain.Session     // Сессия вызывающего (токен нужен для получения расписания)
	StylistID string             // ID стилиста, чей черновик меняется
	Date      string             // Дата черновика (YYYY-MM-DD)
	Action    domain.DraftAction // Действие
	From      string             // Начало слота (toggle_slot, add_slot)
	Till      string             // Конец слота (toggle_slot, add_slot)
	Index     *int               // Позиция слота (remove_slot)
}

// Response модель ответа с черновиком после изменения
type Response struct {
	StylistID   string
	Date        string
	Mode        domain.DayMode
	Slots       []domain.TimeSlot
	IsClosed    bool
	IsHoliday   bool
	Submittable bool
	Changed     bool      // false, если действие ничего не изменило
	Version     int64     // Версия черновика (0 - черновика нет)
	UpdatedAt   time.Time // Время последнего изменения
}

func newResponse(rec domain.DraftRecord, changed bool) *Response {
	slots := make([]domain.TimeSlot, len(rec.Draft.Slots))
	copy(slots, rec.Draft.Slots)
	return &Response{
		StylistID:   rec.StylistID,
		Date:        rec.Date,
		Mode:        rec.Draft.Mode(),
		Slots:       slots,
		IsClosed:    rec.Draft.IsClosed,
		IsHoliday:   rec.Draft.IsHoliday,
		Submittable: rec.Draft.IsSubmittable(),
		Changed:     changed,
		Version:     rec.Version,
		UpdatedAt:   rec.UpdatedAt,
	}
}
