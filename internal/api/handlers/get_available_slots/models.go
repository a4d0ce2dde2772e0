package get_available_slots

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StylistID string `json:"stylistId"`
	Date      string `json:"date"`
	Mode      string `json:"mode"`
	// PersistedLoaded false, если сохраненное расписание получить не удалось
	PersistedLoaded bool          `json:"persistedLoaded"`
	Periods         []PeriodSlots `json:"periods"`
}

// PeriodSlots слоты одного периода каталога
type PeriodSlots struct {
	Name  string          `json:"name"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель слота каталога
type AvailableSlot struct {
	From      string `json:"from"`
	Till      string `json:"till"`
	Selected  bool   `json:"selected"`
	Elapsed   bool   `json:"elapsed"`
	Persisted bool   `json:"persisted"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	periods := make([]PeriodSlots, len(resp.Periods))
	for i, period := range resp.Periods {
		slots := make([]AvailableSlot, len(period.Slots))
		for j, slot := range period.Slots {
			slots[j] = AvailableSlot{
				From:      slot.From.String(),
				Till:      slot.Till.String(),
				Selected:  slot.Selected,
				Elapsed:   slot.Elapsed,
				Persisted: slot.Persisted,
				Available: slot.Available,
			}
		}
		periods[i] = PeriodSlots{Name: period.Name, Slots: slots}
	}

	return &AvailableSlotsResponse{
		StylistID:       resp.StylistID,
		Date:            resp.Date,
		Mode:            string(resp.Mode),
		PersistedLoaded: resp.PersistedLoaded,
		Periods:         periods,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути
func ToUseCaseRequest(session domain.Session, stylistID, date string) *getAvailableSlots.Request {
	return &getAvailableSlots.Request{
		Session:   session,
		StylistID: stylistID,
		Date:      date,
	}
}
