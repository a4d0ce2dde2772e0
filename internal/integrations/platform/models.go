package platform

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// response общий конверт ответов платформы
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// availabilityListResponse ответ GET /stylist/get-availability
type availabilityListResponse struct {
	response
	Data []domain.PersistedEntry `json:"data"`
}

// setAvailabilityRequest тело POST /stylist/set-availability/{stylistId}
type setAvailabilityRequest struct {
	Availability []domain.PayloadEntry `json:"availability"`
}

// ToggleSlotRequest тело PUT /stylist/availability/toggle-slot
type ToggleSlotRequest struct {
	StylistID string `json:"stylistId"`
	Date      string `json:"date"`
	SlotID    string `json:"slotId"`
}

// ToggleSlotResult ответ PUT /stylist/availability/toggle-slot
type ToggleSlotResult struct {
	Message  string `json:"message"`
	IsActive bool   `json:"isActive"`
	// DayIsActive агрегированный флаг дня; платформа может его не присылать
	DayIsActive *bool `json:"dayIsActive,omitempty"`
}

type toggleSlotResponse struct {
	response
	IsActive    bool  `json:"isActive"`
	DayIsActive *bool `json:"dayIsActive"`
}

// errorResponse тело ответа платформы с ошибкой
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// normalizeDate приводит дату платформы к YYYY-MM-DD.
// Платформа может вернуть полный ISO timestamp ("2025-01-10T00:00:00.000Z").
func normalizeDate(date string) string {
	if len(date) > len(domain.DateFormat) && date[len(domain.DateFormat)] == 'T' {
		return date[:len(domain.DateFormat)]
	}
	return date
}
