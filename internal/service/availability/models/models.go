package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SaveResult результат сохранения черновиков
type SaveResult struct {
	StylistID string                `json:"stylistId"`
	Saved     []domain.PayloadEntry `json:"saved"`
	// ClearedDates даты, черновики которых очищены. Черновик, измененный во время
	// сохранения, не очищается.
	ClearedDates []string `json:"clearedDates"`
	// Refreshed false, если повторное получение расписания после сохранения не удалось
	Refreshed bool `json:"refreshed"`
}

// CachedAvailability последний успешно полученный список
type CachedAvailability struct {
	Entries   []domain.PersistedEntry `json:"data"`
	Fetched   bool                    `json:"fetched"`
	FetchedAt *time.Time              `json:"fetchedAt,omitempty"`
}

// ToggleResult результат переключения слота
type ToggleResult struct {
	Date        string `json:"date"`
	SlotID      string `json:"slotId"`
	Message     string `json:"message,omitempty"`
	IsActive    bool   `json:"isActive"`
	DayIsActive bool   `json:"dayIsActive"`
	// Applied false, если слота нет в кэше или ответ устарел
	Applied bool `json:"applied"`
}
