package get_available_slots

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение слотов каталога на дату
type Request struct {
	Session   domain.Session // Сессия вызывающего
	StylistID string         // ID стилиста
	Date      string         // Дата (YYYY-MM-DD)
}

// Response модель ответа со слотами каталога, сгруппированными по периодам
type Response struct {
	StylistID string
	Date      string
	Mode      domain.DayMode // Режим дня в черновике
	// PersistedLoaded false, если сохраненное расписание неизвестно и флаги Persisted не проверены
	PersistedLoaded bool
	Periods         []Period
}

// Period период каталога (Morning, Afternoon, Evening)
type Period struct {
	Name  string
	Slots []Slot
}

// Slot слот каталога с признаками доступности
type Slot struct {
	From      types.TimeString
	Till      types.TimeString
	Selected  bool // Слот выбран в черновике
	Elapsed   bool // Время начала уже прошло
	Persisted bool // Слот уже сохранен на платформе
	Available bool // Слот можно переключить
}
