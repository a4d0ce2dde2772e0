package edit_draft

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/drafts"
)

// DraftRepository интерфейс хранилища черновиков
type DraftRepository interface {
	Update(ctx context.Context, stylistID, date string, fn drafts.MutateFunc) (domain.DraftRecord, bool, error)
}

// PersistedReader интерфейс для чтения сохраненного на платформе расписания из кэша
type PersistedReader interface {
	PersistedEntry(stylistID, date string) (domain.PersistedEntry, bool)
	// Fetched false, пока расписание стилиста ни разу не было получено
	Fetched(stylistID string) bool
	// FetchAll получает расписание владельца токена и заполняет кэш
	FetchAll(ctx context.Context, session domain.Session) ([]domain.PersistedEntry, error)
}

// Metrics интерфейс учета изменений черновиков
type Metrics interface {
	IncDraftMutation(action string, applied bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
