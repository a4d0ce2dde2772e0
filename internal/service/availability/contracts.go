package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/platform"
)

// DraftRepository интерфейс хранилища черновиков
type DraftRepository interface {
	List(ctx context.Context, stylistID string) ([]domain.DraftRecord, error)
	ClearIfVersion(ctx context.Context, stylistID, date string, version int64) (bool, error)
}

// PlatformClient интерфейс клиента API салонной платформы
type PlatformClient interface {
	GetAvailability(ctx context.Context, token string) ([]domain.PersistedEntry, error)
	SetAvailability(ctx context.Context, token, stylistID string, entries []domain.PayloadEntry) error
	ToggleSlot(ctx context.Context, token string, req platform.ToggleSlotRequest) (*platform.ToggleSlotResult, error)
	DeleteSlot(ctx context.Context, token, date string, slot domain.TimeSlot) error
	DeleteDay(ctx context.Context, token, date string) error
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
