package drafts

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DraftRepository интерфейс хранилища черновиков
type DraftRepository interface {
	List(ctx context.Context, stylistID string) ([]domain.DraftRecord, error)
	Clear(ctx context.Context, stylistID, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
