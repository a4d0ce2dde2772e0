package get_availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

type AvailabilityService interface {
	FetchAll(ctx context.Context, session domain.Session) ([]domain.PersistedEntry, error)
	Cached(stylistID string) *models.CachedAvailability
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
