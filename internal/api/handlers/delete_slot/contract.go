package delete_slot

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type AvailabilityService interface {
	DeleteSlot(ctx context.Context, session domain.Session, date string, slot domain.TimeSlot) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
