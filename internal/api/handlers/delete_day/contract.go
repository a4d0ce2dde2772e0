package delete_day

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

type AvailabilityService interface {
	DeleteDay(ctx context.Context, session domain.Session, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
