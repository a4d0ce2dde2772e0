package list_drafts

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/drafts/models"
)

type DraftService interface {
	List(ctx context.Context, stylistID string) (*models.DraftListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
