package update_draft

import (
	"context"

	editDraft "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_draft"
)

type EditDraftUseCase interface {
	Execute(ctx context.Context, req *editDraft.Request) (*editDraft.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
