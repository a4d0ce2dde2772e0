package clear_draft

import "context"

type DraftService interface {
	Clear(ctx context.Context, stylistID, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
