package drafts

import (
	"context"
	"database/sql"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DB интерфейс подключения к PostgreSQL. Реализуется *sql.DB.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// MutateFunc изменяет черновик на месте и сообщает, был ли он изменен.
// Если функция вернула false или ошибку, черновик не сохраняется.
type MutateFunc func(draft *domain.DayDraft) (bool, error)
