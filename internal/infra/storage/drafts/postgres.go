package drafts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const (
	tableDrafts     = "availability_drafts"
	nextVersionExpr = "nextval('availability_drafts_version_seq')"
)

// PostgresRepository хранит черновики в таблице availability_drafts.
// Версия берется из общей последовательности и никогда не переиспользуется.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository создает новый экземпляр репозитория черновиков
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List возвращает все черновики стилиста, отсортированные по дате
func (r *PostgresRepository) List(ctx context.Context, stylistID string) ([]domain.DraftRecord, error) {
	query, args, err := psqlbuilder.Select(
		"date",
		"slots",
		"is_closed",
		"is_holiday",
		"version",
		"updated_at",
	).
		From(tableDrafts).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		OrderBy("date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.DraftRecord, 0)
	for rows.Next() {
		rec := domain.DraftRecord{StylistID: stylistID}
		var slots []byte
		if err := rows.Scan(
			&rec.Date,
			&slots,
			&rec.Draft.IsClosed,
			&rec.Draft.IsHoliday,
			&rec.Version,
			&rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan draft: %v", ErrScanRow, err)
		}
		if rec.Draft.Slots, err = decodeSlots(slots); err != nil {
			return nil, fmt.Errorf("%w: List - decode slots: %v", ErrScanRow, err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// Get возвращает черновик на дату. Если строки нет, возвращается пустой черновик с версией 0.
func (r *PostgresRepository) Get(ctx context.Context, stylistID, date string) (domain.DraftRecord, error) {
	query, args, err := selectDraft(stylistID, date).ToSql()
	if err != nil {
		return domain.DraftRecord{}, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanDraft(r.db.QueryRowContext(ctx, query, args...), stylistID, date)
	if err == sql.ErrNoRows {
		return emptyRecord(stylistID, date), nil
	}
	if err != nil {
		return domain.DraftRecord{}, fmt.Errorf("%w: Get - scan draft: %v", ErrScanRow, err)
	}

	return rec, nil
}

// Update атомарно применяет fn к черновику на дату.
// Строка создается (если ее нет) и блокируется через SELECT ... FOR UPDATE на время изменения.
// Если fn ничего не изменил, транзакция откатывается и созданная строка не остается.
func (r *PostgresRepository) Update(ctx context.Context, stylistID, date string, fn MutateFunc) (result domain.DraftRecord, changed bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - begin: %v", ErrTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	insertQuery, insertArgs, err := psqlbuilder.Insert(tableDrafts).
		Columns("stylist_id", "date", "slots", "is_closed", "is_holiday", "version").
		Values(stylistID, date, "[]", false, false, squirrel.Expr(nextVersionExpr)).
		Suffix("ON CONFLICT (stylist_id, date) DO NOTHING").
		ToSql()
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - build insert query: %v", ErrBuildQuery, err)
	}
	insertRes, err := tx.ExecContext(ctx, insertQuery, insertArgs...)
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - ensure row: %v", ErrExecQuery, err)
	}
	inserted, err := insertRes.RowsAffected()
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}

	selectQuery, selectArgs, err := selectDraft(stylistID, date).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - build select query: %v", ErrBuildQuery, err)
	}
	current, err := scanDraft(tx.QueryRowContext(ctx, selectQuery, selectArgs...), stylistID, date)
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - scan draft: %v", ErrScanRow, err)
	}

	if inserted > 0 {
		// до этой транзакции черновика не было
		current = emptyRecord(stylistID, date)
	}

	draft := current.Draft.Clone()
	changed, err = fn(draft)
	if err != nil {
		return current, false, err
	}
	if !changed {
		if err = tx.Rollback(); err != nil {
			return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - rollback: %v", ErrTransaction, err)
		}
		return current, false, nil
	}

	slots, err := json.Marshal(draft.Slots)
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	updateQuery, updateArgs, err := psqlbuilder.Update(tableDrafts).
		Set("slots", string(slots)).
		Set("is_closed", draft.IsClosed).
		Set("is_holiday", draft.IsHoliday).
		Set("version", squirrel.Expr(nextVersionExpr)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(squirrel.Eq{"date": date}).
		Suffix("RETURNING version, updated_at").
		ToSql()
	if err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result = domain.DraftRecord{StylistID: stylistID, Date: date, Draft: *draft}
	if err = tx.QueryRowContext(ctx, updateQuery, updateArgs...).Scan(&result.Version, &result.UpdatedAt); err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return domain.DraftRecord{}, false, fmt.Errorf("%w: Update - commit: %v", ErrTransaction, err)
	}

	return result, true, nil
}

// Clear удаляет черновик на дату
func (r *PostgresRepository) Clear(ctx context.Context, stylistID, date string) error {
	query, args, err := psqlbuilder.Delete(tableDrafts).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Clear - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Clear - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

// ClearIfVersion удаляет черновик, только если его версия не изменилась
func (r *PostgresRepository) ClearIfVersion(ctx context.Context, stylistID, date string, version int64) (bool, error) {
	query, args, err := psqlbuilder.Delete(tableDrafts).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ClearIfVersion - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ClearIfVersion - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ClearIfVersion - rows affected: %v", ErrExecQuery, err)
	}
	return affected > 0, nil
}

func selectDraft(stylistID, date string) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"slots",
		"is_closed",
		"is_holiday",
		"version",
		"updated_at",
	).
		From(tableDrafts).
		Where(squirrel.Eq{"stylist_id": stylistID}).
		Where(squirrel.Eq{"date": date})
}

func scanDraft(row *sql.Row, stylistID, date string) (domain.DraftRecord, error) {
	rec := domain.DraftRecord{StylistID: stylistID, Date: date}
	var slots []byte
	if err := row.Scan(
		&slots,
		&rec.Draft.IsClosed,
		&rec.Draft.IsHoliday,
		&rec.Version,
		&rec.UpdatedAt,
	); err != nil {
		return domain.DraftRecord{}, err
	}

	decoded, err := decodeSlots(slots)
	if err != nil {
		return domain.DraftRecord{}, err
	}
	rec.Draft.Slots = decoded
	return rec, nil
}

func decodeSlots(raw []byte) ([]domain.TimeSlot, error) {
	slots := []domain.TimeSlot{}
	if len(raw) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
