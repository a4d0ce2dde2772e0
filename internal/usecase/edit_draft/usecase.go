package edit_draft

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case для изменения черновика расписания на одну дату
type UseCase struct {
	draftRepo    DraftRepository
	persisted    PersistedReader
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location - часовой пояс, в котором проверяется, что слот еще не начался.
func NewUseCase(
	draftRepo DraftRepository,
	persisted PersistedReader,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		draftRepo:    draftRepo,
		persisted:    persisted,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения черновика.
// Действие, которое не подходит к режиму дня, ничего не меняет и не является ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("EditDraft: stylist=%s, date=%s, action=%s", req.StylistID, req.Date, req.Action)

	// 1. Валидация входных данных
	change, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("EditDraft: validation failed: %v", err)
		uc.metrics.IncDraftMutation(string(req.Action), false)
		return nil, err
	}

	// 2. Проверяем, что слот каталога можно выбрать
	if change.Action == domain.ActionToggleSlot {
		if err := uc.loadPersisted(ctx, req.Session, req.StylistID); err != nil {
			uc.logger.Error("EditDraft: %v", err)
			uc.metrics.IncDraftMutation(string(change.Action), false)
			return nil, err
		}
		if err := uc.checkSlot(req.StylistID, req.Date, change.Slot); err != nil {
			uc.logger.Warn("EditDraft: slot rejected: %v", err)
			uc.metrics.IncDraftMutation(string(change.Action), false)
			return nil, err
		}
	}

	// 3. Применяем изменение атомарно
	rec, changed, err := uc.draftRepo.Update(ctx, req.StylistID, req.Date, change.Apply)
	if err != nil {
		uc.logger.Error("EditDraft: failed to update draft stylist=%s date=%s: %v", req.StylistID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to update draft: %v", ErrInternal, err)
	}
	uc.metrics.IncDraftMutation(string(change.Action), changed)

	if !changed {
		uc.logger.Info("EditDraft: action=%s had no effect in mode=%s", change.Action, rec.Draft.Mode())
	} else {
		uc.logger.Info("EditDraft: draft stylist=%s date=%s updated to version=%d", req.StylistID, req.Date, rec.Version)
	}

	return newResponse(rec, changed), nil
}

// loadPersisted получает сохраненное расписание, если в кэше его еще нет.
// Платформа отдает расписание только владельцу токена, поэтому чужое расписание
// (запрос администратора) загрузить нельзя и проверка идет по тому, что есть в кэше.
func (uc *UseCase) loadPersisted(ctx context.Context, session domain.Session, stylistID string) error {
	if uc.persisted.Fetched(stylistID) {
		return nil
	}
	if session.StylistID != stylistID {
		uc.logger.Warn("EditDraft: persisted availability of stylist=%s is not loaded, caller=%s cannot fetch it",
			stylistID, session.StylistID)
		return nil
	}

	if _, err := uc.persisted.FetchAll(ctx, session); err != nil {
		return fmt.Errorf("%w: stylist=%s: %v", ErrPersistedUnavailable, stylistID, err)
	}
	return nil
}

// checkSlot проверяет, что слот еще не начался и не сохранен на платформе
func (uc *UseCase) checkSlot(stylistID, date string, slot domain.TimeSlot) error {
	now := uc.timeProvider.Now().In(uc.location)

	var persisted *domain.PersistedEntry
	if entry, ok := uc.persisted.PersistedEntry(stylistID, date); ok {
		persisted = &entry
	}

	eligibility, err := domain.CheckSlotEligibility(slot, date, now, persisted)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return checkEligibility(slot, date, eligibility)
}
