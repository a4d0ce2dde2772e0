package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case для получения слотов каталога на дату с учетом черновика,
// текущего времени и уже сохраненного расписания
type UseCase struct {
	draftRepo    DraftRepository
	persisted    PersistedReader
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	draftRepo DraftRepository,
	persisted PersistedReader,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		draftRepo:    draftRepo,
		persisted:    persisted,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов каталога.
// Слоты не доступны для выбора, если день закрыт или переведен в режим выходного.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: stylist=%s, date=%s", req.StylistID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе салона
	now := uc.timeProvider.Now().In(uc.location)

	// 3. Получаем черновик на дату
	rec, err := uc.draftRepo.Get(ctx, req.StylistID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get draft stylist=%s date=%s: %v", req.StylistID, req.Date, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}
	mode := rec.Draft.Mode()

	// 4. Сохраненное расписание на дату (при необходимости получаем его с платформы)
	loaded := uc.loadPersisted(ctx, req.Session, req.StylistID)
	var persisted *domain.PersistedEntry
	if entry, ok := uc.persisted.PersistedEntry(req.StylistID, req.Date); ok {
		persisted = &entry
	}

	// 5. Проходим по каталогу
	periods := make([]Period, 0, len(domain.Catalog))
	available := 0
	for _, period := range domain.Catalog {
		slots := make([]Slot, 0, len(period.Slots))
		for _, catalogSlot := range period.Slots {
			eligibility, err := domain.CheckSlotEligibility(catalogSlot, req.Date, now, persisted)
			if err != nil {
				uc.logger.Error("GetAvailableSlots: failed to check slot %s: %v", catalogSlot, err)
				return nil, fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
			}

			slot := Slot{
				From:      catalogSlot.From,
				Till:      catalogSlot.Till,
				Selected:  domain.ContainsSlot(rec.Draft.Slots, catalogSlot),
				Elapsed:   eligibility.Elapsed,
				Persisted: eligibility.Persisted,
				Available: mode == domain.ModeRegular && eligibility.Eligible(),
			}
			if slot.Available {
				available++
			}
			slots = append(slots, slot)
		}
		periods = append(periods, Period{Name: period.Name, Slots: slots})
	}

	uc.logger.Info("GetAvailableSlots: %d catalog slots available for stylist=%s, date=%s, mode=%s",
		available, req.StylistID, req.Date, mode)

	return &Response{
		StylistID:       req.StylistID,
		Date:            req.Date,
		Mode:            mode,
		PersistedLoaded: loaded,
		Periods:         periods,
	}, nil
}

// loadPersisted получает сохраненное расписание, если в кэше его еще нет.
// Ошибка получения не мешает показать слоты: возвращается false.
func (uc *UseCase) loadPersisted(ctx context.Context, session domain.Session, stylistID string) bool {
	if uc.persisted.Fetched(stylistID) {
		return true
	}
	if session.StylistID != stylistID {
		uc.logger.Warn("GetAvailableSlots: persisted availability of stylist=%s is not loaded, caller=%s cannot fetch it",
			stylistID, session.StylistID)
		return false
	}

	if _, err := uc.persisted.FetchAll(ctx, session); err != nil {
		uc.logger.Warn("GetAvailableSlots: failed to fetch persisted availability for stylist=%s: %v", stylistID, err)
		return false
	}
	return true
}
