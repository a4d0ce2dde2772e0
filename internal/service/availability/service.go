package availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/platform"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

// Service сервис согласования расписания стилиста с платформой:
// отправка черновиков, получение сохраненного расписания, переключение и удаление слотов.
// Каждая операция - ровно один запрос к платформе, без повторов.
type Service struct {
	drafts       DraftRepository
	platform     PlatformClient
	cache        *persistedCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	drafts DraftRepository,
	platformClient PlatformClient,
	logger Logger,
) *Service {
	return &Service{
		drafts:       drafts,
		platform:     platformClient,
		cache:        newPersistedCache(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Save отправляет все черновики стилиста, которые можно отправить.
//
// Если отправлять нечего, возвращает ErrNoValidData без запроса к платформе.
// После успешного сохранения очищает отправленные черновики (только если они не
// изменились за время запроса) и заново получает расписание. При ошибке платформы
// черновики не трогаются.
func (s *Service) Save(ctx context.Context, session domain.Session, stylistID string) (*models.SaveResult, error) {
	s.logger.Info("Save: saving availability for stylist=%s by stylist=%s", stylistID, session.StylistID)

	if strings.TrimSpace(stylistID) == "" {
		return nil, fmt.Errorf("%w: stylistID is required", ErrInvalidInput)
	}

	// 1. Снимок черновиков вместе с версиями
	records, err := s.drafts.List(ctx, stylistID)
	if err != nil {
		s.logger.Error("Save: failed to list drafts for stylist=%s: %v", stylistID, err)
		return nil, fmt.Errorf("%w: failed to list drafts: %v", ErrInternal, err)
	}

	set := make(domain.DraftSet, len(records))
	versions := make(map[string]int64, len(records))
	for i := range records {
		set[records[i].Date] = &records[i].Draft
		versions[records[i].Date] = records[i].Version
	}

	// 2. Строим payload
	payload := BuildPayload(set)
	if len(payload) == 0 {
		s.logger.Warn("Save: no valid drafts for stylist=%s (%d drafts)", stylistID, len(records))
		return nil, newError(KindNoValidData, nil)
	}

	// 3. Отправляем
	if err := s.platform.SetAvailability(ctx, session.Token, stylistID, payload); err != nil {
		s.logger.Error("Save: platform rejected availability for stylist=%s: %v", stylistID, err)
		return nil, newError(KindSaveFailed, err)
	}

	result := &models.SaveResult{
		StylistID:    stylistID,
		Saved:        payload,
		ClearedDates: make([]string, 0, len(payload)),
	}

	// 4. Очищаем отправленные черновики
	for _, entry := range payload {
		cleared, err := s.drafts.ClearIfVersion(ctx, stylistID, entry.Date, versions[entry.Date])
		if err != nil {
			s.logger.Error("Save: failed to clear draft stylist=%s date=%s: %v", stylistID, entry.Date, err)
			continue
		}
		if !cleared {
			s.logger.Info("Save: draft stylist=%s date=%s changed during save, kept", stylistID, entry.Date)
			continue
		}
		result.ClearedDates = append(result.ClearedDates, entry.Date)
	}

	// 5. Обновляем кэш. Платформа отдает расписание владельца токена.
	if session.StylistID == stylistID {
		if _, err := s.FetchAll(ctx, session); err != nil {
			s.logger.Warn("Save: refetch after save failed for stylist=%s: %v", stylistID, err)
		} else {
			result.Refreshed = true
		}
	}

	s.logger.Info("Save: saved %d dates for stylist=%s, cleared %d drafts",
		len(payload), stylistID, len(result.ClearedDates))
	return result, nil
}

// FetchAll получает сохраненное расписание владельца токена и обновляет кэш.
// При ошибке кэш не меняется.
func (s *Service) FetchAll(ctx context.Context, session domain.Session) ([]domain.PersistedEntry, error) {
	seq := s.cache.beginFetch(session.StylistID)

	entries, err := s.platform.GetAvailability(ctx, session.Token)
	if err != nil {
		s.logger.Error("FetchAll: failed to fetch availability for stylist=%s: %v", session.StylistID, err)
		return nil, newError(KindFetchFailed, err)
	}

	if !s.cache.applyFetch(session.StylistID, seq, entries, s.timeProvider.Now()) {
		s.logger.Info("FetchAll: stale response #%d for stylist=%s discarded", seq, session.StylistID)
		current, _, _ := s.cache.snapshot(session.StylistID)
		return current, nil
	}

	s.logger.Info("FetchAll: fetched %d dates for stylist=%s", len(entries), session.StylistID)
	return cloneEntries(entries), nil
}

// Cached возвращает последний успешно полученный список стилиста
func (s *Service) Cached(stylistID string) *models.CachedAvailability {
	entries, fetched, at := s.cache.snapshot(stylistID)
	result := &models.CachedAvailability{Entries: entries, Fetched: fetched}
	if fetched {
		result.FetchedAt = &at
	}
	return result
}

// Fetched сообщает, было ли расписание стилиста получено хотя бы один раз
func (s *Service) Fetched(stylistID string) bool {
	return s.cache.isFetched(stylistID)
}

// PersistedEntry возвращает сохраненную запись стилиста на дату из кэша
func (s *Service) PersistedEntry(stylistID, date string) (domain.PersistedEntry, bool) {
	return s.cache.entry(stylistID, date)
}

// ToggleSlot переключает активность слота на платформе и применяет к кэшу
// значения, которые вернула платформа (а не локальную инверсию).
func (s *Service) ToggleSlot(ctx context.Context, session domain.Session, stylistID, date, slotID string) (*models.ToggleResult, error) {
	s.logger.Info("ToggleSlot: stylist=%s date=%s slot=%s", stylistID, date, slotID)

	if err := domain.ValidateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(slotID) == "" {
		return nil, fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	ticket := s.cache.beginToggle(stylistID, date, slotID)

	res, err := s.platform.ToggleSlot(ctx, session.Token, platform.ToggleSlotRequest{
		StylistID: stylistID,
		Date:      date,
		SlotID:    slotID,
	})
	if err != nil {
		s.logger.Error("ToggleSlot: platform failed for stylist=%s date=%s slot=%s: %v", stylistID, date, slotID, err)
		return nil, newError(KindToggleFailed, err)
	}

	dayActive, applied := s.cache.applyToggle(stylistID, date, slotID, ticket, res.IsActive, res.DayIsActive)
	if !applied {
		s.logger.Info("ToggleSlot: result for stylist=%s date=%s slot=%s not applied to cache", stylistID, date, slotID)
	}

	return &models.ToggleResult{
		Date:        date,
		SlotID:      slotID,
		Message:     res.Message,
		IsActive:    res.IsActive,
		DayIsActive: dayActive,
		Applied:     applied,
	}, nil
}

// DeleteSlot удаляет слот (по значению from/till) и заново получает расписание
func (s *Service) DeleteSlot(ctx context.Context, session domain.Session, date string, slot domain.TimeSlot) error {
	s.logger.Info("DeleteSlot: stylist=%s date=%s slot=%s", session.StylistID, date, slot)

	if err := domain.ValidateDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := slot.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.platform.DeleteSlot(ctx, session.Token, date, slot); err != nil {
		s.logger.Error("DeleteSlot: platform failed for stylist=%s date=%s: %v", session.StylistID, date, err)
		return newError(KindDeleteFailed, err)
	}

	s.refetch(ctx, session, "DeleteSlot")
	return nil
}

// DeleteDay удаляет расписание на дату и заново получает расписание
func (s *Service) DeleteDay(ctx context.Context, session domain.Session, date string) error {
	s.logger.Info("DeleteDay: stylist=%s date=%s", session.StylistID, date)

	if err := domain.ValidateDate(date); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.platform.DeleteDay(ctx, session.Token, date); err != nil {
		s.logger.Error("DeleteDay: platform failed for stylist=%s date=%s: %v", session.StylistID, date, err)
		return newError(KindDeleteFailed, err)
	}

	s.refetch(ctx, session, "DeleteDay")
	return nil
}

// refetch обновляет кэш после изменения. Ошибка получения не отменяет уже выполненное изменение.
func (s *Service) refetch(ctx context.Context, session domain.Session, op string) {
	if _, err := s.FetchAll(ctx, session); err != nil {
		s.logger.Warn("%s: refetch failed for stylist=%s: %v", op, session.StylistID, err)
	}
}
