package drafts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// MemoryRepository хранит черновики в памяти процесса.
// Все изменения сериализуются одним мьютексом.
type MemoryRepository struct {
	mu      sync.Mutex
	drafts  map[string]map[string]*domain.DraftRecord // stylistID -> date -> record
	version int64
	now     func() time.Time
}

// NewMemoryRepository создает пустое in-memory хранилище черновиков
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		drafts: make(map[string]map[string]*domain.DraftRecord),
		now:    time.Now,
	}
}

// List возвращает все черновики стилиста (копии), отсортированные по дате
func (r *MemoryRepository) List(_ context.Context, stylistID string) ([]domain.DraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byDate := r.drafts[stylistID]
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]domain.DraftRecord, 0, len(byDate))
	for _, date := range dates {
		result = append(result, copyRecord(byDate[date]))
	}
	return result, nil
}

// Get возвращает черновик на дату. Если черновика нет, возвращается пустой с версией 0.
func (r *MemoryRepository) Get(_ context.Context, stylistID, date string) (domain.DraftRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec, ok := r.drafts[stylistID][date]; ok {
		return copyRecord(rec), nil
	}
	return emptyRecord(stylistID, date), nil
}

// Update атомарно применяет fn к черновику на дату
func (r *MemoryRepository) Update(_ context.Context, stylistID, date string, fn MutateFunc) (domain.DraftRecord, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.drafts[stylistID][date]
	if !ok {
		rec := emptyRecord(stylistID, date)
		current = &rec
	}

	draft := current.Draft.Clone()
	changed, err := fn(draft)
	if err != nil {
		return copyRecord(current), false, err
	}
	if !changed {
		return copyRecord(current), false, nil
	}

	r.version++
	updated := &domain.DraftRecord{
		StylistID: stylistID,
		Date:      date,
		Draft:     *draft,
		Version:   r.version,
		UpdatedAt: r.now(),
	}

	if _, ok := r.drafts[stylistID]; !ok {
		r.drafts[stylistID] = make(map[string]*domain.DraftRecord)
	}
	r.drafts[stylistID][date] = updated

	return copyRecord(updated), true, nil
}

// Clear удаляет черновик на дату
func (r *MemoryRepository) Clear(_ context.Context, stylistID, date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts[stylistID], date)
	return nil
}

// ClearIfVersion удаляет черновик, только если его версия не изменилась
func (r *MemoryRepository) ClearIfVersion(_ context.Context, stylistID, date string, version int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.drafts[stylistID][date]
	if !ok || rec.Version != version {
		return false, nil
	}
	delete(r.drafts[stylistID], date)
	return true, nil
}

func emptyRecord(stylistID, date string) domain.DraftRecord {
	return domain.DraftRecord{
		StylistID: stylistID,
		Date:      date,
		Draft:     domain.DayDraft{Slots: []domain.TimeSlot{}},
	}
}

func copyRecord(rec *domain.DraftRecord) domain.DraftRecord {
	out := *rec
	out.Draft = *rec.Draft.Clone()
	return out
}
