package drafts

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func closeDay(d *domain.DayDraft) (bool, error) {
	return d.SetClosed(true), nil
}

func TestMemoryRepository_GetMissingReturnsEmpty(t *testing.T) {
	repo := NewMemoryRepository()

	rec, err := repo.Get(context.Background(), "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Version)
	assert.True(t, rec.Draft.IsEmpty())
}

func TestMemoryRepository_UpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	first, changed, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)
	require.True(t, changed)
	assert.True(t, first.Draft.IsClosed)

	// Повторное закрытие ничего не меняет и не двигает версию
	second, changed, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first.Version, second.Version)

	third, changed, err := repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
		return d.SetHoliday(true), nil
	})
	require.NoError(t, err)
	require.True(t, changed)
	assert.Greater(t, third.Version, first.Version)
}

func TestMemoryRepository_UpdateErrorKeepsDraft(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, _, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, changed, err := repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
		d.Clear()
		return true, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, changed)

	rec, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.True(t, rec.Draft.IsClosed)
}

func TestMemoryRepository_ListIsSortedAndIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for _, date := range []string{"2025-01-12", "2025-01-10", "2025-01-11"} {
		_, _, err := repo.Update(ctx, "st-1", date, closeDay)
		require.NoError(t, err)
	}
	_, _, err := repo.Update(ctx, "st-2", "2025-01-10", closeDay)
	require.NoError(t, err)

	list, err := repo.List(ctx, "st-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-01-10", list[0].Date)
	assert.Equal(t, "2025-01-12", list[2].Date)

	// Изменение копии не влияет на хранилище
	list[0].Draft.Slots = append(list[0].Draft.Slots, domain.TimeSlot{From: "09:00", Till: "10:00"})
	rec, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.Empty(t, rec.Draft.Slots)
}

func TestMemoryRepository_ClearIfVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	saved, _, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)

	// Черновик изменился после снимка: очищать нельзя
	_, _, err = repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
		return d.SetHoliday(true), nil
	})
	require.NoError(t, err)

	cleared, err := repo.ClearIfVersion(ctx, "st-1", "2025-01-10", saved.Version)
	require.NoError(t, err)
	assert.False(t, cleared)

	current, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)

	cleared, err = repo.ClearIfVersion(ctx, "st-1", "2025-01-10", current.Version)
	require.NoError(t, err)
	assert.True(t, cleared)

	list, err := repo.List(ctx, "st-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryRepository_ConcurrentToggles(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	slots := domain.CatalogSlots()

	var wg sync.WaitGroup
	for _, slot := range slots {
		wg.Add(1)
		go func(slot domain.TimeSlot) {
			defer wg.Done()
			_, _, err := repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
				return d.ToggleCatalogSlot(slot), nil
			})
			assert.NoError(t, err)
		}(slot)
	}
	wg.Wait()

	rec, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.ElementsMatch(t, slots, rec.Draft.Slots)
	assert.Equal(t, int64(len(slots)), rec.Version)
}
