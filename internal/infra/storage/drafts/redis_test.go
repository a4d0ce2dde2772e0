package drafts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

func newRedisRepo(t *testing.T) (*RedisRepository, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client), client
}

func TestRedisRepository_GetMissingReturnsEmpty(t *testing.T) {
	repo, _ := newRedisRepo(t)

	rec, err := repo.Get(context.Background(), "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Version)
	assert.True(t, rec.Draft.IsEmpty())
}

func TestRedisRepository_UpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	first, changed, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)
	require.True(t, changed)
	assert.True(t, first.Draft.IsClosed)
	assert.Equal(t, int64(1), first.Version)

	second, changed, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, first.Version, second.Version)

	stored, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.True(t, stored.Draft.IsClosed)
	assert.Equal(t, first.Version, stored.Version)
}

func TestRedisRepository_UpdateErrorKeepsDraft(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	_, _, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, changed, err := repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
		d.Clear()
		return true, boom
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, changed)

	stored, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.True(t, stored.Draft.IsClosed)
}

func TestRedisRepository_ListSortedByDate(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	for _, date := range []string{"2025-01-12", "2025-01-10", "2025-01-11"} {
		_, _, err := repo.Update(ctx, "st-1", date, closeDay)
		require.NoError(t, err)
	}
	_, _, err := repo.Update(ctx, "st-2", "2025-01-09", closeDay)
	require.NoError(t, err)

	list, err := repo.List(ctx, "st-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2025-01-10", list[0].Date)
	assert.Equal(t, "2025-01-11", list[1].Date)
	assert.Equal(t, "2025-01-12", list[2].Date)
	for _, rec := range list {
		assert.Equal(t, "st-1", rec.StylistID)
	}
}

func TestRedisRepository_ClearIfVersion(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	snapshot, _, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)

	// Черновик изменился после снимка
	_, _, err = repo.Update(ctx, "st-1", "2025-01-10", func(d *domain.DayDraft) (bool, error) {
		return d.SetHoliday(true), nil
	})
	require.NoError(t, err)

	cleared, err := repo.ClearIfVersion(ctx, "st-1", "2025-01-10", snapshot.Version)
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

func TestRedisRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	_, _, err := repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.NoError(t, err)
	require.NoError(t, repo.Clear(ctx, "st-1", "2025-01-10"))
	require.NoError(t, repo.Clear(ctx, "st-1", "2025-01-10"))

	rec, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Version)
}

func TestRedisRepository_CorruptedRecord(t *testing.T) {
	ctx := context.Background()
	repo, client := newRedisRepo(t)

	require.NoError(t, client.HSet(ctx, draftsKey("st-1"), "2025-01-10", "not json").Err())

	_, err := repo.Get(ctx, "st-1", "2025-01-10")
	require.ErrorIs(t, err, ErrDecode)

	_, _, err = repo.Update(ctx, "st-1", "2025-01-10", closeDay)
	require.ErrorIs(t, err, ErrDecode)
}

func TestRedisRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRedisRepo(t)

	const days = 8
	var wg sync.WaitGroup
	errs := make(chan error, days)
	for i := 0; i < days; i++ {
		wg.Add(1)
		go func(day int) {
			defer wg.Done()
			_, _, err := repo.Update(ctx, "st-1", fmt.Sprintf("2025-01-%02d", day+10), closeDay)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, "st-1")
	require.NoError(t, err)
	require.Len(t, list, days)

	versions := make(map[int64]struct{}, days)
	for _, rec := range list {
		assert.True(t, rec.Draft.IsClosed)
		versions[rec.Version] = struct{}{}
	}
	assert.Len(t, versions, days)
}
