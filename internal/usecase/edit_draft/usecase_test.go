package edit_draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/drafts"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakePersisted map[string]domain.PersistedEntry

func (f fakePersisted) PersistedEntry(_ string, date string) (domain.PersistedEntry, bool) {
	e, ok := f[date]
	return e, ok
}

func (f fakePersisted) Fetched(string) bool { return true }

func (f fakePersisted) FetchAll(context.Context, domain.Session) ([]domain.PersistedEntry, error) {
	return nil, nil
}

// lazyPersisted кэш, который пуст, пока не вызван FetchAll
type lazyPersisted struct {
	remote     []domain.PersistedEntry
	fetchErr   error
	loaded     map[string]domain.PersistedEntry
	fetchCalls int
}

func (l *lazyPersisted) Fetched(string) bool { return l.loaded != nil }

func (l *lazyPersisted) FetchAll(context.Context, domain.Session) ([]domain.PersistedEntry, error) {
	l.fetchCalls++
	if l.fetchErr != nil {
		return nil, l.fetchErr
	}
	l.loaded = make(map[string]domain.PersistedEntry, len(l.remote))
	for _, e := range l.remote {
		l.loaded[e.Date] = e
	}
	return l.remote, nil
}

func (l *lazyPersisted) PersistedEntry(_ string, date string) (domain.PersistedEntry, bool) {
	e, ok := l.loaded[date]
	return e, ok
}

type mutation struct {
	action  string
	applied bool
}

type fakeMetrics struct{ calls []mutation }

func (f *fakeMetrics) IncDraftMutation(action string, applied bool) {
	f.calls = append(f.calls, mutation{action, applied})
}

type failingRepo struct{}

func (failingRepo) Update(context.Context, string, string, drafts.MutateFunc) (domain.DraftRecord, bool, error) {
	return domain.DraftRecord{}, false, errors.New("connection reset")
}

// 2025-01-10 10:30 в Москве
var now = time.Date(2025, 1, 10, 7, 30, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, persisted fakePersisted) (*UseCase, *fakeMetrics) {
	t.Helper()
	loc := time.FixedZone("MSK", 3*60*60)

	m := &fakeMetrics{}
	uc := NewUseCase(drafts.NewMemoryRepository(), persisted, m, loc, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, m
}

func intPtr(v int) *int { return &v }

func TestEditDraft_ToggleSlot(t *testing.T) {
	uc, m := newTestUseCase(t, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.True(t, resp.Submittable)
	assert.Equal(t, domain.ModeRegular, resp.Mode)
	assert.Equal(t, []domain.TimeSlot{{From: "09:00", Till: "10:00"}}, resp.Slots)
	assert.Positive(t, resp.Version)

	resp, err = uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Empty(t, resp.Slots)
	assert.False(t, resp.Submittable)

	assert.Equal(t, []mutation{{"toggle_slot", true}, {"toggle_slot", true}}, m.calls)
}

func TestEditDraft_ToggleElapsedSlotIsRejected(t *testing.T) {
	uc, m := newTestUseCase(t, nil)

	// В Москве уже 10:30, слот 10:00 начался, хотя по UTC еще нет
	_, err := uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-10", Action: domain.ActionToggleSlot, From: "10:00", Till: "11:00",
	})
	assert.ErrorIs(t, err, ErrSlotElapsed)

	resp, err := uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-10", Action: domain.ActionToggleSlot, From: "11:00", Till: "12:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)

	assert.Equal(t, []mutation{{"toggle_slot", false}, {"toggle_slot", true}}, m.calls)
}

func TestEditDraft_ToggleSavedSlotIsRejected(t *testing.T) {
	uc, _ := newTestUseCase(t, fakePersisted{
		"2025-01-11": {
			Date:  "2025-01-11",
			Slots: []domain.PersistedSlot{{ID: "a", TimeSlot: domain.TimeSlot{From: "12:00", Till: "13:00"}, IsActive: true}},
		},
	})

	_, err := uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "12:00", Till: "13:00",
	})
	assert.ErrorIs(t, err, ErrSlotAlreadySaved)

	_, err = uc.Execute(context.Background(), &Request{
		StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "13:00", Till: "14:00",
	})
	assert.NoError(t, err)
}

func TestEditDraft_ModeMismatchIsNoOp(t *testing.T) {
	uc, m := newTestUseCase(t, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionClose})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{
		StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, domain.ModeClosed, resp.Mode)
	assert.Empty(t, resp.Slots)

	resp, err = uc.Execute(ctx, &Request{
		StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionAddSlot, From: "20:00", Till: "21:00",
	})
	require.NoError(t, err)
	assert.False(t, resp.Changed)

	assert.Equal(t, mutation{"add_slot", false}, m.calls[len(m.calls)-1])
}

func TestEditDraft_HolidayFlow(t *testing.T) {
	uc, _ := newTestUseCase(t, nil)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionHolidayOn})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeHoliday, resp.Mode)
	assert.False(t, resp.Submittable)

	resp, err = uc.Execute(ctx, &Request{
		StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionAddSlot, From: "20:00", Till: "21:30",
	})
	require.NoError(t, err)
	assert.True(t, resp.Submittable)

	resp, err = uc.Execute(ctx, &Request{
		StylistID: "st-1", Date: "2025-01-12", Action: domain.ActionRemoveSlot, Index: intPtr(0),
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Empty(t, resp.Slots)
}

func TestEditDraft_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty stylist", Request{Date: "2025-01-11", Action: domain.ActionClose}},
		{"bad date", Request{StylistID: "st-1", Date: "11/01/2025", Action: domain.ActionClose}},
		{"unknown action", Request{StylistID: "st-1", Date: "2025-01-11", Action: "explode"}},
		{"bad slot", Request{StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionAddSlot, From: "10:00", Till: "09:00"}},
		{"not a catalog slot", Request{StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:30", Till: "10:30"}},
		{"missing index", Request{StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionRemoveSlot}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t, nil)
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestEditDraft_RepositoryError(t *testing.T) {
	uc := NewUseCase(failingRepo{}, fakePersisted{}, &fakeMetrics{}, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionClose})
	assert.ErrorIs(t, err, ErrInternal)
}

var owner = domain.Session{StylistID: "st-1", Role: domain.RoleVendor, Token: "tok"}

func newLazyUseCase(t *testing.T, persisted *lazyPersisted) (*UseCase, *drafts.MemoryRepository) {
	t.Helper()
	repo := drafts.NewMemoryRepository()
	uc := NewUseCase(repo, persisted, &fakeMetrics{}, time.FixedZone("MSK", 3*60*60), logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, repo
}

func TestEditDraft_EmptyCacheIsLoadedBeforeEligibilityCheck(t *testing.T) {
	persisted := &lazyPersisted{remote: []domain.PersistedEntry{{
		Date:  "2025-01-11",
		Slots: []domain.PersistedSlot{{ID: "p1", TimeSlot: domain.TimeSlot{From: "09:00", Till: "10:00"}, IsActive: true}},
	}}}
	uc, repo := newLazyUseCase(t, persisted)

	_, err := uc.Execute(context.Background(), &Request{
		Session: owner, StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.ErrorIs(t, err, ErrSlotAlreadySaved)
	assert.Equal(t, 1, persisted.fetchCalls)

	rec, err := repo.Get(context.Background(), "st-1", "2025-01-11")
	require.NoError(t, err)
	assert.Empty(t, rec.Draft.Slots)

	// Кэш заполнен, повторного запроса нет
	_, err = uc.Execute(context.Background(), &Request{
		Session: owner, StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "10:00", Till: "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, persisted.fetchCalls)
}

func TestEditDraft_EmptyCacheFetchFailureRejectsToggle(t *testing.T) {
	persisted := &lazyPersisted{fetchErr: errors.New("platform down")}
	uc, repo := newLazyUseCase(t, persisted)

	_, err := uc.Execute(context.Background(), &Request{
		Session: owner, StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.ErrorIs(t, err, ErrPersistedUnavailable)

	rec, err := repo.Get(context.Background(), "st-1", "2025-01-11")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Version)
}

func TestEditDraft_EmptyCacheNotFetchedForOtherActions(t *testing.T) {
	persisted := &lazyPersisted{fetchErr: errors.New("platform down")}
	uc, _ := newLazyUseCase(t, persisted)

	resp, err := uc.Execute(context.Background(), &Request{
		Session: owner, StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionClose,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
	assert.Equal(t, 0, persisted.fetchCalls)
}

func TestEditDraft_AdminCannotLoadAnotherStylistSchedule(t *testing.T) {
	persisted := &lazyPersisted{}
	uc, _ := newLazyUseCase(t, persisted)
	admin := domain.Session{StylistID: "adm-1", Role: domain.RoleAdmin, Token: "admin-tok"}

	resp, err := uc.Execute(context.Background(), &Request{
		Session: admin, StylistID: "st-1", Date: "2025-01-11", Action: domain.ActionToggleSlot, From: "09:00", Till: "10:00",
	})
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, 0, persisted.fetchCalls)
}
