package availability

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// persistedCache последнее успешно полученное расписание каждого стилиста.
//
// Целиком перезаписывается только результатом FetchAll. Единственная точечная
// правка - результат переключения слота. Каждый запрос получает номер; устаревшие
// ответы (выданные раньше уже примененных) отбрасываются.
type persistedCache struct {
	mu       sync.Mutex
	stylists map[string]*stylistCache
}

type stylistCache struct {
	entries   []domain.PersistedEntry
	fetched   bool
	fetchedAt time.Time

	issuedFetch uint64
	// fetch-ответы с номером меньше minFetch устарели
	minFetch uint64

	toggleSeq map[string]uint64 // date -> последний выданный номер переключения на дату
	slotSeq   map[string]uint64 // date/slotID -> последний выданный номер переключения слота
}

// toggleTicket номера переключения: по дате (для флага дня) и по слоту (для значения слота)
type toggleTicket struct {
	day  uint64
	slot uint64
}

func slotKey(date, slotID string) string {
	return date + "/" + slotID
}

func newPersistedCache() *persistedCache {
	return &persistedCache{stylists: make(map[string]*stylistCache)}
}

func (c *persistedCache) stylist(stylistID string) *stylistCache {
	sc, ok := c.stylists[stylistID]
	if !ok {
		sc = &stylistCache{
			toggleSeq: make(map[string]uint64),
			slotSeq:   make(map[string]uint64),
		}
		c.stylists[stylistID] = sc
	}
	return sc
}

func (c *persistedCache) beginFetch(stylistID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc := c.stylist(stylistID)
	sc.issuedFetch++
	return sc.issuedFetch
}

// applyFetch заменяет список целиком, если ответ не устарел
func (c *persistedCache) applyFetch(stylistID string, seq uint64, entries []domain.PersistedEntry, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc := c.stylist(stylistID)
	if seq < sc.minFetch {
		return false
	}

	sc.entries = cloneEntries(entries)
	sc.fetched = true
	sc.fetchedAt = at
	sc.minFetch = seq + 1
	return true
}

func (c *persistedCache) beginToggle(stylistID, date, slotID string) toggleTicket {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc := c.stylist(stylistID)
	key := slotKey(date, slotID)
	sc.toggleSeq[date]++
	sc.slotSeq[key]++
	return toggleTicket{day: sc.toggleSeq[date], slot: sc.slotSeq[key]}
}

// applyToggle применяет значения платформы к слоту (по id) и ко дню.
// Значение слота отбрасывается, только если после него был выдан новый запрос на тот же слот.
// Флаг дня применяется, только если на эту дату не было более нового переключения;
// если платформа его не прислала, он пересчитывается по всем слотам дня.
// Возвращает итоговый флаг дня и признак того, что кэш был изменен.
func (c *persistedCache) applyToggle(stylistID, date, slotID string, ticket toggleTicket, slotActive bool, dayActive *bool) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc := c.stylist(stylistID)
	if sc.slotSeq[slotKey(date, slotID)] != ticket.slot {
		return derefOr(dayActive, false), false
	}

	for i := range sc.entries {
		entry := &sc.entries[i]
		if entry.Date != date {
			continue
		}
		slot := entry.FindSlot(slotID)
		if slot == nil {
			return derefOr(dayActive, false), false
		}

		slot.IsActive = slotActive
		if sc.toggleSeq[date] == ticket.day {
			if dayActive != nil {
				entry.IsActive = *dayActive
			} else {
				entry.IsActive = entry.AnySlotActive()
			}
		}

		// fetch-запросы, выданные до этого момента, не должны затереть правку
		sc.minFetch = sc.issuedFetch + 1
		return entry.IsActive, true
	}

	return derefOr(dayActive, false), false
}

func (c *persistedCache) isFetched(stylistID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc, ok := c.stylists[stylistID]
	return ok && sc.fetched
}

func (c *persistedCache) snapshot(stylistID string) ([]domain.PersistedEntry, bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc, ok := c.stylists[stylistID]
	if !ok || !sc.fetched {
		return []domain.PersistedEntry{}, false, time.Time{}
	}
	return cloneEntries(sc.entries), true, sc.fetchedAt
}

func (c *persistedCache) entry(stylistID, date string) (domain.PersistedEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sc, ok := c.stylists[stylistID]
	if !ok {
		return domain.PersistedEntry{}, false
	}
	for _, e := range sc.entries {
		if e.Date == date {
			return e.Clone(), true
		}
	}
	return domain.PersistedEntry{}, false
}

func cloneEntries(entries []domain.PersistedEntry) []domain.PersistedEntry {
	out := make([]domain.PersistedEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

func derefOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
