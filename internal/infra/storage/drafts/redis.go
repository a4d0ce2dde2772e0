package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	redisKeyPrefix  = "availability:drafts:"
	redisVersionKey = "availability:drafts:version"

	// redisMaxAttempts сколько раз повторяется WATCH-транзакция при конкурентной записи
	redisMaxAttempts = 10
)

// RedisRepository хранит черновики в Redis: один hash на стилиста, поле - дата, значение - JSON.
// Изменения выполняются оптимистичными транзакциями WATCH/MULTI по ключу стилиста.
type RedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRepository создает хранилище черновиков поверх клиента Redis
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{
		client: client,
		now:    time.Now,
	}
}

type redisRecord struct {
	Draft     domain.DayDraft `json:"draft"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func draftsKey(stylistID string) string {
	return redisKeyPrefix + stylistID
}

// List возвращает все черновики стилиста, отсортированные по дате
func (r *RedisRepository) List(ctx context.Context, stylistID string) ([]domain.DraftRecord, error) {
	fields, err := r.client.HGetAll(ctx, draftsKey(stylistID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: List - hgetall: %v", ErrRedisCommand, err)
	}

	dates := make([]string, 0, len(fields))
	for date := range fields {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]domain.DraftRecord, 0, len(fields))
	for _, date := range dates {
		rec, err := decodeRedisRecord(stylistID, date, fields[date])
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, nil
}

// Get возвращает черновик на дату. Если черновика нет, возвращается пустой с версией 0.
func (r *RedisRepository) Get(ctx context.Context, stylistID, date string) (domain.DraftRecord, error) {
	return r.get(ctx, r.client, stylistID, date)
}

// Update атомарно применяет fn к черновику на дату
func (r *RedisRepository) Update(ctx context.Context, stylistID, date string, fn MutateFunc) (domain.DraftRecord, bool, error) {
	key := draftsKey(stylistID)

	for attempt := 0; attempt < redisMaxAttempts; attempt++ {
		var (
			result  domain.DraftRecord
			changed bool
			fnErr   error
		)

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := r.get(ctx, tx, stylistID, date)
			if err != nil {
				return err
			}

			draft := current.Draft.Clone()
			changed, fnErr = fn(draft)
			if fnErr != nil || !changed {
				result = current
				return nil
			}

			version, err := r.client.Incr(ctx, redisVersionKey).Result()
			if err != nil {
				return fmt.Errorf("%w: Update - incr version: %v", ErrRedisCommand, err)
			}

			updated := domain.DraftRecord{
				StylistID: stylistID,
				Date:      date,
				Draft:     *draft,
				Version:   version,
				UpdatedAt: r.now().UTC(),
			}
			data, err := json.Marshal(redisRecord{
				Draft:     updated.Draft,
				Version:   updated.Version,
				UpdatedAt: updated.UpdatedAt,
			})
			if err != nil {
				return fmt.Errorf("%w: Update: %v", ErrEncode, err)
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HSet(ctx, key, date, data)
				return nil
			})
			if err != nil {
				return err
			}

			result = updated
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return domain.DraftRecord{}, false, wrapRedisErr("Update", err)
		}
		if fnErr != nil {
			return result, false, fnErr
		}
		return result, changed, nil
	}

	return domain.DraftRecord{}, false, fmt.Errorf("%w: Update stylist=%s date=%s", ErrConflict, stylistID, date)
}

// Clear удаляет черновик на дату
func (r *RedisRepository) Clear(ctx context.Context, stylistID, date string) error {
	if err := r.client.HDel(ctx, draftsKey(stylistID), date).Err(); err != nil {
		return fmt.Errorf("%w: Clear - hdel: %v", ErrRedisCommand, err)
	}
	return nil
}

// ClearIfVersion удаляет черновик, только если его версия не изменилась
func (r *RedisRepository) ClearIfVersion(ctx context.Context, stylistID, date string, version int64) (bool, error) {
	key := draftsKey(stylistID)

	for attempt := 0; attempt < redisMaxAttempts; attempt++ {
		var cleared bool

		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := r.get(ctx, tx, stylistID, date)
			if err != nil {
				return err
			}
			if current.Version == 0 || current.Version != version {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.HDel(ctx, key, date)
				return nil
			})
			if err != nil {
				return err
			}
			cleared = true
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return false, wrapRedisErr("ClearIfVersion", err)
		}
		return cleared, nil
	}

	return false, fmt.Errorf("%w: ClearIfVersion stylist=%s date=%s", ErrConflict, stylistID, date)
}

// hashReader реализуется *redis.Client и *redis.Tx
type hashReader interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
}

func (r *RedisRepository) get(ctx context.Context, cmd hashReader, stylistID, date string) (domain.DraftRecord, error) {
	raw, err := cmd.HGet(ctx, draftsKey(stylistID), date).Result()
	if errors.Is(err, redis.Nil) {
		return emptyRecord(stylistID, date), nil
	}
	if err != nil {
		return domain.DraftRecord{}, fmt.Errorf("%w: Get - hget: %v", ErrRedisCommand, err)
	}
	return decodeRedisRecord(stylistID, date, raw)
}

func decodeRedisRecord(stylistID, date, raw string) (domain.DraftRecord, error) {
	var stored redisRecord
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return domain.DraftRecord{}, fmt.Errorf("%w: stylist=%s date=%s: %v", ErrDecode, stylistID, date, err)
	}
	if stored.Draft.Slots == nil {
		stored.Draft.Slots = []domain.TimeSlot{}
	}
	return domain.DraftRecord{
		StylistID: stylistID,
		Date:      date,
		Draft:     stored.Draft,
		Version:   stored.Version,
		UpdatedAt: stored.UpdatedAt,
	}, nil
}

// wrapRedisErr оставляет ошибки репозитория как есть, остальные помечает ErrRedisCommand
func wrapRedisErr(op string, err error) error {
	if errors.Is(err, ErrRedisCommand) || errors.Is(err, ErrEncode) || errors.Is(err, ErrDecode) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrRedisCommand, op, err)
}
