package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clinic-directory/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

const (
	// ClinicListKey holds the unfiltered clinic list.
	ClinicListKey = "clinics:all"
	// ClinicGenerationKey is bumped by every Invalidate.
	ClinicGenerationKey = "clinics:generation"
)

// ErrGenerationChanged is returned by SetAll when the cache was invalidated
// after the list was read from the database. Nothing is stored.
var ErrGenerationChanged = errors.New("clinic cache invalidated since read")

// setIfGeneration stores the list only while the generation is unchanged.
// KEYS: list, generation. ARGV: expected generation, payload, ttl in ms.
var setIfGeneration = redis.NewScript(`
if (redis.call("GET", KEYS[2]) or "0") ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[1], ARGV[2])
end
return 1
`)

// ClinicCache stores the unfiltered clinic list. Filtered queries always go to
// the database.
//
// Writers read Generation before loading from the database and pass it to
// SetAll, so a load that raced with a create never re-caches the old list.
type ClinicCache interface {
	GetAll(ctx context.Context) ([]entity.Clinic, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetAll(ctx context.Context, generation int64, clinics []entity.Clinic) error
	Invalidate(ctx context.Context) error
}

type redisClinicCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewClinicCache(client redis.Cmdable, ttl time.Duration) ClinicCache {
	return &redisClinicCache{client: client, ttl: ttl}
}

// GetAll reports false on a cache miss.
func (c *redisClinicCache) GetAll(ctx context.Context) ([]entity.Clinic, bool, error) {
	raw, err := c.client.Get(ctx, ClinicListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", ClinicListKey, err)
	}

	var clinics []entity.Clinic
	if err := json.Unmarshal(raw, &clinics); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", ClinicListKey, err)
	}
	return clinics, true, nil
}

// Generation is 0 until the first Invalidate.
func (c *redisClinicCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, ClinicGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", ClinicGenerationKey, err)
	}
	return gen, nil
}

func (c *redisClinicCache) SetAll(ctx context.Context, generation int64, clinics []entity.Clinic) error {
	if clinics == nil {
		clinics = []entity.Clinic{}
	}
	raw, err := json.Marshal(clinics)
	if err != nil {
		return fmt.Errorf("encode %s: %w", ClinicListKey, err)
	}

	keys := []string{ClinicListKey, ClinicGenerationKey}
	stored, err := setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(generation, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("set %s: %w", ClinicListKey, err)
	}
	if stored == 0 {
		return ErrGenerationChanged
	}
	return nil
}

// Invalidate advances the generation before dropping the list.
func (c *redisClinicCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, ClinicGenerationKey).Err(); err != nil {
		return fmt.Errorf("incr %s: %w", ClinicGenerationKey, err)
	}
	if err := c.client.Del(ctx, ClinicListKey).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", ClinicListKey, err)
	}
	return nil
}
