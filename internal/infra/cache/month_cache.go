package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MonthCache memoizes monthly availability scans in Redis. The engine
// itself stays stateless; this wraps it from the outside. Invalidation
// bumps a per-provider version counter instead of scanning keys, so
// stale entries just age out via TTL.
type MonthCache struct {
	rdb  *redis.Client
	ttl  time.Duration
	zlog *zap.Logger
}

func NewMonthCache(rdb *redis.Client, ttl time.Duration, zlog *zap.Logger) *MonthCache {
	return &MonthCache{
		rdb:  rdb,
		ttl:  ttl,
		zlog: zlog,
	}
}

func (c *MonthCache) versionKey(providerID uuid.UUID) string {
	return "avail:ver:" + providerID.String()
}

func (c *MonthCache) key(providerID uuid.UUID, version string, year, month, durationMin int) string {
	return fmt.Sprintf(
		"avail:month:%s:%s:%04d-%02d:%d",
		providerID, version, year, month, durationMin,
	)
}

func (c *MonthCache) currentVersion(ctx context.Context, providerID uuid.UUID) string {
	ver, err := c.rdb.Get(ctx, c.versionKey(providerID)).Result()
	if err != nil {
		return "0"
	}
	return ver
}

// Get returns the cached date list and whether it was present. Any
// Redis error is treated as a miss; availability must keep working
// with the cache down.
func (c *MonthCache) Get(
	ctx context.Context,
	providerID uuid.UUID,
	year, month, durationMin int,
) ([]string, bool) {

	ver := c.currentVersion(ctx, providerID)

	raw, err := c.rdb.Get(ctx, c.key(providerID, ver, year, month, durationMin)).Bytes()
	if err != nil {
		return nil, false
	}

	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		return nil, false
	}

	return dates, true
}

func (c *MonthCache) Set(
	ctx context.Context,
	providerID uuid.UUID,
	year, month, durationMin int,
	dates []string,
) {

	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}

	ver := c.currentVersion(ctx, providerID)

	if err := c.rdb.Set(ctx, c.key(providerID, ver, year, month, durationMin), raw, c.ttl).Err(); err != nil {
		c.zlog.Warn("month cache write failed",
			zap.String("provider_id", providerID.String()),
			zap.Error(err),
		)
	}
}

// Invalidate drops every cached month for a provider by bumping the
// version. Called after bookings, schedule edits and block changes.
func (c *MonthCache) Invalidate(ctx context.Context, providerID uuid.UUID) {
	if err := c.rdb.Incr(ctx, c.versionKey(providerID)).Err(); err != nil {
		c.zlog.Warn("month cache invalidation failed",
			zap.String("provider_id", providerID.String()),
			zap.Error(err),
		)
	}
}
