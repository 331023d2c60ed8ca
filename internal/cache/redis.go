package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedis shares cached tables between every process of a deployment.
// Redis failures degrade to cache misses.
func NewRedis(client *redis.Client, ttl time.Duration, log *zap.Logger) SliceTableCache {
	if ttl <= 0 {
		ttl = defaultTableTTL
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
		log:    log.Named("cache.redis"),
	}
}

func (c *redisCache) Get(ctx context.Context, areaID int64) (Table, bool) {
	raw, err := c.client.Get(ctx, tableKey(areaID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("get failed", zap.Int64("area_id", areaID), zap.Error(err))
		}
		return Table{}, false
	}

	var table Table
	if err := json.Unmarshal(raw, &table); err != nil {
		c.log.Warn("decode failed", zap.Int64("area_id", areaID), zap.Error(err))
		return Table{}, false
	}
	return table, true
}

func (c *redisCache) Set(ctx context.Context, areaID int64, table Table) {
	raw, err := json.Marshal(table)
	if err != nil {
		c.log.Warn("encode failed", zap.Int64("area_id", areaID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, tableKey(areaID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("set failed", zap.Int64("area_id", areaID), zap.Error(err))
	}
}

func (c *redisCache) Invalidate(ctx context.Context, areaID int64) {
	if err := c.client.Del(ctx, tableKey(areaID)).Err(); err != nil {
		c.log.Warn("invalidate failed", zap.Int64("area_id", areaID), zap.Error(err))
	}
}
