package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/customdelivery/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("cache",
	fx.Provide(New),
)

// New picks the cache backend named by CACHE_DRIVER.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) SliceTableCache {
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		return NewMemory(cfg.Cache.TTL)
	case config.CacheDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return NewRedis(client, cfg.Cache.TTL, log)
	default:
		return NewNoop()
	}
}
