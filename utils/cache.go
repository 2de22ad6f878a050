// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"schedula/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client, used for availability caching.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InvalidateAvailability drops every cached availability entry for the
// provider. Called by any write that can change what the read path would
// compute. Nil-safe; invalidation failures are logged, not propagated.
func InvalidateAvailability(ctx context.Context, client *redis.Client, providerID string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, AvailabilityCachePrefix+providerID+":*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
