// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"clinicbook/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for authorization caching.
	AuthCacheClient *redis.Client
)

func connectRedis(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Caching is optional: callers treat a nil client as a permanent miss.
		GetLogger().Warn("Redis unavailable, running without "+name, zap.String("addr", config.AppConfig.RedisAddr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = connectRedis(config.AppConfig.RedisCacheDB, "cache")
}

// GetCacheClient returns the generic cache client, or nil when Redis is down.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = connectRedis(config.AppConfig.RedisAuthDB, "auth cache")
}

// GetAuthCacheClient returns the Redis client for authorization caching, or nil.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}
