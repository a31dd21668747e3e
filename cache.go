package labdesk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blutspende/labdesk/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache - expiring key value storage behind the session and draft stores
type Cache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func NewRedisClient(configuration *config.Configuration) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", configuration.RedisUrl, configuration.RedisPort),
		Password: configuration.RedisPassword,
		DB:       configuration.RedisDB,
	})
}

// NewCache picks redis when a redis host is configured, the in-memory cache otherwise
func NewCache(ctx context.Context, configuration *config.Configuration) (Cache, error) {
	if configuration.RedisUrl == "" {
		log.Info().Msg("no redis configured, using in-memory cache")
		return NewMemoryCache(), nil
	}

	client := NewRedisClient(configuration)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("redis", configuration.RedisUrl).Msg("redis is not reachable")
		return nil, err
	}
	log.Info().Msgf("Redis available, connected to %s:%d", configuration.RedisUrl, configuration.RedisPort)
	return NewRedisCache(client, configuration.ApplicationName), nil
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) Cache {
	return &redisCache{
		client: client,
		prefix: prefix,
	}
}

func (rc *redisCache) key(key string) string {
	return rc.prefix + ":" + key
}

func (rc *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return rc.client.Set(ctx, rc.key(key), value, ttl).Err()
}

func (rc *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := rc.client.Get(ctx, rc.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return value, err
}

func (rc *redisCache) Delete(ctx context.Context, key string) error {
	return rc.client.Del(ctx, rc.key(key)).Err()
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryCache struct {
	entries map[string]memoryCacheEntry
	now     func() time.Time
	mutex   sync.Mutex

	lastSweep time.Time
}

// expired entries nobody reads again are dropped by the next Set after this interval
const memoryCacheSweepInterval = time.Minute

func NewMemoryCache() Cache {
	return newMemoryCache(time.Now)
}

func newMemoryCache(now func() time.Time) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryCacheEntry),
		now:     now,
	}
}

func (mc *memoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	entry := memoryCacheEntry{
		value: append([]byte(nil), value...),
	}
	if ttl > 0 {
		entry.expiresAt = mc.now().Add(ttl)
	}
	mc.entries[key] = entry
	mc.sweepExpired()
	return nil
}

// sweepExpired expects the mutex to be held
func (mc *memoryCache) sweepExpired() {
	now := mc.now()
	if now.Sub(mc.lastSweep) < memoryCacheSweepInterval {
		return
	}
	mc.lastSweep = now
	for key, entry := range mc.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(mc.entries, key)
		}
	}
}

func (mc *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	entry, ok := mc.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && !mc.now().Before(entry.expiresAt) {
		delete(mc.entries, key)
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), entry.value...), nil
}

func (mc *memoryCache) Delete(_ context.Context, key string) error {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	delete(mc.entries, key)
	return nil
}
