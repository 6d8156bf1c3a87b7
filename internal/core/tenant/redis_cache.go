package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "chat:tenant:"

func redisKey(clientID string) string {
	return redisKeyPrefix + clientID
}

// RedisCache shares tenant records between instances. Redis errors are
// logged and reported as misses.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, clientID string) (*Record, bool) {
	key := redisKey(clientID)
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("key", key).Msg("⚠️ Redis tenant lookup failed")
		}
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("⚠️ Invalid tenant record in Redis")
		return nil, false
	}
	return &rec, true
}

func (c *RedisCache) Set(ctx context.Context, clientID string, rec *Record) {
	if rec == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		log.Warn().Err(err).Str("client_id", clientID).Msg("⚠️ Failed to encode tenant record")
		return
	}
	key := redisKey(clientID)
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("⚠️ Failed to cache tenant record in Redis")
	}
}
