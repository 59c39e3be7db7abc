package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/abubakar-xyz/ChopWise-Improved/internal/domain/models"
)

const redisKeyPrefix = "forecast:"

// Redis is a forecast cache shared across instances. Entries are stored as
// JSON with a TTL, so stale forecasts age out on their own.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(addr string, ttl time.Duration) *Redis {
	return &Redis{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

// NewRedisWithClient wires an existing client, used in tests.
func NewRedisWithClient(rdb *redis.Client, ttl time.Duration) *Redis {
	return &Redis{rdb: rdb, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) (*domain.Answer, bool) {
	data, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[Cache] Redis get failed: %v", err)
		}
		return nil, false
	}

	var answer domain.Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		log.Printf("[Cache] Failed to decode cached answer: %v", err)
		return nil, false
	}
	return &answer, true
}

func (r *Redis) Set(ctx context.Context, key string, answer *domain.Answer) {
	if answer == nil {
		return
	}

	data, err := json.Marshal(answer)
	if err != nil {
		log.Printf("[Cache] Failed to encode answer: %v", err)
		return
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("[Cache] Redis set failed: %v", err)
	}
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
