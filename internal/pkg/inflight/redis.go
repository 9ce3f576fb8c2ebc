package inflight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"myzai/internal/pkg/id"
)

const (
	redisKeyPrefix = "myzai:busy:"

	// DefaultRedisTTL 持有者崩溃时忙碌标记的最长存活时间
	DefaultRedisTTL = 2 * time.Minute
)

// 仅当值仍为本次占用的 token 时删除，避免误删他人重新占用的标记
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard 基于 Redis 的实现，多副本部署时共享忙碌标记
type RedisGuard struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisGuard 创建 Redis 忙碌标记
func NewRedisGuard(client redis.UniversalClient, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisGuard{client: client, ttl: ttl}
}

// Acquire 占用 key (SET NX PX)
func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := RedisKey(key)
	token := id.New()

	ok, err := g.client.SetNX(ctx, redisKey, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire busy flag: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// 请求 ctx 可能已取消，释放使用独立 ctx
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, g.client, []string{redisKey}, token).Err(); err != nil {
				log.Warn().Err(err).Str("key", redisKey).Msg("failed to release busy flag")
			}
		})
	}, nil
}

// RedisKey 生成 Redis 中的完整 key
func RedisKey(key string) string {
	return redisKeyPrefix + key
}
