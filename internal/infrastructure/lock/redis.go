package lock

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"clubvenue/internal/ports/output"
)

var _ output.SweepLock = (*RedisLock)(nil)

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

// RedisLock is a SET NX lease shared by every instance pointing at the same Redis.
type RedisLock struct {
	client   redis.Cmdable
	prefix   string
	newToken func() string
}

func NewRedisLock(client redis.Cmdable) *RedisLock {
	return &RedisLock{client: client, prefix: "clubvenue:lock:", newToken: uuid.NewString}
}

// NewRedisClient parses a redis:// URL and checks the server is reachable.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLock) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	full := l.prefix + key
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, full, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func() {
		// The caller's ctx may already be cancelled on shutdown.
		rctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := l.client.Eval(rctx, releaseScript, []string{full}, token).Err(); err != nil {
			log.Printf("⚠️ release lock %s: %v", key, err)
		}
	}
	return unlock, true, nil
}
