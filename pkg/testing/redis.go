package testing

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
)

// GetRedisClientAndCtx connects to the redis given by REDIS_HOST / REDIS_PASS
// and skips the calling test when no redis is reachable.
func GetRedisClientAndCtx(t *testing.T) (context.Context, *redis.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}
	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(redisHost, redisPort),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})

	pingRes, err := rdb.Ping(ctx).Result()
	if err != nil {
		_ = rdb.Close()
		t.Skipf("redis at %s:%s not reachable: %s", redisHost, redisPort, err)
	}
	t.Logf("redis ping res: %s", pingRes)

	t.Cleanup(func() {
		_ = rdb.Close()
	})

	return ctx, rdb
}
