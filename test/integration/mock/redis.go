package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce sync.Once
	redisConn *redis.Client
	redisAddr string
)

// NewRedis starts (once) an embedded miniredis instance and returns a client
// connected to it.
func NewRedis() *redis.Client {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic("failed to start miniredis: " + err.Error())
		}

		redisAddr = server.Addr()
		redisConn = redis.NewClient(&redis.Options{Addr: redisAddr})
	})

	return redisConn
}

// RedisAddr returns the embedded server's address. NewRedis must have been
// called first.
func RedisAddr() string {
	return redisAddr
}

// ClearRedis flushes all keys between scenarios.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.TODO()).Err()
}
