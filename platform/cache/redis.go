package cache

import (
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
	_ "github.com/joho/godotenv/autoload"
)

// CreateRedisPool returns a pool against REDIS_URL, or nil when no address
// is configured. Callers must tolerate a nil pool; the cache is optional.
func CreateRedisPool() *redis.Pool {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		return nil
	}
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        func() (redis.Conn, error) { return redis.Dial("tcp", addr) },
	}
}
