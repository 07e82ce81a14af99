package rdx

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared Redis client, or nil when caching is disabled.
var Conn *redis.Client

// Init connects to Redis if REDIS_ADDR is set and reachable. The cache is
// strictly best-effort: without it every read falls through to the store.
func Init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("rdx: REDIS_ADDR not set, cache disabled")
		return
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("rdx: redis unreachable at %s, cache disabled: %v", addr, err)
		return
	}
	Conn = client
	log.Printf("rdx: connected to %s", addr)
}

func Enabled() bool { return Conn != nil }

// GetJSON loads a cached value into v. Returns false on miss, disabled cache,
// or any error.
func GetJSON(key string, v any) bool {
	if Conn == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	data, err := Conn.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON caches v under key. Failures are logged and ignored.
func SetJSON(key string, v any, ttl time.Duration) {
	if Conn == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := Conn.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("rdx: set %s failed: %v", key, err)
	}
}

// Del drops cached keys, typically after an admin write.
func Del(keys ...string) {
	if Conn == nil || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := Conn.Del(ctx, keys...).Err(); err != nil {
		log.Printf("rdx: del failed: %v", err)
	}
}
