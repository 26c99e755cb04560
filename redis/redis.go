package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// GetJSON loads a cached value into dest. Returns false on miss, on decode
// failure or when redis is not configured.
func GetJSON(key string, dest any) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// SetJSON caches a value with a TTL. Best effort; cache failures are never
// surfaced to callers.
func SetJSON(key string, value any, ttl time.Duration) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	Client.Set(Ctx, key, raw, ttl)
}
