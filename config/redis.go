package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared client used by the rate limiter. It stays nil when
// REDIS_URL is unset or unreachable; consumers must treat that as "no
// limiting" rather than failing requests.
var Redis *redis.Client

// InitRedis connects and verifies the Redis client.
func InitRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, rate limiting disabled")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: invalid REDIS_URL: %v", err)
		return
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: redis ping failed: %v", err)
		return
	}

	Redis = client
	log.Println("Redis connected successfully")
}
