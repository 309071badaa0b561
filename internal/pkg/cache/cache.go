package cache

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// Redis databases shared by the app. Cached values use 0.
const (
	DBCache    = 0
	DBSessions = 1
	DBOAuth    = 2
)

const pingTimeout = 3 * time.Second

var client *redis.Client

// SetupCache connects to the Redis server named by CACHE_HOST and CACHE_PORT.
// A failed ping is only logged; reads then miss and callers fall back to the store.
func SetupCache() {
	client = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379")),
		Username: env.GetEnv("CACHE_USERNAME", ""),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       DBCache,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnf("[Cache] Redis at %s not reachable: %v", client.Options().Addr, err)
		return
	}
	log.Infof("[Cache] Connected to Redis at %s", client.Options().Addr)
}

// SetClient replaces the shared client
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the shared client, connecting on first use
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// StorageConfig describes the same server for fiber storage, pointed at another database.
func StorageConfig(db int) redisstorage.Config {
	opts := GetClient().Options()
	cfg := redisstorage.Config{
		Host:     "localhost",
		Port:     6379,
		Username: opts.Username,
		Password: opts.Password,
		Database: db,
	}
	host, port, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return cfg
	}
	cfg.Host = host
	if p, err := strconv.Atoi(port); err == nil {
		cfg.Port = p
	}
	return cfg
}

func Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return GetClient().Set(ctx, key, value, ttl).Err()
}

// Get returns redis.Nil when the key is absent or expired
func Get(ctx context.Context, key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

func GetInt(ctx context.Context, key string) (int, error) {
	return GetClient().Get(ctx, key).Int()
}

func Delete(ctx context.Context, keys ...string) error {
	return GetClient().Del(ctx, keys...).Err()
}
