// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores raw search response bodies by request key, in memory
// or in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pdiddy/peoplesearch/pkg/types"
)

// Cache maps a request key to a response body.
type Cache interface {
	// Get returns the body and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Key derives a cache key from the endpoint and the request form. The API
// key is part of the form, so different accounts never share entries.
func Key(endpoint string, form url.Values) string {
	sum := sha256.Sum256([]byte(endpoint + "?" + form.Encode()))
	return hex.EncodeToString(sum[:])
}

// New builds the cache cfg selects. The none backend yields a nil Cache.
func New(ctx context.Context, cfg types.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case "", types.CacheNone:
		return nil, nil
	case types.CacheMemory:
		return NewMemory(), nil
	case types.CacheRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache: redis_addr is required")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis cache: connecting to %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
