// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peoplesearch/pkg/types"
)

// --- Key ---

func TestKey(t *testing.T) {
	a := Key("https://api.pipl.com/search/", url.Values{"key": {"k1"}, "email": {"a@b.com"}})
	b := Key("https://api.pipl.com/search/", url.Values{"email": {"a@b.com"}, "key": {"k1"}})
	c := Key("https://api.pipl.com/search/", url.Values{"email": {"a@b.com"}, "key": {"k2"}})

	assert.Len(t, a, 64)
	assert.Equal(t, a, b, "form order must not matter")
	assert.NotEqual(t, a, c)
}

// --- New ---

func TestNew(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, types.CacheConfig{Backend: types.CacheNone})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = New(ctx, types.CacheConfig{Backend: types.CacheMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	_, err = New(ctx, types.CacheConfig{Backend: types.CacheRedis})
	assert.ErrorContains(t, err, "redis_addr is required")

	_, err = New(ctx, types.CacheConfig{Backend: "memcached"})
	assert.ErrorContains(t, err, `unknown cache backend "memcached"`)
}

// --- Memory ---

func TestMemory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	body := []byte(`{"@search_id":"1"}`)
	require.NoError(t, m.Set(ctx, "k", body, time.Minute))
	require.NoError(t, m.Set(ctx, "forever", body, 0))
	body[0] = 'X'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"@search_id":"1"}`, string(got), "stored copy must not alias the caller's slice")

	now = now.Add(time.Minute)
	_, ok, _ = m.Get(ctx, "k")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "forever")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Len())
}

// --- Redis ---

// TestRedis runs against a live server named by PEOPLESEARCH_TEST_REDIS_ADDR.
func TestRedis(t *testing.T) {
	addr := os.Getenv("PEOPLESEARCH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PEOPLESEARCH_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := New(ctx, types.CacheConfig{Backend: types.CacheRedis, RedisAddr: addr})
	require.NoError(t, err)
	r := c.(*Redis)
	t.Cleanup(func() { r.Close() })

	key := Key("test", url.Values{"t": {t.Name(), time.Now().String()}})
	_, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, r.Set(ctx, key, []byte("body"), time.Minute))
	got, ok, err := r.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "body", string(got))

	ttl, err := r.client.TTL(ctx, redisKeyPrefix+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.NoError(t, r.client.Del(ctx, redisKeyPrefix+key).Err())
}

func TestRedisUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	r := NewRedis(client)
	t.Cleanup(func() { r.Close() })

	_, _, err := r.Get(context.Background(), "k")
	assert.ErrorContains(t, err, "redis get")
}
