// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/constants"
	"github.com/taibuivan/yomira-auth/internal/platform/sec"
	"github.com/taibuivan/yomira-auth/internal/users/auth"
)

func newTestCache(t *testing.T, ttl time.Duration) (*auth.RedisSessionCache, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewSessionCache(client, ttl), server
}

/*
TestRedisSessionCache_PutGet stores claims under a hashed, namespaced key.
*/
func TestRedisSessionCache_PutGet(t *testing.T) {
	cache, server := newTestCache(t, 15*time.Minute)
	ctx := context.Background()
	claims := &sec.SessionClaims{SubjectID: "id-1", Email: "a@b.com", Username: "abc", Name: "A B"}

	require.NoError(t, cache.Put(ctx, "token-1", claims, cache.TTL()))

	key := constants.RedisPrefixSession + sec.HashToken("token-1")
	assert.True(t, server.Exists(key))
	assert.Equal(t, 15*time.Minute, server.TTL(key))

	cached, found, err := cache.Get(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "a@b.com", cached.Email)
	assert.Equal(t, "A B", cached.Name)
}

/*
TestRedisSessionCache_Miss reports absence without an error.
*/
func TestRedisSessionCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	cached, found, err := cache.Get(context.Background(), "unknown")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, cached)
}

/*
TestRedisSessionCache_Expiry drops entries once the TTL elapses.
*/
func TestRedisSessionCache_Expiry(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "token-1", &sec.SessionClaims{Email: "a@b.com"}, time.Minute))

	server.FastForward(59 * time.Second)
	_, found, err := cache.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, found)

	server.FastForward(time.Second)
	_, found, err = cache.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, found)
}

/*
TestRedisSessionCache_Overwrite keeps only the latest claims for a token.
*/
func TestRedisSessionCache_Overwrite(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "token-1", &sec.SessionClaims{Name: "first"}, time.Minute))
	require.NoError(t, cache.Put(ctx, "token-1", &sec.SessionClaims{Name: "second"}, time.Minute))

	cached, found, err := cache.Get(ctx, "token-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", cached.Name)
}

/*
TestRedisSessionCache_Unreachable classifies transport failures as TransientIO.
*/
func TestRedisSessionCache_Unreachable(t *testing.T) {
	cache, server := newTestCache(t, time.Minute)
	server.Close()

	_, _, err := cache.Get(context.Background(), "token-1")
	assert.True(t, apperr.IsKind(err, apperr.KindTransientIO))

	err = cache.Put(context.Background(), "token-1", &sec.SessionClaims{}, time.Minute)
	assert.True(t, apperr.IsKind(err, apperr.KindTransientIO))
}
