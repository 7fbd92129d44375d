// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/constants"
	"github.com/taibuivan/yomira-auth/internal/platform/sec"
)

// # Session Cache

// RedisSessionCache implements SessionCache using Redis.
type RedisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache creates a new Redis-backed SessionCache whose entries live for ttl.
func NewSessionCache(client *redis.Client, ttl time.Duration) *RedisSessionCache {
	return &RedisSessionCache{client: client, ttl: ttl}
}

// TTL returns the configured entry lifetime.
func (repository *RedisSessionCache) TTL() time.Duration {
	return repository.ttl
}

// sessionKey namespaces the token digest. Raw tokens never become keys.
func sessionKey(token string) string {
	return constants.RedisPrefixSession + sec.HashToken(token)
}

/*
Put stores the claims for token with the given TTL.

Description: SET overwrites any previous entry, so repeated puts are idempotent.

Parameters:
  - context: context.Context
  - token: string
  - claims: *sec.SessionClaims
  - ttl: time.Duration

Returns:
  - error: TransientIO on transport failures
*/
func (repository *RedisSessionCache) Put(context context.Context, token string, claims *sec.SessionClaims, ttl time.Duration) error {

	// Encode the claims as JSON
	payload, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", apperr.Internal(err))
	}

	// Set the entry with TTL
	if err := repository.client.Set(context, sessionKey(token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", apperr.TransientIO(err))
	}

	return nil
}

/*
Get retrieves the cached claims for token.

Description: An absent or expired key is a miss, not an error.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.SessionClaims: Cached claims
  - bool: Whether the entry exists
  - error: TransientIO on transport failures
*/
func (repository *RedisSessionCache) Get(context context.Context, token string) (*sec.SessionClaims, bool, error) {

	// Get the entry from Redis
	payload, err := repository.client.Get(context, sessionKey(token)).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_session_get_failed: %w", apperr.TransientIO(err))
	}

	// Decode the claims
	claims := &sec.SessionClaims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, false, fmt.Errorf("redis_session_decode_failed: %w", apperr.Internal(err))
	}

	return claims, true, nil
}
