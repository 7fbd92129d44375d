// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client behind the session cache.

Core Responsibilities:

  - Volatility: Every cached verification carries a TTL.
  - Bounded Latency: Dial/read/write deadlines keep a slow cache off the critical path.
  - Optionality: Callers skip this package entirely when no URL is configured.
*/
package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1 * time.Second
	writeTimeout = 1 * time.Second
	pingTimeout  = 2 * time.Second
)

// ErrUnavailable marks a well-formed URL whose server did not answer.
// Callers may run without the cache in that case.
var ErrUnavailable = errors.New("redis: server unavailable")

/*
NewClient parses a Redis URL and returns a ready-to-use client.

Parameters:
  - context: Context for the initial ping
  - redisURL: redis:// or rediss:// URL
  - logger: Structured logger for connection events

Returns:
  - *redis.Client: Connected client
  - error: Invalid URL, or [ErrUnavailable] when the server does not answer
*/
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = 10
	options.MinIdleConns = 2
	options.MaxIdleConns = 5

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	// A failed cache call degrades to verification; retries only add latency.
	options.MaxRetries = 1

	client := redis.NewClient(options)

	// Validate connectivity immediately at startup.
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client redis.Cmdable) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
