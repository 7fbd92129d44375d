// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/yomira-auth/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: Email

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound when absent, TransientIO on timeouts
	*/
	FindByEmail(context context.Context, email Email) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		The email column is unique; a second insert for the same address
		must fail with apperr.DuplicateEntity.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: DuplicateEntity, TransientIO or Internal
	*/
	Create(context context.Context, user *User) error
}

// # Session Cache

// SessionCache stores verified session claims keyed by token.
//
// It is an optimisation only: every operation must stay correct with the
// cache empty or absent.
type SessionCache interface {

	/*
		Put stores claims for token, overwriting any previous entry.

		Parameters:
		  - context: context.Context
		  - token: string
		  - claims: *sec.SessionClaims
		  - ttl: time.Duration

		Returns:
		  - error: TransientIO on transport failures
	*/
	Put(context context.Context, token string, claims *sec.SessionClaims, ttl time.Duration) error

	/*
		Get returns the cached claims for token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *sec.SessionClaims: Cached claims (nil when absent)
		  - bool: Whether an entry was found
		  - error: TransientIO on transport failures
	*/
	Get(context context.Context, token string) (*sec.SessionClaims, bool, error)

	// TTL is the configured entry lifetime. It must equal the token lifetime.
	TTL() time.Duration
}
