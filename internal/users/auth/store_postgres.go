// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-auth/internal/platform/dberr"
)

// querier is the subset of [pgxpool.Pool] used by the repository.
// It lets pgxmock stand in for the pool in tests.
type querier interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(context context.Context, sql string, arguments ...any) pgx.Row
}

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool querier
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool querier) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: The unique index on email is the source of truth for identity
conflicts; a violation surfaces as apperr.DuplicateEntity("User", "email").

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: DuplicateEntity, TransientIO or Internal
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (id, email, username, name, password_hash)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := repository.pool.Exec(context, query,
		user.ID().String(),
		user.Email().String(),
		user.Username().String(),
		user.Name().String(),
		user.PasswordHash(),
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", dberr.Wrap(err, EntityUser, FieldEmail))
	}

	return nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: Email

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email Email) (*User, error) {
	const query = `
		SELECT id, email, username, name, password_hash
		FROM users.account
		WHERE email = $1`

	var id, storedEmail, username, name, passwordHash string
	err := repository.pool.QueryRow(context, query, email.String()).Scan(
		&id,
		&storedEmail,
		&username,
		&name,
		&passwordHash,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", dberr.Wrap(err, EntityUser, FieldEmail))
	}

	user, err := RestoreUser(id, storedEmail, username, name, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_restore_failed: %w", err)
	}

	return user, nil
}
