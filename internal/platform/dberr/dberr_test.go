// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/dberr"
)

/*
TestWrap_Classification maps driver errors onto the application taxonomy.
*/
func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"no_rows", pgx.ErrNoRows, apperr.KindNotFound},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.KindDuplicateEntity},
		{"wrapped_unique_violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), apperr.KindDuplicateEntity},
		{"statement_timeout", &pgconn.PgError{Code: pgerrcode.QueryCanceled}, apperr.KindTransientIO},
		{"admin_shutdown", &pgconn.PgError{Code: pgerrcode.AdminShutdown}, apperr.KindTransientIO},
		{"too_many_connections", &pgconn.PgError{Code: pgerrcode.TooManyConnections}, apperr.KindTransientIO},
		{"syntax_error", &pgconn.PgError{Code: pgerrcode.SyntaxError}, apperr.KindInternal},
		{"deadline", context.DeadlineExceeded, apperr.KindTransientIO},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), apperr.KindTransientIO},
		{"unknown", errors.New("boom"), apperr.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "User", "email")
			assert.Equal(t, tt.kind, apperr.KindOf(wrapped))
		})
	}
}

/*
TestWrap_Messages checks entity and field flow into client messages.
*/
func TestWrap_Messages(t *testing.T) {
	assert.Nil(t, dberr.Wrap(nil, "User", "email"))
	assert.Equal(t, "User not found", dberr.Wrap(pgx.ErrNoRows, "User", "email").Error())

	duplicate := apperr.As(dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "User", "email"))
	assert.Equal(t, "User", duplicate.Entity)
	assert.Equal(t, "email", duplicate.Field)
}
