// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/yomira-auth/internal/platform/sec"
	"github.com/taibuivan/yomira-auth/internal/users/auth"
)

// testHasher keeps bcrypt cheap in tests.
var testHasher = sec.NewPasswordHasher(bcrypt.MinCost)

func mustEmail(t *testing.T, raw string) auth.Email {
	t.Helper()
	email, err := auth.NewEmail(raw)
	require.NoError(t, err)
	return email
}

func mustNewUser(t *testing.T, email, username, name string) *auth.User {
	t.Helper()

	usernameValue, err := auth.NewUsername(username)
	require.NoError(t, err)
	nameValue, err := auth.NewDisplayName(name)
	require.NoError(t, err)
	hashed, err := testHasher.Hash("Passw0rd!")
	require.NoError(t, err)

	user, err := auth.NewUser(mustEmail(t, email), hashed, usernameValue, nameValue)
	require.NoError(t, err)
	return user
}
