// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/users/auth"
)

// assertRule checks err is an InvalidValue for field violating rule.
func assertRule(t *testing.T, err error, field string, rule apperr.Rule) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperr.KindInvalidValue, appErr.Kind)
	assert.Equal(t, field, appErr.Field)
	assert.Equal(t, rule, appErr.Rule)
}

/*
TestNewEmail covers normalisation and each violated rule.
*/
func TestNewEmail(t *testing.T) {
	email, err := auth.NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", email.String())
	assert.True(t, email.Equal(mustEmail(t, "alice@example.com")))

	tests := []struct {
		name string
		raw  string
		rule apperr.Rule
	}{
		{"empty", "", apperr.RuleEmpty},
		{"blank", "   ", apperr.RuleEmpty},
		{"too_long", strings.Repeat("a", 45) + "@b.com", apperr.RuleTooLong},
		{"no_at", "invalid-email", apperr.RuleMalformed},
		{"missing_domain", "test@", apperr.RuleMalformed},
		{"display_name_form", "Alice <a@b.com>", apperr.RuleMalformed},
		{"single_label_domain", "a@b", apperr.RuleMalformed},
		{"localhost", "user@localhost", apperr.RuleMalformed},
		{"ip_literal", "a@[127.0.0.1]", apperr.RuleMalformed},
		{"numeric_tld", "a@10.0.0.1", apperr.RuleMalformed},
		{"one_letter_tld", "a@b.c", apperr.RuleMalformed},
		{"empty_label", "a@b..com", apperr.RuleMalformed},
		{"hyphen_edge", "a@-b.com", apperr.RuleMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.NewEmail(tt.raw)
			assertRule(t, err, auth.FieldEmail, tt.rule)
		})
	}
}

/*
TestNewEmail_QualifiedDomains accepts subdomains, hyphens and punycode.
*/
func TestNewEmail_QualifiedDomains(t *testing.T) {
	for _, raw := range []string{"a@mail.b-c.com", "a@b.co", "a@xn--p1ai.xn--p1ai", "first.last+tag@example.org"} {
		_, err := auth.NewEmail(raw)
		assert.NoError(t, err, raw)
	}
}

/*
TestNewEmail_LengthBoundary accepts exactly 50 characters.
*/
func TestNewEmail_LengthBoundary(t *testing.T) {
	raw := strings.Repeat("a", 44) + "@b.com"
	require.Len(t, raw, 50)

	_, err := auth.NewEmail(raw)
	assert.NoError(t, err)
}

/*
TestNewUsername covers trimming, NFC and the length bound.
*/
func TestNewUsername(t *testing.T) {
	username, err := auth.NewUsername("  abc ")
	require.NoError(t, err)
	assert.Equal(t, "abc", username.String())

	// "e" followed by a combining acute accent composes to a single rune.
	composed, err := auth.NewUsername("jose\u0301")
	require.NoError(t, err)
	assert.Equal(t, "jos\u00e9", composed.String())

	_, err = auth.NewUsername("")
	assertRule(t, err, auth.FieldUsername, apperr.RuleEmpty)

	_, err = auth.NewUsername(strings.Repeat("x", 51))
	assertRule(t, err, auth.FieldUsername, apperr.RuleTooLong)

	_, err = auth.NewUsername(strings.Repeat("\u00e9", 50))
	assert.NoError(t, err, "length counts characters, not bytes")
}

/*
TestNewDisplayName rejects blank and overly long names.
*/
func TestNewDisplayName(t *testing.T) {
	name, err := auth.NewDisplayName("A B")
	require.NoError(t, err)
	assert.Equal(t, "A B", name.String())

	_, err = auth.NewDisplayName(" \t ")
	assertRule(t, err, auth.FieldName, apperr.RuleEmpty)

	_, err = auth.NewDisplayName(strings.Repeat("n", 60))
	assertRule(t, err, auth.FieldName, apperr.RuleTooLong)
}

/*
TestNewPassword exercises the complexity policy.
*/
func TestNewPassword(t *testing.T) {
	_, err := auth.NewPassword("Passw0rd!")
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
		rule apperr.Rule
	}{
		{"empty", "", apperr.RuleEmpty},
		{"short", "short", apperr.RuleWeak},
		{"seven_chars", "Pa0!abc", apperr.RuleWeak},
		{"no_upper", "passw0rd!", apperr.RuleWeak},
		{"no_lower", "PASSW0RD!", apperr.RuleWeak},
		{"no_digit", "Password!", apperr.RuleWeak},
		{"no_symbol", "Passw0rdd", apperr.RuleWeak},
		{"space", "Passw0rd !", apperr.RuleMalformed},
		{"non_ascii", "Pässw0rd!", apperr.RuleMalformed},
		{"too_long", "Aa1!" + strings.Repeat("a", 69), apperr.RuleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.NewPassword(tt.raw)
			assertRule(t, err, auth.FieldPassword, tt.rule)
		})
	}
}

/*
TestPassword_Redacted ensures the plaintext never renders via fmt or slog.
*/
func TestPassword_Redacted(t *testing.T) {
	password, err := auth.NewPassword("Passw0rd!")
	require.NoError(t, err)

	assert.Equal(t, "Passw0rd!", password.Reveal())
	assert.NotContains(t, fmt.Sprintf("%v %s", password, password), "Passw0rd!")

	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))
	logger.Info("register_attempt", slog.Any("password", password))

	assert.NotContains(t, buffer.String(), "Passw0rd!")
	assert.Contains(t, buffer.String(), "[REDACTED]")
}
