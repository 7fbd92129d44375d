// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/validate"
)

type samplePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"max=5"`
	Ignored  string `json:"-"`
}

/*
TestStruct_Valid returns nil when every tag passes.
*/
func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, validate.Struct(&samplePayload{Email: "a@b.com", Nickname: "abc"}))
}

/*
TestStruct_Rules maps each failing tag to a rule and the JSON field name.
*/
func TestStruct_Rules(t *testing.T) {
	tests := []struct {
		name    string
		payload samplePayload
		field   string
		rule    apperr.Rule
	}{
		{"required", samplePayload{}, "email", apperr.RuleEmpty},
		{"email", samplePayload{Email: "nope"}, "email", apperr.RuleMalformed},
		{"max", samplePayload{Email: "a@b.com", Nickname: strings.Repeat("x", 6)}, "nickname", apperr.RuleTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(&tt.payload)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, apperr.KindInvalidValue, ae.Kind)
			assert.Equal(t, tt.field, ae.Field)
			assert.Equal(t, tt.rule, ae.Rule)
			require.Len(t, ae.Details, 1)
			assert.Equal(t, tt.field, ae.Details[0].Field)
		})
	}
}

/*
TestStruct_Accumulates reports every failing field at once.
*/
func TestStruct_Accumulates(t *testing.T) {
	err := validate.Struct(&samplePayload{Nickname: "toolong"})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 2)
}

/*
TestErrInvalidJSON is a client error.
*/
func TestErrInvalidJSON(t *testing.T) {
	assert.True(t, apperr.IsKind(validate.ErrInvalidJSON, apperr.KindInvalidValue))
}
