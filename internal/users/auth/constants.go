// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Field Identifiers

// JSON field names shared by validation errors and HTTP payloads.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldUsername = "username"
	FieldName     = "name"
)

// # Entity Names

const (
	// EntityUser is the aggregate name used in NotFound and DuplicateEntity errors.
	EntityUser = "User"
)

// # Client Messages

const (
	// MessageInvalidCredentials is shared by unknown-email and wrong-password logins.
	MessageInvalidCredentials = "invalid credentials"

	// MessageInvalidToken is returned for every rejected bearer token.
	MessageInvalidToken = "invalid token"

	// TokenTypeBearer is the token_type reported by the login endpoint.
	TokenTypeBearer = "Bearer"
)
