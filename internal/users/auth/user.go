// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session layer.

It defines the User aggregate and its self-validating values, the storage
contracts it depends on, the orchestration service and its HTTP delivery.

# Architecture

Entities defined here encapsulate all business rules related to user identity.
Raw strings cross into the package only through the value constructors in
values.go; past that boundary everything is typed.
*/
package auth

import (
	"errors"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/sec"
	"github.com/taibuivan/yomira-auth/pkg/entityid"
)

// # Identity

// UserKind tags identifiers that belong to a [User].
type UserKind struct{}

// KindName implements [entityid.Kind].
func (UserKind) KindName() string { return EntityUser }

// UserID identifies a [User].
type UserID = entityid.ID[UserKind]

// # Domain Entities

// User is the aggregate root of the identity domain.
//
// It is immutable: every field is read through an accessor, and PasswordHash
// is always hasher output, never a plaintext.
type User struct {
	id           UserID
	email        Email
	username     Username
	name         DisplayName
	passwordHash string
}

var errPlaintextHash = errors.New("auth: password hash is not in encoded form")

/*
NewUser assembles a brand-new account with a fresh identifier.

Parameters:
  - email: Email
  - passwordHash: string (output of sec.PasswordHasher)
  - username: Username
  - name: DisplayName

Returns:
  - *User: New aggregate
  - error: Internal when the hash is empty or not in encoded form
*/
func NewUser(email Email, passwordHash string, username Username, name DisplayName) (*User, error) {
	if !sec.IsHash(passwordHash) {
		return nil, apperr.Internal(errPlaintextHash)
	}

	return &User{
		id:           entityid.New[UserKind](),
		email:        email,
		username:     username,
		name:         name,
		passwordHash: passwordHash,
	}, nil
}

/*
RestoreUser reconstitutes a persisted account, re-validating every field.

Parameters:
  - id, email, username, name, passwordHash: string (raw column values)

Returns:
  - *User: Hydrated aggregate
  - error: Internal if the stored record violates an invariant
*/
func RestoreUser(id, email, username, name, passwordHash string) (*User, error) {
	userID, err := entityid.Parse[UserKind](id)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	emailValue, err := NewEmail(email)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	usernameValue, err := NewUsername(username)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	nameValue, err := NewDisplayName(name)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// A corrupted hash is still restored; Verify reports it at login.
	if passwordHash == "" {
		return nil, apperr.Internal(errPlaintextHash)
	}

	return &User{
		id:           userID,
		email:        emailValue,
		username:     usernameValue,
		name:         nameValue,
		passwordHash: passwordHash,
	}, nil
}

func (user *User) ID() UserID { return user.id }

func (user *User) Email() Email { return user.email }

func (user *User) Username() Username { return user.username }

func (user *User) Name() DisplayName { return user.name }

func (user *User) PasswordHash() string { return user.passwordHash }

// # Projections

// Profile is the public view of a [User]. It never carries the password hash.
type Profile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// ProfileOf projects a user onto its public fields.
func ProfileOf(user *User) *Profile {
	return &Profile{
		ID:       user.id.String(),
		Email:    user.email.String(),
		Username: user.username.String(),
		Name:     user.name.String(),
	}
}

// ClaimsFor derives the session claims embedded in a token for user.
func ClaimsFor(user *User) sec.SessionClaims {
	return sec.SessionClaims{
		SubjectID: user.id.String(),
		Email:     user.email.String(),
		Username:  user.username.String(),
		Name:      user.name.String(),
	}
}
