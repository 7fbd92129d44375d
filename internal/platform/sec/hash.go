// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrCorruptedHash is returned by [PasswordHasher.Verify] when the stored hash
// cannot be parsed. Callers still treat the attempt as a mismatch.
var ErrCorruptedHash = errors.New("sec: stored password hash is corrupted")

// # Password Hashing

// PasswordHasher hashes and verifies passwords with bcrypt.
//
// Output is the self-describing `$2a$<cost>$<salt+digest>` form, so the cost
// can be raised later without invalidating existing hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher for the given bcrypt cost.
// Values outside [bcrypt.MinCost, bcrypt.MaxCost] fall back to [bcrypt.DefaultCost].
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

/*
Hash derives a salted adaptive hash from a plain-text password.

Parameters:
  - password: string (already validated by the caller)

Returns:
  - string: Encoded bcrypt hash
  - error: Hashing failures (e.g. input above 72 bytes)
*/
func (hasher *PasswordHasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec_password_hash_failed: %w", err)
	}
	return string(hashedBytes), nil
}

/*
Verify compares a plain-text password with a stored hash in constant time.

Parameters:
  - password: string
  - hashed: string (value produced by [PasswordHasher.Hash])

Returns:
  - bool: true only on an exact match
  - error: [ErrCorruptedHash] when the stored hash is unparseable
*/
func (hasher *PasswordHasher) Verify(password, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrCorruptedHash, err)
	}
}

// IsHash reports whether value is in bcrypt's encoded form.
func IsHash(value string) bool {
	_, err := bcrypt.Cost([]byte(value))
	return err == nil
}
