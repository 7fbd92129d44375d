// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload embedded inside a session token.
//
// The profile fields travel with the token so a cached verification can answer
// without re-parsing the signature.
type SessionClaims struct {
	jwt.RegisteredClaims

	SubjectID string `json:"uid"`
	Email     string `json:"eml"`
	Username  string `json:"unm"`
	Name      string `json:"nam"`
}

// ExpiryTime returns the expiry instant, or the zero time if none is set.
func (claims SessionClaims) ExpiryTime() time.Time {
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// WithExpiry returns a copy of claims expiring at the given instant.
func (claims SessionClaims) WithExpiry(expiresAt time.Time) SessionClaims {
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	return claims
}

// # Verification Failures

// Reason classifies why a token was rejected.
type Reason string

const (
	ReasonMalformed Reason = "malformed"
	ReasonTampered  Reason = "tampered"
	ReasonExpired   Reason = "expired"
)

// VerificationError is returned by [TokenService.Verify].
type VerificationError struct {
	Reason Reason
	Cause  error
}

func (e *VerificationError) Error() string {
	return "sec: token verification failed: " + string(e.Reason)
}

func (e *VerificationError) Unwrap() error { return e.Cause }
