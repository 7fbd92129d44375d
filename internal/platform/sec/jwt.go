// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared by the consumer.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Supported signing algorithms.
const (
	AlgorithmHS256 = "HS256"
	AlgorithmHS384 = "HS384"
	AlgorithmHS512 = "HS512"
	AlgorithmRS256 = "RS256"
)

// TokenConfig describes how session tokens are signed.
type TokenConfig struct {
	// Algorithm is one of the Algorithm* constants.
	Algorithm string

	// Secret is the shared HMAC key (HS* only).
	Secret string

	// PrivateKeyPath and PublicKeyPath point at PEM files (RS256 only).
	PrivateKeyPath string
	PublicKeyPath  string

	// Issuer is written to and checked against the 'iss' claim.
	Issuer string

	// Lifetime is how long an issued token stays valid.
	Lifetime time.Duration
}

// TokenOption customises a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuing and verifying tokens.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	method     jwt.SigningMethod
	signingKey any
	verifyKey  any
	issuer     string
	lifetime   time.Duration
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
// For RS256 it reads the key pair from the configured filesystem paths.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if cfg.Lifetime <= 0 {
		return nil, fmt.Errorf("sec: token lifetime must be positive, got %s", cfg.Lifetime)
	}

	service := &TokenService{
		issuer:   cfg.Issuer,
		lifetime: cfg.Lifetime,
		now:      time.Now,
	}

	switch cfg.Algorithm {
	case AlgorithmHS256, AlgorithmHS384, AlgorithmHS512:
		if cfg.Secret == "" {
			return nil, fmt.Errorf("sec: %s requires a non-empty secret", cfg.Algorithm)
		}
		service.method = jwt.GetSigningMethod(cfg.Algorithm)
		service.signingKey = []byte(cfg.Secret)
		service.verifyKey = []byte(cfg.Secret)

	case AlgorithmRS256:
		privateKey, publicKey, err := loadRSAKeys(cfg.PrivateKeyPath, cfg.PublicKeyPath)
		if err != nil {
			return nil, err
		}
		service.method = jwt.SigningMethodRS256
		service.signingKey = privateKey
		service.verifyKey = publicKey

	default:
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", cfg.Algorithm)
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// loadRSAKeys reads and parses a PEM encoded RSA key pair.
func loadRSAKeys(privateKeyPath, publicKeyPath string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return privateKey, publicKey, nil
}

// Lifetime returns the configured token validity window.
func (service *TokenService) Lifetime() time.Duration {
	return service.lifetime
}

/*
Issue signs a token for the given claims.

The registered claims (iss, sub, iat, nbf, exp, jti) are always overwritten.

Parameters:
  - claims: SessionClaims (profile part)

Returns:
  - string: Signed token
  - time.Time: Expiry instant embedded in the token
  - error: Signing failures
*/
func (service *TokenService) Issue(claims SessionClaims) (string, time.Time, error) {
	tokenID, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec_token_id_failed: %w", err)
	}

	issuedAt := jwt.NewNumericDate(service.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(service.lifetime))

	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    service.issuer,
		Subject:   claims.SubjectID,
		IssuedAt:  issuedAt,
		NotBefore: issuedAt,
		ExpiresAt: expiresAt,
		ID:        tokenID.String(),
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec_token_sign_failed: %w", err)
	}

	return signedToken, expiresAt.Time, nil
}

/*
Verify checks the signature first and the expiry second.

Parameters:
  - tokenString: string

Returns:
  - *SessionClaims: Decoded claims of a valid token
  - error: [*VerificationError] describing the rejection reason
*/
func (service *TokenService) Verify(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return service.verifyKey, nil },
		jwt.WithValidMethods([]string{service.method.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, &VerificationError{Reason: classify(err), Cause: err}
	}

	if !token.Valid {
		return nil, &VerificationError{Reason: ReasonTampered}
	}

	return claims, nil
}

// classify maps a jwt parser error to a [Reason].
func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonTampered
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		// Issuer mismatch, not-yet-valid and similar claim failures.
		return ReasonTampered
	}
}
