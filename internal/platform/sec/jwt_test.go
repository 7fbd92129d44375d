// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-auth/internal/platform/sec"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeClock is a manually advanced time source.
type fakeClock struct {
	current time.Time
}

func (clock *fakeClock) Now() time.Time { return clock.current }

func (clock *fakeClock) Advance(d time.Duration) { clock.current = clock.current.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{current: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func newHMACService(t *testing.T, clock *fakeClock, secret string) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Algorithm: sec.AlgorithmHS256,
		Secret:    secret,
		Issuer:    "yomira-auth",
		Lifetime:  15 * time.Minute,
	}, sec.WithClock(clock.Now))
	require.NoError(t, err)
	return service
}

func sampleClaims() sec.SessionClaims {
	return sec.SessionClaims{
		SubjectID: "0195f3a2-7c1e-7d4a-9f1b-3c2d1e0f9a8b",
		Email:     "a@b.co",
		Username:  "alice",
		Name:      "Alice",
	}
}

func reasonOf(t *testing.T, err error) sec.Reason {
	t.Helper()
	var verificationErr *sec.VerificationError
	require.True(t, errors.As(err, &verificationErr), "expected VerificationError, got %v", err)
	return verificationErr.Reason
}

/*
TestTokenService_IssueVerify checks a freshly issued token verifies to the same claims.
*/
func TestTokenService_IssueVerify(t *testing.T) {
	clock := newClock()
	service := newHMACService(t, clock, testSecret)

	token, expiresAt, err := service.Issue(sampleClaims())
	require.NoError(t, err)
	assert.True(t, clock.Now().Add(15*time.Minute).Equal(expiresAt))

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, claims.SubjectID, claims.Subject)
	assert.Equal(t, "yomira-auth", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, expiresAt.Equal(claims.ExpiryTime()))
}

/*
TestTokenService_UniqueTokenIDs ensures two tokens for the same claims carry distinct ids.
*/
func TestTokenService_UniqueTokenIDs(t *testing.T) {
	service := newHMACService(t, newClock(), testSecret)

	first, _, err := service.Issue(sampleClaims())
	require.NoError(t, err)
	second, _, err := service.Issue(sampleClaims())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestTokenService_ExpiryBoundary verifies validity just before exp and rejection at exp.
*/
func TestTokenService_ExpiryBoundary(t *testing.T) {
	clock := newClock()
	service := newHMACService(t, clock, testSecret)

	token, _, err := service.Issue(sampleClaims())
	require.NoError(t, err)

	clock.Advance(15*time.Minute - time.Second)
	_, err = service.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = service.Verify(token)
	require.Error(t, err)
	assert.Equal(t, sec.ReasonExpired, reasonOf(t, err))
}

/*
TestTokenService_Tampered covers foreign signatures and spliced payloads.
*/
func TestTokenService_Tampered(t *testing.T) {
	clock := newClock()
	service := newHMACService(t, clock, testSecret)
	foreign := newHMACService(t, clock, strings.Repeat("x", 32))

	t.Run("foreign_secret", func(t *testing.T) {
		token, _, err := foreign.Issue(sampleClaims())
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
	})

	t.Run("spliced_payload", func(t *testing.T) {
		original, _, err := service.Issue(sampleClaims())
		require.NoError(t, err)

		other := sampleClaims()
		other.Email = "mallory@evil.co"
		forged, _, err := service.Issue(other)
		require.NoError(t, err)

		originalParts := strings.Split(original, ".")
		forgedParts := strings.Split(forged, ".")
		spliced := originalParts[0] + "." + forgedParts[1] + "." + originalParts[2]

		_, err = service.Verify(spliced)
		assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
	})

	t.Run("tampered_and_expired", func(t *testing.T) {
		token, _, err := foreign.Issue(sampleClaims())
		require.NoError(t, err)

		expiredClock := *clock
		expiredClock.Advance(time.Hour)
		late := newHMACService(t, &expiredClock, testSecret)

		_, err = late.Verify(token)
		assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
	})

	t.Run("none_algorithm", func(t *testing.T) {
		claims := sampleClaims()
		claims.Issuer = "yomira-auth"
		claims.ExpiresAt = jwt.NewNumericDate(clock.Now().Add(time.Minute))
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.Verify(unsigned)
		assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		other, err := sec.NewTokenService(sec.TokenConfig{
			Algorithm: sec.AlgorithmHS256,
			Secret:    testSecret,
			Issuer:    "someone-else",
			Lifetime:  15 * time.Minute,
		}, sec.WithClock(clock.Now))
		require.NoError(t, err)

		token, _, err := other.Issue(sampleClaims())
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
	})
}

/*
TestTokenService_Malformed verifies garbage input is classified as malformed.
*/
func TestTokenService_Malformed(t *testing.T) {
	service := newHMACService(t, newClock(), testSecret)

	for _, input := range []string{"", "abc", "a.b", "a.b.c"} {
		_, err := service.Verify(input)
		assert.Equal(t, sec.ReasonMalformed, reasonOf(t, err), "input %q", input)
	}
}

/*
TestNewTokenService_Rejects checks construction fails on bad configuration.
*/
func TestNewTokenService_Rejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  sec.TokenConfig
	}{
		{"zero_lifetime", sec.TokenConfig{Algorithm: sec.AlgorithmHS256, Secret: testSecret}},
		{"missing_secret", sec.TokenConfig{Algorithm: sec.AlgorithmHS512, Lifetime: time.Minute}},
		{"unknown_algorithm", sec.TokenConfig{Algorithm: "ES256", Secret: testSecret, Lifetime: time.Minute}},
		{"missing_keys", sec.TokenConfig{Algorithm: sec.AlgorithmRS256, PrivateKeyPath: "/nonexistent", Lifetime: time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sec.NewTokenService(tt.cfg)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_RS256 runs the issue/verify cycle with a generated key pair on disk.
*/
func TestTokenService_RS256(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privateKey)})
	require.NoError(t, os.WriteFile(privatePath, privatePEM, 0o600))

	publicDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	require.NoError(t, os.WriteFile(publicPath, publicPEM, 0o600))

	clock := newClock()
	service, err := sec.NewTokenService(sec.TokenConfig{
		Algorithm:      sec.AlgorithmRS256,
		PrivateKeyPath: privatePath,
		PublicKeyPath:  publicPath,
		Issuer:         "yomira-auth",
		Lifetime:       time.Minute,
	}, sec.WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := service.Issue(sampleClaims())
	require.NoError(t, err)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)

	// An HMAC token must not be accepted by an RSA verifier.
	hmacToken, _, err := newHMACService(t, clock, testSecret).Issue(sampleClaims())
	require.NoError(t, err)
	_, err = service.Verify(hmacToken)
	assert.Equal(t, sec.ReasonTampered, reasonOf(t, err))
}
