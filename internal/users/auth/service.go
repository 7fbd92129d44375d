// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
	"github.com/taibuivan/yomira-auth/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-auth/internal/platform/sec"
)

// # Contracts & Types

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) (bool, error)
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(claims sec.SessionClaims) (string, time.Time, error)
	Verify(token string) (*sec.SessionClaims, error)
	Lifetime() time.Duration
}

// DefaultStoreTimeout bounds every repository and cache call.
const DefaultStoreTimeout = 3 * time.Second

// ServiceOption customises a [Service].
type ServiceOption func(*Service)

// WithStoreTimeout overrides [DefaultStoreTimeout].
func WithStoreTimeout(timeout time.Duration) ServiceOption {
	return func(service *Service) {
		if timeout > 0 {
			service.storeTimeout = timeout
		}
	}
}

// WithClock replaces the clock used to judge cached claims.
// It must agree with the clock of the [TokenIssuer].
func WithClock(now func() time.Time) ServiceOption {
	return func(service *Service) {
		service.now = now
	}
}

// WithMetrics replaces the default, unregistered collectors.
func WithMetrics(metrics *Metrics) ServiceOption {
	return func(service *Service) {
		service.metrics = metrics
	}
}

// Service implements user authentication use cases.
type Service struct {
	userRepository UserRepository
	sessionCache   SessionCache
	hasher         PasswordHasher
	tokens         TokenIssuer
	storeTimeout   time.Duration
	now            func() time.Time
	metrics        *Metrics

	// resolving collapses concurrent cache misses for the same token.
	resolving singleflight.Group

	// dummyHash is verified against when the email is unknown.
	dummyHash string
}

/*
NewService constructs a new [Service] with necessary dependencies.

A nil cache disables session caching. A non-nil cache must expire entries
after exactly the token lifetime.

Returns:
  - *Service: Ready service
  - error: Cache/token lifetime mismatch or hasher failure
*/
func NewService(
	userRepo UserRepository,
	cache SessionCache,
	hasher PasswordHasher,
	tokens TokenIssuer,
	opts ...ServiceOption,
) (*Service, error) {
	if cache != nil && cache.TTL() != tokens.Lifetime() {
		return nil, fmt.Errorf("auth: session cache TTL %s differs from token lifetime %s", cache.TTL(), tokens.Lifetime())
	}

	dummyHash, err := hasher.Hash("Dummy-passw0rd!")
	if err != nil {
		return nil, fmt.Errorf("auth: failed to prepare dummy hash: %w", err)
	}

	service := &Service{
		userRepository: userRepo,
		sessionCache:   cache,
		hasher:         hasher,
		tokens:         tokens,
		storeTimeout:   DefaultStoreTimeout,
		now:            time.Now,
		metrics:        NewMetrics(),
		dummyHash:      dummyHash,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// storeContext derives the deadline for a single repository or cache call.
func (service *Service) storeContext(context stdctx.Context) (stdctx.Context, stdctx.CancelFunc) {
	return stdctx.WithTimeout(context, service.storeTimeout)
}

// findUser runs FindByEmail under the store deadline.
func (service *Service) findUser(context stdctx.Context, email Email) (*User, error) {
	lookupCtx, cancel := service.storeContext(context)
	defer cancel()
	return service.userRepository.FindByEmail(lookupCtx, email)
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
	Username string
	Name     string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: The order validate, existence check, hash, persist is fixed.
The store's unique index remains the final arbiter for concurrent requests.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - err: InvalidValue, DuplicateEntity or storage errors
*/
func (service *Service) Register(context stdctx.Context, input RegisterInput) error {
	logger := ctxutil.GetLogger(context)

	email, password, username, name, err := registrationValues(input)
	if err != nil {
		service.metrics.Registrations.WithLabelValues(OutcomeInvalidInput).Inc()
		return err
	}

	// Verify email uniqueness before spending CPU on the hash.
	_, err = service.findUser(context, email)
	switch {
	case err == nil:
		service.metrics.Registrations.WithLabelValues(OutcomeDuplicate).Inc()
		return apperr.DuplicateEntity(EntityUser, FieldEmail)
	case !apperr.IsKind(err, apperr.KindNotFound):
		service.metrics.Registrations.WithLabelValues(OutcomeError).Inc()
		return fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(password.Reveal())
	if err != nil {
		service.metrics.Registrations.WithLabelValues(OutcomeError).Inc()
		return fmt.Errorf("auth_service_hash_failed: %w", apperr.Internal(err))
	}

	user, err := NewUser(email, hashedPassword, username, name)
	if err != nil {
		service.metrics.Registrations.WithLabelValues(OutcomeError).Inc()
		return fmt.Errorf("auth_service_new_user_failed: %w", err)
	}

	createCtx, cancel := service.storeContext(context)
	defer cancel()

	if err := service.userRepository.Create(createCtx, user); err != nil {
		if apperr.IsKind(err, apperr.KindDuplicateEntity) {
			service.metrics.Registrations.WithLabelValues(OutcomeDuplicate).Inc()
		} else {
			service.metrics.Registrations.WithLabelValues(OutcomeError).Inc()
		}
		return fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.metrics.Registrations.WithLabelValues(OutcomeSuccess).Inc()
	logger.InfoContext(context, "user_registered", slog.String("user_id", user.ID().String()))

	return nil
}

// registrationValues builds every domain value, failing on the first violation.
func registrationValues(input RegisterInput) (Email, Password, Username, DisplayName, error) {
	email, err := NewEmail(input.Email)
	if err != nil {
		return Email{}, Password{}, Username{}, DisplayName{}, err
	}

	password, err := NewPassword(input.Password)
	if err != nil {
		return Email{}, Password{}, Username{}, DisplayName{}, err
	}

	username, err := NewUsername(input.Username)
	if err != nil {
		return Email{}, Password{}, Username{}, DisplayName{}, err
	}

	name, err := NewDisplayName(input.Name)
	if err != nil {
		return Email{}, Password{}, Username{}, DisplayName{}, err
	}

	return email, password, username, name, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is the issued bearer token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

/*
Login validates user credentials and issues a session token.

Description: Unknown emails still pay for one bcrypt comparison so both
failure paths take comparable time. The caller must not reveal which one
occurred.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Signed token and its expiry
  - err: InvalidValue, NotFound, Unauthorized or storage errors
*/
func (service *Service) Login(context stdctx.Context, input LoginInput) (*LoginResult, error) {
	logger := ctxutil.GetLogger(context)

	email, err := NewEmail(input.Email)
	if err != nil {
		service.metrics.LoginAttempts.WithLabelValues(OutcomeInvalidInput).Inc()
		return nil, err
	}

	// Complexity rules apply at registration only.
	if input.Password == "" {
		service.metrics.LoginAttempts.WithLabelValues(OutcomeInvalidInput).Inc()
		return nil, apperr.InvalidValue(FieldPassword, apperr.RuleEmpty, "Password is required")
	}

	user, err := service.findUser(context, email)
	if err != nil {
		if !apperr.IsKind(err, apperr.KindNotFound) {
			service.metrics.LoginAttempts.WithLabelValues(OutcomeError).Inc()
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}

		_, _ = service.hasher.Verify(input.Password, service.dummyHash)

		service.metrics.LoginAttempts.WithLabelValues(OutcomeUnknownEmail).Inc()
		logger.InfoContext(context, "login_failed", slog.String("reason", OutcomeUnknownEmail))
		return nil, apperr.NotFound(EntityUser)
	}

	matched, err := service.hasher.Verify(input.Password, user.PasswordHash())
	if err != nil {
		service.metrics.LoginAttempts.WithLabelValues(OutcomeCorruptedHash).Inc()
		logger.ErrorContext(context, "password_hash_corrupted",
			slog.String("user_id", user.ID().String()),
			slog.Any("error", err),
		)
		return nil, apperr.Unauthorized(MessageInvalidCredentials)
	}

	if !matched {
		service.metrics.LoginAttempts.WithLabelValues(OutcomeInvalidPassword).Inc()
		logger.InfoContext(context, "login_failed",
			slog.String("reason", OutcomeInvalidPassword),
			slog.String("user_id", user.ID().String()),
		)
		return nil, apperr.Unauthorized(MessageInvalidCredentials)
	}

	claims := ClaimsFor(user)
	token, expiresAt, err := service.tokens.Issue(claims)
	if err != nil {
		service.metrics.LoginAttempts.WithLabelValues(OutcomeError).Inc()
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", apperr.Internal(err))
	}

	// Best-effort: a cache failure never fails the login.
	if service.sessionCache != nil {
		cached := claims.WithExpiry(expiresAt)
		service.cachePut(context, token, &cached, service.sessionCache.TTL())
	}

	service.metrics.LoginAttempts.WithLabelValues(OutcomeSuccess).Inc()
	logger.InfoContext(context, "login_succeeded", slog.String("user_id", user.ID().String()))

	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// # Session Resolution

/*
ResolveSession maps a bearer token back to the owning account.

Description: A cache hit skips signature verification. A cache failure is a
miss. A verified token is cached for its remaining lifetime.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Profile: Public fields of the account
  - err: Unauthorized, NotFound or storage errors
*/
func (service *Service) ResolveSession(context stdctx.Context, token string) (*Profile, error) {
	if strings.TrimSpace(token) == "" {
		service.metrics.VerificationFailures.WithLabelValues(string(sec.ReasonMalformed)).Inc()
		return nil, apperr.Unauthorized(MessageInvalidToken)
	}

	claims, err := service.sessionClaims(context, token)
	if err != nil {
		return nil, err
	}

	email, err := NewEmail(claims.Email)
	if err != nil {
		return nil, apperr.Unauthorized(MessageInvalidToken)
	}

	user, err := service.findUser(context, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("auth_service_resolve_lookup_failed: %w", err)
	}

	// The email was re-registered by a different account since the token was issued.
	if user.ID().String() != claims.SubjectID {
		return nil, apperr.NotFound(EntityUser)
	}

	return ProfileOf(user), nil
}

// sessionClaims returns verified claims, from the cache when possible.
func (service *Service) sessionClaims(context stdctx.Context, token string) (*sec.SessionClaims, error) {
	if service.sessionCache != nil {
		cached, found, err := service.cacheGet(context, token)
		switch {
		case err != nil:
			service.metrics.CacheLookups.WithLabelValues(CacheError).Inc()
			ctxutil.GetLogger(context).WarnContext(context, "session_cache_get_failed", slog.Any("error", err))
		case found && service.now().Before(cached.ExpiryTime()):
			service.metrics.CacheLookups.WithLabelValues(CacheHit).Inc()
			return cached, nil
		default:
			service.metrics.CacheLookups.WithLabelValues(CacheMiss).Inc()
		}
	}

	result, err, _ := service.resolving.Do(sec.HashToken(token), func() (any, error) {
		return service.verifyAndCache(stdctx.WithoutCancel(context), token)
	})
	if err != nil {
		return nil, err
	}

	return result.(*sec.SessionClaims), nil
}

// verifyAndCache checks the token signature and expiry, then caches the claims.
func (service *Service) verifyAndCache(context stdctx.Context, token string) (*sec.SessionClaims, error) {
	claims, err := service.tokens.Verify(token)
	if err != nil {
		reason := "unknown"
		var verificationErr *sec.VerificationError
		if errors.As(err, &verificationErr) {
			reason = string(verificationErr.Reason)
		}

		service.metrics.VerificationFailures.WithLabelValues(reason).Inc()
		ctxutil.GetLogger(context).InfoContext(context, "token_verification_failed", slog.String("reason", reason))

		unauthorized := apperr.Unauthorized(MessageInvalidToken)
		unauthorized.Cause = err
		return nil, unauthorized
	}

	// Never let an entry outlive the token it represents.
	if service.sessionCache != nil {
		if remaining := claims.ExpiryTime().Sub(service.now()); remaining > 0 {
			service.cachePut(context, token, claims, remaining)
		}
	}

	return claims, nil
}

// cacheGet runs a cache lookup under the store deadline.
func (service *Service) cacheGet(context stdctx.Context, token string) (*sec.SessionClaims, bool, error) {
	cacheCtx, cancel := service.storeContext(context)
	defer cancel()
	return service.sessionCache.Get(cacheCtx, token)
}

// cachePut writes claims and logs, rather than returns, any failure.
func (service *Service) cachePut(context stdctx.Context, token string, claims *sec.SessionClaims, ttl time.Duration) {
	cacheCtx, cancel := service.storeContext(context)
	defer cancel()

	if err := service.sessionCache.Put(cacheCtx, token, claims, ttl); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "session_cache_put_failed", slog.Any("error", err))
	}
}
