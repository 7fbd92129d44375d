// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, token service) via constructors.
  - Fail Fast: [Load] rejects inconsistent settings before any connection is opened.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/yomira-auth/internal/platform/sec"
)

// minProductionSecretBytes is the shortest HMAC secret accepted outside development.
const minProductionSecretBytes = 32

// # Configuration Schema

// Config holds all runtime configuration for the auth server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// RedisURL points at the session cache. Empty disables caching.
	RedisURL string `env:"REDIS_URL"`

	// Token signing
	JWTAlgorithm   string        `env:"JWT_ALGORITHM"        envDefault:"HS256"`
	JWTSecret      string        `env:"JWT_SECRET"`
	JWTPrivKeyPath string        `env:"JWT_PRIVATE_KEY_PATH"`
	JWTPubKeyPath  string        `env:"JWT_PUBLIC_KEY_PATH"`
	JWTIssuer      string        `env:"JWT_ISSUER"           envDefault:"yomira-auth"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"     envDefault:"15m"`

	// Credential hashing and backing-store deadlines
	BcryptCost   int           `env:"BCRYPT_COST"   envDefault:"10"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"3s"`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid settings: %w", err)
	}

	return cfg, nil
}

/*
Validate checks cross-field consistency of the loaded settings.

Returns:
  - error: Every violation found, joined
*/
func (c *Config) Validate() error {
	var errs []error

	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}

	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}

	switch c.JWTAlgorithm {
	case sec.AlgorithmHS256, sec.AlgorithmHS384, sec.AlgorithmHS512:
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required for HMAC signing"))
		} else if !c.IsDevelopment() && len(c.JWTSecret) < minProductionSecretBytes {
			errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minProductionSecretBytes))
		}
	case sec.AlgorithmRS256:
		if c.JWTPrivKeyPath == "" || c.JWTPubKeyPath == "" {
			errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH and JWT_PUBLIC_KEY_PATH are required for RS256"))
		}
	default:
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported", c.JWTAlgorithm))
	}

	return errors.Join(errs...)
}

// TokenConfig maps the signing settings onto [sec.TokenConfig].
func (c *Config) TokenConfig() sec.TokenConfig {
	return sec.TokenConfig{
		Algorithm:      c.JWTAlgorithm,
		Secret:         c.JWTSecret,
		PrivateKeyPath: c.JWTPrivKeyPath,
		PublicKeyPath:  c.JWTPubKeyPath,
		Issuer:         c.JWTIssuer,
		Lifetime:       c.AccessTokenTTL,
	}
}

// CORSOrigins returns the exact origins accepted outside development.
func (c *Config) CORSOrigins() []string {
	return c.AllowedOrigins
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
