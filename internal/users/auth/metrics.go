// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for registration and login counters.
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeDuplicate       = "duplicate"
	OutcomeUnknownEmail    = "unknown_email"
	OutcomeInvalidPassword = "invalid_password"
	OutcomeCorruptedHash   = "corrupted_hash"
	OutcomeError           = "error"
)

// Cache lookup labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the Prometheus collectors of the auth service.
// Use MustRegister to expose them on /metrics.
type Metrics struct {
	Registrations        *prometheus.CounterVec
	LoginAttempts        *prometheus.CounterVec
	CacheLookups         *prometheus.CounterVec
	VerificationFailures *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yomira_auth_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		LoginAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yomira_auth_login_attempts_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yomira_auth_session_cache_lookups_total",
				Help: "Total number of session cache lookups by result",
			},
			[]string{"result"},
		),
		VerificationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "yomira_auth_token_verification_failures_total",
				Help: "Total number of rejected tokens by reason",
			},
			[]string{"reason"},
		),
	}
}

// MustRegister registers every collector with reg.
// Panics if registration fails (following prometheus convention).
func (metrics *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		metrics.Registrations,
		metrics.LoginAttempts,
		metrics.CacheLookups,
		metrics.VerificationFailures,
	)
}
