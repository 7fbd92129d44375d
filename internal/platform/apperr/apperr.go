// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the identity service.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and the transport layer.

Architecture:

  - AppError: A struct carrying a machine-readable [Kind] and a client-safe message.
  - Kinds: A closed set (InvalidValue, DuplicateEntity, NotFound, Unauthorized,
    TransientIO, Internal). Nothing else leaves the service layer.
  - Mapping: The error does NOT know its HTTP status. The transport boundary owns an
    explicit Kind -> status table (see package respond).

Every error that leaves the service layer should be an [AppError] (or wrap one) so
the boundary can classify it.
*/
package apperr

import (
	"errors"
	"fmt"
)

// # Taxonomy

// Kind classifies an [AppError]. The set is closed.
type Kind string

const (
	// KindInvalidValue is bad caller input. Recoverable by correcting the input.
	KindInvalidValue Kind = "INVALID_VALUE"

	// KindDuplicateEntity is an identity conflict (e.g. email already registered).
	KindDuplicateEntity Kind = "DUPLICATE_ENTITY"

	// KindNotFound is a missing entity.
	KindNotFound Kind = "NOT_FOUND"

	// KindUnauthorized is a credential or token failure.
	KindUnauthorized Kind = "UNAUTHORIZED"

	// KindTransientIO is an unreachable or timed-out store/cache. Safe to retry.
	KindTransientIO Kind = "TRANSIENT_IO"

	// KindInternal is anything unexpected.
	KindInternal Kind = "INTERNAL_ERROR"
)

// Rule names the invariant a value violated.
type Rule string

const (
	RuleEmpty     Rule = "empty"
	RuleTooLong   Rule = "too_long"
	RuleMalformed Rule = "malformed"
	RuleWeak      Rule = "weak"
)

// AppError is the canonical error type of the service.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Kind is the machine-readable classification.
	Kind Kind `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// Entity names the aggregate involved (NotFound, DuplicateEntity).
	Entity string `json:"-"`
	// Field names the offending attribute (InvalidValue, DuplicateEntity).
	Field string `json:"-"`
	// Rule is the violated invariant for InvalidValue errors.
	Rule Rule `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Rule is the violated invariant.
	Rule Rule `json:"rule,omitempty"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Constructors

// InvalidValue creates an INVALID_VALUE error for a single field.
//
// Example:
//
//	apperr.InvalidValue("email", apperr.RuleMalformed, "Must be a valid email address")
func InvalidValue(field string, rule Rule, msg string) *AppError {
	return &AppError{
		Kind:    KindInvalidValue,
		Message: msg,
		Field:   field,
		Rule:    rule,
		Details: []FieldError{{Field: field, Rule: rule, Message: msg}},
	}
}

// ValidationError creates an INVALID_VALUE error aggregating several fields.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:    KindInvalidValue,
		Message: msg,
		Details: details,
	}
}

// DuplicateEntity creates a DUPLICATE_ENTITY error.
//
// Example:
//
//	apperr.DuplicateEntity("User", "email") // "User with this email already exists"
func DuplicateEntity(entity, field string) *AppError {
	return &AppError{
		Kind:    KindDuplicateEntity,
		Message: fmt.Sprintf("%s with this %s already exists", entity, field),
		Entity:  entity,
		Field:   field,
	}
}

// NotFound creates a NOT_FOUND error for a named entity.
func NotFound(entity string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: entity + " not found",
		Entity:  entity,
	}
}

// Unauthorized creates an UNAUTHORIZED error.
func Unauthorized(msg string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// TransientIO creates a TRANSIENT_IO error wrapping a store/cache failure.
func TransientIO(cause error) *AppError {
	return &AppError{
		Kind:    KindTransientIO,
		Message: "A backing service is temporarily unavailable",
		Cause:   cause,
	}
}

// Internal creates an INTERNAL_ERROR wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "An unexpected error occurred",
		Cause:   cause,
	}
}

// # Helpers

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsKind reports whether err (or any error in its chain) is an [*AppError] of kind.
func IsKind(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}

// KindOf returns the kind of err, or [KindInternal] for foreign errors.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindInternal
}
