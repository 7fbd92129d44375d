// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package entityid provides kind-tagged, time-ordered identifiers for aggregates.

An [ID] is parametrised by a phantom kind type, so a user id and, say, a session id
are distinct Go types even when they wrap the same underlying value. Comparing them
through interfaces (any(a) == any(b)) is always false because the dynamic types differ.

Advantages of the UUIDv7 payload:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Friendly: Prevents index fragmentation in PostgreSQL (B-tree optimal).
  - Compact: 128-bit storage, compatible with standard 'uuid' columns.
*/
package entityid

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalid is returned by [Parse] for empty or non-UUID input.
var ErrInvalid = errors.New("entityid: invalid identifier")

// Kind names the aggregate an [ID] belongs to.
//
// Implementations are empty struct types:
//
//	type UserKind struct{}
//	func (UserKind) KindName() string { return "User" }
type Kind interface {
	KindName() string
}

// ID is an immutable identifier of kind K.
type ID[K Kind] struct {
	value string
}

// # Generators

// New generates a fresh UUIDv7 identifier of kind K.
func New[K Kind]() ID[K] {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("entityid: failed to generate UUID: " + err.Error())
	}

	return ID[K]{value: id.String()}
}

// Parse rebuilds an identifier of kind K from its canonical string form.
func Parse[K Kind](raw string) (ID[K], error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ID[K]{}, ErrInvalid
	}

	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return ID[K]{}, errors.Join(ErrInvalid, err)
	}

	return ID[K]{value: parsed.String()}, nil
}

// # Accessors

// String returns the canonical UUID form.
func (id ID[K]) String() string {
	return id.value
}

// Kind returns the declared kind name.
func (id ID[K]) Kind() string {
	var kind K
	return kind.KindName()
}

// Equal reports value equality within the same kind.
func (id ID[K]) Equal(other ID[K]) bool {
	return id.value == other.value
}

// IsZero reports whether the id was never assigned.
func (id ID[K]) IsZero() bool {
	return id.value == ""
}
