// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"log/slog"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
)

// # Value Constraints

const (
	// MaxFieldLength bounds every persisted text column of users.account.
	MaxFieldLength = 50

	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8

	// MaxPasswordBytes is the bcrypt input limit.
	MaxPasswordBytes = 72

	// PasswordSymbols is the accepted punctuation set. At least one is required.
	PasswordSymbols = `!@#$%^&*(),.?":{}|<>_`
)

// # Email

// Email is a trimmed, lower-cased RFC 5322 addr-spec.
type Email struct {
	value string
}

// NewEmail validates and normalises a raw email address.
func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))

	if value == "" {
		return Email{}, apperr.InvalidValue(FieldEmail, apperr.RuleEmpty, "Email is required")
	}

	if utf8.RuneCountInString(value) > MaxFieldLength {
		return Email{}, apperr.InvalidValue(FieldEmail, apperr.RuleTooLong, "Email must be at most 50 characters")
	}

	// Display-name forms like "Alice <a@b.co>" parse, but are not an addr-spec.
	address, err := mail.ParseAddress(value)
	if err != nil || address.Name != "" || address.Address != value {
		return Email{}, apperr.InvalidValue(FieldEmail, apperr.RuleMalformed, "Must be a valid email address")
	}

	if !isQualifiedDomain(value[strings.LastIndexByte(value, '@')+1:]) {
		return Email{}, apperr.InvalidValue(FieldEmail, apperr.RuleMalformed, "Must be a valid email address")
	}

	return Email{value: value}, nil
}

// isQualifiedDomain accepts dotted host names only: no IP literals, no
// single-label hosts, and a top-level label of at least two letters.
func isQualifiedDomain(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if label == "" || len(label) > 63 || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for _, char := range label {
			if char != '-' && !unicode.IsLetter(char) && !unicode.IsDigit(char) {
				return false
			}
		}
	}

	tld := labels[len(labels)-1]
	if strings.HasPrefix(tld, "xn--") {
		return len(tld) > 4
	}
	if utf8.RuneCountInString(tld) < 2 {
		return false
	}
	for _, char := range tld {
		if !unicode.IsLetter(char) {
			return false
		}
	}

	return true
}

func (email Email) String() string { return email.value }

func (email Email) Equal(other Email) bool { return email.value == other.value }

// # Username

// Username is a trimmed, NFC-normalised handle.
type Username struct {
	value string
}

// NewUsername validates a raw username.
func NewUsername(raw string) (Username, error) {
	value, err := boundedText(FieldUsername, "Username", raw)
	if err != nil {
		return Username{}, err
	}
	return Username{value: value}, nil
}

func (username Username) String() string { return username.value }

func (username Username) Equal(other Username) bool { return username.value == other.value }

// # Display Name

// DisplayName is the human-readable name shown for an account.
type DisplayName struct {
	value string
}

// NewDisplayName validates a raw display name.
func NewDisplayName(raw string) (DisplayName, error) {
	value, err := boundedText(FieldName, "Name", raw)
	if err != nil {
		return DisplayName{}, err
	}
	return DisplayName{value: value}, nil
}

func (name DisplayName) String() string { return name.value }

func (name DisplayName) Equal(other DisplayName) bool { return name.value == other.value }

// boundedText trims, NFC-normalises and length-checks free text.
func boundedText(field, label, raw string) (string, error) {
	value := norm.NFC.String(strings.TrimSpace(raw))

	if value == "" {
		return "", apperr.InvalidValue(field, apperr.RuleEmpty, label+" is required")
	}

	if utf8.RuneCountInString(value) > MaxFieldLength {
		return "", apperr.InvalidValue(field, apperr.RuleTooLong, label+" must be at most 50 characters")
	}

	return value, nil
}

// # Password

// Password is a transient plain-text secret.
//
// # Security
//
// It never renders its content through fmt or slog. Only [Password.Reveal]
// exposes the plaintext, and only the hasher should call it.
type Password struct {
	value string
}

// NewPassword validates a registration password against the complexity policy.
func NewPassword(raw string) (Password, error) {
	if raw == "" {
		return Password{}, apperr.InvalidValue(FieldPassword, apperr.RuleEmpty, "Password is required")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, char := range raw {
		switch {
		case char > unicode.MaxASCII:
			return Password{}, apperr.InvalidValue(FieldPassword, apperr.RuleMalformed, "Password contains unsupported characters")
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, char):
			hasSymbol = true
		default:
			return Password{}, apperr.InvalidValue(FieldPassword, apperr.RuleMalformed, "Password contains unsupported characters")
		}
	}

	if len(raw) > MaxPasswordBytes {
		return Password{}, apperr.InvalidValue(FieldPassword, apperr.RuleTooLong, "Password must be at most 72 characters")
	}

	if len(raw) < MinPasswordLength || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		return Password{}, apperr.InvalidValue(FieldPassword, apperr.RuleWeak,
			"Password must be at least 8 characters with an uppercase letter, a lowercase letter, a digit and a symbol")
	}

	return Password{value: raw}, nil
}

// Reveal returns the plaintext for hashing.
func (password Password) Reveal() string { return password.value }

func (password Password) String() string { return "[REDACTED]" }

// LogValue implements [slog.LogValuer].
func (password Password) LogValue() slog.Value { return slog.StringValue("[REDACTED]") }
