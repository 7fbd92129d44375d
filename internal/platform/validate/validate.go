// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate checks the shape of decoded request payloads with
// go-playground/validator and reports failures as a single [apperr.AppError].
//
// # Architecture
//
// This package is used at the transport boundary only. Semantic rules (email
// syntax, password strength, lengths) belong to the domain value constructors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/yomira-auth/internal/platform/apperr"
)

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

	engine = newEngine()
)

// newEngine reports fields by their JSON name.
func newEngine() *validator.Validate {
	engine := validator.New(validator.WithRequiredStructEnabled())
	engine.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return engine
}

/*
Struct validates target against its `validate` tags.

Parameters:
  - target: any (pointer to a tagged struct)

Returns:
  - error: nil, or an INVALID_VALUE [apperr.AppError] listing every failed field
*/
func Struct(target any) error {
	err := engine.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(fmt.Errorf("validate_struct_failed: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Rule:    ruleFor(fieldError),
			Message: messageFor(fieldError),
		})
	}

	appError := apperr.ValidationError("Validation failed", details...)
	appError.Field = details[0].Field
	appError.Rule = details[0].Rule
	return appError
}

func ruleFor(fieldError validator.FieldError) apperr.Rule {
	switch fieldError.Tag() {
	case "required":
		return apperr.RuleEmpty
	case "max":
		return apperr.RuleTooLong
	default:
		return apperr.RuleMalformed
	}
}

func messageFor(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum %s characters", fieldError.Param())
	case "email":
		return "Must be a valid email address"
	default:
		return fmt.Sprintf("Failed on '%s' validation", fieldError.Tag())
	}
}
