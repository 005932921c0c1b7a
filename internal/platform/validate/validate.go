// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively at the DTO boundary — never in storage.
// Each rule carries its own client-facing message so that the wire contract
// controls the wording, not the rule implementation.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails with msg if the trimmed value is empty.
func (v *Validator) Required(field, value, msg string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, msg)
	}
	return v
}

// Length fails with msg if the Unicode character count is outside [min, max].
// Empty values are skipped so that Required owns the "missing" message.
func (v *Validator) Length(field, value string, min, max int, msg string) *Validator {
	if value == "" {
		return v
	}
	if n := utf8.RuneCountInString(value); n < min || n > max {
		v.add(field, msg)
	}
	return v
}

// Matches fails with msg if the value does not match the pattern.
// Empty values are skipped for the same reason as in Length.
func (v *Validator) Matches(field, value string, pattern *regexp.Regexp, msg string) *Validator {
	if value == "" {
		return v
	}
	if !pattern.MatchString(value) {
		v.add(field, msg)
	}
	return v
}

// Positive fails with msg if the value is not strictly greater than zero.
func (v *Validator) Positive(field string, value int, msg string) *Validator {
	if value <= 0 {
		v.add(field, msg)
	}
	return v
}

// NotEmptyIDs fails with msg if the id list is empty.
func (v *Validator) NotEmptyIDs(field string, ids []int, msg string) *Validator {
	if len(ids) == 0 {
		v.add(field, msg)
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("Name", strings.Contains(name, "  "), "Name must not contain consecutive spaces.")
func (v *Validator) Custom(field string, failed bool, msg string) *Validator {
	if failed {
		v.add(field, msg)
	}
	return v
}

// Err returns an [apperr.AppError] ("Validation failed.") if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationFailed(v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, msg string) {
	v.errs = append(v.errs, apperr.FieldError{PropertyName: field, ErrorMessage: msg})
}
