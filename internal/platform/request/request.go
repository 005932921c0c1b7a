// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.

# Strict body shape

Every write endpoint rejects bodies whose JSON key set does not exactly match
the DTO's field set (case-insensitive) before any field-level validation runs.
*/
package requestutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/libris/internal/platform/apperr"
)

// Body decoding failures, worded per the API contract.
var (
	// ErrInvalidStructure is returned for malformed JSON or a key set that
	// does not match the DTO.
	ErrInvalidStructure = apperr.BadRequest("Invalid request structure.")

	// ErrInvalidBody is returned for a body that decodes to null.
	ErrInvalidBody = apperr.BadRequest("Invalid request body.")

	// ErrNilBody is returned when the request carries no body at all.
	ErrNilBody = apperr.BadRequest("Request body cannot be null.")

	// ErrInvalidID is returned when a path id is not a positive integer.
	ErrInvalidID = apperr.BadRequest("Invalid ID format.")
)

/*
DecodeStrict reads the request body and decodes it into target, enforcing that
the body's key set equals fields (case-insensitive) — any missing or extra key
rejects the request.

Parameters:
  - request: *http.Request
  - target: pointer to the destination DTO
  - fields: the DTO's exact field set

Returns:
  - error: ErrNilBody / ErrInvalidStructure / ErrInvalidBody, otherwise nil
*/
func DecodeStrict(request *http.Request, target interface{}, fields ...string) error {
	if request.Body == nil {
		return ErrNilBody
	}

	body, err := io.ReadAll(request.Body)
	if err != nil {
		return ErrInvalidStructure
	}
	if len(body) == 0 {
		return ErrNilBody
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return ErrInvalidStructure
	}
	if keys == nil {
		return ErrInvalidBody
	}

	expected := make(map[string]bool, len(fields))
	for _, field := range fields {
		expected[strings.ToLower(field)] = true
	}

	if len(keys) != len(expected) {
		return ErrInvalidStructure
	}
	for key := range keys {
		if !expected[strings.ToLower(key)] {
			return ErrInvalidStructure
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return ErrInvalidStructure
	}
	return nil
}

/*
ID parses the named URL parameter as a positive integer id.

Returns:
  - int: the parsed id
  - error: ErrInvalidID when the parameter is not a number or not positive
*/
func ID(request *http.Request, name string) (int, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}
