// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
// Repositories translate pgx.ErrNoRows into this so that callers never see
// driver internals.
var ErrNotFound = errors.New("resource not found")

// Wrap inspects a database error and classifies it.
// It hides internal database details from the caller while keeping the cause
// in the chain for logging.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	return fmt.Errorf("postgres: %s: %w", action, err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// IsPermanent reports whether err is a PostgreSQL error that retrying cannot
// fix: integrity violations, syntax/access errors, and other logic-level
// SQLSTATE classes. Connectivity and timeout failures are not permanent.
func IsPermanent(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch {
	case pgerrcode.IsIntegrityConstraintViolation(pgErr.Code),
		pgerrcode.IsSyntaxErrororAccessRuleViolation(pgErr.Code),
		pgerrcode.IsDataException(pgErr.Code),
		pgerrcode.IsInvalidTransactionState(pgErr.Code):
		return true
	}
	return false
}
