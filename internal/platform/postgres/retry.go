// Copyright (c) 2026 Libris. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/taibuivan/libris/internal/platform/apperr"
	"github.com/taibuivan/libris/internal/platform/dberr"
)

// Retry tuning. Delays follow 2^attempt seconds: 2s, 4s, 8s.
const (
	// maxRetries is the number of additional attempts after the first failure.
	maxRetries = 3
	// defaultInitialDelay is the wait before the first retry.
	defaultInitialDelay = 2 * time.Second
)

// Retrier executes repository statements with a per-attempt command timeout
// and a bounded exponential backoff on transient failures.
//
// # Classification
//
// Only transient failures (connectivity, statement timeouts) are retried.
// Domain errors, missing rows, integrity violations, and outer-context
// cancellation are permanent: retrying them cannot succeed and, for
// non-idempotent writes, could duplicate work.
type Retrier struct {
	// CommandTimeout bounds each individual attempt. Zero disables the
	// per-attempt deadline.
	CommandTimeout time.Duration

	// InitialDelay overrides the first backoff interval. Zero means the
	// default 2s. Tests shrink this to keep runs fast.
	InitialDelay time.Duration
}

// Do runs op, retrying up to 3 additional times with exponential backoff.
// Each attempt receives a child context carrying the command timeout.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	initialDelay := r.InitialDelay
	if initialDelay == 0 {
		initialDelay = defaultInitialDelay
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0

	attempt := func() error {
		attemptCtx := ctx
		if r.CommandTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.CommandTimeout)
			defer cancel()
		}

		err := op(attemptCtx)
		if err == nil {
			return nil
		}
		if isPermanent(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, maxRetries), ctx))
}

// isPermanent decides whether a failure may be retried.
func isPermanent(ctx context.Context, err error) bool {
	// The caller gave up; the per-attempt deadline is handled separately
	// and remains retriable.
	if ctx.Err() != nil {
		return true
	}

	// Business-rule failures must never be retried.
	if apperr.IsAppError(err) {
		return true
	}

	// A missing row is an answer, not a fault.
	if errors.Is(err, dberr.ErrNotFound) {
		return true
	}

	return dberr.IsPermanent(err)
}
