// Copyright (c) 2026 Yomira. All rights reserved.
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

	"github.com/taibuivan/cinelist/internal/platform/apperr"
)

// ErrBusy is returned for transient lock contention.
var ErrBusy = apperr.ServiceUnavailable("Database is busy, please retry")

// IsNoRows reports whether err signals an empty result.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Wrap classifies a database error into an [apperr.AppError].
//
// Errors that already carry an AppError pass through untouched so domain
// sentinels raised inside a transaction survive the rollback path.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Domain errors raised inside a transaction callback
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Transient contention: a row-lock wait that lost the race or timed out
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected,
			pgerrcode.LockNotAvailable, pgerrcode.QueryCanceled:
			busy := *ErrBusy
			busy.Cause = fmt.Errorf("%s: %w", action, err)
			return &busy
		}
	}

	// 3. Everything else is an internal failure
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
