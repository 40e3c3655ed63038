// Package pgerr classifies low-level postgres and driver failures into the
// application error taxonomy. Repositories and the unit of work funnel their
// errors through here so use cases only ever see domain error kinds.
package pgerr

import (
	"context"
	"errors"
	"net"

	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a postgres unique constraint
// violation, optionally narrowed to a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// Map converts a storage failure into the application taxonomy. Timeouts and
// connection failures become UnavailableError so HTTP can answer 503 and the
// caller knows a retry may succeed. Everything else passes through untouched.
func Map(operation string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewUnavailableErrorWithCause(operation, err)
	case errors.Is(err, gorm.ErrInvalidTransaction):
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errs.NewUnavailableErrorWithCause(operation, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// Class 08 covers connection exceptions, 57 operator intervention
		// (shutdown, crash). Both mean the store, not the request, is at fault.
		if pqErr.Code.Class() == "08" || pqErr.Code.Class() == "57" {
			return errs.NewUnavailableErrorWithCause(operation, err)
		}
	}

	return err
}
