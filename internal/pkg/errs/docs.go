// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Construction/validation failures: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError
//   - Operation outcomes surfaced to callers: ObjectNotFoundError, ForbiddenError,
//     InvalidStateError, IllegalTransitionError, CourierInactiveError,
//     DuplicateRatingError, ConfirmationRequiredError, UnavailableError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidState)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies the kind
//
// The HTTP adapter relies on the sentinels to translate errors to stable
// machine-readable response codes; UnavailableError is the only kind a caller
// is expected to retry.
package errs
