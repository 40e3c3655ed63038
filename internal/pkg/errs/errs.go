package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors identify the error kind independently of the message.
// Callers classify failures with errors.Is against these values; the HTTP
// adapter maps each kind to a stable response code.
var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrValueIsRequired      = errors.New("value is required")
	ErrValueIsInvalid       = errors.New("value is invalid")
	ErrValueIsOutOfRange    = errors.New("value is out of range")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidState         = errors.New("invalid state")
	ErrIllegalTransition    = errors.New("illegal transition")
	ErrCourierInactive      = errors.New("courier is inactive")
	ErrDuplicateRating      = errors.New("duplicate rating")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnavailable          = errors.New("store unavailable")
)

// sanitize strips newlines from values interpolated into error messages so a
// single log line never spans multiple lines.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError is returned when an object cannot be resolved by its identifier.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsRequiredError is returned when a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the given parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the given parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a numeric value falls outside its allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError for the given parameter and bounds.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s (cause: %s)",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ForbiddenError is returned when the acting principal is not allowed to
// perform an operation, either because of its role or because it does not
// own the target resource.
type ForbiddenError struct {
	Role   string
	Action string
	Cause  error
}

// NewForbiddenError creates a ForbiddenError for the given role and action.
func NewForbiddenError(role, action string) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping an underlying cause.
func NewForbiddenErrorWithCause(role, action string, cause error) *ForbiddenError {
	return &ForbiddenError{Role: role, Action: action, Cause: cause}
}

func (e *ForbiddenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s may not %s (cause: %s)", ErrForbidden, e.Role, e.Action, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Role, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidStateError is returned when an operation's precondition on the
// current status or fields of an entity is not met.
type InvalidStateError struct {
	Operation string
	Current   string
	Cause     error
}

// NewInvalidStateError creates an InvalidStateError for the given operation and current state.
func NewInvalidStateError(operation, current string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(operation, current string, cause error) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: cannot %s in state %s (cause: %s)",
			ErrInvalidState, e.Operation, e.Current, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: cannot %s in state %s", ErrInvalidState, e.Operation, e.Current)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// IllegalTransitionError is returned when a requested status change is not an
// edge of the order status graph. The message always names the offending
// (from, to) pair.
type IllegalTransitionError struct {
	From string
	To   string
}

// NewIllegalTransitionError creates an IllegalTransitionError for the given pair of states.
func NewIllegalTransitionError(from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// CourierInactiveError is returned when an operation targets a deactivated courier.
type CourierInactiveError struct {
	CourierID string
}

// NewCourierInactiveError creates a CourierInactiveError for the given courier.
func NewCourierInactiveError(courierID string) *CourierInactiveError {
	return &CourierInactiveError{CourierID: courierID}
}

func (e *CourierInactiveError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCourierInactive, e.CourierID)
}

func (e *CourierInactiveError) Unwrap() error {
	return ErrCourierInactive
}

// DuplicateRatingError is returned when an order already has a rating.
type DuplicateRatingError struct {
	OrderID string
}

// NewDuplicateRatingError creates a DuplicateRatingError for the given order.
func NewDuplicateRatingError(orderID string) *DuplicateRatingError {
	return &DuplicateRatingError{OrderID: orderID}
}

func (e *DuplicateRatingError) Error() string {
	return fmt.Sprintf("%s: order %s is already rated", ErrDuplicateRating, e.OrderID)
}

func (e *DuplicateRatingError) Unwrap() error {
	return ErrDuplicateRating
}

// ConfirmationRequiredError is returned when a destructive operation is
// invoked without its explicit confirmation flag.
type ConfirmationRequiredError struct {
	Operation string
}

// NewConfirmationRequiredError creates a ConfirmationRequiredError for the given operation.
func NewConfirmationRequiredError(operation string) *ConfirmationRequiredError {
	return &ConfirmationRequiredError{Operation: operation}
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConfirmationRequired, e.Operation)
}

func (e *ConfirmationRequiredError) Unwrap() error {
	return ErrConfirmationRequired
}

// UnavailableError is returned when the persistent store times out or cannot
// be reached. The operation did not apply and may be retried.
type UnavailableError struct {
	Operation string
	Cause     error
}

// NewUnavailableError creates an UnavailableError for the given operation.
func NewUnavailableError(operation string) *UnavailableError {
	return &UnavailableError{Operation: operation}
}

// NewUnavailableErrorWithCause creates an UnavailableError wrapping an underlying cause.
func NewUnavailableErrorWithCause(operation string, cause error) *UnavailableError {
	return &UnavailableError{Operation: operation, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUnavailable, e.Operation, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.Operation)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
