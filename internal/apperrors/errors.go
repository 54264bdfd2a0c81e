package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProtectedAccount indicates a delete or mutation attempt on an account that is protected.
var ErrProtectedAccount = errors.New("account is protected")

// ErrInvalidState indicates an operation that is not allowed in the entity's current state.
var ErrInvalidState = errors.New("invalid state")

// ErrTransientConflict indicates the operation lost a race too many times and can be retried by the caller.
var ErrTransientConflict = errors.New("transient conflict")

// ErrConcurrentModification is returned by repositories when a write collided with a concurrent one.
// Services retry on it; it is never sent to clients as-is.
var ErrConcurrentModification = errors.New("concurrent modification")

// ErrInternal is a generic failure of a lower layer.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code along with the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an error that matches ErrNotFound.
func NewNotFoundError(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// ValidationError lists every problem found in a request. For voucher
// entries it also carries the computed totals.
type ValidationError struct {
	Errors       []string
	TotalDebits  *decimal.Decimal
	TotalCredits *decimal.Decimal
}

// NewValidationError creates a ValidationError from one or more messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidation.Error()
	}
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProtectionReason names why an account cannot be deleted or retyped.
type ProtectionReason string

const (
	ReasonSystemAccount ProtectionReason = "system_account"
	ReasonHasEntries    ProtectionReason = "has_entries"
)

// ProtectedAccountError is returned when a system account or an account with
// journal entries is deleted or has its type changed.
type ProtectedAccountError struct {
	AccountID int64
	Action    string
	Reasons   []ProtectionReason
}

func (e *ProtectedAccountError) Error() string {
	reasons := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		switch r {
		case ReasonSystemAccount:
			reasons[i] = "it is a system account"
		case ReasonHasEntries:
			reasons[i] = "it has journal entries"
		default:
			reasons[i] = string(r)
		}
	}
	return fmt.Sprintf("cannot %s account %d: %s", e.Action, e.AccountID, strings.Join(reasons, " and "))
}

func (e *ProtectedAccountError) Unwrap() error { return ErrProtectedAccount }

// InvalidStateError is returned when an entity is not in the state an operation requires.
type InvalidStateError struct {
	Entity  string
	ID      int64
	Current string
	Message string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %d is %s: %s", e.Entity, e.ID, e.Current, e.Message)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// TransientConflictError is returned once the retry budget for a contended write is spent.
type TransientConflictError struct {
	Attempts int
	Err      error
}

func (e *TransientConflictError) Error() string {
	return fmt.Sprintf("operation conflicted with concurrent writes after %d attempts, retry later: %v", e.Attempts, e.Err)
}

// Unwrap exposes both the sentinel and the last underlying cause.
func (e *TransientConflictError) Unwrap() []error {
	return []error{ErrTransientConflict, e.Err}
}
