package errors

import (
	"errors"
	"fmt"
)

// Domain-specific error kinds
var (
	// ErrValidation indicates malformed input; callers should not retry
	ErrValidation = errors.New("validation error")

	// ErrDuplicateEntry indicates a uniqueness violation, a kind of validation error
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrNotFound indicates a stale or unknown identifier
	ErrNotFound = errors.New("resource not found")

	// ErrStore indicates a transient backend failure; the whole operation may be retried
	ErrStore = errors.New("store error")

	// ErrPartialReconciliation indicates one half of a two-gateway operation succeeded
	ErrPartialReconciliation = errors.New("partial reconciliation")

	// ErrUnauthenticated indicates there is no current identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the identity may not perform the action
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeDuplicateEntry        = "DUPLICATE_ENTRY"
	CodeNotFound              = "NOT_FOUND"
	CodeStoreError            = "STORE_ERROR"
	CodePartialReconciliation = "PARTIAL_RECONCILIATION"
	CodeUnauthenticated       = "UNAUTHENTICATED"
	CodeForbidden             = "FORBIDDEN"
	CodeInternalError         = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// Validation returns a validation error with a caller-facing message
func Validation(format string, args ...any) error {
	return NewAppError(ErrValidation, fmt.Sprintf(format, args...), CodeValidation)
}

// Duplicate returns a duplicate-entry error with a caller-facing message
func Duplicate(format string, args ...any) error {
	return NewAppError(ErrDuplicateEntry, fmt.Sprintf(format, args...), CodeDuplicateEntry)
}

// NotFound returns a not-found error with a caller-facing message
func NotFound(format string, args ...any) error {
	return NewAppError(ErrNotFound, fmt.Sprintf(format, args...), CodeNotFound)
}

// Store wraps a backend failure so it is reported as retryable
func Store(err error, message string) error {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStore, err),
		Message: fmt.Sprintf("%s: %v", message, err),
		Code:    CodeStoreError,
	}
}

// PartialReconciliationError reports a two-gateway operation where one half
// was applied and the other failed. Callers should re-read the combined view
// instead of assuming nothing changed.
type PartialReconciliationError struct {
	Operation string
	Completed string
	Failed    string
	Err       error
}

// Error implements the error interface
func (e *PartialReconciliationError) Error() string {
	return fmt.Sprintf("%s partially applied: %s succeeded, %s failed: %v", e.Operation, e.Completed, e.Failed, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is
func (e *PartialReconciliationError) Unwrap() []error {
	return []error{ErrPartialReconciliation, e.Err}
}

// NewPartialReconciliationError creates a PartialReconciliationError
func NewPartialReconciliationError(operation, completed, failed string, err error) *PartialReconciliationError {
	return &PartialReconciliationError{
		Operation: operation,
		Completed: completed,
		Failed:    failed,
		Err:       err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsValidation checks if the error is a validation error (duplicates included)
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicateEntry)
}

// IsDuplicateEntry checks if the error is a duplicate entry error
func IsDuplicateEntry(err error) bool {
	return errors.Is(err, ErrDuplicateEntry)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsStore checks if the error is a retryable store error
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}

// IsPartialReconciliation checks if the error is a partial reconciliation error
func IsPartialReconciliation(err error) bool {
	return errors.Is(err, ErrPartialReconciliation)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	switch {
	case IsPartialReconciliation(err):
		return CodePartialReconciliation
	case IsDuplicateEntry(err):
		return CodeDuplicateEntry
	case IsValidation(err):
		return CodeValidation
	case IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsStore(err):
		return CodeStoreError
	default:
		return CodeInternalError
	}
}

// GetPartialReconciliationError extracts a PartialReconciliationError if present
func GetPartialReconciliationError(err error) *PartialReconciliationError {
	var partial *PartialReconciliationError
	if errors.As(err, &partial) {
		return partial
	}
	return nil
}
