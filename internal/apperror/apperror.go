// Package apperror defines the error envelope returned by every service call.
package apperror

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Code is a machine-readable error code sent back to callers verbatim.
type Code string

const (
	CodeEntityNotFound          Code = "EntityNotFound"
	CodeAccessDenied            Code = "AccessDenied"
	CodeCategoryNotFound        Code = "CategoryNotFound"
	CodePaymentMethodNotFound   Code = "PaymentMethodNotFound"
	CodeIncomeNotFound          Code = "IncomeNotFound"
	CodeExpenseNotFound         Code = "ExpenseNotFound"
	CodeUserNotFound            Code = "UserNotFound"
	CodePhysicalFileNotFound    Code = "PhysicalFileNotFound"
	CodeEmailNotificationFailed Code = "EmailNotificationFailed"
	CodeTechnicalError          Code = "TechnicalError"

	// Conflict codes
	CodeProfileAlreadyExists Code = "ProfileAlreadyExists"
	CodeEntityInUse          Code = "EntityInUse"

	// Validation codes
	CodeInvalidRequest    Code = "InvalidRequest"
	CodeInvalidPagination Code = "InvalidPagination"

	// Transport and infrastructure codes
	CodeUnauthorized       Code = "Unauthorized"
	CodeStorageUnavailable Code = "StorageUnavailable"
	CodeTooManyRequests    Code = "TooManyRequests"
)

// Status classifies an error independently of the transport protocol.
type Status string

const (
	StatusNotFound        Status = "not-found"
	StatusForbidden       Status = "forbidden"
	StatusBadRequest      Status = "bad-request"
	StatusConflict        Status = "conflict"
	StatusUnauthorized    Status = "unauthorized"
	StatusTooManyRequests Status = "too-many-requests"
	StatusUnavailable     Status = "unavailable"
	StatusInternal        Status = "internal-error"
)

// HTTPStatus maps the classification onto an HTTP status code.
func (s Status) HTTPStatus() int {
	switch s {
	case StatusNotFound:
		return http.StatusNotFound
	case StatusForbidden:
		return http.StatusForbidden
	case StatusBadRequest:
		return http.StatusBadRequest
	case StatusConflict:
		return http.StatusConflict
	case StatusUnauthorized:
		return http.StatusUnauthorized
	case StatusTooManyRequests:
		return http.StatusTooManyRequests
	case StatusUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error half of the service envelope.
type Error struct {
	Status  Status
	Code    Code
	Message string // user-facing, returned verbatim
	Cause   error  // internal, never serialized
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates an error envelope.
func New(status Status, code Code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Wrap creates an error envelope that keeps the underlying cause for logs.
func Wrap(status Status, code Code, message string, cause error) *Error {
	return &Error{Status: status, Code: code, Message: message, Cause: cause}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// Common errors. Each call returns a fresh value so callers may attach a cause.

func EntityNotFound() *Error {
	return New(StatusNotFound, CodeEntityNotFound, "Entity not found!")
}

func ExpenseNotFound() *Error {
	return New(StatusNotFound, CodeExpenseNotFound, "Expense not found!")
}

func IncomeNotFound() *Error {
	return New(StatusNotFound, CodeIncomeNotFound, "Income not found!")
}

func CategoryNotFound() *Error {
	return New(StatusNotFound, CodeCategoryNotFound, "Category not found!")
}

func PaymentMethodNotFound() *Error {
	return New(StatusNotFound, CodePaymentMethodNotFound, "Payment method not found!")
}

func AccessDenied() *Error {
	return New(StatusForbidden, CodeAccessDenied, "You don't have permission to access this resource!")
}

func Unauthorized(message string) *Error {
	return New(StatusUnauthorized, CodeUnauthorized, message)
}

func EmailNotificationFailed(cause error) *Error {
	return Wrap(StatusInternal, CodeEmailNotificationFailed, "Failed to send email notification!", cause)
}

func TechnicalError(cause error) *Error {
	return Wrap(StatusInternal, CodeTechnicalError, "An unknown error occurred, contact technical support!", cause)
}

func StorageUnavailable(cause error) *Error {
	return Wrap(StatusUnavailable, CodeStorageUnavailable, "The data store is unavailable, try again later!", cause)
}

func InvalidRequest(message string) *Error {
	return New(StatusBadRequest, CodeInvalidRequest, message)
}

func InvalidPagination() *Error {
	return New(StatusBadRequest, CodeInvalidPagination, "Page must be at least 1 and page size must be between 1 and 100!")
}

// InvalidReference reports a foreign key that points at nothing. The code names the reference.
func InvalidReference(code Code, message string) *Error {
	return New(StatusBadRequest, code, message)
}

func Conflict(code Code, message string) *Error {
	return New(StatusConflict, code, message)
}

// FromStore classifies a store error. Record-not-found maps to notFound, connection-level
// failures and cancellations to StorageUnavailable, anything else to TechnicalError.
func FromStore(err error, notFound func() *Error) *Error {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		nf := notFound()
		nf.Cause = err
		return nf
	}
	if IsTransient(err) {
		return StorageUnavailable(err)
	}
	return TechnicalError(err)
}

// IsTransient reports whether err looks like an unreachable or interrupted store.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08: connection exception, 57P: operator intervention (shutdown, cannot connect now)
		class := string(pqErr.Code)
		return strings.HasPrefix(class, "08") || strings.HasPrefix(class, "57P")
	}
	return false
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(err)), "unique constraint")
}

// IsForeignKeyViolation reports whether err is a foreign-key failure.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(err)), "foreign key constraint")
}
