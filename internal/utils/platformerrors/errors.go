package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type ctxKey string

// RequestIDKey carries the per-request id set by the HTTP middleware.
const RequestIDKey ctxKey = "requestID"

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeValidation    ErrorType = "VALIDATION"
	ErrorTypeConflict      ErrorType = "CONFLICT"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeInternal      ErrorType = "INTERNAL"
	ErrorTypeDatabaseError ErrorType = "DATABASE_ERROR"
)

// Layer represents the application layer where the error occurred.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerInfrastructure Layer = "infrastructure"
)

// PlatformError carries an error with its category and origin layer so the
// HTTP surface can map it without string matching.
type PlatformError struct {
	Type      ErrorType
	Message   string
	Err       error
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

func (e *PlatformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

// NewError creates a PlatformError of the given type.
func NewError(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *PlatformError {
	return &PlatformError{
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: requestIDFromContext(ctx),
		Layer:     layer,
		Timestamp: time.Now().UTC(),
	}
}

// AsError wraps err with layer context, preserving the original error type if
// err is already a PlatformError.
func AsError(ctx context.Context, layer Layer, err error, message string) *PlatformError {
	if err == nil {
		return nil
	}
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return NewError(ctx, layer, platformErr.Type, fmt.Sprintf("%s: %s", message, platformErr.Message), platformErr)
	}
	return NewError(ctx, layer, ErrorTypeInternal, message, err)
}

// TypeOf returns the error category, or ErrorTypeInternal for plain errors.
func TypeOf(err error) ErrorType {
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Type
	}
	return ErrorTypeInternal
}

// IsNotFound reports whether err represents a missing (or cross-tenant,
// deliberately indistinguishable) entity.
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// HTTPStatus maps an error type to the status code the facade returns.
func HTTPStatus(errorType ErrorType) int {
	switch errorType {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeConflict:
		return http.StatusConflict
	case ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case ErrorTypeDatabaseError, ErrorTypeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
