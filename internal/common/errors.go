package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// =============================================
// 1. ERROR KINDS
// =============================================

// ErrorKind classifies a failure so handlers can map it to an HTTP status
// without string matching.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// Error is a status-carrying domain error.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	// Details carries machine-readable extras, e.g. the list of valid
	// catalog names on a lookup miss.
	Details JSONB `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches structured context to the error and returns it.
func (e *Error) WithDetails(details JSONB) *Error {
	e.Details = details
	return e
}

// =============================================
// 2. CONSTRUCTORS
// =============================================

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Internalf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected persistence or configuration failure.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// =============================================
// 3. INSPECTION & HTTP MAPPING
// =============================================

// KindOf returns the kind of err, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// RespondError writes the gin JSON response for a service error.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}

	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindNotFound:
			status = http.StatusNotFound
		case KindValidation:
			status = http.StatusBadRequest
		case KindConflict:
			status = http.StatusConflict
		}
		body["kind"] = e.Kind
		if e.Details != nil {
			body["details"] = e.Details
		}
	}

	c.JSON(status, body)
}
