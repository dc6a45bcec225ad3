package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error carries a code, a human-readable message and optional metadata.
// Validation field maps travel in Meta so they survive wrapping.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
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

// Is matches any *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := asError(target)
	return ok && e.Code == t.Code
}

// WithMeta sets a metadata key and returns the receiver
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code of an inner *Error is kept;
// anything else becomes CodeInternal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	code := CodeInternal
	if inner, ok := asError(err); ok {
		code = inner.Code
	}
	return wrap(err, code, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

// WrapWithCodef is WrapWithCode with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return WrapWithCode(err, code, fmt.Sprintf(format, args...))
}

// wrap copies the inner metadata so the wrapper can be annotated
// without touching the cause
func wrap(err error, code Code, message string) *Error {
	out := &Error{Code: code, Message: message, Cause: err}
	if inner, ok := asError(err); ok && len(inner.Meta) > 0 {
		out.Meta = maps.Clone(inner.Meta)
	}
	return out
}

func asError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NotFound creates a CodeNotFound error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a CodeNotFound error with a formatted message
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates a CodeInvalidArgument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a CodeInvalidArgument error with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// FailedPrecondition creates a CodeFailedPrecondition error. Converters
// return it when a hook receives a value of the wrong shape.
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// FailedPreconditionf creates a CodeFailedPrecondition error with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Internal creates a CodeInternal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Unavailablef creates a CodeUnavailable error for a backend that could
// not be reached
func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}
