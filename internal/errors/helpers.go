package errors

import (
	"errors"
)

// As wraps the standard errors.As for *Error targets
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is wraps the standard errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode returns the code of the outermost *Error in the chain.
// Plain errors report CodeInternal and nil reports CodeOK.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := asError(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error, if any
func GetMeta(err error) map[string]any {
	if e, ok := asError(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the outermost *Error message without the code
// prefix or cause chain. Plain errors return their Error() text.
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func IsNotFound(err error) bool           { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool    { return GetCode(err) == CodeInvalidArgument }
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
func IsDataLoss(err error) bool           { return GetCode(err) == CodeDataLoss }
func IsDeadlineExceeded(err error) bool   { return GetCode(err) == CodeDeadlineExceeded }

// IsStructural reports whether err is a record-level validation failure
func IsStructural(err error) bool {
	return err != nil && GetCode(err).Structural()
}
