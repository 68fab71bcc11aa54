package errors

import (
	"errors"
	"fmt"
)

type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

func New(code Code, message string) error {
	return &AppError{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &AppError{Code: code, Message: message, Cause: cause}
}

func Unauthenticated(msg string) error { return New(CodeUnauthenticated, msg) }
func NotFound(msg string) error        { return New(CodeNotFound, msg) }
func AccessDenied(msg string) error    { return New(CodeAccessDenied, msg) }
func Conflict(msg string) error        { return New(CodeConflict, msg) }
func InvalidOperation(msg string) error {
	return New(CodeInvalidOperation, msg)
}
func ServiceError(msg string, cause error) error {
	return Wrap(CodeServiceError, msg, cause)
}

// CodeOf extracts the taxonomy code, defaulting to internal for plain errors.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
