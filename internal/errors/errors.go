package errors

import (
	"fmt"
)

// Error is a SQLSTATE-coded error carrying the diagnostic context of a
// parse or print failure.
type Error struct {
	Code     string // SQLSTATE code
	Message  string // Primary error message
	Detail   string // Optional detailed error message
	Hint     string // Optional hint message
	Position int    // 1-based character position in the SQL text (0 if not applicable)
	Line     int    // 1-based line in the SQL text (0 if not applicable)
	Column   int    // 1-based column in the SQL text (0 if not applicable)
	Near     string // Text of the offending token, if any
	Cause    error  // Underlying error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s (SQLSTATE %s)", e.Message, e.Code)
	if e.Detail != "" {
		msg += " DETAIL: " + e.Detail
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message
func New(code string, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new Error with a formatted message
func Newf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail adds detail to the error
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithHint adds a hint to the error
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithPosition sets the query position
func (e *Error) WithPosition(pos int) *Error {
	e.Position = pos
	return e
}

// WithLocation sets the line and column of the offending token.
func (e *Error) WithLocation(line, column int) *Error {
	e.Line = line
	e.Column = column
	return e
}

// WithNear records the text of the offending token.
func (e *Error) WithNear(text string) *Error {
	e.Near = text
	return e
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// IsSyntaxClass reports whether the error belongs to SQLSTATE class 42.
func (e *Error) IsSyntaxClass() bool {
	return codeClass(e.Code) == "42"
}

// IsError checks if an error is an Error with a specific code
func IsError(err error, code string) bool {
	if err == nil {
		return false
	}
	qErr, ok := err.(*Error)
	return ok && qErr.Code == code
}

// GetError attempts to extract an Error from any error
func GetError(err error) *Error {
	if err == nil {
		return nil
	}
	if qErr, ok := err.(*Error); ok {
		return qErr
	}
	if c, ok := err.(interface{ SQLError() *Error }); ok {
		return c.SQLError()
	}
	// Wrap generic errors as internal errors
	return InternalErrorf("%v", err).WithCause(err)
}
