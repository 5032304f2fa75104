package errors

// Category-specific error constructors

// Lexer and parser errors

func ParseError(msg string, line, col int) *Error {
	return Newf(SyntaxError, "syntax error at line %d, column %d: %s", line, col, msg).
		WithLocation(line, col)
}

func UnterminatedLiteralError(kind string, line, col int) *Error {
	return Newf(SyntaxError, "unterminated %s at line %d, column %d", kind, line, col).
		WithLocation(line, col)
}

// Output errors

// OutputError reports a failure of the sink the printer writes to.
func OutputError(err error) *Error {
	return Newf(IOError, "could not write SQL output: %v", err).WithCause(err)
}

// IOErrorf creates an I/O error
func IOErrorf(format string, args ...interface{}) *Error {
	return Newf(IOError, format, args...)
}

// InternalErrorf creates an internal error
func InternalErrorf(format string, args ...interface{}) *Error {
	return Newf(InternalError, format, args...)
}
