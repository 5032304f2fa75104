package errors

// SQLSTATE codes used by the parser and printer.
// Based on PostgreSQL error codes: https://www.postgresql.org/docs/current/errcodes-appendix.html

// Class 0A - Feature Not Supported
const (
	FeatureNotSupported = "0A000"
)

// Class 42 - Syntax Error or Access Rule Violation
const (
	SyntaxError = "42601"
)

// Class 58 - System Error (errors external to the library)
const (
	IOError       = "58030"
	UndefinedFile = "58P01"
)

// Class XX - Internal Error
const (
	InternalError = "XX000"
)

// codeClass returns the two character class of a SQLSTATE code.
func codeClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
