package parser

import (
	"errors"
	"fmt"
	"strings"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// KindSyntax means the input is not valid SQL at the reported token.
	KindSyntax ErrorKind = iota
	// KindLexical means the input could not be split into tokens.
	KindLexical
	// KindUnsupported means the input names a construct this parser does
	// not implement.
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindLexical:
		return "lexical error"
	case KindUnsupported:
		return "unsupported construct"
	default:
		return "syntax error"
	}
}

// Sentinels matched by errors.Is against a *ParseError of the same kind.
var (
	ErrSyntax      = errors.New("syntax error")
	ErrLexical     = errors.New("lexical error")
	ErrUnsupported = errors.New("unsupported construct")
)

// ParseError represents a parse error with position information
type ParseError struct {
	Kind   ErrorKind
	Msg    string
	Token  Token
	Pos    int
	Line   int
	Column int
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Msg)
}

// Is reports whether target is the sentinel for e's kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrLexical:
		return e.Kind == KindLexical
	case ErrUnsupported:
		return e.Kind == KindUnsupported
	}
	return false
}

// SQLError converts e to a SQLSTATE-coded error.
func (e *ParseError) SQLError() *qerrors.Error {
	var err *qerrors.Error
	switch e.Kind {
	case KindUnsupported:
		err = qerrors.New(qerrors.FeatureNotSupported, e.Msg).WithLocation(e.Line, e.Column)
	case KindLexical:
		if what, ok := strings.CutPrefix(e.Msg, "unterminated "); ok {
			err = qerrors.UnterminatedLiteralError(what, e.Line, e.Column)
		} else {
			err = qerrors.ParseError(e.Msg, e.Line, e.Column)
		}
	default:
		if e.Token.Type == TokenEOF {
			err = qerrors.ParseError(e.Msg, e.Line, e.Column)
		} else {
			err = qerrors.ParseError(e.Msg, e.Line, e.Column).WithNear(e.Token.Text)
		}
	}
	return err.WithPosition(e.Pos + 1).WithCause(e)
}

// NewParseError creates a new syntax error
func NewParseError(msg string, line, column int) *ParseError {
	return &ParseError{
		Kind:   KindSyntax,
		Msg:    msg,
		Line:   line,
		Column: column,
	}
}

func newTokenError(kind ErrorKind, msg string, tok Token) *ParseError {
	return &ParseError{
		Kind:   kind,
		Msg:    msg,
		Token:  tok,
		Pos:    tok.Pos,
		Line:   tok.Line,
		Column: tok.Column,
	}
}
