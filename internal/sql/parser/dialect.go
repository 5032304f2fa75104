package parser

import (
	"github.com/dshills/QuantaSQL/internal/log"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// StatementHook parses a dialect statement at the current token. It returns
// nil, nil to decline; the parser then restores its position and reports
// the construct as unsupported or invalid.
type StatementHook func(p *Parser) (ast.Statement, error)

// ExprHook post-processes every primary expression, e.g. to consume a
// trailing dialect clause. It returns e unchanged when it has nothing to do.
type ExprHook func(p *ExprParser, e ast.Expr) (ast.Expr, error)

// Dialect bundles the vendor-specific parts of the grammar.
type Dialect struct {
	Name          string
	Lexer         LexerOptions
	StatementHook StatementHook
	ExprHook      ExprHook
}

// Generic is standard SQL without vendor extensions.
var Generic = &Dialect{
	Name:  "generic",
	Lexer: DefaultLexerOptions(),
}

// Option configures a parser.
type Option func(*options)

type options struct {
	dialect  *Dialect
	logger   log.Logger
	reporter log.Reporter
}

func newOptions(opts []Option) options {
	o := options{
		dialect: Generic,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = log.AsReporter(o.logger)
	}
	return o
}

// WithDialect selects the dialect. A nil dialect selects Generic.
func WithDialect(d *Dialect) Option {
	return func(o *options) {
		if d == nil {
			d = Generic
		}
		o.dialect = d
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(l log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReporter receives a message whenever the dialect hook declines a
// statement. By default the messages go to the logger at debug level.
func WithReporter(r log.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}
