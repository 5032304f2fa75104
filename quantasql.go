// Package quantasql parses SQL text into a syntax tree and prints trees
// back as SQL text that parses to the same tree.
package quantasql

import (
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/dialect"
	"github.com/dshills/QuantaSQL/internal/sql/format"
	"github.com/dshills/QuantaSQL/internal/sql/param"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
)

// Sentinels matched by errors.Is against parse errors.
var (
	ErrSyntax      = parser.ErrSyntax
	ErrLexical     = parser.ErrLexical
	ErrUnsupported = parser.ErrUnsupported
)

// ParseStatements parses a semicolon-separated list of statements. The
// first error aborts the whole input.
func ParseStatements(sql string, opts ...parser.Option) ([]ast.Statement, error) {
	return parser.NewParser(sql, opts...).ParseStatementList()
}

// ParseExpression parses a single expression that must span the whole
// input.
func ParseExpression(sql string, opts ...parser.Option) (ast.Expr, error) {
	p := parser.NewExprParser(sql, opts...)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.Current(); tok.Type != parser.TokenEOF {
		return nil, p.Errorf("unexpected token %s after expression", tok)
	}
	return expr, nil
}

// Unparse prints a statement, expression or other node.
func Unparse(node ast.Node, opts format.Options) (string, error) {
	return format.String(node, opts)
}

// Format parses sql in the named dialect and prints every statement
// followed by a semicolon. An empty dialect name selects the generic one.
func Format(sql, dialectName string, opts format.Options) (string, error) {
	d, err := dialect.Lookup(dialectName)
	if err != nil {
		return "", err
	}
	stmts, err := ParseStatements(sql, d.ParserOptions()...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := format.Statements(&sb, stmts, d.FormatOptions(opts)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Parameters lists the bind placeholders of node.
func Parameters(node ast.Node) ([]*param.Parameter, error) {
	return param.Collect(node)
}

// Bind returns a copy of opts that prints values in place of the
// placeholders of stmts.
func Bind(opts format.Options, values []string, stmts ...ast.Statement) (format.Options, error) {
	nodes := make([]ast.Node, len(stmts))
	for i, s := range stmts {
		nodes[i] = s
	}
	bind, err := param.Bind(values, nodes...)
	if err != nil {
		return opts, err
	}
	opts.Bind = bind
	return opts, nil
}
