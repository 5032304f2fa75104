// Package mysql adds MySQL syntax to the generic parser and printer:
// backtick identifiers, double-quoted aliases, '#' comments, SHOW
// statements and 0x.. USING charset literals.
package mysql

import (
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/format"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
)

// Dialect is the MySQL parser dialect.
var Dialect = &parser.Dialect{
	Name: "mysql",
	Lexer: parser.LexerOptions{
		IdentQuote:   '`',
		AliasQuote:   '"',
		HashComments: true,
	},
	StatementHook: parseStatement,
	ExprHook:      parseExpr,
}

// parseStatement recognizes the SHOW statements MySQL adds. Anything else
// is declined.
func parseStatement(p *parser.Parser) (ast.Statement, error) {
	if !p.Accept(parser.TokenShow) {
		return nil, nil
	}

	switch {
	case p.IsWord("KEYS"), p.IsWord("INDEX"), p.IsWord("INDEXES"):
		return parseShowKeys(p)
	case p.IsWord("FULL"), p.IsWord("TABLES"):
		return parseShowTables(p)
	case p.AcceptWord("DATABASES"):
		stmt := &ShowDatabasesStmt{}
		like, err := parseLike(p)
		if err != nil {
			return nil, err
		}
		stmt.Like = like
		return stmt, nil
	}
	return nil, nil
}

func parseShowKeys(p *parser.Parser) (*ShowKeysStmt, error) {
	stmt := &ShowKeysStmt{Keyword: strings.ToUpper(p.Current().Text)}
	p.Next()

	if err := p.Expect(parser.TokenFrom); err != nil {
		return nil, err
	}
	table, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt.SetTable(table)

	if p.Accept(parser.TokenFrom) {
		db, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		stmt.Database = db
	}
	return stmt, nil
}

func parseShowTables(p *parser.Parser) (*ShowTablesStmt, error) {
	stmt := &ShowTablesStmt{Full: p.AcceptWord("FULL")}
	if err := p.ExpectWord("TABLES"); err != nil {
		return nil, err
	}

	if p.Accept(parser.TokenFrom) || p.Accept(parser.TokenIn) {
		db, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		stmt.Database = db
	}

	like, err := parseLike(p)
	if err != nil {
		return nil, err
	}
	stmt.Like = like
	return stmt, nil
}

func parseLike(p *parser.Parser) (ast.Expr, error) {
	if !p.Accept(parser.TokenLike) {
		return nil, nil
	}
	return p.ParseExpression()
}

// parseExpr attaches a trailing USING charset to hex literals.
func parseExpr(p *parser.ExprParser, e ast.Expr) (ast.Expr, error) {
	lit, ok := e.(*ast.HexLit)
	if !ok || !p.Accept(parser.TokenUsing) {
		return e, nil
	}

	charset := p.Current().Text
	if err := p.Expect(parser.TokenIdentifier); err != nil {
		return nil, err
	}
	lit.SetAttribute(ast.AttrUsing, charset)
	return lit, nil
}

// FormatNode prints the MySQL statements. It is installed as the printer
// fallback.
func FormatNode(p *format.Printer, n ast.Node, ctx *ast.Context) bool {
	switch x := n.(type) {
	case *ShowKeysStmt:
		p.Write("SHOW " + x.Keyword + " FROM ")
		p.Child(ctx, x, x.Table)
		if x.Database != nil {
			p.Write(" FROM ")
			p.Child(ctx, x, x.Database)
		}
	case *ShowTablesStmt:
		p.Write("SHOW ")
		if x.Full {
			p.Write("FULL ")
		}
		p.Write("TABLES")
		if x.Database != nil {
			p.Write(" FROM ")
			p.Child(ctx, x, x.Database)
		}
		printLike(p, ctx, x, x.Like)
	case *ShowDatabasesStmt:
		p.Write("SHOW DATABASES")
		printLike(p, ctx, x, x.Like)
	default:
		return false
	}
	return true
}

func printLike(p *format.Printer, ctx *ast.Context, parent ast.Node, like ast.Expr) {
	if like == nil {
		return
	}
	p.Write(" LIKE ")
	p.Child(ctx, parent, like)
}

// FormatOptions returns opts with the MySQL fallback installed.
func FormatOptions(opts format.Options) format.Options {
	opts.Fallback = FormatNode
	return opts
}
