package format

import (
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
)

// printQuery prints queries and table sources.
func (p *Printer) printQuery(n ast.Node, ctx *ast.Context) bool {
	switch x := n.(type) {
	case *ast.Select:
		p.Child(ctx, x, x.Query)
		if x.OrderBy != nil {
			p.Println()
			p.Child(ctx, x, x.OrderBy)
		}
	case *ast.QueryBlock:
		p.printQueryBlock(x, ctx)
	case *ast.SetOpQuery:
		p.Child(ctx, x, x.Left)
		p.Println()
		p.Write(x.Operator.String())
		p.Println()
		if _, nested := x.Right.(*ast.SetOpQuery); nested {
			p.Write("(")
			p.Child(ctx, x, x.Right)
			p.Write(")")
		} else {
			p.Child(ctx, x, x.Right)
		}
	case *ast.SelectItem:
		p.Child(ctx, x, x.Expr)
		if x.Alias != "" {
			p.Write(" AS " + x.Alias)
		}
	case *ast.GroupBy:
		p.Write("GROUP BY ")
		printList(p, ctx, x, x.Items, false)
		if x.Having != nil {
			p.Println()
			p.Write("HAVING ")
			p.Child(ctx, x, x.Having)
		}
	case *ast.OrderBy:
		p.Write("ORDER BY ")
		printList(p, ctx, x, x.Items, false)
	case *ast.OrderByItem:
		p.Child(ctx, x, x.Expr)
		if x.Direction != ast.OrderDefault {
			p.Write(" " + x.Direction.String())
		}
	case *ast.ExprTableSource:
		p.Child(ctx, x, x.Expr)
		p.tableAlias(x.Alias)
	case *ast.JoinTableSource:
		p.printJoin(x, ctx)
	case *ast.SubqueryTableSource:
		p.subquery(ctx, x, x.Select)
		p.tableAlias(x.Alias)
	default:
		return false
	}
	return true
}

func (p *Printer) printQueryBlock(x *ast.QueryBlock, ctx *ast.Context) {
	p.Write("SELECT ")
	for _, hint := range x.Hints {
		p.Child(ctx, x, hint)
		p.Write(" ")
	}
	if x.Quantifier != ast.QuantifierNone {
		p.Write(x.Quantifier.String() + " ")
	}
	printList(p, ctx, x, x.Items, true)

	if x.From != nil {
		p.Println()
		p.Write("FROM ")
		p.Child(ctx, x, x.From)
	}
	if x.Where != nil {
		p.Println()
		p.Write("WHERE ")
		p.Child(ctx, x, x.Where)
	}
	if x.GroupBy != nil {
		p.Println()
		p.Child(ctx, x, x.GroupBy)
	}
}

func (p *Printer) printJoin(x *ast.JoinTableSource, ctx *ast.Context) {
	p.Child(ctx, x, x.Left)
	if x.JoinType == ast.JoinComma {
		p.Write(", ")
	} else {
		p.Write(" " + x.JoinType.String() + " ")
	}

	if _, nested := x.Right.(*ast.JoinTableSource); nested {
		p.Write("(")
		p.Child(ctx, x, x.Right)
		p.Write(")")
	} else {
		p.Child(ctx, x, x.Right)
	}

	if x.Condition != nil {
		p.Write(" ON ")
		p.Child(ctx, x, x.Condition)
	}
}

// tableAlias writes a table alias. AS is only written when the alias would
// not read back as a bare name: keywords and string literals.
func (p *Printer) tableAlias(alias string) {
	if alias == "" {
		return
	}
	if aliasNeedsAS(alias) {
		p.Write(" AS " + alias)
		return
	}
	p.Write(" " + alias)
}

func aliasNeedsAS(alias string) bool {
	switch c := alias[0]; {
	case c == '\'':
		return true
	case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		return parser.LookupKeyword(strings.ToUpper(alias)) != parser.TokenIdentifier
	}
	return false
}
