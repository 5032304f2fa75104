package format

import (
	"strconv"
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// printExpr prints expression nodes and their helpers. It reports false
// for nodes it does not know.
func (p *Printer) printExpr(n ast.Node, ctx *ast.Context) bool {
	switch x := n.(type) {
	case *ast.Identifier:
		p.Write(x.Name)
	case *ast.Property:
		p.Child(ctx, x, x.Owner)
		p.Write("." + x.Name)
	case *ast.AllColumns:
		p.Write("*")
	case *ast.IntegerLit:
		p.Write(strconv.FormatInt(x.Value, 10))
	case *ast.DecimalLit:
		p.Write(x.Value)
	case *ast.CharLit:
		if x.Text == "" {
			p.Write("NULL")
			return true
		}
		p.Write(quote(x.Text))
	case *ast.NCharLit:
		p.Write("N" + quote(x.Text))
	case *ast.HexLit:
		p.printHex(x)
	case *ast.NullLit:
		p.Write("NULL")
	case *ast.DefaultLit:
		p.Write("DEFAULT")
	case *ast.VariableRef:
		if p.opts.Bind != nil {
			if e, ok := p.opts.Bind(x, ctx); ok {
				ast.WalkContext(p, e, ctx)
				return true
			}
		}
		p.Write(x.Name)
	case *ast.BinaryExpr:
		p.printBinary(x, ctx)
	case *ast.UnaryExpr:
		p.printUnary(x, ctx)
	case *ast.BetweenExpr:
		p.operand(ctx, x, x.Test, ast.PriorityComparison, true)
		if x.Not {
			p.Write(" NOT")
		}
		p.Write(" BETWEEN ")
		p.operand(ctx, x, x.Begin, ast.PriorityComparison, false)
		p.Write(" AND ")
		p.operand(ctx, x, x.End, ast.PriorityComparison, false)
	case *ast.InListExpr:
		p.operand(ctx, x, x.Expr, ast.PriorityComparison, true)
		if x.Not {
			p.Write(" NOT")
		}
		p.Write(" IN (")
		printList(p, ctx, x, x.Targets, false)
		p.Write(")")
	case *ast.InSubqueryExpr:
		p.operand(ctx, x, x.Expr, ast.PriorityComparison, true)
		if x.Not {
			p.Write(" NOT")
		}
		p.Write(" IN ")
		p.subquery(ctx, x, x.Query)
	case *ast.ExistsExpr:
		if x.Not {
			p.Write("NOT ")
		}
		p.Write("EXISTS ")
		p.subquery(ctx, x, x.Query)
	case *ast.QuantifiedExpr:
		p.Write(x.Quantifier.String() + " ")
		p.subquery(ctx, x, x.Query)
	case *ast.QueryExpr:
		p.subquery(ctx, x, x.Query)
	case *ast.CaseExpr:
		p.printCase(x, ctx)
	case *ast.CaseItem:
		p.Write("WHEN ")
		p.Child(ctx, x, x.Condition)
		p.Write(" THEN ")
		p.Child(ctx, x, x.Value)
	case *ast.CastExpr:
		p.Write("CAST(")
		p.Child(ctx, x, x.Expr)
		p.Write(" AS ")
		p.Child(ctx, x, x.Type)
		p.Write(")")
	case *ast.DataType:
		p.Write(x.Name)
		if len(x.Args) > 0 {
			p.Write("(")
			printList(p, ctx, x, x.Args, false)
			p.Write(")")
		}
	case *ast.AggregateExpr:
		p.Write(x.Name + "(")
		if x.Option != ast.QuantifierNone {
			p.Write(x.Option.String() + " ")
		}
		printList(p, ctx, x, x.Args, false)
		p.Write(")")
		if x.Over != nil {
			p.Write(" ")
			p.Child(ctx, x, x.Over)
		}
	case *ast.Over:
		p.Write("OVER (")
		if len(x.PartitionBy) > 0 {
			p.Write("PARTITION BY ")
			printList(p, ctx, x, x.PartitionBy, false)
			if x.OrderBy != nil {
				p.Write(" ")
			}
		}
		if x.OrderBy != nil {
			p.Child(ctx, x, x.OrderBy)
		}
		p.Write(")")
	case *ast.MethodCall:
		if x.Owner != nil {
			p.Child(ctx, x, x.Owner)
			p.Write(".")
		}
		p.Write(x.Name + "(")
		printList(p, ctx, x, x.Args, false)
		p.Write(")")
	case *ast.ListExpr:
		p.Write("(")
		printList(p, ctx, x, x.Items, false)
		p.Write(")")
	case *ast.CurrentOfCursor:
		p.Write("CURRENT OF ")
		p.Child(ctx, x, x.Cursor)
	case *ast.CommentHint:
		p.Write("/*" + x.Text + "*/")
	default:
		return false
	}
	return true
}

// quote renders s as a character literal, doubling embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (p *Printer) printHex(x *ast.HexLit) {
	if x.Hex == "" {
		p.Write("X''")
	} else {
		p.Write("0x" + x.Hex)
	}
	if charset, ok := x.Attribute(ast.AttrUsing).(string); ok && charset != "" {
		p.Write(" USING " + charset)
	}
}

// printBinary prints a binary operator chain. A left-deep chain of one
// operator is flattened and printed left to right.
func (p *Printer) printBinary(x *ast.BinaryExpr, ctx *ast.Context) {
	operands := flatten(x)
	priority := x.Operator.Priority()

	if x.Operator.IsRelational() && isClauseRoot(ctx.Parent(), x) {
		p.IncrementIndent()
		for i, operand := range operands {
			if i != 0 {
				p.Println()
				p.Write(x.Operator.String() + " ")
			}
			p.operand(ctx, x, operand, priority, i == 0)
		}
		p.DecrementIndent()
		return
	}

	for i, operand := range operands {
		if i != 0 {
			p.Write(" " + x.Operator.String() + " ")
		}
		p.operand(ctx, x, operand, priority, i == 0)
	}
}

// flatten returns the operands of the left-deep chain of x's operator.
func flatten(x *ast.BinaryExpr) []ast.Expr {
	var rights []ast.Expr
	var left ast.Expr = x
	for {
		b, ok := left.(*ast.BinaryExpr)
		if !ok || b.Operator != x.Operator {
			break
		}
		rights = append(rights, b.Right)
		left = b.Left
	}

	operands := make([]ast.Expr, 0, len(rights)+1)
	operands = append(operands, left)
	for i := len(rights) - 1; i >= 0; i-- {
		operands = append(operands, rights[i])
	}
	return operands
}

// isClauseRoot reports whether e is the whole predicate of a clause.
func isClauseRoot(parent ast.Node, e ast.Expr) bool {
	switch x := parent.(type) {
	case *ast.QueryBlock:
		return x.Where == e
	case *ast.UpdateStmt:
		return x.Where == e
	case *ast.GroupBy:
		return x.Having == e
	case *ast.JoinTableSource:
		return x.Condition == e
	}
	return false
}

// operand prints e as an operand of an operator with the given priority.
// A left operand is parenthesized when it binds strictly more loosely, a
// right operand when it binds at least as loosely, which keeps
// left-associative chains free of redundant parentheses.
func (p *Printer) operand(ctx *ast.Context, parent ast.Node, e ast.Expr, priority int, left bool) {
	child := ast.Priority(e)
	paren := child > priority
	if !left {
		paren = child >= priority
	}
	if child == ast.PriorityPrimary {
		paren = false
	}

	if paren {
		p.Write("(")
	}
	p.Child(ctx, parent, e)
	if paren {
		p.Write(")")
	}
}

func (p *Printer) printUnary(x *ast.UnaryExpr, ctx *ast.Context) {
	if x.Operator == ast.UnaryNot {
		p.Write("NOT ")
		_, exists := x.Expr.(*ast.ExistsExpr)
		paren := exists || ast.Priority(x.Expr) > ast.PriorityComparison
		p.parenthesized(ctx, x, x.Expr, paren)
		return
	}

	p.Write(x.Operator.String())
	paren := ast.Priority(x.Expr) != ast.PriorityPrimary
	switch e := x.Expr.(type) {
	case *ast.UnaryExpr:
		paren = true
	case *ast.IntegerLit:
		paren = e.Value < 0
	case *ast.DecimalLit:
		paren = strings.HasPrefix(e.Value, "-")
	}
	p.parenthesized(ctx, x, x.Expr, paren)
}

func (p *Printer) parenthesized(ctx *ast.Context, parent ast.Node, e ast.Expr, paren bool) {
	if paren {
		p.Write("(")
	}
	p.Child(ctx, parent, e)
	if paren {
		p.Write(")")
	}
}

func (p *Printer) printCase(x *ast.CaseExpr, ctx *ast.Context) {
	p.Write("CASE")
	if x.Value != nil {
		p.Write(" ")
		p.Child(ctx, x, x.Value)
	}
	for _, item := range x.Items {
		p.Write(" ")
		p.Child(ctx, x, item)
	}
	if x.Else != nil {
		p.Write(" ELSE ")
		p.Child(ctx, x, x.Else)
	}
	p.Write(" END")
}

// subquery prints (select) with the query's continuation lines indented
// one level deeper.
func (p *Printer) subquery(ctx *ast.Context, parent ast.Node, sel *ast.Select) {
	p.Write("(")
	p.IncrementIndent()
	p.Child(ctx, parent, sel)
	p.DecrementIndent()
	p.Write(")")
}
