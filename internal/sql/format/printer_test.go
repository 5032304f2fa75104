package format

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qerrors "github.com/dshills/QuantaSQL/internal/errors"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
	"github.com/dshills/QuantaSQL/internal/testutil"
)

func parseOne(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := parser.NewParser(sql).ParseStatement()
	require.NoError(t, err, sql)
	return stmt
}

func render(t *testing.T, n ast.Node, opts Options) string {
	t.Helper()
	out, err := String(n, opts)
	require.NoError(t, err)
	return out
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pretty  string
		compact string
	}{
		{
			name:    "boolean chain in WHERE",
			input:   "SELECT a, b FROM t WHERE a = 1 AND b = 2",
			pretty:  "SELECT a, b\nFROM t\nWHERE a = 1\n\tAND b = 2",
			compact: "SELECT a, b FROM t WHERE a = 1 AND b = 2",
		},
		{
			name:    "insert values",
			input:   "INSERT INTO t (a, b) VALUES (1, 2)",
			pretty:  "INSERT INTO t\n\t(a, b)\nVALUES (1, 2)",
			compact: "INSERT INTO t (a, b) VALUES (1, 2)",
		},
		{
			name:    "delete",
			input:   "DELETE FROM t WHERE id = 5",
			pretty:  "DELETE FROM t WHERE id = 5",
			compact: "DELETE FROM t WHERE id = 5",
		},
		{
			name:    "OR inside AND keeps parentheses",
			input:   "SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3",
			pretty:  "SELECT *\nFROM t\nWHERE (a = 1 OR b = 2)\n\tAND c = 3",
			compact: "SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3",
		},
		{
			name:    "parenthesized select in union",
			input:   "(SELECT 1) UNION SELECT 2",
			pretty:  "SELECT 1\nUNION\nSELECT 2",
			compact: "SELECT 1 UNION SELECT 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.input)
			assert.Equal(t, tt.pretty, render(t, stmt, DefaultOptions()))
			assert.Equal(t, tt.compact, render(t, stmt, CompactOptions()))
		})
	}
}

func TestScenarioTree(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b FROM t WHERE a = 1 AND b = 2")
	sel, ok := stmt.(*ast.SelectStmt)
	require.True(t, ok)
	block, ok := sel.Select.Query.(*ast.QueryBlock)
	require.True(t, ok)

	require.Len(t, block.Items, 2)
	assert.Equal(t, ast.NewIdentifier("a"), block.Items[0].Expr)
	assert.Equal(t, ast.NewIdentifier("b"), block.Items[1].Expr)
	assert.Equal(t, &ast.ExprTableSource{Expr: ast.NewIdentifier("t")}, block.From)
	assert.Equal(t, ast.NewBinary(ast.OpAnd,
		ast.NewBinary(ast.OpEqual, ast.NewIdentifier("a"), &ast.IntegerLit{Value: 1}),
		ast.NewBinary(ast.OpEqual, ast.NewIdentifier("b"), &ast.IntegerLit{Value: 2}),
	), block.Where)
}

func TestRoundTrip(t *testing.T) {
	for _, sql := range testutil.Statements {
		t.Run(sql, func(t *testing.T) {
			want := parseOne(t, sql)
			for _, opts := range []Options{DefaultOptions(), CompactOptions()} {
				out := render(t, want, opts)
				got, err := parser.NewParser(out).ParseStatement()
				require.NoError(t, err, out)
				testutil.AssertTreeEqual(t, want, got, out)
			}
		})
	}
}

func TestIdempotent(t *testing.T) {
	for _, sql := range testutil.Statements {
		t.Run(sql, func(t *testing.T) {
			first := render(t, parseOne(t, sql), DefaultOptions())
			second := render(t, parseOne(t, first), DefaultOptions())
			assert.Equal(t, first, second)
		})
	}
}

func TestPrecedence(t *testing.T) {
	a, b, c := ast.NewIdentifier("a"), ast.NewIdentifier("b"), ast.NewIdentifier("c")

	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"left-assoc chain", ast.NewBinary(ast.OpSubtract, ast.NewBinary(ast.OpSubtract, a, b), c), "a - b - c"},
		{"right grouping", ast.NewBinary(ast.OpSubtract, a, ast.NewBinary(ast.OpSubtract, b, c)), "a - (b - c)"},
		{"looser left", ast.NewBinary(ast.OpMultiply, ast.NewBinary(ast.OpAdd, a, b), c), "(a + b) * c"},
		{"tighter right", ast.NewBinary(ast.OpAdd, a, ast.NewBinary(ast.OpMultiply, b, c)), "a + b * c"},
		{"same priority right", ast.NewBinary(ast.OpAdd, a, ast.NewBinary(ast.OpSubtract, b, c)), "a + (b - c)"},
		{"same priority left", ast.NewBinary(ast.OpAdd, ast.NewBinary(ast.OpSubtract, a, b), c), "a - b + c"},
		{"or under and", ast.NewBinary(ast.OpAnd, ast.NewBinary(ast.OpOr, a, b), c), "(a OR b) AND c"},
		{"and under or", ast.NewBinary(ast.OpOr, ast.NewBinary(ast.OpAnd, a, b), c), "a AND b OR c"},
		{"comparison of comparison", ast.NewBinary(ast.OpEqual, a, ast.NewBinary(ast.OpEqual, b, c)), "a = (b = c)"},
		{"not of and", &ast.UnaryExpr{Operator: ast.UnaryNot, Expr: ast.NewBinary(ast.OpAnd, a, b)}, "NOT (a AND b)"},
		{"not of comparison", &ast.UnaryExpr{Operator: ast.UnaryNot, Expr: ast.NewBinary(ast.OpEqual, a, b)}, "NOT a = b"},
		{"not on the left", ast.NewBinary(ast.OpEqual, &ast.UnaryExpr{Operator: ast.UnaryNot, Expr: a}, b), "(NOT a) = b"},
		{"minus of sum", &ast.UnaryExpr{Operator: ast.UnaryMinus, Expr: ast.NewBinary(ast.OpAdd, a, b)}, "-(a + b)"},
		{"minus of minus", &ast.UnaryExpr{Operator: ast.UnaryMinus, Expr: &ast.UnaryExpr{Operator: ast.UnaryMinus, Expr: a}}, "-(-a)"},
		{"minus of negative", &ast.UnaryExpr{Operator: ast.UnaryMinus, Expr: &ast.IntegerLit{Value: -1}}, "-(-1)"},
		{"between bounds", &ast.BetweenExpr{Test: a, Begin: ast.NewBinary(ast.OpAnd, b, c), End: c}, "a BETWEEN (b AND c) AND c"},
		{"in on sum", &ast.InListExpr{Expr: ast.NewBinary(ast.OpAdd, a, b), Targets: []ast.Expr{c}}, "a + b IN (c)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.expr, CompactOptions()))
		})
	}
}

func TestPrecedenceReparse(t *testing.T) {
	ops := []ast.BinaryOperator{
		ast.OpMultiply, ast.OpAdd, ast.OpSubtract, ast.OpConcat, ast.OpBitAnd,
		ast.OpEqual, ast.OpLess, ast.OpAnd, ast.OpOr,
	}
	leaf := func(name string) ast.Expr { return ast.NewIdentifier(name) }

	for _, outer := range ops {
		for _, inner := range ops {
			shapes := []ast.Expr{
				ast.NewBinary(outer, ast.NewBinary(inner, leaf("a"), leaf("b")), leaf("c")),
				ast.NewBinary(outer, leaf("a"), ast.NewBinary(inner, leaf("b"), leaf("c"))),
			}
			for _, want := range shapes {
				out := render(t, want, CompactOptions())
				got, err := parser.NewExprParser(out).ParseExpression()
				require.NoError(t, err, out)
				testutil.AssertTreeEqual(t, want, got, out)
			}
		}
	}
}

func TestListWrapping(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b, c, d, e, f, g FROM t")
	assert.Equal(t, "SELECT a, b, c, d, e,\nf, g\nFROM t", render(t, stmt, DefaultOptions()))
	assert.Equal(t, "SELECT a, b, c, d, e, f, g FROM t", render(t, stmt, CompactOptions()))

	ins := parseOne(t, "INSERT INTO t VALUES (1, 2, 3, 4, 5, 6)")
	assert.Equal(t, "INSERT INTO t\nVALUES (1, 2, 3, 4, 5,\n6)", render(t, ins, DefaultOptions()))
}

func TestTableAlias(t *testing.T) {
	tests := []struct {
		input   string
		pretty  string
		compact string
	}{
		{"SELECT a FROM t u", "SELECT a\nFROM t u", "SELECT a FROM t u"},
		{"SELECT a FROM t AS u", "SELECT a\nFROM t u", "SELECT a FROM t u"},
		{"SELECT a FROM t AS view", "SELECT a\nFROM t AS view", "SELECT a FROM t AS view"},
		{"SELECT a FROM t AS 'x'", "SELECT a\nFROM t AS 'x'", "SELECT a FROM t AS 'x'"},
		{"SELECT s.a FROM (SELECT a FROM t) AS key", "SELECT s.a\nFROM (SELECT a\n\tFROM t) AS key", "SELECT s.a FROM (SELECT a FROM t) AS key"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			want := parseOne(t, tt.input)
			for out, opts := range map[string]Options{tt.pretty: DefaultOptions(), tt.compact: CompactOptions()} {
				got := render(t, want, opts)
				assert.Equal(t, out, got)
				testutil.AssertTreeEqual(t, want, parseOne(t, got), got)
			}
		})
	}
}

func TestDeleteWhereInline(t *testing.T) {
	stmt := parseOne(t, "DELETE FROM t WHERE a = 1 AND b = 2 OR c = 3")
	assert.Equal(t, "DELETE FROM t WHERE a = 1 AND b = 2 OR c = 3", render(t, stmt, DefaultOptions()))
}

func TestIndentUnit(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t WHERE a IN (SELECT b FROM u WHERE c = 1 AND d = 2)")
	opts := Options{Indent: "  ", Pretty: true}
	want := "SELECT a\nFROM t\nWHERE a IN (SELECT b\n  FROM u\n  WHERE c = 1\n    AND d = 2)"
	assert.Equal(t, want, render(t, stmt, opts))
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		lit  ast.Expr
		want string
	}{
		{&ast.CharLit{Text: "it's"}, "'it''s'"},
		{&ast.CharLit{Text: "''"}, "''''''"},
		{&ast.CharLit{Text: ""}, "NULL"},
		{&ast.NCharLit{Text: "x'y"}, "N'x''y'"},
		{&ast.HexLit{Hex: "4142"}, "0x4142"},
		{&ast.HexLit{Hex: ""}, "X''"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.lit, CompactOptions()))
		})
	}
}

func TestHexUsingAttribute(t *testing.T) {
	lit := &ast.HexLit{Hex: "41"}
	lit.SetAttribute(ast.AttrUsing, "utf8mb4")
	assert.Equal(t, "0x41 USING utf8mb4", render(t, lit, CompactOptions()))
}

func TestCreateTableLayout(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE t (id INT NOT NULL, name VARCHAR(20), PRIMARY KEY (id))")
	want := "CREATE TABLE t (\n\tid INT NOT NULL,\n\tname VARCHAR(20),\n\tPRIMARY KEY (id)\n)"
	assert.Equal(t, want, render(t, stmt, DefaultOptions()))
	assert.Equal(t, "CREATE TABLE t ( id INT NOT NULL, name VARCHAR(20), PRIMARY KEY (id) )",
		render(t, stmt, CompactOptions()))
}

func TestStatements(t *testing.T) {
	stmts, err := parser.NewParser("SELECT 1; DELETE FROM t; COMMIT").ParseStatementList()
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, Statements(&sb, stmts, CompactOptions()))
	assert.Equal(t, "SELECT 1; DELETE FROM t; COMMIT;", sb.String())

	sb.Reset()
	require.NoError(t, Statements(&sb, stmts, DefaultOptions()))
	assert.Equal(t, "SELECT 1;\nDELETE FROM t;\nCOMMIT;", sb.String())
}

type failingWriter struct {
	after int
}

var errSinkClosed = errors.New("sink closed")

func (w *failingWriter) Write(b []byte) (int, error) {
	if w.after <= 0 {
		return 0, errSinkClosed
	}
	w.after--
	return len(b), nil
}

func TestWriteFailure(t *testing.T) {
	stmt := parseOne(t, "SELECT a, b FROM t WHERE a = 1")

	err := Fprint(&failingWriter{after: 2}, stmt, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, errSinkClosed)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, qerrors.IOError, we.SQLError().Code)
}

type customExpr struct {
	ast.ExprBase
	Arg ast.Expr
}

func (x *customExpr) Children() []ast.Node { return []ast.Node{x.Arg} }

func TestUnsupportedNode(t *testing.T) {
	_, err := String(&customExpr{Arg: ast.NewIdentifier("a")}, CompactOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedNode)
}

func TestFallback(t *testing.T) {
	opts := CompactOptions()
	opts.Fallback = func(p *Printer, n ast.Node, ctx *ast.Context) bool {
		x, ok := n.(*customExpr)
		if !ok {
			return false
		}
		p.Write("CUSTOM(")
		p.Child(ctx, x, x.Arg)
		p.Write(")")
		return true
	}

	expr := ast.NewBinary(ast.OpAdd, &customExpr{Arg: ast.NewIdentifier("a")}, &ast.IntegerLit{Value: 1})
	assert.Equal(t, "CUSTOM(a) + 1", render(t, expr, opts))
}

func TestPrintContext(t *testing.T) {
	where := ast.NewBinary(ast.OpAnd, ast.NewIdentifier("a"), ast.NewIdentifier("b"))
	block := &ast.QueryBlock{Where: where}

	var sb strings.Builder
	require.NoError(t, NewPrinter(&sb, DefaultOptions()).PrintContext(where, ast.NewContext(block)))
	assert.Equal(t, "a\n\tAND b", sb.String())

	sb.Reset()
	require.NoError(t, NewPrinter(&sb, DefaultOptions()).Print(where))
	assert.Equal(t, "a AND b", sb.String())
}
