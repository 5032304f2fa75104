package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
	"github.com/dshills/QuantaSQL/internal/sql/format"
	"github.com/dshills/QuantaSQL/internal/sql/parser"
)

func parse(t *testing.T, sql string) ast.Statement {
	t.Helper()
	stmt, err := parser.NewParser(sql, parser.WithDialect(Dialect)).ParseStatement()
	require.NoError(t, err, sql)
	return stmt
}

func TestShowKeys(t *testing.T) {
	tests := []struct {
		input    string
		keyword  string
		table    ast.Expr
		database ast.Expr
	}{
		{"SHOW KEYS FROM t", "KEYS", ast.NewIdentifier("t"), nil},
		{"show index from t", "INDEX", ast.NewIdentifier("t"), nil},
		{"SHOW INDEXES FROM shop.orders", "INDEXES", ast.NewIdentifier("orders"), ast.NewIdentifier("shop")},
		{"SHOW KEYS FROM orders FROM shop", "KEYS", ast.NewIdentifier("orders"), ast.NewIdentifier("shop")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, ok := parse(t, tt.input).(*ShowKeysStmt)
			require.True(t, ok)
			assert.Equal(t, tt.keyword, stmt.Keyword)
			assert.Equal(t, tt.table, stmt.Table)
			assert.Equal(t, tt.database, stmt.Database)
		})
	}
}

func TestShowKeysChildrenOrder(t *testing.T) {
	stmt := parse(t, "SHOW KEYS FROM shop.orders").(*ShowKeysStmt)
	children := stmt.Children()
	require.Len(t, children, 2)
	assert.Equal(t, ast.NewIdentifier("orders"), children[0])
	assert.Equal(t, ast.NewIdentifier("shop"), children[1])
}

func TestShowTablesAndDatabases(t *testing.T) {
	stmt, ok := parse(t, "SHOW FULL TABLES FROM shop LIKE 'ord%'").(*ShowTablesStmt)
	require.True(t, ok)
	assert.True(t, stmt.Full)
	assert.Equal(t, ast.NewIdentifier("shop"), stmt.Database)
	assert.Equal(t, &ast.CharLit{Text: "ord%"}, stmt.Like)

	stmt, ok = parse(t, "SHOW TABLES").(*ShowTablesStmt)
	require.True(t, ok)
	assert.False(t, stmt.Full)
	assert.Nil(t, stmt.Database)
	assert.Nil(t, stmt.Like)

	dbs, ok := parse(t, "SHOW DATABASES LIKE 'a%'").(*ShowDatabasesStmt)
	require.True(t, ok)
	assert.Equal(t, &ast.CharLit{Text: "a%"}, dbs.Like)
}

func TestOtherShowIsUnsupported(t *testing.T) {
	for _, input := range []string{"SHOW GRANTS", "SHOW STATUS LIKE 'x'"} {
		t.Run(input, func(t *testing.T) {
			_, err := parser.NewParser(input, parser.WithDialect(Dialect)).ParseStatementList()
			require.Error(t, err)
			assert.ErrorIs(t, err, parser.ErrUnsupported)
			assert.NotErrorIs(t, err, parser.ErrSyntax)
		})
	}
}

func TestShowSyntaxErrors(t *testing.T) {
	for _, input := range []string{"SHOW KEYS t", "SHOW FULL COLUMNS", "SHOW TABLES FROM"} {
		t.Run(input, func(t *testing.T) {
			_, err := parser.NewParser(input, parser.WithDialect(Dialect)).ParseStatementList()
			assert.ErrorIs(t, err, parser.ErrSyntax)
		})
	}
}

func TestHexUsing(t *testing.T) {
	stmt := parse(t, "SELECT 0x41 USING utf8mb4 FROM t")
	lit := stmt.(*ast.SelectStmt).Select.Query.(*ast.QueryBlock).Items[0].Expr
	assert.Equal(t, "utf8mb4", lit.Attribute(ast.AttrUsing))

	out, err := format.String(stmt, FormatOptions(format.CompactOptions()))
	require.NoError(t, err)
	assert.Equal(t, "SELECT 0x41 USING utf8mb4 FROM t", out)
}

func TestLexerOptions(t *testing.T) {
	stmt := parse(t, "SELECT `order` \"Total\" FROM t # trailing comment")
	item := stmt.(*ast.SelectStmt).Select.Query.(*ast.QueryBlock).Items[0]
	assert.Equal(t, ast.NewIdentifier("`order`"), item.Expr)
	assert.Equal(t, `"Total"`, item.Alias)
}

func TestFormatRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"show keys from shop.orders", "SHOW KEYS FROM orders FROM shop"},
		{"SHOW INDEX FROM t", "SHOW INDEX FROM t"},
		{"SHOW FULL TABLES FROM shop LIKE 'o%'", "SHOW FULL TABLES FROM shop LIKE 'o%'"},
		{"SHOW DATABASES", "SHOW DATABASES"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt := parse(t, tt.input)
			out, err := format.String(stmt, FormatOptions(format.DefaultOptions()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)

			assert.Equal(t, stmt, parse(t, out))
		})
	}
}

func TestFormatWithoutFallback(t *testing.T) {
	stmt := parse(t, "SHOW DATABASES")
	_, err := format.String(stmt, format.DefaultOptions())
	assert.ErrorIs(t, err, format.ErrUnsupportedNode)
}
