package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

func TestTempDir(t *testing.T) {
	dir, cleanup := TempDir(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	path := WriteFile(t, dir, "test.sql", []byte("SELECT 1"))
	assert.Equal(t, filepath.Join(dir, "test.sql"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", string(data))

	cleanup()
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestOutline(t *testing.T) {
	expr := &ast.BinaryExpr{
		Left:     ast.NewIdentifier("a"),
		Operator: ast.OpAdd,
		Right:    ast.NewIdentifier("b"),
	}
	assert.Equal(t, "*ast.BinaryExpr\n  *ast.Identifier a\n  *ast.Identifier b\n", Outline(expr))
}

func TestAssertTreeEqual(t *testing.T) {
	assert.True(t, AssertTreeEqual(t, ast.NewIdentifier("a"), ast.NewIdentifier("a")))

	rec := &recorder{}
	assert.False(t, AssertTreeEqual(rec, ast.NewIdentifier("a"), ast.NewIdentifier("b")))
	require.Len(t, rec.messages, 1)
	assert.Contains(t, rec.messages[0], "*ast.Identifier b")
}

// recorder captures failures instead of failing the test.
type recorder struct {
	testing.TB
	messages []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func TestData(t *testing.T) {
	assert.Equal(t, []string{"c0", "c1", "c2"}, Columns("c", 3))
	assert.Equal(t, "SELECT c0, c1 FROM t", WideSelect("t", 2))

	script := Script(len(Statements) + 1)
	assert.Equal(t, len(Statements)+1, strings.Count(script, ";\n"))
	assert.True(t, strings.HasPrefix(script, Statements[0]+";\n"))
}
