package testutil

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// Outline renders the node types of a tree in pre-order, one per line,
// indented by depth. Identifiers show their name.
func Outline(n ast.Node) string {
	var sb strings.Builder
	ast.Inspect(n, func(n ast.Node, ctx *ast.Context) bool {
		sb.WriteString(strings.Repeat("  ", ctx.Depth()))
		switch x := n.(type) {
		case *ast.Identifier:
			fmt.Fprintf(&sb, "%T %s", x, x.Name)
		default:
			fmt.Fprintf(&sb, "%T", n)
		}
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

// AssertTreeEqual checks that two trees are deeply equal and reports both
// outlines when they are not.
func AssertTreeEqual(t testing.TB, expected, actual ast.Node, msgAndArgs ...any) bool {
	t.Helper()
	if reflect.DeepEqual(expected, actual) {
		return true
	}
	return assert.Fail(t, fmt.Sprintf("trees differ\nexpected:\n%s\nactual:\n%s",
		Outline(expected), Outline(actual)), msgAndArgs...)
}
