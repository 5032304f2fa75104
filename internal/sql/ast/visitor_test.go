package ast

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleSelect builds SELECT a, b FROM t WHERE a = 1 AND b = 2.
func sampleSelect() *SelectStmt {
	where := NewBinary(OpAnd,
		NewBinary(OpEqual, NewIdentifier("a"), &IntegerLit{Value: 1}),
		NewBinary(OpEqual, NewIdentifier("b"), &IntegerLit{Value: 2}),
	)
	return &SelectStmt{Select: &Select{Query: &QueryBlock{
		Items: []*SelectItem{{Expr: NewIdentifier("a")}, {Expr: NewIdentifier("b")}},
		From:  &ExprTableSource{Expr: NewIdentifier("t")},
		Where: where,
	}}}
}

type recorder struct {
	events []string
	skip   func(Node) bool
}

func (r *recorder) Visit(n Node, _ *Context) bool {
	r.events = append(r.events, "visit "+nodeName(n))
	return r.skip == nil || !r.skip(n)
}

func (r *recorder) EndVisit(n Node, _ *Context) {
	r.events = append(r.events, "end "+nodeName(n))
}

func nodeName(n Node) string {
	switch x := n.(type) {
	case *Identifier:
		return x.Name
	case *IntegerLit:
		return "int"
	case *BinaryExpr:
		return x.Operator.String()
	case *SelectStmt:
		return "stmt"
	case *Select:
		return "select"
	case *QueryBlock:
		return "block"
	case *SelectItem:
		return "item"
	case *ExprTableSource:
		return "table"
	default:
		return "?"
	}
}

func TestWalkOrder(t *testing.T) {
	r := &recorder{}
	Walk(r, sampleSelect())

	expected := []string{
		"visit stmt", "visit select", "visit block",
		"visit item", "visit a", "end a", "end item",
		"visit item", "visit b", "end b", "end item",
		"visit table", "visit t", "end t", "end table",
		"visit AND",
		"visit =", "visit a", "end a", "visit int", "end int", "end =",
		"visit =", "visit b", "end b", "visit int", "end int", "end =",
		"end AND",
		"end block", "end select", "end stmt",
	}
	assert.Equal(t, expected, r.events)
}

func TestWalkSkipStillEnds(t *testing.T) {
	r := &recorder{skip: func(n Node) bool {
		_, ok := n.(*BinaryExpr)
		return ok
	}}
	Walk(r, sampleSelect().Select.Query.(*QueryBlock).Where)
	assert.Equal(t, []string{"visit AND", "end AND"}, r.events)
}

func TestContextParent(t *testing.T) {
	stmt := sampleSelect()
	block := stmt.Select.Query.(*QueryBlock)

	var whereParent Node
	var whereDepth int
	var identPaths [][]Node
	Inspect(stmt, func(n Node, ctx *Context) bool {
		if n == block.Where {
			whereParent = ctx.Parent()
			whereDepth = ctx.Depth()
		}
		if id, ok := n.(*Identifier); ok && id.Name == "t" {
			identPaths = append(identPaths, ctx.Path())
		}
		return true
	})

	assert.Same(t, block, whereParent)
	assert.Equal(t, 3, whereDepth)
	require.Len(t, identPaths, 1)
	assert.Equal(t, []Node{stmt, stmt.Select, block, block.From}, identPaths[0])
}

func TestContextAncestor(t *testing.T) {
	a, b, c := NewIdentifier("a"), NewIdentifier("b"), NewIdentifier("c")
	ctx := NewContext(a, b, c)

	assert.Same(t, c, ctx.Parent())
	assert.Same(t, b, ctx.Ancestor(1))
	assert.Same(t, a, ctx.Ancestor(2))
	assert.Nil(t, ctx.Ancestor(3))
	assert.Nil(t, ctx.Ancestor(-1))

	var nilCtx *Context
	assert.Nil(t, nilCtx.Parent())
	assert.Equal(t, 0, nilCtx.Depth())
}

type manualVisitor struct {
	BaseVisitor
	parents map[string]Node
}

func (m *manualVisitor) Visit(n Node, ctx *Context) bool {
	if id, ok := n.(*Identifier); ok {
		m.parents[id.Name] = ctx.Parent()
	}
	bin, ok := n.(*BinaryExpr)
	if !ok {
		return true
	}
	// right operand first
	ctx.WalkChild(m, bin, bin.Right)
	ctx.WalkChild(m, bin, bin.Left)
	return false
}

func TestContextWalkChild(t *testing.T) {
	expr := NewBinary(OpAdd, NewIdentifier("x"), NewIdentifier("y"))
	m := &manualVisitor{parents: map[string]Node{}}
	Walk(m, expr)

	assert.Same(t, expr, m.parents["x"])
	assert.Same(t, expr, m.parents["y"])
}

func TestConcurrentWalks(t *testing.T) {
	stmt := sampleSelect()

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for i := range counts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			Inspect(stmt, func(n Node, ctx *Context) bool {
				if _, ok := n.(*Identifier); ok {
					assert.NotNil(t, ctx.Parent())
					counts[i]++
				}
				return true
			})
		}(i)
	}
	wg.Wait()

	for _, c := range counts {
		assert.Equal(t, 5, c)
	}
}
