package ast

// Visitor is implemented by tree walkers. Visit is called before a node's
// children; returning false skips them. EndVisit is always called, even
// when Visit returned false.
type Visitor interface {
	Visit(n Node, ctx *Context) bool
	EndVisit(n Node, ctx *Context)
}

// BaseVisitor descends everywhere and does nothing. Embed it to implement
// only the callbacks you need.
type BaseVisitor struct{}

func (BaseVisitor) Visit(Node, *Context) bool { return true }
func (BaseVisitor) EndVisit(Node, *Context)   {}

// Context holds the ancestors of the node currently being visited.
type Context struct {
	path []Node
}

// NewContext returns a context whose ancestor chain is the given nodes,
// outermost first.
func NewContext(ancestors ...Node) *Context {
	return &Context{path: append([]Node(nil), ancestors...)}
}

// Parent returns the direct parent of the node being visited, or nil at
// the root.
func (c *Context) Parent() Node {
	return c.Ancestor(0)
}

// Ancestor returns the i-th ancestor: 0 is the parent, 1 the grandparent.
func (c *Context) Ancestor(i int) Node {
	if c == nil || i < 0 || i >= len(c.path) {
		return nil
	}
	return c.path[len(c.path)-1-i]
}

// Depth returns the number of ancestors.
func (c *Context) Depth() int {
	if c == nil {
		return 0
	}
	return len(c.path)
}

// Path returns a copy of the ancestor chain, outermost first.
func (c *Context) Path() []Node {
	if c == nil {
		return nil
	}
	return append([]Node(nil), c.path...)
}

func (c *Context) push(n Node) { c.path = append(c.path, n) }
func (c *Context) pop()        { c.path = c.path[:len(c.path)-1] }

// WalkChild walks child with parent pushed on the ancestor chain. Visitors
// that drive their own traversal order use it instead of Walk so their
// children still see the right parent.
func (c *Context) WalkChild(v Visitor, parent, child Node) {
	if child == nil {
		return
	}
	c.push(parent)
	walk(v, child, c)
	c.pop()
}

// Walk traverses n depth-first with a fresh context.
func Walk(v Visitor, n Node) {
	WalkContext(v, n, &Context{})
}

// WalkContext traverses n depth-first using ctx as the ancestor chain of n.
func WalkContext(v Visitor, n Node, ctx *Context) {
	if n == nil {
		return
	}
	if ctx == nil {
		ctx = &Context{}
	}
	walk(v, n, ctx)
}

func walk(v Visitor, n Node, ctx *Context) {
	if v.Visit(n, ctx) {
		ctx.push(n)
		for _, child := range n.Children() {
			walk(v, child, ctx)
		}
		ctx.pop()
	}
	v.EndVisit(n, ctx)
}

type inspector func(Node, *Context) bool

func (f inspector) Visit(n Node, ctx *Context) bool { return f(n, ctx) }
func (f inspector) EndVisit(Node, *Context)         {}

// Inspect calls f for every node in pre-order. Returning false skips the
// node's children.
func Inspect(n Node, f func(Node, *Context) bool) {
	Walk(inspector(f), n)
}
