// Package ast defines the syntax tree produced by the SQL parser and the
// traversal protocol used by printers and rewriters.
//
// Nodes never point at their parent. The ancestors of the node being
// visited are available through the Context handed to every Visitor call,
// so a tree may be walked by several goroutines at once.
package ast

import "sort"

// Node is the base interface for all AST nodes.
type Node interface {
	// Children returns the direct children in grammar order. Absent
	// optional children are omitted.
	Children() []Node
	// Attribute returns a dialect annotation, or nil.
	Attribute(name string) any
	// SetAttribute records a dialect annotation on the node.
	SetAttribute(name string, value any)
}

// Attributes is embedded by every node to carry dialect annotations
// without subclassing.
type Attributes struct {
	attrs map[string]any
}

// Attribute returns the named attribute, or nil if absent.
func (a *Attributes) Attribute(name string) any {
	if a.attrs == nil {
		return nil
	}
	return a.attrs[name]
}

// SetAttribute sets the named attribute. A nil value removes it.
func (a *Attributes) SetAttribute(name string, value any) {
	if value == nil {
		delete(a.attrs, name)
		if len(a.attrs) == 0 {
			a.attrs = nil
		}
		return
	}
	if a.attrs == nil {
		a.attrs = make(map[string]any)
	}
	a.attrs[name] = value
}

// AttributeNames returns the attribute names in sorted order.
func (a *Attributes) AttributeNames() []string {
	names := make([]string, 0, len(a.attrs))
	for name := range a.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Attribute names set by the parsers and read by the printer.
const (
	// AttrUsing holds the character set of a hex literal (0x41 USING utf8).
	AttrUsing = "USING"
	// AttrCallEscape marks a CALL written in the {CALL ...} escape syntax.
	AttrCallEscape = "CALL_ESCAPE"
)

// Expr is the base interface for all SQL expressions.
type Expr interface {
	Node
	exprNode()
}

// Statement is the base interface for all SQL statements.
type Statement interface {
	Node
	statementNode()
}

// TableSource is anything that can appear after FROM.
type TableSource interface {
	Node
	tableSourceNode()
}

// SelectQuery is the body of a SELECT: a query block or a set operation.
type SelectQuery interface {
	Node
	selectQueryNode()
}

// TableElement is a column definition or table constraint in CREATE TABLE.
type TableElement interface {
	Node
	tableElementNode()
}

// ColumnConstraint is a constraint attached to a single column definition.
type ColumnConstraint interface {
	Node
	columnConstraintNode()
}

// ExprBase is embedded by expression nodes, including dialect ones.
type ExprBase struct{ Attributes }

func (*ExprBase) exprNode() {}

// StmtBase is embedded by statement nodes, including dialect ones.
type StmtBase struct{ Attributes }

func (*StmtBase) statementNode() {}

// TableSourceBase is embedded by table source nodes.
type TableSourceBase struct{ Attributes }

func (*TableSourceBase) tableSourceNode() {}

// exprs converts a slice of expressions to nodes.
func exprs(list []Expr) []Node {
	out := make([]Node, 0, len(list))
	for _, e := range list {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// appendExpr appends e when it is set.
func appendExpr(out []Node, e Expr) []Node {
	if e == nil {
		return out
	}
	return append(out, e)
}
