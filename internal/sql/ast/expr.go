package ast

// Identifier is a bare or quoted name. Quoted names keep their delimiters.
type Identifier struct {
	ExprBase
	Name string
}

func (x *Identifier) Children() []Node { return nil }

// Property is a qualified name, owner.name.
type Property struct {
	ExprBase
	Owner Expr
	Name  string
}

func (x *Property) Children() []Node { return appendExpr(nil, x.Owner) }

// AllColumns is the * of a select list or COUNT(*).
type AllColumns struct {
	ExprBase
}

func (x *AllColumns) Children() []Node { return nil }

// IntegerLit is an integer literal that fits in 64 bits.
type IntegerLit struct {
	ExprBase
	Value int64
}

func (x *IntegerLit) Children() []Node { return nil }

// DecimalLit is a numeric literal kept as written (decimals, exponents and
// integers too large for IntegerLit).
type DecimalLit struct {
	ExprBase
	Value string
}

func (x *DecimalLit) Children() []Node { return nil }

// CharLit is a character string literal. Text is unescaped.
type CharLit struct {
	ExprBase
	Text string
}

func (x *CharLit) Children() []Node { return nil }

// NCharLit is a national character literal, N'...'.
type NCharLit struct {
	ExprBase
	Text string
}

func (x *NCharLit) Children() []Node { return nil }

// HexLit is a hexadecimal literal; Hex holds the digits only.
type HexLit struct {
	ExprBase
	Hex string
}

func (x *HexLit) Children() []Node { return nil }

// NullLit is NULL.
type NullLit struct {
	ExprBase
}

func (x *NullLit) Children() []Node { return nil }

// DefaultLit is the DEFAULT keyword used as a value.
type DefaultLit struct {
	ExprBase
}

func (x *DefaultLit) Children() []Node { return nil }

// BinaryExpr is left <op> right.
type BinaryExpr struct {
	ExprBase
	Operator BinaryOperator
	Left     Expr
	Right    Expr
}

func (x *BinaryExpr) Children() []Node {
	return appendExpr(appendExpr(nil, x.Left), x.Right)
}

// UnaryExpr is <op> expr.
type UnaryExpr struct {
	ExprBase
	Operator UnaryOperator
	Expr     Expr
}

func (x *UnaryExpr) Children() []Node { return appendExpr(nil, x.Expr) }

// BetweenExpr is test [NOT] BETWEEN begin AND end.
type BetweenExpr struct {
	ExprBase
	Not   bool
	Test  Expr
	Begin Expr
	End   Expr
}

func (x *BetweenExpr) Children() []Node {
	return appendExpr(appendExpr(appendExpr(nil, x.Test), x.Begin), x.End)
}

// CaseExpr is CASE [value] WHEN .. THEN .. [ELSE ..] END.
type CaseExpr struct {
	ExprBase
	Value Expr
	Items []*CaseItem
	Else  Expr
}

func (x *CaseExpr) Children() []Node {
	out := appendExpr(nil, x.Value)
	for _, item := range x.Items {
		out = append(out, item)
	}
	return appendExpr(out, x.Else)
}

// CaseItem is one WHEN condition THEN value pair.
type CaseItem struct {
	Attributes
	Condition Expr
	Value     Expr
}

func (x *CaseItem) Children() []Node {
	return appendExpr(appendExpr(nil, x.Condition), x.Value)
}

// CastExpr is CAST(expr AS type).
type CastExpr struct {
	ExprBase
	Expr Expr
	Type *DataType
}

func (x *CastExpr) Children() []Node {
	out := appendExpr(nil, x.Expr)
	if x.Type != nil {
		out = append(out, x.Type)
	}
	return out
}

// ExistsExpr is [NOT] EXISTS (query).
type ExistsExpr struct {
	ExprBase
	Not   bool
	Query *Select
}

func (x *ExistsExpr) Children() []Node { return selectChild(nil, x.Query) }

// InListExpr is expr [NOT] IN (targets).
type InListExpr struct {
	ExprBase
	Not     bool
	Expr    Expr
	Targets []Expr
}

func (x *InListExpr) Children() []Node {
	return append(appendExpr(nil, x.Expr), exprs(x.Targets)...)
}

// InSubqueryExpr is expr [NOT] IN (query).
type InSubqueryExpr struct {
	ExprBase
	Not   bool
	Expr  Expr
	Query *Select
}

func (x *InSubqueryExpr) Children() []Node {
	return selectChild(appendExpr(nil, x.Expr), x.Query)
}

// QuantifiedExpr is ANY, ALL or SOME applied to a subquery.
type QuantifiedExpr struct {
	ExprBase
	Quantifier SubqueryQuantifier
	Query      *Select
}

func (x *QuantifiedExpr) Children() []Node { return selectChild(nil, x.Query) }

// AggregateExpr is an aggregate call with an optional quantifier and window.
type AggregateExpr struct {
	ExprBase
	Name   string
	Option SetQuantifier
	Args   []Expr
	Over   *Over
}

func (x *AggregateExpr) Children() []Node {
	out := exprs(x.Args)
	if x.Over != nil {
		out = append(out, x.Over)
	}
	return out
}

// Over is the window of an aggregate call.
type Over struct {
	Attributes
	PartitionBy []Expr
	OrderBy     *OrderBy
}

func (x *Over) Children() []Node {
	out := exprs(x.PartitionBy)
	if x.OrderBy != nil {
		out = append(out, x.OrderBy)
	}
	return out
}

// MethodCall is [owner.]name(args).
type MethodCall struct {
	ExprBase
	Owner Expr
	Name  string
	Args  []Expr
}

func (x *MethodCall) Children() []Node {
	return append(appendExpr(nil, x.Owner), exprs(x.Args)...)
}

// ListExpr is a parenthesized list of two or more expressions.
type ListExpr struct {
	ExprBase
	Items []Expr
}

func (x *ListExpr) Children() []Node { return exprs(x.Items) }

// QueryExpr wraps a SELECT so it can be used as a value.
type QueryExpr struct {
	ExprBase
	Query *Select
}

func (x *QueryExpr) Children() []Node { return selectChild(nil, x.Query) }

// VariableRef is a bind variable or session variable (?, :name, @name, $1).
type VariableRef struct {
	ExprBase
	Name string
}

func (x *VariableRef) Children() []Node { return nil }

// CurrentOfCursor is CURRENT OF cursor.
type CurrentOfCursor struct {
	ExprBase
	Cursor Expr
}

func (x *CurrentOfCursor) Children() []Node { return appendExpr(nil, x.Cursor) }

// CommentHint is an optimizer hint comment; Text excludes the delimiters.
type CommentHint struct {
	Attributes
	Text string
}

func (x *CommentHint) Children() []Node { return nil }

// DataType is a type name with optional literal arguments.
type DataType struct {
	Attributes
	Name string
	Args []Expr
}

func (x *DataType) Children() []Node { return exprs(x.Args) }

func selectChild(out []Node, s *Select) []Node {
	if s == nil {
		return out
	}
	return append(out, s)
}

// NewIdentifier returns an Identifier node.
func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

// NewBinary returns a BinaryExpr node.
func NewBinary(op BinaryOperator, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Operator: op, Left: left, Right: right}
}

// Priority returns the binding priority of e as seen by an enclosing
// operator: the operator priority for binary expressions, comparison
// priority for postfix predicates, and PriorityPrimary otherwise.
func Priority(e Expr) int {
	switch x := e.(type) {
	case *BinaryExpr:
		return x.Operator.Priority()
	case *BetweenExpr, *InListExpr, *InSubqueryExpr:
		return PriorityComparison
	case *UnaryExpr:
		if x.Operator == UnaryNot {
			return PriorityNot
		}
		return PriorityPrimary
	case *ExistsExpr:
		if x.Not {
			return PriorityNot
		}
		return PriorityPrimary
	default:
		return PriorityPrimary
	}
}
