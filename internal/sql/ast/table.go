package ast

// ExprTableSource is a named table (or other expression) with an optional alias.
type ExprTableSource struct {
	TableSourceBase
	Expr  Expr
	Alias string
}

func (x *ExprTableSource) Children() []Node { return appendExpr(nil, x.Expr) }

// JoinType is the kind of a join, including the implicit comma join.
type JoinType int

const (
	JoinComma JoinType = iota
	Join
	JoinInner
	JoinLeftOuter
	JoinRightOuter
	JoinFullOuter
	JoinCross
	JoinNatural
)

func (jt JoinType) String() string {
	switch jt {
	case JoinComma:
		return ","
	case JoinInner:
		return "INNER JOIN"
	case JoinLeftOuter:
		return "LEFT JOIN"
	case JoinRightOuter:
		return "RIGHT JOIN"
	case JoinFullOuter:
		return "FULL JOIN"
	case JoinCross:
		return "CROSS JOIN"
	case JoinNatural:
		return "NATURAL JOIN"
	default:
		return "JOIN"
	}
}

// JoinTableSource is left <join> right [ON condition].
type JoinTableSource struct {
	TableSourceBase
	Left      TableSource
	JoinType  JoinType
	Right     TableSource
	Condition Expr
}

func (x *JoinTableSource) Children() []Node {
	var out []Node
	if x.Left != nil {
		out = append(out, x.Left)
	}
	if x.Right != nil {
		out = append(out, x.Right)
	}
	return appendExpr(out, x.Condition)
}

// SubqueryTableSource is (select) [alias].
type SubqueryTableSource struct {
	TableSourceBase
	Select *Select
	Alias  string
}

func (x *SubqueryTableSource) Children() []Node { return selectChild(nil, x.Select) }
