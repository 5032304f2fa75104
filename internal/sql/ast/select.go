package ast

// Select is a query with an optional trailing ORDER BY.
type Select struct {
	Attributes
	Query   SelectQuery
	OrderBy *OrderBy
}

func (x *Select) Children() []Node {
	var out []Node
	if x.Query != nil {
		out = append(out, x.Query)
	}
	if x.OrderBy != nil {
		out = append(out, x.OrderBy)
	}
	return out
}

// QueryBlock is a single SELECT ... FROM ... WHERE ... GROUP BY ... block.
type QueryBlock struct {
	Attributes
	Hints      []*CommentHint
	Quantifier SetQuantifier
	Items      []*SelectItem
	From       TableSource
	Where      Expr
	GroupBy    *GroupBy
}

func (*QueryBlock) selectQueryNode() {}

func (x *QueryBlock) Children() []Node {
	var out []Node
	for _, h := range x.Hints {
		out = append(out, h)
	}
	for _, item := range x.Items {
		out = append(out, item)
	}
	if x.From != nil {
		out = append(out, x.From)
	}
	out = appendExpr(out, x.Where)
	if x.GroupBy != nil {
		out = append(out, x.GroupBy)
	}
	return out
}

// SetOpQuery is left <operator> right, e.g. UNION.
type SetOpQuery struct {
	Attributes
	Left     SelectQuery
	Operator SetOperator
	Right    SelectQuery
}

func (*SetOpQuery) selectQueryNode() {}

func (x *SetOpQuery) Children() []Node {
	var out []Node
	if x.Left != nil {
		out = append(out, x.Left)
	}
	if x.Right != nil {
		out = append(out, x.Right)
	}
	return out
}

// SelectItem is one entry of a select list.
type SelectItem struct {
	Attributes
	Expr  Expr
	Alias string
}

func (x *SelectItem) Children() []Node { return appendExpr(nil, x.Expr) }

// GroupBy is GROUP BY items [HAVING expr].
type GroupBy struct {
	Attributes
	Items  []Expr
	Having Expr
}

func (x *GroupBy) Children() []Node { return appendExpr(exprs(x.Items), x.Having) }

// OrderDirection is the optional ASC/DESC of an ORDER BY item.
type OrderDirection int

const (
	OrderDefault OrderDirection = iota
	OrderAsc
	OrderDesc
)

func (d OrderDirection) String() string {
	switch d {
	case OrderAsc:
		return "ASC"
	case OrderDesc:
		return "DESC"
	default:
		return ""
	}
}

// OrderBy is ORDER BY items.
type OrderBy struct {
	Attributes
	Items []*OrderByItem
}

func (x *OrderBy) Children() []Node {
	out := make([]Node, 0, len(x.Items))
	for _, item := range x.Items {
		out = append(out, item)
	}
	return out
}

// OrderByItem is expr [ASC|DESC].
type OrderByItem struct {
	Attributes
	Expr      Expr
	Direction OrderDirection
}

func (x *OrderByItem) Children() []Node { return appendExpr(nil, x.Expr) }
