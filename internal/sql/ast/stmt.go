package ast

// SelectStmt is a SELECT used as a statement.
type SelectStmt struct {
	StmtBase
	Select *Select
}

func (x *SelectStmt) Children() []Node { return selectChild(nil, x.Select) }

// InsertStmt is INSERT INTO table [alias] [(columns)] VALUES (..) | select.
type InsertStmt struct {
	StmtBase
	Hints   []*CommentHint
	Table   Expr
	Alias   string
	Columns []Expr
	Values  *ValuesClause
	Query   *Select
}

func (x *InsertStmt) Children() []Node {
	var out []Node
	for _, h := range x.Hints {
		out = append(out, h)
	}
	out = appendExpr(out, x.Table)
	out = append(out, exprs(x.Columns)...)
	if x.Values != nil {
		out = append(out, x.Values)
	}
	return selectChild(out, x.Query)
}

// ValuesClause is the parenthesized tuple after VALUES.
type ValuesClause struct {
	Attributes
	Values []Expr
}

func (x *ValuesClause) Children() []Node { return exprs(x.Values) }

// UpdateStmt is UPDATE table SET items [WHERE expr].
type UpdateStmt struct {
	StmtBase
	Hints []*CommentHint
	Table TableSource
	Items []*UpdateSetItem
	Where Expr
}

func (x *UpdateStmt) Children() []Node {
	var out []Node
	for _, h := range x.Hints {
		out = append(out, h)
	}
	if x.Table != nil {
		out = append(out, x.Table)
	}
	for _, item := range x.Items {
		out = append(out, item)
	}
	return appendExpr(out, x.Where)
}

// UpdateSetItem is column = value.
type UpdateSetItem struct {
	Attributes
	Column Expr
	Value  Expr
}

func (x *UpdateSetItem) Children() []Node {
	return appendExpr(appendExpr(nil, x.Column), x.Value)
}

// DeleteStmt is DELETE [FROM] table [WHERE expr].
type DeleteStmt struct {
	StmtBase
	Hints []*CommentHint
	Table Expr
	Where Expr
}

func (x *DeleteStmt) Children() []Node {
	var out []Node
	for _, h := range x.Hints {
		out = append(out, h)
	}
	return appendExpr(appendExpr(out, x.Table), x.Where)
}

// CreateViewStmt is CREATE [OR REPLACE] VIEW name [(columns)] AS select.
type CreateViewStmt struct {
	StmtBase
	OrReplace bool
	Name      Expr
	Columns   []Expr
	Select    *Select
}

func (x *CreateViewStmt) Children() []Node {
	out := append(appendExpr(nil, x.Name), exprs(x.Columns)...)
	return selectChild(out, x.Select)
}

// CreateDatabaseStmt is CREATE DATABASE name.
type CreateDatabaseStmt struct {
	StmtBase
	Name Expr
}

func (x *CreateDatabaseStmt) Children() []Node { return appendExpr(nil, x.Name) }

// DropTableStmt is DROP TABLE t1, t2.
type DropTableStmt struct {
	StmtBase
	Tables []*ExprTableSource
}

func (x *DropTableStmt) Children() []Node { return tableSources(x.Tables) }

// DropViewStmt is DROP VIEW v1, v2.
type DropViewStmt struct {
	StmtBase
	Views []*ExprTableSource
}

func (x *DropViewStmt) Children() []Node { return tableSources(x.Views) }

// DropIndexStmt is DROP INDEX index ON table.
type DropIndexStmt struct {
	StmtBase
	Index Expr
	Table Expr
}

func (x *DropIndexStmt) Children() []Node {
	return appendExpr(appendExpr(nil, x.Index), x.Table)
}

// TruncateStmt is TRUNCATE [TABLE] t1, t2.
type TruncateStmt struct {
	StmtBase
	Tables []*ExprTableSource
}

func (x *TruncateStmt) Children() []Node { return tableSources(x.Tables) }

// SetStmt is SET target = value, ...
type SetStmt struct {
	StmtBase
	Items []*AssignItem
}

func (x *SetStmt) Children() []Node {
	out := make([]Node, 0, len(x.Items))
	for _, item := range x.Items {
		out = append(out, item)
	}
	return out
}

// AssignItem is target = value.
type AssignItem struct {
	Attributes
	Target Expr
	Value  Expr
}

func (x *AssignItem) Children() []Node {
	return appendExpr(appendExpr(nil, x.Target), x.Value)
}

// CallStmt is CALL procedure(params).
type CallStmt struct {
	StmtBase
	Procedure Expr
	Params    []Expr
}

func (x *CallStmt) Children() []Node {
	return append(appendExpr(nil, x.Procedure), exprs(x.Params)...)
}

// UseStmt is USE database.
type UseStmt struct {
	StmtBase
	Database Expr
}

func (x *UseStmt) Children() []Node { return appendExpr(nil, x.Database) }

// CommentKind is the object kind of COMMENT ON.
type CommentKind int

const (
	CommentOnUnspecified CommentKind = iota
	CommentOnTable
	CommentOnColumn
)

func (k CommentKind) String() string {
	switch k {
	case CommentOnTable:
		return "TABLE"
	case CommentOnColumn:
		return "COLUMN"
	default:
		return ""
	}
}

// CommentStmt is COMMENT ON [TABLE|COLUMN] name IS comment.
type CommentStmt struct {
	StmtBase
	Kind    CommentKind
	On      Expr
	Comment Expr
}

func (x *CommentStmt) Children() []Node {
	return appendExpr(appendExpr(nil, x.On), x.Comment)
}

// SavepointStmt is SAVEPOINT name.
type SavepointStmt struct {
	StmtBase
	Name Expr
}

func (x *SavepointStmt) Children() []Node { return appendExpr(nil, x.Name) }

// ReleaseSavepointStmt is RELEASE SAVEPOINT name.
type ReleaseSavepointStmt struct {
	StmtBase
	Name Expr
}

func (x *ReleaseSavepointStmt) Children() []Node { return appendExpr(nil, x.Name) }

// RollbackStmt is ROLLBACK [TO savepoint].
type RollbackStmt struct {
	StmtBase
	To Expr
}

func (x *RollbackStmt) Children() []Node { return appendExpr(nil, x.To) }

// CommitStmt is COMMIT.
type CommitStmt struct {
	StmtBase
}

func (x *CommitStmt) Children() []Node { return nil }

func tableSources(list []*ExprTableSource) []Node {
	out := make([]Node, 0, len(list))
	for _, ts := range list {
		if ts != nil {
			out = append(out, ts)
		}
	}
	return out
}
