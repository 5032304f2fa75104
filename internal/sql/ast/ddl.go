package ast

// TableKind distinguishes temporary tables in CREATE TABLE.
type TableKind int

const (
	TablePermanent TableKind = iota
	TableGlobalTemporary
	TableLocalTemporary
)

// CreateTableStmt is CREATE [GLOBAL|LOCAL TEMPORARY] TABLE name (elements).
type CreateTableStmt struct {
	StmtBase
	Kind     TableKind
	Name     Expr
	Elements []TableElement
}

func (x *CreateTableStmt) Children() []Node {
	out := appendExpr(nil, x.Name)
	for _, el := range x.Elements {
		out = append(out, el)
	}
	return out
}

// ColumnDef is name type [DEFAULT expr] [constraints].
type ColumnDef struct {
	Attributes
	Name        Expr
	Type        *DataType
	Default     Expr
	Constraints []ColumnConstraint
}

func (*ColumnDef) tableElementNode() {}

func (x *ColumnDef) Children() []Node {
	out := appendExpr(nil, x.Name)
	if x.Type != nil {
		out = append(out, x.Type)
	}
	out = appendExpr(out, x.Default)
	for _, c := range x.Constraints {
		out = append(out, c)
	}
	return out
}

// NotNullConstraint is [CONSTRAINT name] NOT NULL.
type NotNullConstraint struct {
	Attributes
	Name Expr
}

func (*NotNullConstraint) columnConstraintNode() {}

func (x *NotNullConstraint) Children() []Node { return appendExpr(nil, x.Name) }

// NullConstraint is an explicit NULL on a column.
type NullConstraint struct {
	Attributes
	Name Expr
}

func (*NullConstraint) columnConstraintNode() {}

func (x *NullConstraint) Children() []Node { return appendExpr(nil, x.Name) }

// PrimaryKeyConstraint is [CONSTRAINT name] PRIMARY KEY [(columns)].
// Columns is empty when the constraint is attached to a column.
type PrimaryKeyConstraint struct {
	Attributes
	Name    Expr
	Columns []Expr
}

func (*PrimaryKeyConstraint) columnConstraintNode() {}
func (*PrimaryKeyConstraint) tableElementNode()     {}

func (x *PrimaryKeyConstraint) Children() []Node {
	return append(appendExpr(nil, x.Name), exprs(x.Columns)...)
}

// UniqueConstraint is [CONSTRAINT name] UNIQUE [(columns)].
type UniqueConstraint struct {
	Attributes
	Name    Expr
	Columns []Expr
}

func (*UniqueConstraint) columnConstraintNode() {}
func (*UniqueConstraint) tableElementNode()     {}

func (x *UniqueConstraint) Children() []Node {
	return append(appendExpr(nil, x.Name), exprs(x.Columns)...)
}

// CheckConstraint is [CONSTRAINT name] CHECK (expr).
type CheckConstraint struct {
	Attributes
	Name Expr
	Expr Expr
}

func (*CheckConstraint) columnConstraintNode() {}
func (*CheckConstraint) tableElementNode()     {}

func (x *CheckConstraint) Children() []Node {
	return appendExpr(appendExpr(nil, x.Name), x.Expr)
}

// ForeignKeyConstraint is [CONSTRAINT name] FOREIGN KEY (columns)
// REFERENCES table [(columns)].
type ForeignKeyConstraint struct {
	Attributes
	Name       Expr
	Columns    []Expr
	RefTable   Expr
	RefColumns []Expr
}

func (*ForeignKeyConstraint) tableElementNode() {}

func (x *ForeignKeyConstraint) Children() []Node {
	out := append(appendExpr(nil, x.Name), exprs(x.Columns)...)
	out = appendExpr(out, x.RefTable)
	return append(out, exprs(x.RefColumns)...)
}

// ReferencesConstraint is a column-level REFERENCES table [(columns)].
type ReferencesConstraint struct {
	Attributes
	Name       Expr
	RefTable   Expr
	RefColumns []Expr
}

func (*ReferencesConstraint) columnConstraintNode() {}

func (x *ReferencesConstraint) Children() []Node {
	out := appendExpr(appendExpr(nil, x.Name), x.RefTable)
	return append(out, exprs(x.RefColumns)...)
}
