package mysql

import "github.com/dshills/QuantaSQL/internal/sql/ast"

// ShowKeysStmt is SHOW {KEYS|INDEX|INDEXES} FROM tbl [FROM db]. A qualified
// db.tbl is split into Database and Table.
type ShowKeysStmt struct {
	ast.StmtBase
	Keyword  string
	Table    ast.Expr
	Database ast.Expr
}

func (x *ShowKeysStmt) Children() []ast.Node {
	var out []ast.Node
	if x.Table != nil {
		out = append(out, x.Table)
	}
	if x.Database != nil {
		out = append(out, x.Database)
	}
	return out
}

// SetTable sets the table, moving the owner of a qualified name into
// Database.
func (x *ShowKeysStmt) SetTable(name ast.Expr) {
	if prop, ok := name.(*ast.Property); ok {
		x.Database = prop.Owner
		x.Table = ast.NewIdentifier(prop.Name)
		return
	}
	x.Table = name
}

// ShowTablesStmt is SHOW [FULL] TABLES [FROM db] [LIKE pattern].
type ShowTablesStmt struct {
	ast.StmtBase
	Full     bool
	Database ast.Expr
	Like     ast.Expr
}

func (x *ShowTablesStmt) Children() []ast.Node {
	var out []ast.Node
	if x.Database != nil {
		out = append(out, x.Database)
	}
	if x.Like != nil {
		out = append(out, x.Like)
	}
	return out
}

// ShowDatabasesStmt is SHOW DATABASES [LIKE pattern].
type ShowDatabasesStmt struct {
	ast.StmtBase
	Like ast.Expr
}

func (x *ShowDatabasesStmt) Children() []ast.Node {
	if x.Like == nil {
		return nil
	}
	return []ast.Node{x.Like}
}
