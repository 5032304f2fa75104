package format

import (
	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// printStatement prints statements and DDL elements.
func (p *Printer) printStatement(n ast.Node, ctx *ast.Context) bool {
	switch x := n.(type) {
	case *ast.SelectStmt:
		p.Child(ctx, x, x.Select)
	case *ast.InsertStmt:
		p.printInsert(x, ctx)
	case *ast.ValuesClause:
		p.Write("VALUES (")
		printList(p, ctx, x, x.Values, true)
		p.Write(")")
	case *ast.UpdateStmt:
		p.Write("UPDATE ")
		p.hints(ctx, x, x.Hints)
		p.Child(ctx, x, x.Table)
		p.Println()
		p.Write("SET ")
		printList(p, ctx, x, x.Items, false)
		if x.Where != nil {
			p.Println()
			p.Write("WHERE ")
			p.Child(ctx, x, x.Where)
		}
	case *ast.UpdateSetItem:
		p.Child(ctx, x, x.Column)
		p.Write(" = ")
		p.Child(ctx, x, x.Value)
	case *ast.DeleteStmt:
		p.Write("DELETE ")
		p.hints(ctx, x, x.Hints)
		p.Write("FROM ")
		p.Child(ctx, x, x.Table)
		if x.Where != nil {
			p.Write(" WHERE ")
			p.Child(ctx, x, x.Where)
		}
	case *ast.CreateTableStmt:
		p.printCreateTable(x, ctx)
	case *ast.ColumnDef:
		p.printColumnDef(x, ctx)
	case *ast.NotNullConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("NOT NULL")
	case *ast.NullConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("NULL")
	case *ast.PrimaryKeyConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("PRIMARY KEY")
		p.columnList(ctx, x, x.Columns)
	case *ast.UniqueConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("UNIQUE")
		p.columnList(ctx, x, x.Columns)
	case *ast.CheckConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("CHECK (")
		p.Child(ctx, x, x.Expr)
		p.Write(")")
	case *ast.ForeignKeyConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("FOREIGN KEY")
		p.columnList(ctx, x, x.Columns)
		p.Write(" REFERENCES ")
		p.Child(ctx, x, x.RefTable)
		p.columnList(ctx, x, x.RefColumns)
	case *ast.ReferencesConstraint:
		p.constraintName(ctx, x, x.Name)
		p.Write("REFERENCES ")
		p.Child(ctx, x, x.RefTable)
		p.columnList(ctx, x, x.RefColumns)
	case *ast.CreateViewStmt:
		p.Write("CREATE ")
		if x.OrReplace {
			p.Write("OR REPLACE ")
		}
		p.Write("VIEW ")
		p.Child(ctx, x, x.Name)
		p.columnList(ctx, x, x.Columns)
		p.Write(" AS")
		p.Println()
		p.Child(ctx, x, x.Select)
	case *ast.CreateDatabaseStmt:
		p.Write("CREATE DATABASE ")
		p.Child(ctx, x, x.Name)
	case *ast.DropTableStmt:
		p.Write("DROP TABLE ")
		printList(p, ctx, x, x.Tables, false)
	case *ast.DropViewStmt:
		p.Write("DROP VIEW ")
		printList(p, ctx, x, x.Views, false)
	case *ast.DropIndexStmt:
		p.Write("DROP INDEX ")
		p.Child(ctx, x, x.Index)
		if x.Table != nil {
			p.Write(" ON ")
			p.Child(ctx, x, x.Table)
		}
	case *ast.TruncateStmt:
		p.Write("TRUNCATE TABLE ")
		printList(p, ctx, x, x.Tables, false)
	case *ast.SetStmt:
		p.Write("SET ")
		printList(p, ctx, x, x.Items, false)
	case *ast.AssignItem:
		p.operand(ctx, x, x.Target, ast.PriorityComparison, false)
		p.Write(" = ")
		p.Child(ctx, x, x.Value)
	case *ast.CallStmt:
		p.printCall(x, ctx)
	case *ast.UseStmt:
		p.Write("USE ")
		p.Child(ctx, x, x.Database)
	case *ast.CommentStmt:
		p.Write("COMMENT ON ")
		if x.Kind != ast.CommentOnUnspecified {
			p.Write(x.Kind.String() + " ")
		}
		p.Child(ctx, x, x.On)
		p.Write(" IS ")
		p.Child(ctx, x, x.Comment)
	case *ast.SavepointStmt:
		p.Write("SAVEPOINT ")
		p.Child(ctx, x, x.Name)
	case *ast.ReleaseSavepointStmt:
		p.Write("RELEASE SAVEPOINT ")
		p.Child(ctx, x, x.Name)
	case *ast.RollbackStmt:
		p.Write("ROLLBACK")
		if x.To != nil {
			p.Write(" TO ")
			p.Child(ctx, x, x.To)
		}
	case *ast.CommitStmt:
		p.Write("COMMIT")
	default:
		return false
	}
	return true
}

func (p *Printer) hints(ctx *ast.Context, parent ast.Node, hints []*ast.CommentHint) {
	for _, hint := range hints {
		p.Child(ctx, parent, hint)
		p.Write(" ")
	}
}

func (p *Printer) printInsert(x *ast.InsertStmt, ctx *ast.Context) {
	p.Write("INSERT ")
	p.hints(ctx, x, x.Hints)
	p.Write("INTO ")
	p.Child(ctx, x, x.Table)
	if x.Alias != "" {
		p.Write(" " + x.Alias)
	}

	if len(x.Columns) > 0 {
		p.IncrementIndent()
		p.Println()
		p.Write("(")
		printList(p, ctx, x, x.Columns, true)
		p.Write(")")
		p.DecrementIndent()
	}

	if x.Values != nil {
		p.Println()
		p.Child(ctx, x, x.Values)
	}
	if x.Query != nil {
		p.Println()
		p.Child(ctx, x, x.Query)
	}
}

func (p *Printer) printCreateTable(x *ast.CreateTableStmt, ctx *ast.Context) {
	p.Write("CREATE ")
	switch x.Kind {
	case ast.TableGlobalTemporary:
		p.Write("GLOBAL TEMPORARY ")
	case ast.TableLocalTemporary:
		p.Write("LOCAL TEMPORARY ")
	}
	p.Write("TABLE ")
	p.Child(ctx, x, x.Name)
	p.Write(" (")

	p.IncrementIndent()
	for i, el := range x.Elements {
		if i != 0 {
			p.Write(",")
		}
		p.Println()
		p.Child(ctx, x, el)
	}
	p.DecrementIndent()
	p.Println()
	p.Write(")")
}

func (p *Printer) printColumnDef(x *ast.ColumnDef, ctx *ast.Context) {
	p.Child(ctx, x, x.Name)
	if x.Type != nil {
		p.Write(" ")
		p.Child(ctx, x, x.Type)
	}
	if x.Default != nil {
		p.Write(" DEFAULT ")
		p.operand(ctx, x, x.Default, ast.PriorityComparison, false)
	}
	for _, c := range x.Constraints {
		p.Write(" ")
		p.Child(ctx, x, c)
	}
}

func (p *Printer) constraintName(ctx *ast.Context, parent ast.Node, name ast.Expr) {
	if name == nil {
		return
	}
	p.Write("CONSTRAINT ")
	p.Child(ctx, parent, name)
	p.Write(" ")
}

func (p *Printer) columnList(ctx *ast.Context, parent ast.Node, columns []ast.Expr) {
	if len(columns) == 0 {
		return
	}
	p.Write(" (")
	printList(p, ctx, parent, columns, false)
	p.Write(")")
}

func (p *Printer) printCall(x *ast.CallStmt, ctx *ast.Context) {
	escape, _ := x.Attribute(ast.AttrCallEscape).(bool)
	if escape {
		p.Write("{")
	}
	p.Write("CALL ")
	p.Child(ctx, x, x.Procedure)
	p.Write("(")
	printList(p, ctx, x, x.Params, false)
	p.Write(")")
	if escape {
		p.Write("}")
	}
}
