package parser

import (
	"fmt"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// parseCreate parses CREATE statements (TABLE, VIEW, DATABASE).
func (p *Parser) parseCreate() (ast.Statement, error) {
	if !p.consume(TokenCreate, "expected CREATE") {
		return nil, p.lastError()
	}

	orReplace := false
	if p.match(TokenOr) {
		if !p.consume(TokenReplace, "expected REPLACE after OR") {
			return nil, p.lastError()
		}
		orReplace = true
	}

	switch p.current.Type { //nolint:exhaustive
	case TokenView:
		return p.parseCreateView(orReplace)
	case TokenTable, TokenGlobal, TokenLocal, TokenTemporary:
		if !orReplace {
			return p.parseCreateTable()
		}
	case TokenDatabase:
		if !orReplace {
			p.advance()
			name, err := p.ParseName()
			if err != nil {
				return nil, err
			}
			return &ast.CreateDatabaseStmt{Name: name}, nil
		}
	}

	if kind := p.objectKind(); kind != "" {
		if orReplace {
			return nil, p.Unsupported("CREATE OR REPLACE " + kind)
		}
		return nil, p.Unsupported("CREATE " + kind)
	}
	if orReplace {
		return nil, p.error(fmt.Sprintf("expected VIEW after CREATE OR REPLACE, got %s", p.current))
	}
	return nil, p.error(fmt.Sprintf("expected TABLE, VIEW or DATABASE after CREATE, got %s", p.current))
}

// parseCreateTable parses [GLOBAL|LOCAL] [TEMPORARY] TABLE name (elements).
func (p *Parser) parseCreateTable() (*ast.CreateTableStmt, error) {
	stmt := &ast.CreateTableStmt{}

	switch {
	case p.match(TokenGlobal):
		stmt.Kind = ast.TableGlobalTemporary
		if !p.consume(TokenTemporary, "expected TEMPORARY after GLOBAL") {
			return nil, p.lastError()
		}
	case p.match(TokenLocal):
		stmt.Kind = ast.TableLocalTemporary
		if !p.consume(TokenTemporary, "expected TEMPORARY after LOCAL") {
			return nil, p.lastError()
		}
	case p.match(TokenTemporary):
		stmt.Kind = ast.TableLocalTemporary
	}

	if !p.consume(TokenTable, "expected TABLE") {
		return nil, p.lastError()
	}

	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt.Name = name

	if !p.consume(TokenLeftParen, "expected '(' after table name") {
		return nil, p.lastError()
	}

	// Parse column definitions and table constraints
	for {
		el, err := p.parseTableElement()
		if err != nil {
			return nil, err
		}
		stmt.Elements = append(stmt.Elements, el)

		if !p.match(TokenComma) {
			break
		}
	}

	if !p.consume(TokenRightParen, "expected ')' after table elements") {
		return nil, p.lastError()
	}
	return stmt, nil
}

// parseTableElement parses a table constraint or a column definition.
func (p *Parser) parseTableElement() (ast.TableElement, error) {
	switch p.current.Type { //nolint:exhaustive
	case TokenConstraint, TokenPrimary, TokenUnique, TokenCheck, TokenForeign:
		return p.parseTableConstraint()
	}
	return p.parseColumnDef()
}

// parseColumnDef parses name type [DEFAULT expr] [constraints].
func (p *Parser) parseColumnDef() (*ast.ColumnDef, error) {
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	col := &ast.ColumnDef{Name: name}

	dt, err := p.ParseDataType()
	if err != nil {
		return nil, err
	}
	col.Type = dt

	for {
		if p.match(TokenDefault) {
			expr, err := p.parseBinary(ast.PriorityComparison - 1)
			if err != nil {
				return nil, err
			}
			col.Default = expr
			continue
		}

		c, ok, err := p.parseColumnConstraint()
		if err != nil {
			return nil, err
		}
		if !ok {
			return col, nil
		}
		col.Constraints = append(col.Constraints, c)
	}
}

// parseConstraintName parses an optional CONSTRAINT name.
func (p *Parser) parseConstraintName() (ast.Expr, error) {
	if !p.match(TokenConstraint) {
		return nil, nil
	}
	return p.ParseName()
}

// parseColumnConstraint parses one column constraint, reporting false when
// none is present.
func (p *Parser) parseColumnConstraint() (ast.ColumnConstraint, bool, error) {
	name, err := p.parseConstraintName()
	if err != nil {
		return nil, false, err
	}

	switch p.current.Type { //nolint:exhaustive
	case TokenNot:
		p.advance()
		if !p.consume(TokenNull, "expected NULL after NOT") {
			return nil, false, p.lastError()
		}
		return &ast.NotNullConstraint{Name: name}, true, nil
	case TokenNull:
		p.advance()
		return &ast.NullConstraint{Name: name}, true, nil
	case TokenPrimary:
		p.advance()
		if !p.consume(TokenKey, "expected KEY after PRIMARY") {
			return nil, false, p.lastError()
		}
		return &ast.PrimaryKeyConstraint{Name: name}, true, nil
	case TokenUnique:
		p.advance()
		return &ast.UniqueConstraint{Name: name}, true, nil
	case TokenCheck:
		expr, err := p.parseCheck()
		if err != nil {
			return nil, false, err
		}
		return &ast.CheckConstraint{Name: name, Expr: expr}, true, nil
	case TokenReferences:
		table, columns, err := p.parseReferences()
		if err != nil {
			return nil, false, err
		}
		return &ast.ReferencesConstraint{Name: name, RefTable: table, RefColumns: columns}, true, nil
	}

	if name != nil {
		return nil, false, p.error(fmt.Sprintf("expected constraint after CONSTRAINT name, got %s", p.current))
	}
	return nil, false, nil
}

// parseTableConstraint parses a table-level constraint.
func (p *Parser) parseTableConstraint() (ast.TableElement, error) {
	name, err := p.parseConstraintName()
	if err != nil {
		return nil, err
	}

	switch p.current.Type { //nolint:exhaustive
	case TokenPrimary:
		p.advance()
		if !p.consume(TokenKey, "expected KEY after PRIMARY") {
			return nil, p.lastError()
		}
		columns, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		return &ast.PrimaryKeyConstraint{Name: name, Columns: columns}, nil
	case TokenUnique:
		p.advance()
		columns, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		return &ast.UniqueConstraint{Name: name, Columns: columns}, nil
	case TokenCheck:
		expr, err := p.parseCheck()
		if err != nil {
			return nil, err
		}
		return &ast.CheckConstraint{Name: name, Expr: expr}, nil
	case TokenForeign:
		p.advance()
		if !p.consume(TokenKey, "expected KEY after FOREIGN") {
			return nil, p.lastError()
		}
		columns, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		table, refColumns, err := p.parseReferences()
		if err != nil {
			return nil, err
		}
		return &ast.ForeignKeyConstraint{
			Name:       name,
			Columns:    columns,
			RefTable:   table,
			RefColumns: refColumns,
		}, nil
	}
	return nil, p.error(fmt.Sprintf("expected PRIMARY KEY, UNIQUE, CHECK or FOREIGN KEY, got %s", p.current))
}

// parseCheck parses CHECK (expr).
func (p *Parser) parseCheck() (ast.Expr, error) {
	if !p.consume(TokenCheck, "expected CHECK") {
		return nil, p.lastError()
	}
	if !p.consume(TokenLeftParen, "expected '(' after CHECK") {
		return nil, p.lastError()
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenRightParen, "expected ')' after CHECK expression") {
		return nil, p.lastError()
	}
	return expr, nil
}

// parseReferences parses REFERENCES table [(columns)].
func (p *Parser) parseReferences() (ast.Expr, []ast.Expr, error) {
	if !p.consume(TokenReferences, "expected REFERENCES") {
		return nil, nil, p.lastError()
	}
	table, err := p.ParseName()
	if err != nil {
		return nil, nil, err
	}
	if !p.check(TokenLeftParen) {
		return table, nil, nil
	}
	columns, err := p.parseColumnList()
	if err != nil {
		return nil, nil, err
	}
	return table, columns, nil
}

// parseColumnList parses (name, name, ...).
func (p *Parser) parseColumnList() ([]ast.Expr, error) {
	if !p.consume(TokenLeftParen, "expected '(' before column list") {
		return nil, p.lastError()
	}
	var columns []ast.Expr
	for {
		name, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		columns = append(columns, name)

		if !p.match(TokenComma) {
			break
		}
	}
	if !p.consume(TokenRightParen, "expected ')' after column list") {
		return nil, p.lastError()
	}
	return columns, nil
}

// parseCreateView parses VIEW name [(columns)] AS select.
func (p *Parser) parseCreateView(orReplace bool) (*ast.CreateViewStmt, error) {
	if !p.consume(TokenView, "expected VIEW") {
		return nil, p.lastError()
	}
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt := &ast.CreateViewStmt{OrReplace: orReplace, Name: name}

	if p.check(TokenLeftParen) {
		columns, err := p.parseColumnList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns
	}

	if !p.consume(TokenAs, "expected AS in CREATE VIEW") {
		return nil, p.lastError()
	}
	if !p.isQueryStart() {
		return nil, p.error(fmt.Sprintf("expected SELECT after AS, got %s", p.current))
	}
	sel, err := p.ParseSelect()
	if err != nil {
		return nil, err
	}
	stmt.Select = sel
	return stmt, nil
}
