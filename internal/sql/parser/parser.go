package parser

import (
	"fmt"
	"strings"

	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// Parser parses SQL statements from tokens.
type Parser struct {
	*ExprParser
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string, opts ...Option) *Parser {
	return &Parser{ExprParser: NewExprParser(sql, opts...)}
}

// ParseStatementList parses every statement in the input. Statements are
// separated by semicolons; hint comments between statements are skipped.
// Two statements with no semicolon between them are a syntax error. The
// first error aborts the whole input.
func (p *Parser) ParseStatementList() ([]ast.Statement, error) {
	var statements []ast.Statement

	for {
		switch p.current.Type { //nolint:exhaustive
		case TokenEOF:
			p.logger.Debug("parsed statements", "count", len(statements), "dialect", p.dialect.Name)
			return statements, nil
		case TokenSemicolon, TokenHint:
			p.advance()
			continue
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		for p.check(TokenHint) {
			p.advance()
		}
		if !p.check(TokenSemicolon) && !p.check(TokenEOF) {
			return nil, p.error(fmt.Sprintf("unexpected token %s after statement", p.current))
		}
	}
}

// ParseStatement parses exactly one statement with an optional trailing
// semicolon.
func (p *Parser) ParseStatement() (ast.Statement, error) {
	stmts, err := p.ParseStatementList()
	if err != nil {
		return nil, err
	}
	switch len(stmts) {
	case 0:
		return nil, NewParseError("no statement found", 1, 1)
	case 1:
		return stmts[0], nil
	default:
		return nil, NewParseError(fmt.Sprintf("expected one statement, found %d", len(stmts)), 1, 1)
	}
}

// unsupportedStatements are statement keywords recognised but not
// implemented.
var unsupportedStatements = map[TokenType]bool{
	TokenAlter:    true,
	TokenRename:   true,
	TokenShow:     true,
	TokenGrant:    true,
	TokenRevoke:   true,
	TokenMerge:    true,
	TokenExplain:  true,
	TokenDescribe: true,
	TokenDesc:     true,
	TokenLock:     true,
	TokenBegin:    true,
	TokenWith:     true,
}

// parseStatement dispatches on the leading keyword.
func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.current.Type { //nolint:exhaustive
	case TokenSelect:
		return p.parseSelectStatement()
	case TokenLeftParen:
		// A '(' opens either a parenthesized SELECT or something only a
		// dialect understands.
		m := p.Mark()
		for p.match(TokenLeftParen) {
		}
		isSelect := p.check(TokenSelect)
		p.Reset(m)
		if isSelect {
			return p.parseSelectStatement()
		}
		return p.parseDialectStatement()
	case TokenInsert:
		return p.parseInsert()
	case TokenUpdate:
		return p.parseUpdate()
	case TokenDelete:
		return p.parseDelete()
	case TokenCreate:
		return p.parseCreate()
	case TokenDrop:
		return p.parseDrop()
	case TokenTruncate:
		return p.parseTruncate()
	case TokenSet:
		return p.parseSet()
	case TokenCall, TokenLeftBrace:
		return p.parseCall()
	case TokenUse:
		return p.parseUse()
	case TokenComment:
		return p.parseComment()
	case TokenSavepoint:
		return p.parseSavepoint()
	case TokenRelease:
		return p.parseReleaseSavepoint()
	case TokenRollback:
		return p.parseRollback()
	case TokenCommit:
		return p.parseCommit()
	default:
		return p.parseDialectStatement()
	}
}

// parseDialectStatement gives the dialect hook one chance at the current
// construct before reporting it.
func (p *Parser) parseDialectStatement() (ast.Statement, error) {
	if hook := p.dialect.StatementHook; hook != nil {
		m := p.Mark()
		stmt, err := hook(p)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			p.logger.Debug("dialect statement", "dialect", p.dialect.Name, "type", fmt.Sprintf("%T", stmt))
			return stmt, nil
		}
		p.Reset(m)
		p.reporter.Report(fmt.Sprintf("%s dialect declined statement at line %d, column %d", p.dialect.Name, p.current.Line, p.current.Column))
	}

	if unsupportedStatements[p.current.Type] {
		return nil, p.Unsupported(p.current.Type.String() + " statement")
	}
	if p.check(TokenEOF) {
		return nil, p.error("unexpected end of input, expected statement")
	}
	return nil, p.error(fmt.Sprintf("unexpected token %s at start of statement", p.current))
}

func (p *Parser) parseSelectStatement() (*ast.SelectStmt, error) {
	sel, err := p.ParseSelect()
	if err != nil {
		return nil, err
	}
	return &ast.SelectStmt{Select: sel}, nil
}

// parseInsert parses INSERT [hints] [INTO] name [alias] [(columns)]
// (VALUES (values) | select).
func (p *Parser) parseInsert() (*ast.InsertStmt, error) {
	if !p.consume(TokenInsert, "expected INSERT") {
		return nil, p.lastError()
	}
	stmt := &ast.InsertStmt{Hints: p.parseHints()}
	p.match(TokenInto)

	table, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if p.check(TokenIdentifier) {
		stmt.Alias = p.current.Text
		p.advance()
	}

	if p.check(TokenLeftParen) && !p.isQueryStart() {
		p.advance()
		columns, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		stmt.Columns = columns
		if !p.consume(TokenRightParen, "expected ')' after column list") {
			return nil, p.lastError()
		}
	}

	switch {
	case p.match(TokenValues):
		if !p.consume(TokenLeftParen, "expected '(' after VALUES") {
			return nil, p.lastError()
		}
		values, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenRightParen, "expected ')' after values") {
			return nil, p.lastError()
		}
		stmt.Values = &ast.ValuesClause{Values: values}
		if p.check(TokenComma) {
			return nil, p.Unsupported("multi-row VALUES")
		}
	case p.isQueryStart():
		query, err := p.ParseSelect()
		if err != nil {
			return nil, err
		}
		stmt.Query = query
	default:
		return nil, p.error(fmt.Sprintf("expected VALUES or SELECT, got %s", p.current))
	}

	return stmt, nil
}

// parseUpdate parses UPDATE [hints] table SET col = expr, ... [WHERE expr].
func (p *Parser) parseUpdate() (*ast.UpdateStmt, error) {
	if !p.consume(TokenUpdate, "expected UPDATE") {
		return nil, p.lastError()
	}
	stmt := &ast.UpdateStmt{Hints: p.parseHints()}

	table, err := p.ParseTableSource()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if !p.consume(TokenSet, "expected SET") {
		return nil, p.lastError()
	}

	// Parse set clauses
	for {
		column, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenEqual, "expected '='") {
			return nil, p.lastError()
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, &ast.UpdateSetItem{Column: column, Value: value})

		if !p.match(TokenComma) {
			break
		}
	}

	// Parse optional WHERE clause
	if p.match(TokenWhere) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	return stmt, nil
}

// parseDelete parses DELETE [hints] [FROM] name [WHERE expr].
func (p *Parser) parseDelete() (*ast.DeleteStmt, error) {
	if !p.consume(TokenDelete, "expected DELETE") {
		return nil, p.lastError()
	}
	stmt := &ast.DeleteStmt{Hints: p.parseHints()}
	p.match(TokenFrom)

	table, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	// Parse optional WHERE clause
	if p.match(TokenWhere) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	return stmt, nil
}

// parseDrop parses DROP TABLE, DROP VIEW and DROP INDEX.
func (p *Parser) parseDrop() (ast.Statement, error) {
	if !p.consume(TokenDrop, "expected DROP") {
		return nil, p.lastError()
	}

	switch p.current.Type { //nolint:exhaustive
	case TokenTable:
		p.advance()
		tables, err := p.parseNameList()
		if err != nil {
			return nil, err
		}
		return &ast.DropTableStmt{Tables: tables}, nil
	case TokenView:
		p.advance()
		views, err := p.parseNameList()
		if err != nil {
			return nil, err
		}
		return &ast.DropViewStmt{Views: views}, nil
	case TokenIndex:
		p.advance()
		return p.parseDropIndex()
	}

	if kind := p.objectKind(); kind != "" {
		return nil, p.Unsupported("DROP " + kind)
	}
	return nil, p.error(fmt.Sprintf("expected TABLE, VIEW or INDEX after DROP, got %s", p.current))
}

func (p *Parser) parseDropIndex() (*ast.DropIndexStmt, error) {
	index, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt := &ast.DropIndexStmt{Index: index}

	if p.match(TokenOn) {
		table, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		stmt.Table = table
	}
	return stmt, nil
}

// parseTruncate parses TRUNCATE [TABLE] name, ...
func (p *Parser) parseTruncate() (*ast.TruncateStmt, error) {
	if !p.consume(TokenTruncate, "expected TRUNCATE") {
		return nil, p.lastError()
	}
	p.match(TokenTable)

	tables, err := p.parseNameList()
	if err != nil {
		return nil, err
	}
	return &ast.TruncateStmt{Tables: tables}, nil
}

// parseNameList parses name, name, ... as table sources.
func (p *Parser) parseNameList() ([]*ast.ExprTableSource, error) {
	var list []*ast.ExprTableSource
	for {
		name, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		list = append(list, &ast.ExprTableSource{Expr: name})

		if !p.match(TokenComma) {
			return list, nil
		}
	}
}

// parseSet parses SET target = value, ...
func (p *Parser) parseSet() (*ast.SetStmt, error) {
	if !p.consume(TokenSet, "expected SET") {
		return nil, p.lastError()
	}

	stmt := &ast.SetStmt{}
	for {
		target, err := p.parseBinary(ast.PriorityComparison - 1)
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenEqual, "expected '=' in SET") {
			return nil, p.lastError()
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Items = append(stmt.Items, &ast.AssignItem{Target: target, Value: value})

		if !p.match(TokenComma) {
			return stmt, nil
		}
	}
}

// parseCall parses CALL name[(args)] and the {CALL ...} escape.
func (p *Parser) parseCall() (*ast.CallStmt, error) {
	brace := p.match(TokenLeftBrace)
	if !p.consume(TokenCall, "expected CALL") {
		return nil, p.lastError()
	}

	procedure, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt := &ast.CallStmt{Procedure: procedure}

	if p.match(TokenLeftParen) {
		if !p.check(TokenRightParen) {
			params, err := p.ParseExpressionList()
			if err != nil {
				return nil, err
			}
			stmt.Params = params
		}
		if !p.consume(TokenRightParen, "expected ')' after CALL parameters") {
			return nil, p.lastError()
		}
	}

	if brace {
		if !p.consume(TokenRightBrace, "expected '}' to close CALL escape") {
			return nil, p.lastError()
		}
		stmt.SetAttribute(ast.AttrCallEscape, true)
	}
	return stmt, nil
}

func (p *Parser) parseUse() (*ast.UseStmt, error) {
	if !p.consume(TokenUse, "expected USE") {
		return nil, p.lastError()
	}
	db, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	return &ast.UseStmt{Database: db}, nil
}

// parseComment parses COMMENT ON [TABLE|COLUMN] name IS expr.
func (p *Parser) parseComment() (*ast.CommentStmt, error) {
	if !p.consume(TokenComment, "expected COMMENT") {
		return nil, p.lastError()
	}
	if !p.consume(TokenOn, "expected ON after COMMENT") {
		return nil, p.lastError()
	}

	stmt := &ast.CommentStmt{}
	switch {
	case p.match(TokenTable):
		stmt.Kind = ast.CommentOnTable
	case p.match(TokenColumn):
		stmt.Kind = ast.CommentOnColumn
	}

	on, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	stmt.On = on

	if !p.consume(TokenIs, "expected IS in COMMENT") {
		return nil, p.lastError()
	}
	comment, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Comment = comment
	return stmt, nil
}

func (p *Parser) parseSavepoint() (*ast.SavepointStmt, error) {
	if !p.consume(TokenSavepoint, "expected SAVEPOINT") {
		return nil, p.lastError()
	}
	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	return &ast.SavepointStmt{Name: name}, nil
}

// parseReleaseSavepoint parses RELEASE [SAVEPOINT] name.
func (p *Parser) parseReleaseSavepoint() (*ast.ReleaseSavepointStmt, error) {
	if !p.consume(TokenRelease, "expected RELEASE") {
		return nil, p.lastError()
	}
	p.match(TokenSavepoint)

	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	return &ast.ReleaseSavepointStmt{Name: name}, nil
}

// parseRollback parses ROLLBACK [WORK] [TO [SAVEPOINT] name].
func (p *Parser) parseRollback() (*ast.RollbackStmt, error) {
	if !p.consume(TokenRollback, "expected ROLLBACK") {
		return nil, p.lastError()
	}
	p.match(TokenWork)

	stmt := &ast.RollbackStmt{}
	if p.match(TokenTo) {
		p.match(TokenSavepoint)
		name, err := p.ParseName()
		if err != nil {
			return nil, err
		}
		stmt.To = name
	}
	return stmt, nil
}

// parseCommit parses COMMIT [WORK].
func (p *Parser) parseCommit() (*ast.CommitStmt, error) {
	if !p.consume(TokenCommit, "expected COMMIT") {
		return nil, p.lastError()
	}
	p.match(TokenWork)
	return &ast.CommitStmt{}, nil
}

// unsupportedObjects are object kinds recognised after CREATE or DROP but
// not implemented.
var unsupportedObjects = map[string]bool{
	"SEQUENCE":     true,
	"INDEX":        true,
	"UNIQUE":       true,
	"PROCEDURE":    true,
	"FUNCTION":     true,
	"TRIGGER":      true,
	"USER":         true,
	"ROLE":         true,
	"SCHEMA":       true,
	"DATABASE":     true,
	"TYPE":         true,
	"SYNONYM":      true,
	"TABLESPACE":   true,
	"MATERIALIZED": true,
	"PACKAGE":      true,
}

// objectKind returns the upper-case object word at the cursor if it names
// an unsupported object kind.
func (p *Parser) objectKind() string {
	if p.current.Type != TokenIdentifier && !p.current.Type.IsKeyword() {
		return ""
	}
	word := p.current.Type.String()
	if p.current.Type == TokenIdentifier {
		word = strings.ToUpper(p.current.Text)
	}
	if unsupportedObjects[word] {
		return word
	}
	return ""
}
