package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/QuantaSQL/internal/log"
	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// ExprParser parses expressions and queries from a token stream. Parser
// embeds it and adds statements.
type ExprParser struct {
	lexer    *Lexer
	current  Token
	previous Token
	errors   []error
	dialect  *Dialect
	logger   log.Logger
	reporter log.Reporter
}

// Mark is a saved parser state for bounded backtracking.
type Mark struct {
	lexer    LexerMark
	current  Token
	previous Token
	errCount int
}

// NewExprParser creates an expression parser for the given SQL input.
func NewExprParser(sql string, opts ...Option) *ExprParser {
	o := newOptions(opts)
	p := &ExprParser{
		lexer:    NewLexerWithOptions(sql, o.dialect.Lexer),
		errors:   []error{},
		dialect:  o.dialect,
		logger:   o.logger,
		reporter: o.reporter,
	}
	p.advance()
	return p
}

// Dialect returns the dialect the parser was created with.
func (p *ExprParser) Dialect() *Dialect {
	return p.dialect
}

// Current returns the token under the cursor.
func (p *ExprParser) Current() Token {
	return p.current
}

// Next moves to the next token.
func (p *ExprParser) Next() {
	p.advance()
}

// Accept consumes the current token if it has the given type.
func (p *ExprParser) Accept(tokenType TokenType) bool {
	return p.match(tokenType)
}

// Expect consumes a token of the given type or returns a syntax error.
func (p *ExprParser) Expect(tokenType TokenType) error {
	if !p.consume(tokenType, fmt.Sprintf("expected %s, got %s", tokenType, p.current)) {
		return p.lastError()
	}
	return nil
}

// IsWord reports whether the current token is the unquoted word w (case
// insensitive), whether it lexed as a keyword or an identifier.
func (p *ExprParser) IsWord(w string) bool {
	return (p.current.Type == TokenIdentifier || p.current.Type.IsKeyword()) &&
		strings.EqualFold(p.current.Text, w)
}

// AcceptWord consumes the current token if it is the word w.
func (p *ExprParser) AcceptWord(w string) bool {
	if p.IsWord(w) {
		p.advance()
		return true
	}
	return false
}

// ExpectWord consumes the word w or returns a syntax error.
func (p *ExprParser) ExpectWord(w string) error {
	if p.AcceptWord(w) {
		return nil
	}
	return p.error(fmt.Sprintf("expected %s, got %s", w, p.current))
}

// Mark saves the parser state.
func (p *ExprParser) Mark() Mark {
	return Mark{
		lexer:    p.lexer.Mark(),
		current:  p.current,
		previous: p.previous,
		errCount: len(p.errors),
	}
}

// Reset restores a state saved by Mark, discarding errors recorded since.
func (p *ExprParser) Reset(m Mark) {
	p.lexer.Reset(m.lexer)
	p.current = m.current
	p.previous = m.previous
	p.errors = p.errors[:m.errCount]
}

// Errorf returns a syntax error at the current token.
func (p *ExprParser) Errorf(format string, args ...any) error {
	return p.error(fmt.Sprintf(format, args...))
}

// Unsupported returns an unsupported-construct error at the current token.
func (p *ExprParser) Unsupported(construct string) error {
	err := newTokenError(KindUnsupported, construct+" is not supported", p.current)
	p.errors = append(p.errors, err)
	p.logger.Debug("unsupported construct", "construct", construct, "line", err.Line, "column", err.Column)
	return err
}

// ParseExpression parses one expression.
func (p *ExprParser) ParseExpression() (ast.Expr, error) {
	return p.parseBinary(ast.PriorityLowest)
}

// ParseExpressionList parses expr {, expr}.
func (p *ExprParser) ParseExpressionList() ([]ast.Expr, error) {
	var list []ast.Expr
	for {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, expr)

		if !p.match(TokenComma) {
			return list, nil
		}
	}
}

// ParseName parses a qualified name a.b.c into nested properties, the
// innermost owner first.
func (p *ExprParser) ParseName() (ast.Expr, error) {
	if !p.isName() {
		return nil, p.error(fmt.Sprintf("expected name, got %s", p.current))
	}
	var expr ast.Expr = ast.NewIdentifier(p.current.Text)
	p.advance()

	for p.match(TokenDot) {
		if !p.isName() {
			return nil, p.error(fmt.Sprintf("expected name after '.', got %s", p.current))
		}
		expr = &ast.Property{Owner: expr, Name: p.current.Text}
		p.advance()
	}
	return expr, nil
}

// ParseDataType parses name [words] [(args)].
func (p *ExprParser) ParseDataType() (*ast.DataType, error) {
	if !p.isName() {
		return nil, p.error(fmt.Sprintf("expected data type, got %s", p.current))
	}
	dt := &ast.DataType{Name: p.current.Text}
	p.advance()

	// DOUBLE PRECISION, CHARACTER VARYING, INT UNSIGNED
	for p.current.Type == TokenIdentifier && !isQuotedName(p.current) {
		dt.Name += " " + p.current.Text
		p.advance()
	}

	if p.match(TokenLeftParen) {
		args, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		dt.Args = args
		if !p.consume(TokenRightParen, "expected ')' after data type arguments") {
			return nil, p.lastError()
		}
	}
	return dt, nil
}

// parseBinary folds infix and postfix operators whose priority is at most
// limit. Right operands are parsed with a strictly tighter limit, which
// makes every operator left-associative.
func (p *ExprParser) parseBinary(limit int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.infixOperator()
		if !ok || op.priority > limit {
			return left, nil
		}
		left, err = p.parseInfix(left, op)
		if err != nil {
			return nil, err
		}
	}
}

type infixKind int

const (
	infixBinary infixKind = iota
	infixBetween
	infixIn
	infixIs
)

type infix struct {
	kind     infixKind
	op       ast.BinaryOperator
	not      bool
	priority int
}

var binaryTokens = map[TokenType]ast.BinaryOperator{
	TokenCollate:       ast.OpCollate,
	TokenCaret:         ast.OpBitXor,
	TokenStar:          ast.OpMultiply,
	TokenSlash:         ast.OpDivide,
	TokenPercent:       ast.OpModulus,
	TokenPlus:          ast.OpAdd,
	TokenSub:           ast.OpSubtract,
	TokenConcat:        ast.OpConcat,
	TokenShiftLeft:     ast.OpShiftLeft,
	TokenShiftRight:    ast.OpShiftRight,
	TokenAmp:           ast.OpBitAnd,
	TokenBar:           ast.OpBitOr,
	TokenEqual:         ast.OpEqual,
	TokenNotEqual:      ast.OpNotEqual,
	TokenLessGreater:   ast.OpLessGreater,
	TokenLess:          ast.OpLess,
	TokenLessEqual:     ast.OpLessEqual,
	TokenGreater:       ast.OpGreater,
	TokenGreaterEqual:  ast.OpGreaterEqual,
	TokenNullSafeEqual: ast.OpNullSafeEqual,
	TokenLike:          ast.OpLike,
	TokenAnd:           ast.OpAnd,
	TokenXor:           ast.OpXor,
	TokenOr:            ast.OpOr,
}

// infixOperator classifies the operator at the cursor without consuming it.
func (p *ExprParser) infixOperator() (infix, bool) {
	if op, ok := binaryTokens[p.current.Type]; ok {
		return infix{kind: infixBinary, op: op, priority: op.Priority()}, true
	}

	switch p.current.Type { //nolint:exhaustive
	case TokenBetween:
		return infix{kind: infixBetween, priority: ast.PriorityComparison}, true
	case TokenIn:
		return infix{kind: infixIn, priority: ast.PriorityComparison}, true
	case TokenIs:
		return infix{kind: infixIs, op: ast.OpIs, priority: ast.PriorityComparison}, true
	case TokenNot:
		switch p.peekType() { //nolint:exhaustive
		case TokenLike:
			return infix{kind: infixBinary, op: ast.OpNotLike, not: true, priority: ast.PriorityComparison}, true
		case TokenBetween:
			return infix{kind: infixBetween, not: true, priority: ast.PriorityComparison}, true
		case TokenIn:
			return infix{kind: infixIn, not: true, priority: ast.PriorityComparison}, true
		}
	}
	return infix{}, false
}

// parseInfix consumes the operator classified by infixOperator and its
// right-hand side.
func (p *ExprParser) parseInfix(left ast.Expr, op infix) (ast.Expr, error) {
	if op.not {
		p.advance() // NOT
	}
	p.advance()

	switch op.kind {
	case infixBetween:
		return p.parseBetween(left, op.not)
	case infixIn:
		return p.parseIn(left, op.not)
	case infixIs:
		if p.match(TokenNot) {
			op.op = ast.OpIsNot
		}
	}

	right, err := p.parseBinary(op.priority - 1)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(op.op, left, right), nil
}

func (p *ExprParser) parseBetween(test ast.Expr, not bool) (ast.Expr, error) {
	begin, err := p.parseBinary(ast.PriorityComparison - 1)
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenAnd, "expected AND in BETWEEN") {
		return nil, p.lastError()
	}
	end, err := p.parseBinary(ast.PriorityComparison - 1)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{Not: not, Test: test, Begin: begin, End: end}, nil
}

func (p *ExprParser) parseIn(expr ast.Expr, not bool) (ast.Expr, error) {
	if !p.consume(TokenLeftParen, "expected '(' after IN") {
		return nil, p.lastError()
	}

	if p.isQueryStart() {
		query, err := p.ParseSelect()
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenRightParen, "expected ')' after subquery") {
			return nil, p.lastError()
		}
		return &ast.InSubqueryExpr{Not: not, Expr: expr, Query: query}, nil
	}

	targets, err := p.ParseExpressionList()
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenRightParen, "expected ')' after IN list") {
		return nil, p.lastError()
	}
	return &ast.InListExpr{Not: not, Expr: expr, Targets: targets}, nil
}

// parseUnary parses prefix operators and primaries.
func (p *ExprParser) parseUnary() (ast.Expr, error) {
	var op ast.UnaryOperator
	switch p.current.Type { //nolint:exhaustive
	case TokenNot:
		p.advance()
		if p.check(TokenExists) {
			return p.parseExists(true)
		}
		expr, err := p.parseBinary(ast.PriorityComparison)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Operator: ast.UnaryNot, Expr: expr}, nil
	case TokenSub:
		op = ast.UnaryMinus
	case TokenPlus:
		op = ast.UnaryPlus
	case TokenTilde:
		op = ast.UnaryCompl
	default:
		return p.parsePrimary()
	}

	p.advance()
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Operator: op, Expr: expr}, nil
}

// parsePrimary parses a literal, name, call, parenthesized expression or
// other primary, then gives the dialect a chance to extend it.
func (p *ExprParser) parsePrimary() (ast.Expr, error) {
	expr, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	if p.dialect.ExprHook != nil {
		return p.dialect.ExprHook(p, expr)
	}
	return expr, nil
}

func (p *ExprParser) parsePrimaryExpr() (ast.Expr, error) {
	tok := p.current

	switch tok.Type { //nolint:exhaustive
	case TokenInteger:
		p.advance()
		if v, err := strconv.ParseInt(tok.Text, 10, 64); err == nil {
			return &ast.IntegerLit{Value: v}, nil
		}
		return &ast.DecimalLit{Value: tok.Text}, nil
	case TokenDecimal:
		p.advance()
		return &ast.DecimalLit{Value: tok.Text}, nil
	case TokenString:
		p.advance()
		return &ast.CharLit{Text: tok.Text}, nil
	case TokenNString:
		p.advance()
		return &ast.NCharLit{Text: tok.Text}, nil
	case TokenHex:
		p.advance()
		return &ast.HexLit{Hex: tok.Text}, nil
	case TokenNull:
		p.advance()
		return &ast.NullLit{}, nil
	case TokenDefault:
		p.advance()
		return &ast.DefaultLit{}, nil
	case TokenVariable:
		p.advance()
		return &ast.VariableRef{Name: tok.Text}, nil
	case TokenStar:
		p.advance()
		return &ast.AllColumns{}, nil
	case TokenLeftParen:
		return p.parseParenExpr()
	case TokenExists:
		return p.parseExists(false)
	case TokenAny, TokenSome, TokenAll:
		return p.parseQuantified()
	case TokenCase:
		return p.parseCase()
	case TokenCast:
		return p.parseCast()
	case TokenQuotedAlias:
		p.advance()
		return ast.NewIdentifier(tok.Text), nil
	case TokenCurrent:
		if p.peekType() == TokenOf {
			p.advance()
			p.advance()
			cursor, err := p.ParseName()
			if err != nil {
				return nil, err
			}
			return &ast.CurrentOfCursor{Cursor: cursor}, nil
		}
	case TokenLeft, TokenRight, TokenInsert:
		// Reserved words that double as function names.
		if p.peekType() == TokenLeftParen {
			p.advance()
			return p.parseCall(nil, tok.Text)
		}
	}

	if p.isName() {
		return p.parseNameExpr()
	}

	if tok.Type == TokenEOF {
		return nil, p.error("unexpected end of input, expected expression")
	}
	return nil, p.error(fmt.Sprintf("unexpected token %s, expected expression", tok))
}

// parseNameExpr parses a name chain, owner.*, or a function call.
func (p *ExprParser) parseNameExpr() (ast.Expr, error) {
	var expr ast.Expr = ast.NewIdentifier(p.current.Text)
	p.advance()

	for p.match(TokenDot) {
		if p.match(TokenStar) {
			return &ast.Property{Owner: expr, Name: "*"}, nil
		}
		if !p.isName() {
			return nil, p.error(fmt.Sprintf("expected name after '.', got %s", p.current))
		}
		expr = &ast.Property{Owner: expr, Name: p.current.Text}
		p.advance()
	}

	if !p.check(TokenLeftParen) {
		return expr, nil
	}
	switch x := expr.(type) {
	case *ast.Identifier:
		if isAggregate(x.Name) {
			return p.parseAggregate(x.Name)
		}
		return p.parseCall(nil, x.Name)
	case *ast.Property:
		return p.parseCall(x.Owner, x.Name)
	}
	return expr, nil
}

func isAggregate(name string) bool {
	switch strings.ToUpper(name) {
	case "COUNT", "SUM", "AVG", "MIN", "MAX":
		return true
	}
	return false
}

// parseCall parses (args) after a function name.
func (p *ExprParser) parseCall(owner ast.Expr, name string) (ast.Expr, error) {
	if !p.consume(TokenLeftParen, "expected '('") {
		return nil, p.lastError()
	}
	call := &ast.MethodCall{Owner: owner, Name: name}
	if !p.check(TokenRightParen) {
		args, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		call.Args = args
	}
	if !p.consume(TokenRightParen, fmt.Sprintf("expected ')' after arguments of %s", name)) {
		return nil, p.lastError()
	}
	return call, nil
}

// parseAggregate parses (option args) [OVER (...)] after an aggregate name.
func (p *ExprParser) parseAggregate(name string) (ast.Expr, error) {
	if !p.consume(TokenLeftParen, "expected '('") {
		return nil, p.lastError()
	}
	agg := &ast.AggregateExpr{Name: name}
	switch {
	case p.match(TokenDistinct):
		agg.Option = ast.QuantifierDistinct
	case p.match(TokenAll):
		agg.Option = ast.QuantifierAll
	case p.match(TokenUnique):
		agg.Option = ast.QuantifierUnique
	}

	if !p.check(TokenRightParen) {
		args, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		agg.Args = args
	}
	if !p.consume(TokenRightParen, fmt.Sprintf("expected ')' after arguments of %s", name)) {
		return nil, p.lastError()
	}

	if p.match(TokenOver) {
		over, err := p.parseOver()
		if err != nil {
			return nil, err
		}
		agg.Over = over
	}
	return agg, nil
}

// parseOver parses ([PARTITION BY list] [ORDER BY items]).
func (p *ExprParser) parseOver() (*ast.Over, error) {
	if !p.consume(TokenLeftParen, "expected '(' after OVER") {
		return nil, p.lastError()
	}
	over := &ast.Over{}
	if p.match(TokenPartition) {
		if !p.consume(TokenBy, "expected BY after PARTITION") {
			return nil, p.lastError()
		}
		list, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		over.PartitionBy = list
	}
	if p.check(TokenOrder) {
		orderBy, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		over.OrderBy = orderBy
	}
	if !p.consume(TokenRightParen, "expected ')' to close OVER") {
		return nil, p.lastError()
	}
	return over, nil
}

// parseParenExpr parses a parenthesized expression, list or subquery.
func (p *ExprParser) parseParenExpr() (ast.Expr, error) {
	if p.isQueryStart() {
		m := p.Mark()
		p.advance()
		query, err := p.ParseSelect()
		if err == nil && p.match(TokenRightParen) {
			return &ast.QueryExpr{Query: query}, nil
		}
		// ((SELECT 1) + 1): the query was only the start of an expression.
		p.Reset(m)
	}

	p.advance()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if p.check(TokenComma) {
		list := &ast.ListExpr{Items: []ast.Expr{expr}}
		for p.match(TokenComma) {
			item, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			list.Items = append(list.Items, item)
		}
		expr = list
	}

	if !p.consume(TokenRightParen, "expected ')'") {
		return nil, p.lastError()
	}
	return expr, nil
}

func (p *ExprParser) parseExists(not bool) (ast.Expr, error) {
	if !p.consume(TokenExists, "expected EXISTS") {
		return nil, p.lastError()
	}
	query, err := p.parseSubquery("EXISTS")
	if err != nil {
		return nil, err
	}
	return &ast.ExistsExpr{Not: not, Query: query}, nil
}

func (p *ExprParser) parseQuantified() (ast.Expr, error) {
	var q ast.SubqueryQuantifier
	switch p.current.Type { //nolint:exhaustive
	case TokenAll:
		q = ast.QuantifiedAll
	case TokenSome:
		q = ast.QuantifiedSome
	default:
		q = ast.QuantifiedAny
	}
	word := p.current.Text
	p.advance()

	query, err := p.parseSubquery(strings.ToUpper(word))
	if err != nil {
		return nil, err
	}
	return &ast.QuantifiedExpr{Quantifier: q, Query: query}, nil
}

// parseSubquery parses (select) after keyword.
func (p *ExprParser) parseSubquery(keyword string) (*ast.Select, error) {
	if !p.consume(TokenLeftParen, fmt.Sprintf("expected '(' after %s", keyword)) {
		return nil, p.lastError()
	}
	if !p.isQueryStart() {
		return nil, p.error(fmt.Sprintf("expected subquery after %s, got %s", keyword, p.current))
	}
	query, err := p.ParseSelect()
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenRightParen, "expected ')' after subquery") {
		return nil, p.lastError()
	}
	return query, nil
}

func (p *ExprParser) parseCase() (ast.Expr, error) {
	if !p.consume(TokenCase, "expected CASE") {
		return nil, p.lastError()
	}
	c := &ast.CaseExpr{}
	if !p.check(TokenWhen) {
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		c.Value = value
	}

	for p.match(TokenWhen) {
		cond, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenThen, "expected THEN after WHEN condition") {
			return nil, p.lastError()
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		c.Items = append(c.Items, &ast.CaseItem{Condition: cond, Value: value})
	}
	if len(c.Items) == 0 {
		return nil, p.error("CASE requires at least one WHEN clause")
	}

	if p.match(TokenElse) {
		elseExpr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		c.Else = elseExpr
	}

	if !p.consume(TokenEnd, "expected END to close CASE") {
		return nil, p.lastError()
	}
	return c, nil
}

func (p *ExprParser) parseCast() (ast.Expr, error) {
	if !p.consume(TokenCast, "expected CAST") {
		return nil, p.lastError()
	}
	if !p.consume(TokenLeftParen, "expected '(' after CAST") {
		return nil, p.lastError()
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenAs, "expected AS in CAST") {
		return nil, p.lastError()
	}
	dt, err := p.ParseDataType()
	if err != nil {
		return nil, err
	}
	if !p.consume(TokenRightParen, "expected ')' to close CAST") {
		return nil, p.lastError()
	}
	return &ast.CastExpr{Expr: expr, Type: dt}, nil
}

// isQueryStart reports whether the tokens at the cursor open a query,
// looking past any number of '('. The parser state is left unchanged.
func (p *ExprParser) isQueryStart() bool {
	if p.check(TokenSelect) {
		return true
	}
	if !p.check(TokenLeftParen) {
		return false
	}
	m := p.Mark()
	for p.match(TokenLeftParen) {
	}
	found := p.check(TokenSelect)
	p.Reset(m)
	return found
}

// isName reports whether the current token can be used as a name.
func (p *ExprParser) isName() bool {
	return p.current.Type == TokenIdentifier ||
		p.current.Type.IsKeyword() && !p.current.Type.IsReserved()
}

func isQuotedName(tok Token) bool {
	return tok.Text != "" && !isIdentStart(tok.Text[0])
}

// Helper methods.

func (p *ExprParser) advance() {
	p.previous = p.current
	p.current = p.lexer.NextToken()
}

func (p *ExprParser) check(tokenType TokenType) bool {
	return p.current.Type == tokenType
}

// peekType returns the type of the token after the current one.
func (p *ExprParser) peekType() TokenType {
	m := p.Mark()
	p.advance()
	t := p.current.Type
	p.Reset(m)
	return t
}

func (p *ExprParser) match(tokenType TokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

func (p *ExprParser) matchAny(types ...TokenType) bool {
	for _, t := range types {
		if p.match(t) {
			return true
		}
	}
	return false
}

func (p *ExprParser) consume(tokenType TokenType, message string) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	p.error(message)
	return false
}

// error records a syntax error at the current token. A lexer error token
// under the cursor is reported as the lexical error it carries.
func (p *ExprParser) error(message string) error {
	var err *ParseError
	if p.current.Type == TokenError {
		err = newTokenError(KindLexical, p.current.Text, p.current)
	} else {
		err = newTokenError(KindSyntax, message, p.current)
	}
	p.errors = append(p.errors, err)
	return err
}

func (p *ExprParser) lastError() error {
	if len(p.errors) > 0 {
		return p.errors[len(p.errors)-1]
	}
	return NewParseError("unknown parse error", p.current.Line, p.current.Column)
}
