package parser

import (
	"github.com/dshills/QuantaSQL/internal/sql/ast"
)

// ParseSelect parses a query with an optional trailing ORDER BY. Leading
// parentheses are part of the query grammar.
func (p *ExprParser) ParseSelect() (*ast.Select, error) {
	query, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	sel := &ast.Select{Query: query}

	if p.check(TokenOrder) {
		orderBy, err := p.parseOrderBy()
		if err != nil {
			return nil, err
		}
		sel.OrderBy = orderBy
	}
	return sel, nil
}

// parseQuery parses query terms joined by set operators, left to right.
func (p *ExprParser) parseQuery() (ast.SelectQuery, error) {
	left, err := p.parseQueryTerm()
	if err != nil {
		return nil, err
	}

	for {
		var op ast.SetOperator
		switch {
		case p.match(TokenUnion):
			op = ast.SetUnion
			if p.match(TokenAll) {
				op = ast.SetUnionAll
			} else {
				p.match(TokenDistinct)
			}
		case p.match(TokenIntersect):
			op = ast.SetIntersect
		case p.match(TokenMinus):
			op = ast.SetMinus
		case p.match(TokenExcept):
			op = ast.SetExcept
		default:
			return left, nil
		}

		right, err := p.parseQueryTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.SetOpQuery{Left: left, Operator: op, Right: right}
	}
}

// parseQueryTerm parses a query block or a parenthesized query.
func (p *ExprParser) parseQueryTerm() (ast.SelectQuery, error) {
	if p.match(TokenLeftParen) {
		query, err := p.parseQuery()
		if err != nil {
			return nil, err
		}
		if p.check(TokenOrder) {
			return nil, p.Unsupported("ORDER BY inside a parenthesized query")
		}
		if !p.consume(TokenRightParen, "expected ')' after query") {
			return nil, p.lastError()
		}
		return query, nil
	}
	return p.parseQueryBlock()
}

// parseQueryBlock parses SELECT ... FROM ... WHERE ... GROUP BY ... HAVING.
func (p *ExprParser) parseQueryBlock() (*ast.QueryBlock, error) {
	if !p.consume(TokenSelect, "expected SELECT") {
		return nil, p.lastError()
	}
	block := &ast.QueryBlock{Hints: p.parseHints()}

	switch {
	case p.match(TokenDistinct):
		block.Quantifier = ast.QuantifierDistinct
	case p.match(TokenUnique):
		block.Quantifier = ast.QuantifierUnique
	case p.match(TokenAll):
		block.Quantifier = ast.QuantifierAll
	}

	// Parse select list
	for {
		item, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		block.Items = append(block.Items, item)

		if !p.match(TokenComma) {
			break
		}
	}

	// Check for optional FROM clause
	if p.match(TokenFrom) {
		from, err := p.ParseTableSource()
		if err != nil {
			return nil, err
		}
		block.From = from
	}

	// Parse optional WHERE clause
	if p.match(TokenWhere) {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		block.Where = expr
	}

	// Parse optional GROUP BY clause
	if p.match(TokenGroup) {
		if !p.consume(TokenBy, "expected BY after GROUP") {
			return nil, p.lastError()
		}
		items, err := p.ParseExpressionList()
		if err != nil {
			return nil, err
		}
		block.GroupBy = &ast.GroupBy{Items: items}

		// Parse optional HAVING clause
		if p.match(TokenHaving) {
			expr, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			block.GroupBy.Having = expr
		}
	}

	return block, nil
}

// parseHints collects hint comments at the cursor.
func (p *ExprParser) parseHints() []*ast.CommentHint {
	var hints []*ast.CommentHint
	for p.check(TokenHint) {
		hints = append(hints, &ast.CommentHint{Text: p.current.Text})
		p.advance()
	}
	return hints
}

func (p *ExprParser) parseSelectItem() (*ast.SelectItem, error) {
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	item := &ast.SelectItem{Expr: expr}

	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	item.Alias = alias
	return item, nil
}

// parseAlias parses [AS] alias. Without AS only identifiers and quoted
// aliases are taken, so a following keyword is never swallowed.
func (p *ExprParser) parseAlias() (string, error) {
	if p.match(TokenAs) {
		switch {
		case p.isName(), p.check(TokenQuotedAlias), p.check(TokenString):
			alias := p.current.Text
			if p.check(TokenString) {
				alias = quoteString(alias)
			}
			p.advance()
			return alias, nil
		}
		return "", p.Errorf("expected alias after AS, got %s", p.current)
	}

	if p.check(TokenIdentifier) || p.check(TokenQuotedAlias) {
		alias := p.current.Text
		p.advance()
		return alias, nil
	}
	return "", nil
}

func quoteString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'')
		}
		out = append(out, s[i])
	}
	return string(append(out, '\''))
}

// ParseTableSource parses a FROM clause: table factors joined by commas
// or JOIN keywords, left-deep.
func (p *ExprParser) ParseTableSource() (ast.TableSource, error) {
	left, err := p.parseTableFactor()
	if err != nil {
		return nil, err
	}

	for {
		joinType, ok := p.parseJoinType()
		if !ok {
			return left, nil
		}
		right, err := p.parseTableFactor()
		if err != nil {
			return nil, err
		}
		join := &ast.JoinTableSource{Left: left, JoinType: joinType, Right: right}

		if joinType != ast.JoinComma && p.match(TokenOn) {
			cond, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			join.Condition = cond
		}
		left = join
	}
}

// parseJoinType consumes a join keyword sequence.
func (p *ExprParser) parseJoinType() (ast.JoinType, bool) {
	switch p.current.Type { //nolint:exhaustive
	case TokenComma:
		p.advance()
		return ast.JoinComma, true
	case TokenJoin:
		p.advance()
		return ast.Join, true
	case TokenInner:
		return p.finishJoin(ast.JoinInner, false)
	case TokenLeft:
		return p.finishJoin(ast.JoinLeftOuter, true)
	case TokenRight:
		return p.finishJoin(ast.JoinRightOuter, true)
	case TokenFull:
		return p.finishJoin(ast.JoinFullOuter, true)
	case TokenCross:
		return p.finishJoin(ast.JoinCross, false)
	case TokenNatural:
		return p.finishJoin(ast.JoinNatural, false)
	}
	return 0, false
}

func (p *ExprParser) finishJoin(jt ast.JoinType, outer bool) (ast.JoinType, bool) {
	m := p.Mark()
	p.advance()
	if outer {
		p.match(TokenOuter)
	}
	if !p.match(TokenJoin) {
		// Not a join; let the caller report the stray keyword.
		p.Reset(m)
		return 0, false
	}
	return jt, true
}

// parseTableFactor parses a table name, a subquery or a parenthesized
// join, each with an optional alias.
func (p *ExprParser) parseTableFactor() (ast.TableSource, error) {
	if p.check(TokenLeftParen) {
		if p.isQueryStart() {
			p.advance()
			sel, err := p.ParseSelect()
			if err != nil {
				return nil, err
			}
			if !p.consume(TokenRightParen, "expected ')' after subquery") {
				return nil, p.lastError()
			}
			alias, err := p.parseAlias()
			if err != nil {
				return nil, err
			}
			return &ast.SubqueryTableSource{Select: sel, Alias: alias}, nil
		}

		p.advance()
		ts, err := p.ParseTableSource()
		if err != nil {
			return nil, err
		}
		if !p.consume(TokenRightParen, "expected ')' after table source") {
			return nil, p.lastError()
		}
		return ts, nil
	}

	name, err := p.ParseName()
	if err != nil {
		return nil, err
	}
	alias, err := p.parseAlias()
	if err != nil {
		return nil, err
	}
	return &ast.ExprTableSource{Expr: name, Alias: alias}, nil
}

// parseOrderBy parses ORDER BY expr [ASC|DESC], ...
func (p *ExprParser) parseOrderBy() (*ast.OrderBy, error) {
	if !p.consume(TokenOrder, "expected ORDER") {
		return nil, p.lastError()
	}
	if !p.consume(TokenBy, "expected BY after ORDER") {
		return nil, p.lastError()
	}

	orderBy := &ast.OrderBy{}
	for {
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		item := &ast.OrderByItem{Expr: expr}
		switch {
		case p.match(TokenAsc):
			item.Direction = ast.OrderAsc
		case p.match(TokenDesc):
			item.Direction = ast.OrderDesc
		}
		orderBy.Items = append(orderBy.Items, item)

		if !p.match(TokenComma) {
			return orderBy, nil
		}
	}
}
