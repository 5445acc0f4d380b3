package parser

import (
	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
)

// parseWithStatement parses an optional RECURSIVE flag, one or more CTEs
// separated by commas, and the top-level query that follows. The clause
// wraps whatever that query parses to (a SelectStatement or a
// UnionStatement) rather than attaching to its inner fields — see
// DESIGN.md's Open Question decision on WITH attachment.
func (p *Parser) parseWithStatement() (Statement, error) {
	stmt := &WithStatement{BaseNode: p.base()}

	if p.peekTokenIs(lexer.RECURSIVE) {
		p.nextToken()
		stmt.Recursive = true
	}

	p.nextToken() // move to first CTE name

	for {
		cte, err := p.parseCommonTableExpression()
		if err != nil {
			return nil, err
		}
		stmt.CTEs = append(stmt.CTEs, cte)

		if p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			continue
		}
		break
	}

	p.nextToken() // move to the first token of the main query
	query, err := p.parseQueryStatement()
	if err != nil {
		return nil, err
	}
	stmt.Query = query

	return stmt, nil
}

// parseCommonTableExpression parses "name [(col, ...)] AS (query)" with
// the parser positioned on the CTE's name identifier.
func (p *Parser) parseCommonTableExpression() (*CommonTableExpression, error) {
	if !p.curTokenIs(lexer.IDENT) {
		return nil, p.unexpectedCur("IDENT")
	}
	cte := &CommonTableExpression{BaseNode: p.base(), Name: p.curTok.Literal}

	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken() // cur = (
		p.nextToken() // cur = first column name
		for {
			if !p.curTokenIs(lexer.IDENT) {
				return nil, p.unexpectedCur("IDENT")
			}
			cte.Columns = append(cte.Columns, p.curTok.Literal)
			if p.peekTokenIs(lexer.COMMA) {
				p.nextToken()
				p.nextToken()
				continue
			}
			break
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
	}

	if err := p.expectPeek(lexer.AS); err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}

	p.nextToken() // move into the inner query
	inner, err := p.parseQueryStatement()
	if err != nil {
		return nil, err
	}
	cte.Query = inner

	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}

	return cte, nil
}

// parseSelectOrSetOperation parses a right-associative UNION/UNION ALL
// chain of SELECTs, then the outer ORDER BY/LIMIT that binds to the whole
// chain (or to the lone SELECT when no UNION occurred). Inner selects in
// the chain never carry their own trailing ORDER BY/LIMIT.
func (p *Parser) parseSelectOrSetOperation() (Statement, error) {
	result, err := p.parseUnionChain()
	if err != nil {
		return nil, err
	}

	if p.peekTokenIs(lexer.ORDER) {
		p.nextToken()
		if err := p.expectPeek(lexer.BY); err != nil {
			return nil, err
		}
		orderBy, err := p.parseOrderByClause()
		if err != nil {
			return nil, err
		}
		attachOrderBy(result, orderBy)
	}

	if p.peekTokenIs(lexer.LIMIT) {
		p.nextToken()
		limit, err := p.parseLimitClause()
		if err != nil {
			return nil, err
		}
		attachLimit(result, limit)
	}

	return result, nil
}

// parseUnionChain parses one union operand, then recursively parses the
// right-hand side on UNION so that "A UNION B UNION C" nests as
// Union(A, Union(B, C)).
func (p *Parser) parseUnionChain() (Statement, error) {
	left, err := p.parseUnionOperand()
	if err != nil {
		return nil, err
	}

	if !p.peekTokenIs(lexer.UNION) {
		return left, nil
	}

	line, col := p.peekTok.Line, p.peekTok.Column
	p.nextToken() // cur = UNION

	op := "UNION"
	if p.peekTokenIs(lexer.ALL) {
		p.nextToken()
		op = "UNION ALL"
	}

	p.nextToken() // move to the first token of the right operand
	right, err := p.parseUnionChain()
	if err != nil {
		return nil, err
	}

	return &UnionStatement{
		BaseNode: BaseNode{Line: line, Column: col},
		Left:     left,
		Operator: op,
		Right:    right,
	}, nil
}

// parseUnionOperand parses a single SELECT (no trailing ORDER BY/LIMIT),
// or a parenthesized statement of the same shape.
func (p *Parser) parseUnionOperand() (Statement, error) {
	if p.curTokenIs(lexer.LPAREN) {
		p.nextToken()
		inner, err := p.parseUnionChain()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return p.parseSelectStatement(false)
}

func attachOrderBy(stmt Statement, orderBy []*OrderByClause) {
	switch s := stmt.(type) {
	case *SelectStatement:
		s.OrderBy = orderBy
	case *UnionStatement:
		s.OrderBy = orderBy
	}
}

func attachLimit(stmt Statement, limit *LimitClause) {
	switch s := stmt.(type) {
	case *SelectStatement:
		s.Limit = limit
	case *UnionStatement:
		s.Limit = limit
	}
}
