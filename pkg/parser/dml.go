package parser

import (
	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
)

// parseInsertStatement parses "INSERT INTO table [(col, ...)] VALUES
// (expr, ...)[, (expr, ...)]*" or, as a supplement the base grammar
// doesn't name but a complete INSERT needs, "INSERT INTO table [(col,
// ...)] SELECT ...".
func (p *Parser) parseInsertStatement() (Statement, error) {
	stmt := &InsertStatement{BaseNode: p.base()}

	if err := p.expectPeek(lexer.INTO); err != nil {
		return nil, err
	}
	p.nextToken() // move to table name

	table, err := p.parseTableReference()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if p.peekTokenIs(lexer.LPAREN) {
		p.nextToken() // cur = (
		p.nextToken() // cur = first column
		for {
			if !p.curTokenIs(lexer.IDENT) {
				return nil, p.unexpectedCur("IDENT")
			}
			stmt.Columns = append(stmt.Columns, p.curTok.Literal)
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

	if p.peekTokenIs(lexer.SELECT) {
		p.nextToken()
		sel, err := p.parseSelectStatement(true)
		if err != nil {
			return nil, err
		}
		stmt.Select = sel
		return stmt, nil
	}

	if err := p.expectPeek(lexer.VALUES); err != nil {
		return nil, err
	}

	row, err := p.parseValuesRow()
	if err != nil {
		return nil, err
	}
	stmt.Values = append(stmt.Values, row)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		row, err := p.parseValuesRow()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, row)
	}

	return stmt, nil
}

func (p *Parser) parseValuesRow() ([]Expression, error) {
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken() // move to first value

	row := []Expression{}
	val, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	row = append(row, val)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		val, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		row = append(row, val)
	}

	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return row, nil
}

// parseUpdateStatement parses "UPDATE table SET col = expr[, col = expr]*
// [WHERE expr]".
func (p *Parser) parseUpdateStatement() (Statement, error) {
	stmt := &UpdateStatement{BaseNode: p.base()}

	p.nextToken() // move to table name
	table, err := p.parseTableReference()
	if err != nil {
		return nil, err
	}
	stmt.Table = table

	if err := p.expectPeek(lexer.SET); err != nil {
		return nil, err
	}

	assignment, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	stmt.Set = append(stmt.Set, assignment)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		assignment, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, assignment)
	}

	if p.peekTokenIs(lexer.WHERE) {
		p.nextToken()
		p.nextToken()
		where, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	return stmt, nil
}

func (p *Parser) parseAssignment() (*Assignment, error) {
	p.nextToken() // move to column name
	if !p.curTokenIs(lexer.IDENT) {
		return nil, p.unexpectedCur("IDENT")
	}
	assignment := &Assignment{BaseNode: p.base(), Column: p.curTok.Literal}

	if err := p.expectPeek(lexer.ASSIGN); err != nil {
		return nil, err
	}
	p.nextToken()
	value, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	assignment.Value = value

	return assignment, nil
}

// parseDeleteStatement parses "DELETE FROM table [WHERE expr]".
func (p *Parser) parseDeleteStatement() (Statement, error) {
	stmt := &DeleteStatement{BaseNode: p.base()}

	if err := p.expectPeek(lexer.FROM); err != nil {
		return nil, err
	}
	from := &FromClause{BaseNode: p.base()}
	p.nextToken() // move to table name
	table, err := p.parseTableReference()
	if err != nil {
		return nil, err
	}
	from.Tables = append(from.Tables, table)
	stmt.From = from

	if p.peekTokenIs(lexer.WHERE) {
		p.nextToken()
		p.nextToken()
		where, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	}

	return stmt, nil
}
