// Package parser provides SQL parsing functionality for SQL queries.
package parser

import (
	"context"
	"strconv"
	"strings"

	"github.com/Chahine-tech/sqlfront-go/pkg/diagnostics"
	"github.com/Chahine-tech/sqlfront-go/pkg/dialect"
	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
)

// Parser consumes a token stream produced by pkg/lexer and builds an AST.
// It holds exactly two tokens of lookahead (cur/peek), matching the
// teacher's style, and stops at the first diagnostic it raises.
type Parser struct {
	tokens  []lexer.Token
	pos     int
	curTok  lexer.Token
	peekTok lexer.Token

	dialect dialect.Dialect
	ctx     context.Context

	tokenCount int
	cancelErr  error
}

// New creates a parser over source text using the default (ANSI) dialect
// and no lexer trivia.
func New(input string) (*Parser, error) {
	return NewWithDialect(input, dialect.Default())
}

// NewWithDialect creates a parser tagged with the given dialect. The
// dialect changes neither grammar shape nor token admission.
func NewWithDialect(input string, d dialect.Dialect) (*Parser, error) {
	return NewWithContext(context.Background(), input, d)
}

// NewWithContext creates a parser whose token-by-token advance checks ctx
// for cancellation. Once ctx is done, the parser forces the remaining
// token stream to EOF so every in-flight production unwinds through its
// existing error path instead of running to completion, and records a
// Cancelled diagnostic that takes precedence over whatever EOF-triggered
// error the unwind would otherwise report.
func NewWithContext(ctx context.Context, input string, d dialect.Dialect) (*Parser, error) {
	tokens, err := lexer.Tokenize(input, lexer.Options{})
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens, dialect: d, ctx: ctx}
	p.nextToken()
	p.nextToken()
	return p, nil
}

func (p *Parser) nextToken() {
	select {
	case <-p.ctx.Done():
		if p.cancelErr == nil {
			p.cancelErr = diagnostics.NewCancelled(p.curTok.Line, p.curTok.Column)
		}
		p.curTok = p.peekTok
		p.peekTok = lexer.Token{Type: lexer.EOF}
		return
	default:
	}
	p.curTok = p.peekTok
	if p.pos < len(p.tokens) {
		p.peekTok = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekTok = lexer.Token{Type: lexer.EOF}
	}
	p.tokenCount++
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curTok.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekTok.Type == t }

// unexpectedCur reports that the current token doesn't satisfy a
// required shape: Cancelled if ctx ended the parse, UnexpectedEOF if
// input ran out, ExpectedToken otherwise.
func (p *Parser) unexpectedCur(expected string) error {
	if p.cancelErr != nil {
		return p.cancelErr
	}
	if p.curTok.Type == lexer.EOF {
		return diagnostics.NewUnexpectedEOF(p.curTok.Line, p.curTok.Column)
	}
	return diagnostics.NewExpectedToken(expected, p.curTok.Type.String(), p.curTok.Line, p.curTok.Column)
}

// unexpectedTok reports that tok was encountered where no valid
// continuation exists: Cancelled if ctx ended the parse, UnexpectedEOF
// if tok is EOF, UnexpectedToken otherwise.
func (p *Parser) unexpectedTok(tok lexer.Token) error {
	if p.cancelErr != nil {
		return p.cancelErr
	}
	if tok.Type == lexer.EOF {
		return diagnostics.NewUnexpectedEOF(tok.Line, tok.Column)
	}
	return diagnostics.NewUnexpectedToken(tok.Literal, tok.Line, tok.Column)
}

func (p *Parser) pos2() (int, int) { return p.curTok.Line, p.curTok.Column }

// expectPeek advances past the peek token if it matches t, otherwise
// raises a diagnostic at the peek token's position: UnexpectedEOF if the
// input ran out where a token was required, ExpectedToken otherwise.
func (p *Parser) expectPeek(t lexer.TokenType) error {
	if p.peekTokenIs(t) {
		p.nextToken()
		return nil
	}
	if p.cancelErr != nil {
		return p.cancelErr
	}
	if p.peekTok.Type == lexer.EOF {
		return diagnostics.NewUnexpectedEOF(p.peekTok.Line, p.peekTok.Column)
	}
	return diagnostics.NewExpectedToken(t.String(), p.peekTok.Type.String(), p.peekTok.Line, p.peekTok.Column)
}

// TokenCount reports how many tokens have been consumed so far, for
// callers that want to bound parse cost alongside a context deadline.
func (p *Parser) TokenCount() int { return p.tokenCount }

// ExpectTrailingEOF is used by strict callers after ParseStatement
// returns: it accepts a single trailing semicolon but rejects anything
// else left in the token stream, such as a second statement.
func (p *Parser) ExpectTrailingEOF() error {
	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
	}
	if !p.peekTokenIs(lexer.EOF) {
		return p.unexpectedTok(p.peekTok)
	}
	return nil
}

// ParseStatement parses exactly one top-level statement: WITH, a
// SELECT/set-operation chain, INSERT, UPDATE or DELETE.
func (p *Parser) ParseStatement() (Statement, error) {
	if p.cancelErr != nil {
		return nil, p.cancelErr
	}
	if p.curTokenIs(lexer.EOF) {
		return nil, diagnostics.NewEmptyInput()
	}
	return p.parseQueryStatement()
}

// parseQueryStatement dispatches on the current token without the
// leading EOF check, so it can also be used for the query nested inside
// a WITH clause's CTE parentheses and for the query that follows a WITH
// preamble.
func (p *Parser) parseQueryStatement() (Statement, error) {
	switch p.curTok.Type {
	case lexer.WITH:
		return p.parseWithStatement()
	case lexer.SELECT, lexer.LPAREN:
		return p.parseSelectOrSetOperation()
	case lexer.INSERT:
		return p.parseInsertStatement()
	case lexer.UPDATE:
		return p.parseUpdateStatement()
	case lexer.DELETE:
		return p.parseDeleteStatement()
	default:
		return nil, p.unexpectedTok(p.curTok)
	}
}

func (p *Parser) parseSelectStatement(allowTrailing bool) (*SelectStatement, error) {
	line, col := p.pos2()
	stmt := GetSelectStatement()
	stmt.Line, stmt.Column = line, col

	if p.peekTokenIs(lexer.DISTINCT) {
		p.nextToken()
		stmt.Distinct = true
	} else if p.peekTokenIs(lexer.ALL) {
		p.nextToken()
	}

	if p.peekTokenIs(lexer.TOP) {
		p.nextToken()
		top, err := p.parseTopClause()
		if err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		stmt.Top = top
	}

	p.nextToken() // move to first column token

	cols, err := p.parseSelectList()
	if err != nil {
		PutSelectStatement(stmt)
		return nil, err
	}
	stmt.Columns = cols

	if p.peekTokenIs(lexer.FROM) {
		p.nextToken()
		from, err := p.parseFromClause()
		if err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		stmt.From = from

		for p.peekIsJoinStart() {
			p.nextToken()
			join, err := p.parseJoinClause()
			if err != nil {
				PutSelectStatement(stmt)
				return nil, err
			}
			stmt.Joins = append(stmt.Joins, join)
		}
	}

	if p.peekTokenIs(lexer.WHERE) {
		p.nextToken()
		p.nextToken()
		where, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		stmt.Where = where
	}

	if p.peekTokenIs(lexer.GROUP) {
		p.nextToken()
		if err := p.expectPeek(lexer.BY); err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		group, err := p.parseGroupByClause()
		if err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		stmt.GroupBy = group
	}

	if p.peekTokenIs(lexer.HAVING) {
		p.nextToken()
		p.nextToken()
		having, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			PutSelectStatement(stmt)
			return nil, err
		}
		stmt.Having = having
	}

	if allowTrailing {
		if p.peekTokenIs(lexer.ORDER) {
			p.nextToken()
			if err := p.expectPeek(lexer.BY); err != nil {
				PutSelectStatement(stmt)
				return nil, err
			}
			orderBy, err := p.parseOrderByClause()
			if err != nil {
				PutSelectStatement(stmt)
				return nil, err
			}
			stmt.OrderBy = orderBy
		}

		if p.peekTokenIs(lexer.LIMIT) {
			p.nextToken()
			limit, err := p.parseLimitClause()
			if err != nil {
				PutSelectStatement(stmt)
				return nil, err
			}
			stmt.Limit = limit
		}
	}

	return stmt, nil
}

func (p *Parser) peekIsJoinStart() bool {
	switch p.peekTok.Type {
	case lexer.JOIN, lexer.INNER, lexer.LEFT, lexer.RIGHT, lexer.FULL, lexer.CROSS:
		return true
	}
	return false
}

func (p *Parser) parseSelectList() ([]Expression, error) {
	cols := []Expression{}

	col, err := p.parseSelectItem()
	if err != nil {
		return nil, err
	}
	cols = append(cols, col)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		col, err := p.parseSelectItem()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	return cols, nil
}

func (p *Parser) parseSelectItem() (Expression, error) {
	if p.curTokenIs(lexer.ASTERISK) {
		return &StarExpression{BaseNode: p.base()}, nil
	}

	expr, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}

	if p.peekTokenIs(lexer.AS) {
		p.nextToken()
		p.nextToken()
		return &AliasedExpression{BaseNode: p.base(), Expression: expr, Alias: p.curTok.Literal}, nil
	}

	if p.peekAliasable() {
		p.nextToken()
		return &AliasedExpression{BaseNode: p.base(), Expression: expr, Alias: p.curTok.Literal}, nil
	}

	return expr, nil
}

// peekAliasable reports whether the upcoming token can stand in as an
// implicit (AS-less) alias: a plain identifier or one of the keywords in
// lexer.AliasableKeywords.
func (p *Parser) peekAliasable() bool {
	if p.peekTokenIs(lexer.IDENT) {
		return true
	}
	return lexer.AliasableKeywords[p.peekTok.Type]
}

func (p *Parser) base() BaseNode {
	return BaseNode{Line: p.curTok.Line, Column: p.curTok.Column}
}

func (p *Parser) parseFromClause() (*FromClause, error) {
	p.nextToken() // move past FROM to the first table reference
	from := &FromClause{BaseNode: p.base()}

	table, err := p.parseTableReference()
	if err != nil {
		return nil, err
	}
	from.Tables = append(from.Tables, table)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		table, err := p.parseTableReference()
		if err != nil {
			return nil, err
		}
		from.Tables = append(from.Tables, table)
	}

	return from, nil
}

func (p *Parser) parseTableReference() (*TableReference, error) {
	ref := &TableReference{BaseNode: p.base()}

	if p.curTokenIs(lexer.LPAREN) {
		p.nextToken()
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
		ref.Subquery = &SubqueryExpression{BaseNode: p.base(), Query: stmt}

		if p.peekTokenIs(lexer.AS) {
			p.nextToken()
			p.nextToken()
			ref.Alias = p.curTok.Literal
		} else if p.peekAliasable() {
			p.nextToken()
			ref.Alias = p.curTok.Literal
		}
		return ref, nil
	}

	if !p.curTokenIs(lexer.IDENT) {
		return nil, p.unexpectedCur("IDENT")
	}
	first := p.curTok.Literal

	if p.peekTokenIs(lexer.DOT) {
		p.nextToken()
		if err := p.expectPeek(lexer.IDENT); err != nil {
			return nil, err
		}
		ref.Schema = first
		ref.Name = p.curTok.Literal
	} else {
		ref.Name = first
	}

	if p.peekTokenIs(lexer.AS) {
		p.nextToken()
		p.nextToken()
		ref.Alias = p.curTok.Literal
	} else if p.peekTokenIs(lexer.IDENT) {
		p.nextToken()
		ref.Alias = p.curTok.Literal
	}

	return ref, nil
}

func (p *Parser) parseJoinClause() (*JoinClause, error) {
	join := GetJoinClause()
	join.Line, join.Column = p.pos2()

	switch p.curTok.Type {
	case lexer.INNER:
		join.JoinType = "INNER"
		p.nextToken()
	case lexer.LEFT:
		join.JoinType = "LEFT"
		p.nextToken()
		if p.curTokenIs(lexer.OUTER) {
			join.Outer = true
			p.nextToken()
		}
	case lexer.RIGHT:
		join.JoinType = "RIGHT"
		p.nextToken()
		if p.curTokenIs(lexer.OUTER) {
			join.Outer = true
			p.nextToken()
		}
	case lexer.FULL:
		join.JoinType = "FULL"
		p.nextToken()
		if p.curTokenIs(lexer.OUTER) {
			join.Outer = true
			p.nextToken()
		}
	case lexer.CROSS:
		join.JoinType = "CROSS"
		p.nextToken()
	case lexer.JOIN:
		join.JoinType = "INNER"
	default:
		PutJoinClause(join)
		return nil, p.unexpectedTok(p.curTok)
	}

	if !p.curTokenIs(lexer.JOIN) {
		PutJoinClause(join)
		return nil, p.unexpectedCur("JOIN")
	}

	p.nextToken()
	table, err := p.parseTableReference()
	if err != nil {
		PutJoinClause(join)
		return nil, err
	}
	join.Table = table

	if join.JoinType != "CROSS" {
		if err := p.expectPeek(lexer.ON); err != nil {
			PutJoinClause(join)
			return nil, err
		}
		p.nextToken()
		cond, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			PutJoinClause(join)
			return nil, err
		}
		join.Condition = cond
	}

	return join, nil
}

func (p *Parser) parseGroupByClause() ([]Expression, error) {
	p.nextToken()
	exprs := []Expression{}

	expr, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	exprs = append(exprs, expr)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		expr, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	return exprs, nil
}

func (p *Parser) parseOrderByClause() ([]*OrderByClause, error) {
	items := []*OrderByClause{}

	item, err := p.parseOrderByItem()
	if err != nil {
		return nil, err
	}
	items = append(items, item)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		item, err := p.parseOrderByItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (p *Parser) parseOrderByItem() (*OrderByClause, error) {
	p.nextToken()
	expr, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}

	item := &OrderByClause{BaseNode: p.base(), Expr: expr, Direction: "ASC"}

	if p.peekTokenIs(lexer.ASC) {
		p.nextToken()
		item.Direction = "ASC"
	} else if p.peekTokenIs(lexer.DESC) {
		p.nextToken()
		item.Direction = "DESC"
	}

	return item, nil
}

// parseTopClause parses SQL Server's "TOP n [PERCENT]", positioned on the
// TOP token itself.
func (p *Parser) parseTopClause() (*TopClause, error) {
	if err := p.expectPeek(lexer.NUMBER); err != nil {
		return nil, err
	}
	top := &TopClause{BaseNode: p.base()}
	count, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		return nil, diagnostics.NewInvalidNumericLiteral(p.curTok.Literal, p.curTok.Line, p.curTok.Column)
	}
	top.Count = count

	if p.peekTokenIs(lexer.IDENT) && strings.EqualFold(p.peekTok.Literal, "PERCENT") {
		p.nextToken()
		top.Percent = true
	}

	return top, nil
}

func (p *Parser) parseLimitClause() (*LimitClause, error) {
	if err := p.expectPeek(lexer.NUMBER); err != nil {
		return nil, err
	}
	limit := &LimitClause{BaseNode: p.base()}

	count, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		return nil, diagnostics.NewInvalidNumericLiteral(p.curTok.Literal, p.curTok.Line, p.curTok.Column)
	}
	limit.Count = count

	if p.peekTokenIs(lexer.OFFSET) {
		p.nextToken()
		if err := p.expectPeek(lexer.NUMBER); err != nil {
			return nil, err
		}
		offset, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
		if err != nil {
			return nil, diagnostics.NewInvalidNumericLiteral(p.curTok.Literal, p.curTok.Line, p.curTok.Column)
		}
		limit.Offset = offset
	} else if p.peekTokenIs(lexer.COMMA) {
		// MySQL-style "LIMIT offset, count".
		p.nextToken()
		if err := p.expectPeek(lexer.NUMBER); err != nil {
			return nil, err
		}
		count2, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
		if err != nil {
			return nil, diagnostics.NewInvalidNumericLiteral(p.curTok.Literal, p.curTok.Line, p.curTok.Column)
		}
		limit.Offset = limit.Count
		limit.Count = count2
	}

	return limit, nil
}
