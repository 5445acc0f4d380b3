package parser

import (
	"strconv"
	"strings"

	"github.com/Chahine-tech/sqlfront-go/pkg/diagnostics"
	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
)

// Precedence levels for the expression grammar. LIKE/IN/BETWEEN/IS share
// a single tier with the comparison operators and chain left-associatively,
// matching how flat a real query's predicate chain reads.
const (
	LowestPrecedence = iota
	OrPrecedence
	AndPrecedence
	ComparisonPrecedence
	AdditivePrecedence
	MultiplicativePrecedence
	UnaryPrecedence
	CallPrecedence
)

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset - 1
	if idx < 0 || idx >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[idx]
}

func precedenceOf(t lexer.TokenType) int {
	switch t {
	case lexer.OR:
		return OrPrecedence
	case lexer.AND:
		return AndPrecedence
	case lexer.ASSIGN, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE,
		lexer.LIKE, lexer.ILIKE, lexer.IN, lexer.BETWEEN, lexer.IS:
		return ComparisonPrecedence
	case lexer.PLUS, lexer.MINUS:
		return AdditivePrecedence
	case lexer.ASTERISK, lexer.SLASH, lexer.PERCENT, lexer.CONCAT:
		return MultiplicativePrecedence
	default:
		return LowestPrecedence
	}
}

func (p *Parser) peekPrecedence() int {
	if p.peekTok.Type == lexer.NOT {
		switch p.peekAt(1).Type {
		case lexer.IN, lexer.LIKE, lexer.ILIKE, lexer.BETWEEN:
			return ComparisonPrecedence
		}
		return LowestPrecedence
	}
	return precedenceOf(p.peekTok.Type)
}

func operatorSymbol(t lexer.TokenType, literal string) string {
	switch t {
	case lexer.ASSIGN:
		return "="
	case lexer.NOT_EQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LTE:
		return "<="
	case lexer.GTE:
		return ">="
	case lexer.CONCAT:
		return "||"
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.ASTERISK:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	default:
		return literal
	}
}

// parseExpression is the precedence-climbing entry point: it parses one
// prefix term and then extends it with infix/postfix operators as long as
// their precedence exceeds the caller's floor.
func (p *Parser) parseExpression(precedence int) (Expression, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && !p.peekTokenIs(lexer.EOF) && precedence < p.peekPrecedence() {
		switch p.peekTok.Type {
		case lexer.OR, lexer.AND, lexer.ASSIGN, lexer.NOT_EQ, lexer.LT, lexer.GT,
			lexer.LTE, lexer.GTE, lexer.CONCAT, lexer.PLUS, lexer.MINUS,
			lexer.ASTERISK, lexer.SLASH, lexer.PERCENT, lexer.LIKE, lexer.ILIKE:
			p.nextToken()
			left, err = p.parseBinaryExpression(left, false)
		case lexer.IN:
			p.nextToken()
			left, err = p.parseInExpression(left, false)
		case lexer.BETWEEN:
			p.nextToken()
			left, err = p.parseBetweenExpression(left, false)
		case lexer.IS:
			p.nextToken()
			left, err = p.parseIsExpression(left)
		case lexer.NOT:
			p.nextToken()
			switch p.peekTok.Type {
			case lexer.IN:
				p.nextToken()
				left, err = p.parseInExpression(left, true)
			case lexer.BETWEEN:
				p.nextToken()
				left, err = p.parseBetweenExpression(left, true)
			case lexer.LIKE, lexer.ILIKE:
				p.nextToken()
				left, err = p.parseBinaryExpression(left, true)
			default:
				return nil, p.unexpectedTok(p.peekTok)
			}
		default:
			return left, nil
		}
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func isComparisonOperator(t lexer.TokenType) bool {
	switch t {
	case lexer.ASSIGN, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		return true
	}
	return false
}

// parseBinaryExpression parses the right-hand side of an infix operator.
// When the operator is a comparison and is immediately followed by ANY or
// ALL, the quantifier is folded into the operator text (e.g. "> ALL") and
// the right-hand side is required to be a parenthesized subquery.
func (p *Parser) parseBinaryExpression(left Expression, negated bool) (Expression, error) {
	opTok := p.curTok
	op := operatorSymbol(opTok.Type, opTok.Literal)
	if negated {
		op = "NOT " + op
	}
	prec := precedenceOf(opTok.Type)

	if isComparisonOperator(opTok.Type) && (p.peekTokenIs(lexer.ANY) || p.peekTokenIs(lexer.ALL)) {
		p.nextToken()
		op = op + " " + p.curTok.Literal
		if err := p.expectPeek(lexer.LPAREN); err != nil {
			return nil, err
		}
		node := p.base()
		p.nextToken()
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
		right := &SubqueryExpression{BaseNode: node, Query: stmt}
		bin := GetBinaryExpression()
		bin.Line, bin.Column = opTok.Line, opTok.Column
		bin.Left, bin.Operator, bin.Right = left, op, right
		return bin, nil
	}

	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	bin := GetBinaryExpression()
	bin.Line, bin.Column = opTok.Line, opTok.Column
	bin.Left, bin.Operator, bin.Right = left, op, right
	return bin, nil
}

func (p *Parser) parseIsExpression(left Expression) (Expression, error) {
	line, col := p.pos2()
	p.nextToken() // move past IS
	op := "IS"
	if p.curTokenIs(lexer.NOT) {
		op = "IS NOT"
		p.nextToken()
	}
	if !p.curTokenIs(lexer.NULL) {
		return nil, p.unexpectedCur("NULL")
	}
	right := &Literal{BaseNode: p.base(), Value: nil}
	bin := GetBinaryExpression()
	bin.Line, bin.Column = line, col
	bin.Left, bin.Operator, bin.Right = left, op, right
	return bin, nil
}

func (p *Parser) parseInExpression(left Expression, not bool) (Expression, error) {
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}
	in := &InExpression{BaseNode: p.base(), Expression: left, Not: not}

	if p.peekTokenIs(lexer.SELECT) || p.peekTokenIs(lexer.WITH) {
		p.nextToken()
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
		in.Subquery = &SubqueryExpression{BaseNode: p.base(), Query: stmt}
		return in, nil
	}

	p.nextToken()
	val, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	in.Values = append(in.Values, val)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		val, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		in.Values = append(in.Values, val)
	}

	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return in, nil
}

func (p *Parser) parseBetweenExpression(left Expression, not bool) (Expression, error) {
	between := &BetweenExpression{BaseNode: p.base(), Expression: left, Not: not}

	p.nextToken()
	low, err := p.parseExpression(ComparisonPrecedence)
	if err != nil {
		return nil, err
	}
	between.Low = low

	if err := p.expectPeek(lexer.AND); err != nil {
		return nil, err
	}
	p.nextToken()
	high, err := p.parseExpression(ComparisonPrecedence)
	if err != nil {
		return nil, err
	}
	between.High = high

	return between, nil
}

func (p *Parser) parsePrefix() (Expression, error) {
	switch p.curTok.Type {
	case lexer.NUMBER:
		return p.parseNumberLiteral()
	case lexer.STRING:
		return &Literal{BaseNode: p.base(), Value: p.curTok.Literal}, nil
	case lexer.BOOLEAN:
		return &Literal{BaseNode: p.base(), Value: strings.EqualFold(p.curTok.Literal, "TRUE")}, nil
	case lexer.NULL:
		return &Literal{BaseNode: p.base(), Value: nil}, nil
	case lexer.ASTERISK:
		return &StarExpression{BaseNode: p.base()}, nil
	case lexer.IDENT, lexer.COUNT, lexer.SUM, lexer.AVG, lexer.MAX, lexer.MIN,
		lexer.GROUP_CONCAT, lexer.ROW_NUMBER, lexer.RANK, lexer.DENSE_RANK,
		lexer.DATE, lexer.TIMESTAMP, lexer.YEAR, lexer.MONTH, lexer.DAY,
		lexer.HOUR, lexer.MINUTE, lexer.SECOND, lexer.ROW:
		return p.parseIdentifierExpression()
	case lexer.LPAREN:
		return p.parseGroupedOrSubquery()
	case lexer.MINUS, lexer.PLUS:
		return p.parseUnaryExpression()
	case lexer.NOT:
		return p.parseUnaryExpression()
	case lexer.EXISTS:
		return p.parseExistsExpression(false)
	case lexer.CASE:
		return p.parseCaseExpression()
	case lexer.EXTRACT:
		return p.parseExtractExpression()
	case lexer.INTERVAL:
		return p.parseIntervalExpression()
	default:
		return nil, p.unexpectedTok(p.curTok)
	}
}

func (p *Parser) parseNumberLiteral() (Expression, error) {
	lit := p.curTok.Literal
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, diagnostics.NewInvalidNumericLiteral(lit, p.curTok.Line, p.curTok.Column)
		}
		return &Literal{BaseNode: p.base(), Value: f}, nil
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, diagnostics.NewInvalidNumericLiteral(lit, p.curTok.Line, p.curTok.Column)
	}
	return &Literal{BaseNode: p.base(), Value: n}, nil
}

func (p *Parser) parseIdentifierExpression() (Expression, error) {
	first := p.curTok.Literal
	node := p.base()

	if p.peekTokenIs(lexer.DOT) {
		p.nextToken()
		p.nextToken()
		ref := GetColumnReference()
		ref.BaseNode, ref.Table, ref.Column = node, first, p.curTok.Literal
		return ref, nil
	}

	if p.peekTokenIs(lexer.LPAREN) {
		return p.parseFunctionCall(first)
	}

	ref := GetColumnReference()
	ref.BaseNode, ref.Column = node, first
	return ref, nil
}

func (p *Parser) parseFunctionCall(name string) (Expression, error) {
	fc := &FunctionCall{BaseNode: p.base(), Name: strings.ToUpper(name)}

	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}

	if p.peekTokenIs(lexer.DISTINCT) {
		p.nextToken()
		fc.Distinct = true
	}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
	} else {
		p.nextToken()
		arg, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		fc.Arguments = append(fc.Arguments, arg)

		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			arg, err := p.parseExpression(LowestPrecedence)
			if err != nil {
				return nil, err
			}
			fc.Arguments = append(fc.Arguments, arg)
		}

		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
	}

	if p.peekTokenIs(lexer.OVER) {
		p.nextToken()
		over, err := p.parseOverClause()
		if err != nil {
			return nil, err
		}
		return &WindowFunction{BaseNode: fc.BaseNode, Function: fc, OverClause: over}, nil
	}

	return fc, nil
}

func (p *Parser) parseGroupedOrSubquery() (Expression, error) {
	node := p.base()
	p.nextToken()

	if p.curTokenIs(lexer.SELECT) || p.curTokenIs(lexer.WITH) {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.RPAREN); err != nil {
			return nil, err
		}
		return &SubqueryExpression{BaseNode: node, Query: stmt}, nil
	}

	expr, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseUnaryExpression() (Expression, error) {
	op := p.curTok.Literal
	if p.curTokenIs(lexer.NOT) {
		op = "NOT"
		if p.peekTokenIs(lexer.EXISTS) {
			p.nextToken()
			return p.parseExistsExpression(true)
		}
	}
	node := p.base()
	p.nextToken()
	operand, err := p.parseExpression(UnaryPrecedence)
	if err != nil {
		return nil, err
	}
	return &UnaryExpression{BaseNode: node, Operator: op, Operand: operand}, nil
}

func (p *Parser) parseExistsExpression(not bool) (Expression, error) {
	node := p.base()
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ExistsExpression{BaseNode: node, Not: not, Subquery: &SubqueryExpression{BaseNode: node, Query: stmt}}, nil
}

func (p *Parser) parseCaseExpression() (Expression, error) {
	node := p.base()
	c := &CaseExpression{BaseNode: node}

	if !p.peekTokenIs(lexer.WHEN) {
		p.nextToken()
		input, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		c.Input = input
	}

	for p.peekTokenIs(lexer.WHEN) {
		p.nextToken()
		w, err := p.parseWhenClause()
		if err != nil {
			return nil, err
		}
		c.WhenClauses = append(c.WhenClauses, w)
	}

	if len(c.WhenClauses) == 0 {
		return nil, diagnostics.NewInvalidExpression("CASE requires at least one WHEN clause", node.Line, node.Column)
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		elseResult, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		c.ElseResult = elseResult
	}

	if err := p.expectPeek(lexer.END); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Parser) parseWhenClause() (*WhenClause, error) {
	node := p.base()
	p.nextToken()
	cond, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.THEN); err != nil {
		return nil, err
	}
	p.nextToken()
	result, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	return &WhenClause{BaseNode: node, Condition: cond, Result: result}, nil
}

func (p *Parser) parseExtractExpression() (Expression, error) {
	node := p.base()
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}
	p.nextToken()
	unit := strings.ToUpper(p.curTok.Literal)

	if err := p.expectPeek(lexer.FROM); err != nil {
		return nil, diagnostics.NewExpectedToken("FROM", p.peekTok.Type.String(), p.peekTok.Line, p.peekTok.Column)
	}
	p.nextToken()
	from, err := p.parseExpression(LowestPrecedence)
	if err != nil {
		return nil, err
	}
	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ExtractExpression{BaseNode: node, Unit: unit, From: from}, nil
}

var intervalUnits = map[lexer.TokenType]bool{
	lexer.YEAR: true, lexer.MONTH: true, lexer.DAY: true,
	lexer.HOUR: true, lexer.MINUTE: true, lexer.SECOND: true,
}

func (p *Parser) parseIntervalExpression() (Expression, error) {
	node := p.base()
	p.nextToken()
	value, err := p.parseExpression(AdditivePrecedence)
	if err != nil {
		return nil, err
	}

	unit := "DAY"
	if intervalUnits[p.peekTok.Type] {
		p.nextToken()
		unit = strings.ToUpper(p.curTok.Literal)
	}

	return &IntervalExpression{BaseNode: node, Value: value, Unit: unit}, nil
}

func (p *Parser) parseOverClause() (*OverClause, error) {
	node := p.base()
	if err := p.expectPeek(lexer.LPAREN); err != nil {
		return nil, err
	}
	over := &OverClause{BaseNode: node}

	if p.peekTokenIs(lexer.PARTITION) {
		p.nextToken()
		if err := p.expectPeek(lexer.BY); err != nil {
			return nil, err
		}
		p.nextToken()
		expr, err := p.parseExpression(LowestPrecedence)
		if err != nil {
			return nil, err
		}
		over.PartitionBy = append(over.PartitionBy, expr)

		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			expr, err := p.parseExpression(LowestPrecedence)
			if err != nil {
				return nil, err
			}
			over.PartitionBy = append(over.PartitionBy, expr)
		}
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
		over.OrderBy = orderBy
	}

	if p.peekTokenIs(lexer.ROWS) || p.peekTokenIs(lexer.RANGE) {
		p.nextToken()
		frame, err := p.parseWindowFrame()
		if err != nil {
			return nil, err
		}
		over.Frame = frame
	}

	if err := p.expectPeek(lexer.RPAREN); err != nil {
		return nil, err
	}
	return over, nil
}

func (p *Parser) parseWindowFrame() (*WindowFrame, error) {
	node := p.base()
	frameType := p.curTok.Literal

	if p.peekTokenIs(lexer.BETWEEN) {
		p.nextToken()
		p.nextToken()
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		if err := p.expectPeek(lexer.AND); err != nil {
			return nil, err
		}
		p.nextToken()
		end, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		return &WindowFrame{BaseNode: node, FrameType: frameType, Start: start, End: end}, nil
	}

	p.nextToken()
	start, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	return &WindowFrame{BaseNode: node, FrameType: frameType, Start: start}, nil
}

func (p *Parser) parseFrameBound() (*FrameBound, error) {
	node := p.base()

	if p.curTokenIs(lexer.UNBOUNDED) {
		p.nextToken()
		return &FrameBound{BaseNode: node, BoundType: "UNBOUNDED", Direction: p.curTok.Literal}, nil
	}
	if p.curTokenIs(lexer.CURRENT) {
		if err := p.expectPeek(lexer.ROW); err != nil {
			return nil, err
		}
		return &FrameBound{BaseNode: node, BoundType: "CURRENT_ROW"}, nil
	}

	if p.curTokenIs(lexer.INTERVAL) {
		interval, err := p.parseIntervalExpression()
		if err != nil {
			return nil, err
		}
		p.nextToken()
		return &FrameBound{BaseNode: node, BoundType: "INTERVAL", Direction: p.curTok.Literal, Offset: interval}, nil
	}

	n, err := strconv.ParseInt(p.curTok.Literal, 10, 64)
	if err != nil {
		return nil, diagnostics.NewInvalidNumericLiteral(p.curTok.Literal, p.curTok.Line, p.curTok.Column)
	}
	p.nextToken()
	return &FrameBound{BaseNode: node, BoundType: "OFFSET", Direction: p.curTok.Literal, Offset: &Literal{Value: n}}, nil
}
