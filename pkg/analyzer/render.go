package analyzer

import (
	"fmt"
	"strings"

	"github.com/Chahine-tech/sqlfront-go/pkg/parser"
)

// renderExpr produces a readable, table-qualified string for any
// expression node. It is used both for condition field/value text and for
// select-list field names, so it has to cover every expression variant
// rather than relying on each node's own (lossier) String() method.
func renderExpr(e parser.Expression) string {
	if e == nil {
		return ""
	}
	switch v := e.(type) {
	case *parser.ColumnReference:
		if v.Table != "" {
			return v.Table + "." + v.Column
		}
		return v.Column
	case *parser.Literal:
		return renderLiteral(v)
	case *parser.StarExpression:
		if v.Table != "" {
			return v.Table + ".*"
		}
		return "*"
	case *parser.BinaryExpression:
		return fmt.Sprintf("%s %s %s", renderExpr(v.Left), v.Operator, renderExpr(v.Right))
	case *parser.UnaryExpression:
		return fmt.Sprintf("%s%s", v.Operator, renderExpr(v.Operand))
	case *parser.FunctionCall:
		args := make([]string, len(v.Arguments))
		for i, a := range v.Arguments {
			args[i] = renderExpr(a)
		}
		prefix := ""
		if v.Distinct {
			prefix = "DISTINCT "
		}
		return fmt.Sprintf("%s(%s%s)", v.Name, prefix, strings.Join(args, ", "))
	case *parser.WindowFunction:
		return renderExpr(v.Function) + " OVER (...)"
	case *parser.CaseExpression:
		return "CASE ... END"
	case *parser.InExpression:
		if v.Subquery != nil {
			return fmt.Sprintf("%s IN (subquery)", renderExpr(v.Expression))
		}
		return fmt.Sprintf("%s IN (%s)", renderExpr(v.Expression), renderValuesList(v.Values))
	case *parser.BetweenExpression:
		return fmt.Sprintf("%s BETWEEN %s AND %s", renderExpr(v.Expression), renderExpr(v.Low), renderExpr(v.High))
	case *parser.ExistsExpression:
		if v.Not {
			return "NOT EXISTS (subquery)"
		}
		return "EXISTS (subquery)"
	case *parser.SubqueryExpression:
		return "(subquery)"
	case *parser.AliasedExpression:
		return renderExpr(v.Expression)
	case *parser.IntervalExpression:
		return fmt.Sprintf("INTERVAL %s %s", renderExpr(v.Value), v.Unit)
	case *parser.ExtractExpression:
		return fmt.Sprintf("EXTRACT(%s FROM %s)", v.Unit, renderExpr(v.From))
	default:
		return e.String()
	}
}

func renderLiteral(l *parser.Literal) string {
	switch val := l.Value.(type) {
	case nil:
		return "NULL"
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func renderValuesList(values []parser.Expression) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = renderExpr(v)
	}
	return strings.Join(parts, ", ")
}
