// Package analyzer walks a parsed SELECT statement and produces a
// structured query description: flattened WHERE conditions, select-list
// fields, tables, joins, grouping/ordering, and a weighted complexity
// score. Non-SELECT statements have no structural description to offer;
// callers only invoke Analyze on *parser.SelectStatement.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
	"github.com/Chahine-tech/sqlfront-go/pkg/parser"
)

// Condition is one classified leaf of the WHERE subtree.
type Condition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
	Type     string `json:"type"` // equality, comparison, pattern, list, range, other
}

// Field describes one select-list item.
type Field struct {
	Name           string `json:"name"`
	Alias          string `json:"alias,omitempty"`
	Type           string `json:"type"` // column, function, case, expression
	Table          string `json:"table,omitempty"`
	ExpressionText string `json:"expressionText,omitempty"`
	Aggregation    bool   `json:"aggregation,omitempty"`
}

// Table describes one FROM/JOIN table reference.
type Table struct {
	Name   string `json:"name"`
	Alias  string `json:"alias,omitempty"`
	Schema string `json:"schema,omitempty"`
}

// JoinCondition is the rendered form of a join's ON clause, when it is a
// simple binary comparison.
type JoinCondition struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
}

// Join describes one join in the FROM clause.
type Join struct {
	Kind      string         `json:"kind"`
	Table     string         `json:"table"`
	Alias     string         `json:"alias,omitempty"`
	Condition *JoinCondition `json:"condition,omitempty"`
}

// OrderByItem is one ORDER BY entry.
type OrderByItem struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Limit is a LIMIT/OFFSET pair.
type Limit struct {
	Count  int64 `json:"count"`
	Offset int64 `json:"offset"`
}

// QueryDescription is the structural view of a SELECT statement produced
// by Analyze.
type QueryDescription struct {
	Conditions        []Condition     `json:"conditions"`
	Fields            []Field         `json:"fields"`
	Tables            []Table         `json:"tables"`
	Joins             []Join          `json:"joins"`
	OrderBy           []OrderByItem   `json:"orderBy"`
	GroupBy           []string        `json:"groupBy"`
	Limit             *Limit          `json:"limit,omitempty"`
	Complexity        int             `json:"complexity"`
	ComplexityLevel   string          `json:"complexityLevel"`
	ComplexityFactors []string        `json:"complexityFactors"`
}

// Analyze walks stmt and produces its structural description and
// complexity score. stmt must not be nil.
func Analyze(stmt *parser.SelectStatement) *QueryDescription {
	qd := &QueryDescription{
		Conditions: flattenConditions(stmt.Where),
		Fields:     analyzeFields(stmt.Columns),
		Tables:     analyzeTables(stmt.From, stmt.Joins),
		Joins:      analyzeJoins(stmt.Joins),
		OrderBy:    analyzeOrderBy(stmt.OrderBy),
		GroupBy:    analyzeGroupBy(stmt.GroupBy),
		Limit:      analyzeLimit(stmt.Limit),
	}
	qd.Complexity, qd.ComplexityLevel, qd.ComplexityFactors = computeComplexity(qd)
	return qd
}

func flattenConditions(expr parser.Expression) []Condition {
	var out []Condition
	flatten(expr, &out)
	return out
}

func flatten(expr parser.Expression, out *[]Condition) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *parser.BinaryExpression:
		if e.Operator == "AND" || e.Operator == "OR" {
			flatten(e.Left, out)
			flatten(e.Right, out)
			return
		}
		*out = append(*out, Condition{
			Field:    renderExpr(e.Left),
			Operator: e.Operator,
			Value:    renderExpr(e.Right),
			Type:     classifyOperator(e.Operator),
		})
	case *parser.UnaryExpression:
		if strings.EqualFold(e.Operator, "NOT") {
			flatten(e.Operand, out)
			return
		}
	case *parser.InExpression:
		op := "IN"
		if e.Not {
			op = "NOT IN"
		}
		value := "(subquery)"
		if e.Subquery == nil {
			value = renderValuesList(e.Values)
		}
		*out = append(*out, Condition{
			Field:    renderExpr(e.Expression),
			Operator: op,
			Value:    value,
			Type:     "list",
		})
	case *parser.BetweenExpression:
		op := "BETWEEN"
		if e.Not {
			op = "NOT BETWEEN"
		}
		*out = append(*out, Condition{
			Field:    renderExpr(e.Expression),
			Operator: op,
			Value:    fmt.Sprintf("%s AND %s", renderExpr(e.Low), renderExpr(e.High)),
			Type:     "range",
		})
	case *parser.ExistsExpression:
		op := "EXISTS"
		if e.Not {
			op = "NOT EXISTS"
		}
		*out = append(*out, Condition{Field: "", Operator: op, Value: "(subquery)", Type: "other"})
	default:
		*out = append(*out, Condition{Field: renderExpr(expr), Type: "other"})
	}
}

func classifyOperator(op string) string {
	switch op {
	case "=", "!=":
		return "equality"
	case ">", "<", ">=", "<=":
		return "comparison"
	}
	if strings.Contains(op, "LIKE") {
		return "pattern"
	}
	return "other"
}

func analyzeFields(cols []parser.Expression) []Field {
	fields := make([]Field, 0, len(cols))
	for _, c := range cols {
		fields = append(fields, analyzeField(c))
	}
	return fields
}

func analyzeField(expr parser.Expression) Field {
	alias := ""
	target := expr
	if a, ok := expr.(*parser.AliasedExpression); ok {
		alias = a.Alias
		target = a.Expression
	}

	switch v := target.(type) {
	case *parser.StarExpression:
		return Field{Name: renderExpr(v), Alias: alias, Type: "column", Table: v.Table}
	case *parser.ColumnReference:
		return Field{Name: v.Column, Alias: alias, Type: "column", Table: v.Table}
	case *parser.FunctionCall:
		return Field{
			Name:        renderExpr(v),
			Alias:       alias,
			Type:        "function",
			Aggregation: lexer.AggregateFunctions[strings.ToUpper(v.Name)],
		}
	case *parser.WindowFunction:
		return Field{Name: renderExpr(v), Alias: alias, Type: "function"}
	case *parser.ExtractExpression:
		return Field{Name: renderExpr(v), Alias: alias, Type: "function"}
	case *parser.CaseExpression:
		return Field{Name: renderExpr(v), Alias: alias, Type: "case"}
	default:
		return Field{Alias: alias, Type: "expression", ExpressionText: renderExpr(target)}
	}
}

func analyzeTables(from *parser.FromClause, joins []*parser.JoinClause) []Table {
	var tables []Table
	if from != nil {
		for _, t := range from.Tables {
			tables = append(tables, renderTable(t))
		}
	}
	for _, j := range joins {
		if j.Table != nil {
			tables = append(tables, renderTable(j.Table))
		}
	}
	return tables
}

func renderTable(t *parser.TableReference) Table {
	if t.Subquery != nil {
		return Table{Name: "(subquery)", Alias: t.Alias}
	}
	return Table{Name: t.Name, Alias: t.Alias, Schema: t.Schema}
}

func analyzeJoins(joins []*parser.JoinClause) []Join {
	out := make([]Join, 0, len(joins))
	for _, j := range joins {
		kind := j.JoinType
		if j.Outer {
			kind += " OUTER"
		}
		join := Join{Kind: kind}
		if j.Table != nil {
			join.Table = j.Table.Name
			join.Alias = j.Table.Alias
		}
		if bin, ok := j.Condition.(*parser.BinaryExpression); ok {
			join.Condition = &JoinCondition{
				Left:     renderExpr(bin.Left),
				Operator: bin.Operator,
				Right:    renderExpr(bin.Right),
			}
		}
		out = append(out, join)
	}
	return out
}

func analyzeOrderBy(items []*parser.OrderByClause) []OrderByItem {
	out := make([]OrderByItem, 0, len(items))
	for _, it := range items {
		out = append(out, OrderByItem{Field: renderExpr(it.Expr), Direction: it.Direction})
	}
	return out
}

func analyzeGroupBy(exprs []parser.Expression) []string {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, renderExpr(e))
	}
	return out
}

func analyzeLimit(l *parser.LimitClause) *Limit {
	if l == nil {
		return nil
	}
	return &Limit{Count: l.Count, Offset: l.Offset}
}

// computeComplexity implements spec.md §4.6's weighted score: +2 per
// condition, +3 per additional table beyond the first, +4 per join, +2
// per aggregate field, +3 if groupBy non-empty, +2 if orderBy non-empty.
// Thresholds: <=5 simple, <=15 medium, otherwise complex.
func computeComplexity(qd *QueryDescription) (int, string, []string) {
	score := 0
	var factors []string

	if n := len(qd.Conditions); n > 0 {
		add := n * 2
		score += add
		factors = append(factors, fmt.Sprintf("%d condition(s) (+%d)", n, add))
	}
	if n := len(qd.Tables); n > 1 {
		add := (n - 1) * 3
		score += add
		factors = append(factors, fmt.Sprintf("%d additional table(s) beyond the first (+%d)", n-1, add))
	}
	if n := len(qd.Joins); n > 0 {
		add := n * 4
		score += add
		factors = append(factors, fmt.Sprintf("%d join(s) (+%d)", n, add))
	}
	aggCount := 0
	for _, f := range qd.Fields {
		if f.Aggregation {
			aggCount++
		}
	}
	if aggCount > 0 {
		add := aggCount * 2
		score += add
		factors = append(factors, fmt.Sprintf("%d aggregate field(s) (+%d)", aggCount, add))
	}
	if len(qd.GroupBy) > 0 {
		score += 3
		factors = append(factors, "GROUP BY present (+3)")
	}
	if len(qd.OrderBy) > 0 {
		score += 2
		factors = append(factors, "ORDER BY present (+2)")
	}

	level := "simple"
	switch {
	case score > 15:
		level = "complex"
	case score > 5:
		level = "medium"
	}
	return score, level, factors
}
