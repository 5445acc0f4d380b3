package sqlfront

import "github.com/Chahine-tech/sqlfront-go/pkg/parser"

// collectRefs walks an entire AST collecting every TableReference name
// encountered (duplicates preserved, so self-joins count twice) and the
// de-duplicated set of ColumnReference/identifier names. The walk is an
// explicit type switch over each statement and expression variant.
type refCollector struct {
	tables  []string
	columns map[string]struct{}
}

func collectRefs(stmt parser.Statement) ([]string, []string) {
	c := &refCollector{columns: make(map[string]struct{})}
	c.walkStatement(stmt)

	columns := make([]string, 0, len(c.columns))
	for name := range c.columns {
		columns = append(columns, name)
	}
	return c.tables, columns
}

func (c *refCollector) addColumn(name string) {
	if name == "" {
		return
	}
	c.columns[name] = struct{}{}
}

func (c *refCollector) walkStatement(stmt parser.Statement) {
	if stmt == nil {
		return
	}
	switch s := stmt.(type) {
	case *parser.SelectStatement:
		for _, col := range s.Columns {
			c.walkExpr(col)
		}
		if s.From != nil {
			for _, t := range s.From.Tables {
				c.walkTableReference(t)
			}
		}
		for _, j := range s.Joins {
			c.walkTableReference(j.Table)
			c.walkExpr(j.Condition)
		}
		c.walkExpr(s.Where)
		for _, g := range s.GroupBy {
			c.walkExpr(g)
		}
		c.walkExpr(s.Having)
		for _, o := range s.OrderBy {
			c.walkExpr(o.Expr)
		}
	case *parser.InsertStatement:
		c.walkTableReference(s.Table)
		for _, col := range s.Columns {
			c.addColumn(col)
		}
		for _, row := range s.Values {
			for _, v := range row {
				c.walkExpr(v)
			}
		}
		c.walkStatement(s.Select)
	case *parser.UpdateStatement:
		c.walkTableReference(s.Table)
		for _, a := range s.Set {
			c.addColumn(a.Column)
			c.walkExpr(a.Value)
		}
		c.walkExpr(s.Where)
	case *parser.DeleteStatement:
		if s.From != nil {
			for _, t := range s.From.Tables {
				c.walkTableReference(t)
			}
		}
		c.walkExpr(s.Where)
	case *parser.WithStatement:
		for _, cte := range s.CTEs {
			c.walkStatement(cte.Query)
		}
		c.walkStatement(s.Query)
	case *parser.UnionStatement:
		c.walkStatement(s.Left)
		c.walkStatement(s.Right)
		for _, o := range s.OrderBy {
			c.walkExpr(o.Expr)
		}
	}
}

func (c *refCollector) walkTableReference(t *parser.TableReference) {
	if t == nil {
		return
	}
	if t.Subquery != nil {
		c.walkStatement(t.Subquery.Query)
		return
	}
	if t.Name != "" {
		c.tables = append(c.tables, t.Name)
	}
}

func (c *refCollector) walkExpr(e parser.Expression) {
	if e == nil {
		return
	}
	switch v := e.(type) {
	case *parser.ColumnReference:
		c.addColumn(v.Column)
	case *parser.AliasedExpression:
		c.walkExpr(v.Expression)
	case *parser.BinaryExpression:
		c.walkExpr(v.Left)
		c.walkExpr(v.Right)
	case *parser.UnaryExpression:
		c.walkExpr(v.Operand)
	case *parser.FunctionCall:
		for _, a := range v.Arguments {
			c.walkExpr(a)
		}
	case *parser.WindowFunction:
		c.walkExpr(v.Function)
		c.walkOverClause(v.OverClause)
	case *parser.InExpression:
		c.walkExpr(v.Expression)
		for _, val := range v.Values {
			c.walkExpr(val)
		}
		if v.Subquery != nil {
			c.walkExpr(v.Subquery)
		}
	case *parser.BetweenExpression:
		c.walkExpr(v.Expression)
		c.walkExpr(v.Low)
		c.walkExpr(v.High)
	case *parser.ExistsExpression:
		if v.Subquery != nil {
			c.walkExpr(v.Subquery)
		}
	case *parser.SubqueryExpression:
		c.walkStatement(v.Query)
	case *parser.CaseExpression:
		c.walkExpr(v.Input)
		for _, w := range v.WhenClauses {
			c.walkExpr(w.Condition)
			c.walkExpr(w.Result)
		}
		c.walkExpr(v.ElseResult)
	case *parser.IntervalExpression:
		c.walkExpr(v.Value)
	case *parser.ExtractExpression:
		c.walkExpr(v.From)
	}
}

func (c *refCollector) walkOverClause(o *parser.OverClause) {
	if o == nil {
		return
	}
	for _, p := range o.PartitionBy {
		c.walkExpr(p)
	}
	for _, ob := range o.OrderBy {
		c.walkExpr(ob.Expr)
	}
	if o.Frame != nil {
		c.walkFrameBound(o.Frame.Start)
		c.walkFrameBound(o.Frame.End)
	}
}

func (c *refCollector) walkFrameBound(b *parser.FrameBound) {
	if b == nil {
		return
	}
	c.walkExpr(b.Offset)
}
