// Package sqlfront is the public entry point: parse SQL text into an AST,
// validate it, pull out the tables and columns it touches, or run the
// structural analyzer over a SELECT. Everything here is a thin envelope
// around pkg/lexer, pkg/parser and pkg/analyzer — it owns no grammar or
// analysis logic of its own.
package sqlfront

import (
	"context"
	"strings"

	"github.com/Chahine-tech/sqlfront-go/pkg/analyzer"
	"github.com/Chahine-tech/sqlfront-go/pkg/dialect"
	"github.com/Chahine-tech/sqlfront-go/pkg/lexer"
	"github.com/Chahine-tech/sqlfront-go/pkg/parser"
)

// Options controls parsing behavior across all of the package's entry
// points. The zero value is the permissive default: ANSI dialect,
// trailing tokens after a complete statement are ignored.
type Options struct {
	// Strict rejects any non-whitespace/comment input left over after a
	// complete statement has been parsed (e.g. a stray trailing
	// semicolon followed by more text, or a second statement).
	Strict bool
	// Dialect names the target SQL engine; see pkg/dialect. It does not
	// change which keywords or constructs are accepted. Empty means the
	// ANSI default.
	Dialect string
	// IncludeTokens, when set, populates ParseResult.Tokens with the
	// full token stream (useful for tooling, not needed for the AST
	// itself).
	IncludeTokens bool
}

func (o Options) resolveDialect() dialect.Dialect {
	if o.Dialect == "" {
		return dialect.Default()
	}
	return dialect.GetDialect(o.Dialect)
}

// ParseResult is the outcome of ParseSQL.
type ParseResult struct {
	Success bool            `json:"success"`
	AST     parser.Statement `json:"ast,omitempty"`
	Tables  []string        `json:"tables"`
	Columns []string        `json:"columns"`
	Tokens  []lexer.Token   `json:"tokens,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ParseSQL lexes and parses sql into an AST, then extracts the tables and
// columns it references. Tables preserve duplicates (a self-join counts
// twice); columns are de-duplicated.
func ParseSQL(sql string, opts Options) ParseResult {
	return ParseSQLContext(context.Background(), sql, opts)
}

// ParseSQLContext is ParseSQL with a caller-supplied context: once ctx is
// done, the in-flight parse unwinds early instead of running to
// completion. Use this over ParseSQL to bound parse time against
// adversarial or oversized input.
func ParseSQLContext(ctx context.Context, sql string, opts Options) ParseResult {
	d := opts.resolveDialect()

	var tokens []lexer.Token
	if opts.IncludeTokens {
		toks, err := lexer.Tokenize(sql, lexer.Options{})
		if err != nil {
			return ParseResult{Success: false, Error: err.Error()}
		}
		tokens = toks
	}

	p, err := parser.NewWithContext(ctx, sql, d)
	if err != nil {
		return ParseResult{Success: false, Error: err.Error(), Tokens: tokens}
	}

	stmt, err := p.ParseStatement()
	if err != nil {
		return ParseResult{Success: false, Error: err.Error(), Tokens: tokens}
	}

	if err := checkTrailing(p, opts.Strict); err != nil {
		return ParseResult{Success: false, Error: err.Error(), Tokens: tokens}
	}

	tables, columns := collectRefs(stmt)
	return ParseResult{
		Success: true,
		AST:     stmt,
		Tables:  tables,
		Columns: columns,
		Tokens:  tokens,
	}
}

// checkTrailing enforces Strict mode: once ParseStatement has consumed a
// full statement, the only thing allowed to remain is a single trailing
// semicolon followed by EOF. In non-strict mode, anything left over is
// simply ignored.
func checkTrailing(p *parser.Parser, strict bool) error {
	if !strict {
		return nil
	}
	return p.ExpectTrailingEOF()
}

// ValidateResult is the outcome of ValidateSQL.
type ValidateResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateSQL reports whether sql parses as a single valid statement
// without building the table/column extraction or returning the AST.
func ValidateSQL(sql string, opts Options) ValidateResult {
	d := opts.resolveDialect()

	p, err := parser.NewWithDialect(sql, d)
	if err != nil {
		return ValidateResult{Valid: false, Error: err.Error()}
	}
	if _, err := p.ParseStatement(); err != nil {
		return ValidateResult{Valid: false, Error: err.Error()}
	}
	if err := checkTrailing(p, opts.Strict); err != nil {
		return ValidateResult{Valid: false, Error: err.Error()}
	}
	return ValidateResult{Valid: true}
}

// ExtractTables returns every table name referenced by sql (duplicates
// preserved), or nil if sql does not parse.
func ExtractTables(sql string) []string {
	p, err := parser.New(sql)
	if err != nil {
		return nil
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil
	}
	tables, _ := collectRefs(stmt)
	return tables
}

// ExtractColumns returns the de-duplicated set of column names referenced
// by sql, or nil if sql does not parse.
func ExtractColumns(sql string) []string {
	p, err := parser.New(sql)
	if err != nil {
		return nil
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil
	}
	_, columns := collectRefs(stmt)
	return columns
}

// QueryInfo is the minimal shape of the parsed statement surfaced by
// AnalyzeSQL, independent of the structural description.
type QueryInfo struct {
	Type string `json:"type"`
	SQL  string `json:"sql"`
}

// AnalyzeResult is the outcome of AnalyzeSQL.
type AnalyzeResult struct {
	Success    bool                      `json:"success"`
	Query      QueryInfo                 `json:"query"`
	Analysis   *analyzer.QueryDescription `json:"analysis,omitempty"`
	Complexity string                    `json:"complexity,omitempty"`
	AST        parser.Statement          `json:"ast,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

// AnalyzeSQL parses sql and, if it is a SELECT (optionally wrapped in a
// WITH clause), runs the structural analyzer over it. Non-SELECT
// statements parse successfully and carry an Analysis holding only the
// referenced Tables.
func AnalyzeSQL(sql string, opts Options) AnalyzeResult {
	return AnalyzeSQLContext(context.Background(), sql, opts)
}

// AnalyzeSQLContext is AnalyzeSQL with a caller-supplied context: once ctx
// is done, the in-flight parse unwinds early and AnalyzeResult.Error
// reports a cancellation instead of running to completion. Use this over
// AnalyzeSQL to bound analysis time against adversarial or oversized
// input.
func AnalyzeSQLContext(ctx context.Context, sql string, opts Options) AnalyzeResult {
	d := opts.resolveDialect()

	p, err := parser.NewWithContext(ctx, sql, d)
	if err != nil {
		return AnalyzeResult{Success: false, Error: err.Error()}
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return AnalyzeResult{Success: false, Error: err.Error()}
	}
	if err := checkTrailing(p, opts.Strict); err != nil {
		return AnalyzeResult{Success: false, Error: err.Error()}
	}

	result := AnalyzeResult{
		Success: true,
		Query:   QueryInfo{Type: statementType(stmt), SQL: strings.TrimSpace(sql)},
		AST:     stmt,
	}

	if sel := unwrapSelect(stmt); sel != nil {
		qd := analyzer.Analyze(sel)
		result.Analysis = qd
		result.Complexity = qd.ComplexityLevel
	} else {
		// Non-SELECT statements (INSERT/UPDATE/DELETE, or a UNION) have no
		// structural description to offer, but their referenced tables are
		// still worth surfacing rather than leaving Analysis empty.
		tables, _ := collectRefs(stmt)
		result.Analysis = &analyzer.QueryDescription{Tables: tablesFromNames(tables)}
	}

	return result
}

func tablesFromNames(names []string) []analyzer.Table {
	tables := make([]analyzer.Table, 0, len(names))
	for _, name := range names {
		tables = append(tables, analyzer.Table{Name: name})
	}
	return tables
}

// unwrapSelect returns the SelectStatement at the root of stmt, looking
// through a leading WITH clause, or nil if stmt is a UNION or a
// non-SELECT statement.
func unwrapSelect(stmt parser.Statement) *parser.SelectStatement {
	switch s := stmt.(type) {
	case *parser.SelectStatement:
		return s
	case *parser.WithStatement:
		return unwrapSelect(s.Query)
	default:
		return nil
	}
}

func statementType(stmt parser.Statement) string {
	switch stmt.(type) {
	case *parser.SelectStatement:
		return "SELECT"
	case *parser.InsertStatement:
		return "INSERT"
	case *parser.UpdateStatement:
		return "UPDATE"
	case *parser.DeleteStatement:
		return "DELETE"
	case *parser.WithStatement:
		return "WITH"
	case *parser.UnionStatement:
		return "UNION"
	default:
		return "UNKNOWN"
	}
}
