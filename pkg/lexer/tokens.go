// Package lexer turns SQL source text into a stream of positioned tokens.
package lexer

import "fmt"

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	// Trivia, emitted only when the corresponding lexer option requests it.
	WHITESPACE
	NEWLINE
	COMMENT

	// Identifiers and literals.
	IDENT   // table_name, column_name, "quoted identifier", `quoted`
	STRING  // 'hello'
	NUMBER  // 123, 123.45, 1e10
	BOOLEAN // TRUE, FALSE
	NULL    // NULL

	// Clause keywords.
	SELECT
	FROM
	WHERE
	JOIN
	INNER
	LEFT
	RIGHT
	FULL
	OUTER
	CROSS
	ON
	GROUP
	BY
	ORDER
	HAVING
	AS
	AND
	OR
	NOT
	IN
	EXISTS
	DISTINCT
	ASC
	DESC
	LIMIT
	OFFSET
	UNION
	ALL
	WITH
	RECURSIVE
	TOP

	// DML statement keywords.
	INSERT
	INTO
	VALUES
	UPDATE
	SET
	DELETE

	// CASE expression.
	CASE
	WHEN
	THEN
	ELSE
	END

	// Predicate keywords.
	LIKE
	ILIKE
	BETWEEN
	IS
	ANY

	// Window functions.
	OVER
	PARTITION
	ROWS
	RANGE
	UNBOUNDED
	PRECEDING
	FOLLOWING
	CURRENT
	ROW

	// INTERVAL / EXTRACT and date-part units.
	INTERVAL
	EXTRACT
	YEAR
	MONTH
	DAY
	HOUR
	MINUTE
	SECOND

	// Function-name keywords that double as aggregate markers and as
	// legal (unquoted) select-list aliases.
	COUNT
	SUM
	AVG
	MAX
	MIN
	GROUP_CONCAT
	ROW_NUMBER
	RANK
	DENSE_RANK
	DATE
	TIMESTAMP

	// Operators.
	ASSIGN // =
	NOT_EQ // != or <>
	LT     // <
	GT     // >
	LTE    // <=
	GTE    // >=
	CONCAT // ||

	// Punctuation.
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	DOT       // .
	ASTERISK  // *
	PLUS      // +
	MINUS     // -
	SLASH     // /
	PERCENT   // %
)

// keywords maps the canonical upper-case spelling of a keyword to its
// token kind. Lookup is always done against the upper-cased surface text,
// so the source's own casing never matters.
var keywords = map[string]TokenType{
	"SELECT":       SELECT,
	"FROM":         FROM,
	"WHERE":        WHERE,
	"JOIN":         JOIN,
	"INNER":        INNER,
	"LEFT":         LEFT,
	"RIGHT":        RIGHT,
	"FULL":         FULL,
	"OUTER":        OUTER,
	"CROSS":        CROSS,
	"ON":           ON,
	"GROUP":        GROUP,
	"BY":           BY,
	"ORDER":        ORDER,
	"HAVING":       HAVING,
	"AS":           AS,
	"AND":          AND,
	"OR":           OR,
	"NOT":          NOT,
	"IN":           IN,
	"EXISTS":       EXISTS,
	"DISTINCT":     DISTINCT,
	"ASC":          ASC,
	"DESC":         DESC,
	"LIMIT":        LIMIT,
	"OFFSET":       OFFSET,
	"UNION":        UNION,
	"ALL":          ALL,
	"WITH":         WITH,
	"RECURSIVE":    RECURSIVE,
	"TOP":          TOP,
	"INSERT":       INSERT,
	"INTO":         INTO,
	"VALUES":       VALUES,
	"UPDATE":       UPDATE,
	"SET":          SET,
	"DELETE":       DELETE,
	"CASE":         CASE,
	"WHEN":         WHEN,
	"THEN":         THEN,
	"ELSE":         ELSE,
	"END":          END,
	"LIKE":         LIKE,
	"ILIKE":        ILIKE,
	"BETWEEN":      BETWEEN,
	"IS":           IS,
	"ANY":          ANY,
	"OVER":         OVER,
	"PARTITION":    PARTITION,
	"ROWS":         ROWS,
	"RANGE":        RANGE,
	"UNBOUNDED":    UNBOUNDED,
	"PRECEDING":    PRECEDING,
	"FOLLOWING":    FOLLOWING,
	"CURRENT":      CURRENT,
	"ROW":          ROW,
	"INTERVAL":     INTERVAL,
	"EXTRACT":      EXTRACT,
	"YEAR":         YEAR,
	"MONTH":        MONTH,
	"DAY":          DAY,
	"HOUR":         HOUR,
	"MINUTE":       MINUTE,
	"SECOND":       SECOND,
	"COUNT":        COUNT,
	"SUM":          SUM,
	"AVG":          AVG,
	"MAX":          MAX,
	"MIN":          MIN,
	"GROUP_CONCAT": GROUP_CONCAT,
	"ROW_NUMBER":   ROW_NUMBER,
	"RANK":         RANK,
	"DENSE_RANK":   DENSE_RANK,
	"DATE":         DATE,
	"TIMESTAMP":    TIMESTAMP,
	"TRUE":         BOOLEAN,
	"FALSE":        BOOLEAN,
	"NULL":         NULL,
}

// AliasableKeywords is the fixed set of keywords that may legitimately
// stand in as an unquoted select-list alias (spec.md's "aliasable
// keyword" set): date-part keywords and common function names, which are
// otherwise dedicated token kinds so the parser can recognize them in
// EXTRACT/window-function position.
var AliasableKeywords = map[TokenType]bool{
	YEAR: true, MONTH: true, DAY: true, HOUR: true, MINUTE: true, SECOND: true,
	COUNT: true, SUM: true, AVG: true, MAX: true, MIN: true, GROUP_CONCAT: true,
	ROW_NUMBER: true, RANK: true, DENSE_RANK: true, DATE: true, TIMESTAMP: true,
	ROW: true,
}

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF",
	WHITESPACE: "WHITESPACE", NEWLINE: "NEWLINE", COMMENT: "COMMENT",
	IDENT: "IDENT", STRING: "STRING", NUMBER: "NUMBER", BOOLEAN: "BOOLEAN", NULL: "NULL",
	SELECT: "SELECT", FROM: "FROM", WHERE: "WHERE", JOIN: "JOIN", INNER: "INNER",
	LEFT: "LEFT", RIGHT: "RIGHT", FULL: "FULL", OUTER: "OUTER", CROSS: "CROSS", ON: "ON",
	GROUP: "GROUP", BY: "BY", ORDER: "ORDER", HAVING: "HAVING", AS: "AS",
	AND: "AND", OR: "OR", NOT: "NOT", IN: "IN", EXISTS: "EXISTS", DISTINCT: "DISTINCT",
	ASC: "ASC", DESC: "DESC", LIMIT: "LIMIT", OFFSET: "OFFSET", UNION: "UNION", ALL: "ALL",
	WITH: "WITH", RECURSIVE: "RECURSIVE", TOP: "TOP",
	INSERT: "INSERT", INTO: "INTO", VALUES: "VALUES", UPDATE: "UPDATE", SET: "SET", DELETE: "DELETE",
	CASE: "CASE", WHEN: "WHEN", THEN: "THEN", ELSE: "ELSE", END: "END",
	LIKE: "LIKE", ILIKE: "ILIKE", BETWEEN: "BETWEEN", IS: "IS", ANY: "ANY",
	OVER: "OVER", PARTITION: "PARTITION", ROWS: "ROWS", RANGE: "RANGE",
	UNBOUNDED: "UNBOUNDED", PRECEDING: "PRECEDING", FOLLOWING: "FOLLOWING",
	CURRENT: "CURRENT", ROW: "ROW",
	INTERVAL: "INTERVAL", EXTRACT: "EXTRACT",
	YEAR: "YEAR", MONTH: "MONTH", DAY: "DAY", HOUR: "HOUR", MINUTE: "MINUTE", SECOND: "SECOND",
	COUNT: "COUNT", SUM: "SUM", AVG: "AVG", MAX: "MAX", MIN: "MIN", GROUP_CONCAT: "GROUP_CONCAT",
	ROW_NUMBER: "ROW_NUMBER", RANK: "RANK", DENSE_RANK: "DENSE_RANK", DATE: "DATE", TIMESTAMP: "TIMESTAMP",
	ASSIGN: "ASSIGN", NOT_EQ: "NOT_EQ", LT: "LT", GT: "GT", LTE: "LTE", GTE: "GTE", CONCAT: "CONCAT",
	COMMA: "COMMA", SEMICOLON: "SEMICOLON", LPAREN: "LPAREN", RPAREN: "RPAREN",
	LBRACKET: "LBRACKET", RBRACKET: "RBRACKET", DOT: "DOT", ASTERISK: "ASTERISK",
	PLUS: "PLUS", MINUS: "MINUS", SLASH: "SLASH", PERCENT: "PERCENT",
}

// AggregateFunctions is the set of function names (case-insensitive,
// matched upper-cased) the analyzer treats as aggregates.
var AggregateFunctions = map[string]bool{
	"COUNT": true, "SUM": true, "AVG": true, "MAX": true, "MIN": true, "GROUP_CONCAT": true,
}

// Token is an immutable lexical unit: a kind, its literal text, and its
// 1-based line/column plus byte offsets within the source. Keyword
// literals are upper-cased; string and quoted-identifier literals hold the
// unescaped content without the surrounding quotes.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Start   int
	End     int
}

func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}", t.Type, t.Literal, t.Line, t.Column)
}

// LookupIdent checks whether an upper-cased identifier spelling names a
// keyword, returning its dedicated kind or IDENT otherwise.
func LookupIdent(upper string) TokenType {
	if tok, ok := keywords[upper]; ok {
		return tok
	}
	return IDENT
}

// String returns the human-readable name of a token kind.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return "UNKNOWN"
}
