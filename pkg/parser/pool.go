package parser

import "sync"

var selectStatementPool = sync.Pool{
	New: func() interface{} { return &SelectStatement{} },
}

// GetSelectStatement returns a zeroed SelectStatement from the pool.
func GetSelectStatement() *SelectStatement {
	return selectStatementPool.Get().(*SelectStatement)
}

// PutSelectStatement resets and returns a SelectStatement to the pool.
// Callers must not retain the statement (or anything holding it) past
// this call.
func PutSelectStatement(s *SelectStatement) {
	*s = SelectStatement{}
	selectStatementPool.Put(s)
}

var joinClausePool = sync.Pool{
	New: func() interface{} { return &JoinClause{} },
}

func GetJoinClause() *JoinClause {
	return joinClausePool.Get().(*JoinClause)
}

func PutJoinClause(j *JoinClause) {
	*j = JoinClause{}
	joinClausePool.Put(j)
}

var binaryExpressionPool = sync.Pool{
	New: func() interface{} { return &BinaryExpression{} },
}

func GetBinaryExpression() *BinaryExpression {
	return binaryExpressionPool.Get().(*BinaryExpression)
}

func PutBinaryExpression(b *BinaryExpression) {
	*b = BinaryExpression{}
	binaryExpressionPool.Put(b)
}

var columnReferencePool = sync.Pool{
	New: func() interface{} { return &ColumnReference{} },
}

func GetColumnReference() *ColumnReference {
	return columnReferencePool.Get().(*ColumnReference)
}

func PutColumnReference(c *ColumnReference) {
	*c = ColumnReference{}
	columnReferencePool.Put(c)
}
