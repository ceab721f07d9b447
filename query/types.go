package query

import "github.com/vegasq/csvjoin/table"

// TokenType represents the type of a token
type TokenType int

const (
	// Operands
	TokenColumnRef TokenType = iota // 0:city
	TokenNumber                      // 42, 1.5, 2e3
	TokenString                      // 'abc' or "abc"

	// Operators
	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	// Delimiters
	TokenLeftParen  // (
	TokenRightParen // )

	// Special
	TokenEOF
	TokenError
)

var tokenNames = map[TokenType]string{
	TokenColumnRef:  "column reference",
	TokenNumber:     "number",
	TokenString:     "string",
	TokenPlus:       "'+'",
	TokenMinus:      "'-'",
	TokenStar:       "'*'",
	TokenSlash:      "'/'",
	TokenLeftParen:  "'('",
	TokenRightParen: "')'",
	TokenEOF:        "end of expression",
	TokenError:      "invalid token",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   int // byte offset in the spec text
}

// RowGroup is one matched row from every input table.
//
// Rows[i] comes from table i and Indices[i] is its position in that table.
// Position is the ordinal of the group in join output order.
type RowGroup struct {
	Position int
	Indices  []int
	Rows     []table.Row
}

// Expression is a node of a parsed output expression
type Expression interface {
	Evaluate(group RowGroup) (Value, error)
}

// ColumnExpr is an embedded column reference. Ref is bound against the
// input tables after parsing.
type ColumnExpr struct {
	Text  string
	Ref   ColumnRef
	bound bool
}

// LiteralExpr represents a numeric or string literal
type LiteralExpr struct {
	Value Value
}

// UnaryExpr represents a prefix sign
type UnaryExpr struct {
	Operator TokenType // TokenMinus or TokenPlus
	Operand  Expression
}

// BinaryExpr represents an arithmetic or concatenation operation
type BinaryExpr struct {
	Left     Expression
	Operator TokenType // TokenPlus, TokenMinus, TokenStar or TokenSlash
	Right    Expression
}
