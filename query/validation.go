package query

import (
	"fmt"
	"unicode/utf8"
)

// Validation limits for user-supplied specs
const (
	// MaxSpecLength is the maximum accepted length of one output or join spec
	MaxSpecLength = 64 * 1024

	// MaxTokens is the maximum number of tokens in one output expression
	MaxTokens = 4096

	// MaxExpressionDepth is the maximum nesting depth for expressions
	MaxExpressionDepth = 100

	// MaxColumnNameLength is the maximum length of a referenced column name
	MaxColumnNameLength = 256
)

// ValidateSpec performs length validation on an output spec
func ValidateSpec(spec string) error {
	if len(spec) > MaxSpecLength {
		e := newError(ExpressionSyntaxError, "", "spec too long: %d bytes (max %d)", len(spec), MaxSpecLength)
		e.Spec = truncate(spec, 64) + "..."
		return e
	}
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// ValidateTokens validates token count
func ValidateTokens(tokens []Token) error {
	if len(tokens) > MaxTokens {
		return newError(ExpressionSyntaxError, "", "too many tokens: %d (max %d)", len(tokens), MaxTokens)
	}
	return nil
}

// ExpressionDepthCounter tracks expression nesting depth
type ExpressionDepthCounter struct {
	depth    int
	maxDepth int
}

// NewExpressionDepthCounter creates a new depth counter
func NewExpressionDepthCounter() *ExpressionDepthCounter {
	return &ExpressionDepthCounter{depth: 0, maxDepth: MaxExpressionDepth}
}

// Enter increments depth and returns error if limit exceeded
func (c *ExpressionDepthCounter) Enter() error {
	c.depth++
	if c.depth > c.maxDepth {
		return newError(ExpressionSyntaxError, "", "expression nesting too deep: %d (max %d)", c.depth, c.maxDepth)
	}
	return nil
}

// Exit decrements depth
func (c *ExpressionDepthCounter) Exit() {
	c.depth--
}

// describe renders a token for syntax error messages
func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of expression"
	case TokenString:
		return fmt.Sprintf("string %q", tok.Value)
	default:
		return fmt.Sprintf("%q", tok.Value)
	}
}
