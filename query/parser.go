package query

import (
	"fmt"
)

// Parser parses output expressions into an AST
type Parser struct {
	tokens       []Token
	pos          int
	depthCounter *ExpressionDepthCounter
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{
		tokens:       tokens,
		pos:          0,
		depthCounter: NewExpressionDepthCounter(),
	}
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Value: ""}
	}
	return p.tokens[p.pos]
}

// advance moves to the next token
func (p *Parser) advance() {
	p.pos++
}

// syntaxError builds an ExpressionSyntaxError positioned at tok
func (p *Parser) syntaxError(tok Token, format string, args ...interface{}) error {
	if tok.Type == TokenError {
		return newError(ExpressionSyntaxError, "", "%s at offset %d", tok.Value, tok.Pos)
	}
	return newError(ExpressionSyntaxError, "", "%s at offset %d", fmt.Sprintf(format, args...), tok.Pos)
}

// expect checks if current token matches expected type and advances
func (p *Parser) expect(tokType TokenType) error {
	if p.current().Type != tokType {
		return p.syntaxError(p.current(), "expected %v, got %s", tokType, describe(p.current()))
	}
	p.advance()
	return nil
}

// Parse parses an output expression. Column references in the result are
// unbound; see Bind.
func Parse(spec string) (Expression, error) {
	if err := ValidateSpec(spec); err != nil {
		return nil, err
	}

	tokens := Tokenize(spec)

	if err := ValidateTokens(tokens); err != nil {
		return nil, annotate(err, spec, -1)
	}

	parser := NewParser(tokens)
	expr, err := parser.parseExpression()
	if err != nil {
		return nil, annotate(err, spec, -1)
	}
	if err := parser.expect(TokenEOF); err != nil {
		return nil, annotate(err, spec, -1)
	}
	return expr, nil
}

// parseExpression parses + and - (lowest precedence)
func (p *Parser) parseExpression() (Expression, error) {
	if err := p.depthCounter.Enter(); err != nil {
		return nil, err
	}
	defer p.depthCounter.Exit()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		operator := p.current().Type
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: operator,
			Right:    right,
		}
	}

	return left, nil
}

// parseTerm parses * and / (higher precedence than + and -)
func (p *Parser) parseTerm() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenStar || p.current().Type == TokenSlash {
		operator := p.current().Type
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: operator,
			Right:    right,
		}
	}

	return left, nil
}

// parseUnary parses prefix signs
func (p *Parser) parseUnary() (Expression, error) {
	if p.current().Type == TokenMinus || p.current().Type == TokenPlus {
		if err := p.depthCounter.Enter(); err != nil {
			return nil, err
		}
		defer p.depthCounter.Exit()

		operator := p.current().Type
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Operator: operator, Operand: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses operands and parenthesized expressions
func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.current()

	switch tok.Type {
	case TokenColumnRef:
		p.advance()
		return &ColumnExpr{Text: tok.Value}, nil
	case TokenNumber:
		value, ok := parseNumber(tok.Value)
		if !ok {
			return nil, p.syntaxError(tok, "invalid number %s", tok.Value)
		}
		value.Source = tok.Value
		p.advance()
		return &LiteralExpr{Value: value}, nil
	case TokenString:
		p.advance()
		return &LiteralExpr{Value: TextValue(tok.Value)}, nil
	case TokenLeftParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenRightParen); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, p.syntaxError(tok, "expected column reference, number, string or '(', got %s", describe(tok))
	}
}
