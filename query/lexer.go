package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes output expressions
type Lexer struct {
	input string
	pos   int // offset of the next rune
	start int // offset of ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	l.start = l.pos
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// readString reads a quoted string. The second result is false when the
// closing quote is missing.
func (l *Lexer) readString(quote rune) (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 0:
				return result.String(), false
			case 'n':
				result.WriteRune('\n')
			case 't':
				result.WriteRune('\t')
			case '\\':
				result.WriteRune('\\')
			default:
				result.WriteRune(l.ch)
			}
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch != quote {
		return result.String(), false
	}
	l.readChar() // skip closing quote
	return result.String(), true
}

// readDigits consumes a run of ASCII digits
func (l *Lexer) readDigits(b *strings.Builder) {
	for isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
}

// readNumberOrRef reads a numeric literal, or a column reference when the
// leading digits are followed by ':' and a word character.
func (l *Lexer) readNumberOrRef() Token {
	pos := l.start
	var result strings.Builder
	l.readDigits(&result)

	if l.ch == ':' && result.Len() > 0 && isWordChar(l.peekChar()) {
		result.WriteRune(l.ch)
		l.readChar()
		for isWordChar(l.ch) {
			result.WriteRune(l.ch)
			l.readChar()
		}
		return Token{Type: TokenColumnRef, Value: result.String(), Pos: pos}
	}

	if l.ch == '.' {
		result.WriteRune(l.ch)
		l.readChar()
		l.readDigits(&result)
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			result.WriteRune(l.ch)
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				result.WriteRune(l.ch)
				l.readChar()
			}
			if !isDigit(l.ch) {
				return Token{Type: TokenError, Value: "malformed exponent in " + result.String(), Pos: pos}
			}
			l.readDigits(&result)
		}
	}

	// 12abc is neither a number nor a reference
	if isWordChar(l.ch) {
		for isWordChar(l.ch) {
			result.WriteRune(l.ch)
			l.readChar()
		}
		return Token{Type: TokenError, Value: "malformed number " + result.String(), Pos: pos}
	}

	return Token{Type: TokenNumber, Value: result.String(), Pos: pos}
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.start
	var tok Token

	switch l.ch {
	case 0:
		tok = Token{Type: TokenEOF, Value: "", Pos: len(l.input)}
	case '+':
		tok = Token{Type: TokenPlus, Value: "+", Pos: pos}
		l.readChar()
	case '-':
		tok = Token{Type: TokenMinus, Value: "-", Pos: pos}
		l.readChar()
	case '*':
		tok = Token{Type: TokenStar, Value: "*", Pos: pos}
		l.readChar()
	case '/':
		tok = Token{Type: TokenSlash, Value: "/", Pos: pos}
		l.readChar()
	case '(':
		tok = Token{Type: TokenLeftParen, Value: "(", Pos: pos}
		l.readChar()
	case ')':
		tok = Token{Type: TokenRightParen, Value: ")", Pos: pos}
		l.readChar()
	case '\'', '"':
		value, ok := l.readString(l.ch)
		if !ok {
			return Token{Type: TokenError, Value: "unterminated string literal", Pos: pos}
		}
		tok = Token{Type: TokenString, Value: value, Pos: pos}
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumberOrRef()
		}
		if isWordChar(l.ch) {
			var ident strings.Builder
			for isWordChar(l.ch) {
				ident.WriteRune(l.ch)
				l.readChar()
			}
			return Token{Type: TokenError, Value: "unexpected identifier " + ident.String(), Pos: pos}
		}
		tok = Token{Type: TokenError, Value: "unexpected character " + string(l.ch), Pos: pos}
		l.readChar()
	}

	return tok
}

// Tokenize returns all tokens from the input. The last token is always
// TokenEOF or TokenError.
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
