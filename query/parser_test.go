package query

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParser_ValidExpressions(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "sum of references", input: "0:foo + 1:bar"},
		{name: "sum with literal", input: "0:foo + 1:bar + 1000000"},
		{name: "precedence", input: "1 + 2 * 3 - 4 / 5"},
		{name: "parentheses", input: "(0:foo + 1) * (1:bar - 2)"},
		{name: "unary minus", input: "-0:foo"},
		{name: "double sign", input: "- -1"},
		{name: "string concatenation", input: `0:city + "-" + 1:city`},
		{name: "single literal", input: "42"},
		{name: "single string", input: "'constant'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if expr == nil {
				t.Fatal("Parse() returned nil expression")
			}
		})
	}
}

func TestParser_Structure(t *testing.T) {
	expr, err := Parse("1 + 2 * 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	sum, ok := expr.(*BinaryExpr)
	if !ok || sum.Operator != TokenPlus {
		t.Fatalf("expected top-level '+', got %#v", expr)
	}
	product, ok := sum.Right.(*BinaryExpr)
	if !ok || product.Operator != TokenStar {
		t.Fatalf("expected '*' on the right of '+', got %#v", sum.Right)
	}

	expr, err = Parse("8 - 4 - 2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	outer := expr.(*BinaryExpr)
	if _, ok := outer.Left.(*BinaryExpr); !ok {
		t.Error("subtraction should be left associative")
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "empty", input: "", wantMsg: "expected column reference"},
		{name: "dangling operator", input: "0:foo +", wantMsg: "end of expression"},
		{name: "missing close paren", input: "(1 + 2", wantMsg: "expected ')'"},
		{name: "extra close paren", input: "1 + 2)", wantMsg: "expected end of expression"},
		{name: "adjacent operands", input: "1 2", wantMsg: "expected end of expression"},
		{name: "identifier", input: "0:foo + city", wantMsg: "unexpected identifier city"},
		{name: "unterminated string", input: "'abc", wantMsg: "unterminated string"},
		{name: "python call", input: "int(0:foo)", wantMsg: "unexpected identifier int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.input)
			}
			if !errors.Is(err, ErrExpressionSyntax) {
				t.Errorf("Parse(%q) error = %v, want ExpressionSyntaxError", tt.input, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Parse(%q) error = %q, want it to contain %q", tt.input, err.Error(), tt.wantMsg)
			}
			var qe *Error
			if errors.As(err, &qe) && qe.Spec != tt.input {
				t.Errorf("error spec = %q, want %q", qe.Spec, tt.input)
			}
		})
	}
}

func TestParser_DepthLimit(t *testing.T) {
	input := strings.Repeat("(", MaxExpressionDepth+1) + "1" + strings.Repeat(")", MaxExpressionDepth+1)
	_, err := Parse(input)
	if !errors.Is(err, ErrExpressionSyntax) {
		t.Errorf("expected nesting error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "too deep") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestParser_TooLong(t *testing.T) {
	_, err := Parse(strings.Repeat("1+", MaxSpecLength))
	if !errors.Is(err, ErrExpressionSyntax) {
		t.Errorf("expected length error, got %v", err)
	}
}

func TestValidateSpec_TruncatesOnRuneBoundary(t *testing.T) {
	// 63 ASCII bytes put the 64-byte cut inside the first two-byte rune
	spec := strings.Repeat("a", 63) + strings.Repeat("é", MaxSpecLength)
	err := ValidateSpec(spec)
	var qe *Error
	if !errors.As(err, &qe) {
		t.Fatalf("ValidateSpec() error = %v, want *Error", err)
	}
	if !utf8.ValidString(qe.Spec) {
		t.Errorf("truncated spec %q is not valid UTF-8", qe.Spec)
	}
	if !utf8.ValidString(err.Error()) {
		t.Errorf("error text %q is not valid UTF-8", err.Error())
	}
	if want := strings.Repeat("a", 63) + "..."; qe.Spec != want {
		t.Errorf("truncated spec = %q, want %q", qe.Spec, want)
	}
}
