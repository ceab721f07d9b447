package query

import (
	"errors"
	"strings"
	"testing"
)

func TestOutputSpec_Evaluate(t *testing.T) {
	columns := []string{"city", "foo", "bar", "ratio", "code", "zero", "neg"}
	cells := []string{"Austin", "1", "100", "2.5", "007", "0", "-4"}

	tests := []struct {
		name string
		spec string
		want string
	}{
		{name: "cherry-pick text", spec: "0:city", want: "Austin"},
		{name: "cherry-pick keeps leading zeros", spec: "0:code", want: "007"},
		{name: "cherry-pick with surrounding spaces", spec: " 0:code ", want: "007"},
		{name: "cherry-pick by position", spec: "0:2", want: "100"},
		{name: "integer sum", spec: "0:foo + 0:bar", want: "101"},
		{name: "sum with literal", spec: "0:foo + 0:bar + 1000000", want: "1000101"},
		{name: "leading zeros in arithmetic", spec: "0:code + 1", want: "8"},
		{name: "parenthesized reference reformats", spec: "(0:code)", want: "7"},
		{name: "subtraction", spec: "0:foo - 0:bar", want: "-99"},
		{name: "multiplication", spec: "0:bar * 0:neg", want: "-400"},
		{name: "precedence", spec: "0:foo + 0:bar * 2", want: "201"},
		{name: "parentheses", spec: "(0:foo + 0:bar) * 2", want: "202"},
		{name: "true division", spec: "0:bar / 4", want: "25.0"},
		{name: "fractional division", spec: "0:foo / 4", want: "0.25"},
		{name: "float arithmetic", spec: "0:ratio * 2", want: "5.0"},
		{name: "mixed int and float", spec: "0:foo + 0:ratio", want: "3.5"},
		{name: "unary minus", spec: "-0:neg", want: "4"},
		{name: "string concatenation", spec: `0:city + "-" + 'TX'`, want: "Austin-TX"},
		{name: "string and number", spec: `0:city + 0:foo`, want: "Austin1"},
		{name: "number and string keeps source text", spec: `0:code + 0:city`, want: "007Austin"},
		{name: "computed number and string", spec: `(0:foo + 1) + "x"`, want: "2x"},
		{name: "string literal with comma", spec: `0:city + ", TX"`, want: "Austin, TX"},
		{name: "reference inside string is literal", spec: `'0:foo'`, want: "0:foo"},
		{name: "literal only", spec: "2 * 21", want: "42"},
		{name: "int overflow promotes to float", spec: "9223372036854775807 + 1", want: "9.223372036854776e+18"},
	}

	tables, group := singleGroup(t, columns, cells...)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseOutputSpec(tt.spec, tables)
			if err != nil {
				t.Fatalf("ParseOutputSpec(%q) error = %v", tt.spec, err)
			}
			got, err := spec.Eval(group)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestOutputSpec_CherryPick(t *testing.T) {
	tables, _ := singleGroup(t, []string{"a"}, "1")

	tests := []struct {
		spec string
		want bool
	}{
		{spec: "0:a", want: true},
		{spec: "  0:a\t", want: true},
		{spec: "0:a + 0", want: false},
		{spec: "(0:a)", want: false},
	}
	for _, tt := range tests {
		spec, err := ParseOutputSpec(tt.spec, tables)
		if err != nil {
			t.Fatalf("ParseOutputSpec(%q) error = %v", tt.spec, err)
		}
		if spec.IsCherryPick() != tt.want {
			t.Errorf("IsCherryPick(%q) = %v, want %v", tt.spec, spec.IsCherryPick(), tt.want)
		}
	}
}

func TestOutputSpec_ParseErrors(t *testing.T) {
	tables := cityTables(t)

	tests := []struct {
		name    string
		spec    string
		wantErr error
		wantRef string
	}{
		{name: "file out of range in pick", spec: "2:city", wantErr: ErrInvalidReference, wantRef: "2:city"},
		{name: "file out of range in expression", spec: "0:foo + 5:bar", wantErr: ErrInvalidReference, wantRef: "5:bar"},
		{name: "unknown column in pick", spec: "0:bar", wantErr: ErrUnknownColumn, wantRef: "0:bar"},
		{name: "unknown column in expression", spec: "1:bar * 1:foo", wantErr: ErrUnknownColumn, wantRef: "1:foo"},
		{name: "syntax error", spec: "0:foo +* 1:bar", wantErr: ErrExpressionSyntax},
		{name: "empty spec", spec: "   ", wantErr: ErrExpressionSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutputSpec(tt.spec, tables)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseOutputSpec(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
			var qe *Error
			if !errors.As(err, &qe) {
				t.Fatalf("error is %T, want *Error", err)
			}
			if qe.Spec != tt.spec {
				t.Errorf("error spec = %q, want %q", qe.Spec, tt.spec)
			}
			if qe.Ref != tt.wantRef {
				t.Errorf("error ref = %q, want %q", qe.Ref, tt.wantRef)
			}
			if qe.Row != -1 {
				t.Errorf("parse error row = %d, want -1", qe.Row)
			}
		})
	}
}

func TestOutputSpec_EvalErrors(t *testing.T) {
	columns := []string{"city", "foo", "zero"}
	tables, group := singleGroup(t, columns, "Austin", "1", "0")
	group.Position = 7

	tests := []struct {
		name    string
		spec    string
		wantErr error
	}{
		{name: "subtract text", spec: "0:foo - 0:city", wantErr: ErrTypeMismatch},
		{name: "multiply text", spec: "0:city * 2", wantErr: ErrTypeMismatch},
		{name: "divide text", spec: "'a' / 1", wantErr: ErrTypeMismatch},
		{name: "negate text", spec: "-0:city", wantErr: ErrTypeMismatch},
		{name: "divide by zero cell", spec: "0:foo / 0:zero", wantErr: ErrArithmetic},
		{name: "divide by zero literal", spec: "1 / 0.0", wantErr: ErrArithmetic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := ParseOutputSpec(tt.spec, tables)
			if err != nil {
				t.Fatalf("ParseOutputSpec(%q) error = %v", tt.spec, err)
			}
			_, err = spec.Eval(group)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Eval(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
			}
			var qe *Error
			if !errors.As(err, &qe) {
				t.Fatalf("error is %T, want *Error", err)
			}
			if qe.Spec != tt.spec || qe.Row != 7 {
				t.Errorf("error spec = %q row = %d, want %q row 7", qe.Spec, qe.Row, tt.spec)
			}
			if !strings.Contains(err.Error(), "at row-group 7") {
				t.Errorf("error message %q lacks row position", err.Error())
			}
		})
	}
}

func TestOutputSpec_References(t *testing.T) {
	tables := cityTables(t)
	spec, err := ParseOutputSpec("0:foo + 1:bar * 0:4", tables)
	if err != nil {
		t.Fatalf("ParseOutputSpec() error = %v", err)
	}
	refs := spec.References()
	want := []string{"0:foo", "1:bar", "0:4"}
	if len(refs) != len(want) {
		t.Fatalf("References() = %v", refs)
	}
	for i, ref := range refs {
		if ref.Text != want[i] {
			t.Errorf("ref %d = %q, want %q", i, ref.Text, want[i])
		}
	}
}
