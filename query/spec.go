package query

import (
	"strings"

	"github.com/vegasq/csvjoin/table"
)

// OutputSpec is a compiled output-column specification.
//
// A spec that is exactly one column reference is a cherry-pick and copies
// the cell verbatim. Anything else is parsed as an expression.
type OutputSpec struct {
	Text  string // spec as written
	Label string // output column name, defaults to Text

	pick *ColumnRef
	expr Expression
}

// ParseOutputSpec parses text and binds its column references to tables.
// All reference errors surface here, before any row is evaluated.
func ParseOutputSpec(text string, tables []*table.Table) (*OutputSpec, error) {
	spec := &OutputSpec{Text: text, Label: text}

	if trimmed := strings.TrimSpace(text); IsColumnRef(trimmed) {
		ref, err := ParseColumnRef(trimmed, tables)
		if err != nil {
			return nil, annotate(err, text, -1)
		}
		spec.pick = &ref
		return spec, nil
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{Kind: ExpressionSyntaxError, Spec: text, Row: -1, Msg: "empty output spec"}
	}

	expr, err := Parse(text)
	if err != nil {
		return nil, annotate(err, text, -1)
	}
	if err := Bind(expr, tables); err != nil {
		return nil, annotate(err, text, -1)
	}
	spec.expr = expr
	return spec, nil
}

// ParseOutputSpecs parses a list of specs, stopping at the first error
func ParseOutputSpecs(texts []string, tables []*table.Table) ([]*OutputSpec, error) {
	specs := make([]*OutputSpec, 0, len(texts))
	for _, text := range texts {
		spec, err := ParseOutputSpec(text, tables)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// IsCherryPick reports whether the spec copies a single cell verbatim
func (s *OutputSpec) IsCherryPick() bool {
	return s.pick != nil
}

// References lists the column references used by the spec
func (s *OutputSpec) References() []ColumnRef {
	if s.pick != nil {
		return []ColumnRef{*s.pick}
	}
	return References(s.expr)
}

// Evaluate computes the spec's value for one row-group
func (s *OutputSpec) Evaluate(group RowGroup) (Value, error) {
	if s.pick != nil {
		cell, err := s.pick.Cell(group)
		if err != nil {
			return Value{}, annotate(err, s.Text, group.Position)
		}
		return TextValue(cell), nil
	}

	value, err := s.expr.Evaluate(group)
	if err != nil {
		return Value{}, annotate(err, s.Text, group.Position)
	}
	return value, nil
}

// Eval computes the output cell text for one row-group
func (s *OutputSpec) Eval(group RowGroup) (string, error) {
	value, err := s.Evaluate(group)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}
