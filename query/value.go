package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ValueType tags the variant held by a Value
type ValueType int

const (
	Text ValueType = iota
	Numeric
)

func (t ValueType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "text"
}

// Value is a scalar produced by a cell lookup, a literal or an operator.
//
// Numeric values are either exact integers (IsInt) or floats. Source keeps
// the text a numeric value was parsed from, so a cell like "007" still reads
// "007" when it is concatenated with text.
type Value struct {
	Type   ValueType
	Str    string
	IsInt  bool
	Int    int64
	Float  float64
	Source string
}

var numericLiteral = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
var integerLiteral = regexp.MustCompile(`^[+-]?[0-9]+$`)

// TextValue wraps a string
func TextValue(s string) Value {
	return Value{Type: Text, Str: s}
}

// IntValue wraps an integer
func IntValue(i int64) Value {
	return Value{Type: Numeric, IsInt: true, Int: i, Float: float64(i)}
}

// FloatValue wraps a float
func FloatValue(f float64) Value {
	return Value{Type: Numeric, Float: f}
}

// ParseCell returns the value view of a raw cell: numeric when the trimmed
// text is an integer or decimal literal, text otherwise.
func ParseCell(raw string) Value {
	if v, ok := parseNumber(strings.TrimSpace(raw)); ok {
		v.Source = raw
		return v
	}
	return TextValue(raw)
}

// parseNumber parses a decimal literal. Integers too large for int64 are
// kept as floats.
func parseNumber(s string) (Value, bool) {
	if !numericLiteral.MatchString(s) {
		return Value{}, false
	}
	if integerLiteral.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i), true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return Value{}, false
	}
	return FloatValue(f), true
}

// IsNumeric reports whether the value has a numeric view
func (v Value) IsNumeric() bool {
	return v.Type == Numeric
}

// String renders the value as an output cell. Numbers use the canonical
// format regardless of their source text.
func (v Value) String() string {
	if v.Type == Text {
		return v.Str
	}
	if v.IsInt {
		return strconv.FormatInt(v.Int, 10)
	}
	return formatFloat(v.Float)
}

// textForm is the text a value contributes to a concatenation
func (v Value) textForm() string {
	if v.Type == Numeric && v.Source != "" {
		return v.Source
	}
	return v.String()
}

// formatFloat prints the shortest representation that round-trips, with a
// ".0" suffix on integral values and exponent notation outside [1e-4, 1e16).
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
