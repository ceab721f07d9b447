package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies the failures reported by the join core
type ErrorKind int

const (
	InvalidReference      ErrorKind = iota + 1 // malformed reference or file index out of range
	UnknownColumn                              // column name or position not present in the table
	ExpressionSyntaxError                      // output expression cannot be parsed
	TypeMismatchError                          // operator applied to unsupported operand types
	ArithmeticError                            // numeric operation undefined (division by zero)
)

// Sentinels for errors.Is matching against an *Error of the given kind.
var (
	ErrInvalidReference = errors.New("InvalidReference")
	ErrUnknownColumn    = errors.New("UnknownColumn")
	ErrExpressionSyntax = errors.New("ExpressionSyntaxError")
	ErrTypeMismatch     = errors.New("TypeMismatchError")
	ErrArithmetic       = errors.New("ArithmeticError")
)

// String returns the kind name as printed in error messages
func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case InvalidReference:
		return ErrInvalidReference
	case UnknownColumn:
		return ErrUnknownColumn
	case ExpressionSyntaxError:
		return ErrExpressionSyntax
	case TypeMismatchError:
		return ErrTypeMismatch
	case ArithmeticError:
		return ErrArithmetic
	default:
		return nil
	}
}

// Error is the error type returned by every operation of this package.
//
// Ref and Spec carry the offending column reference and output/join spec
// text verbatim. Row is the row-group position the error occurred on, or -1
// when the error was detected before any row was processed.
type Error struct {
	Kind ErrorKind
	Ref  string
	Spec string
	Row  int
	Msg  string
}

func newError(kind ErrorKind, ref string, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Ref:  ref,
		Row:  -1,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Ref != "" {
		fmt.Fprintf(&b, " (reference %q)", e.Ref)
	}
	if e.Spec != "" && e.Spec != e.Ref {
		fmt.Fprintf(&b, " in %q", e.Spec)
	}
	if e.Row >= 0 {
		fmt.Fprintf(&b, " at row-group %d", e.Row)
	}
	return b.String()
}

// Unwrap exposes the kind sentinel so errors.Is(err, ErrTypeMismatch) works
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// annotate fills in the spec text and row position on a core error, leaving
// any value already set untouched. Other errors pass through unchanged.
func annotate(err error, spec string, row int) error {
	var qe *Error
	if !errors.As(err, &qe) {
		return err
	}
	if qe.Spec == "" {
		qe.Spec = spec
	}
	if qe.Row < 0 {
		qe.Row = row
	}
	return qe
}
