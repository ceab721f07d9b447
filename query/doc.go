// Package query implements the join core: column references, the N-way
// equality join and output-column expressions.
//
// # Column references
//
// A column reference names one column of one input table:
//
//	<file-index>:<column-name-or-position>
//
// The file index is 0-based and must be below the number of inputs. A
// selector made only of digits is a 0-based position; any other selector is
// looked up in the table header.
//
// # Joining
//
// Every input contributes one join column. Tables 1..N-1 are indexed by key
// (first occurrence wins), table 0 is scanned in order, and a row-group is
// emitted for each key present in all tables:
//
//	spec, err := query.ParseJoinSpec([]string{"0:city", "1:city"}, tables)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	joiner, err := query.NewJoiner(tables, spec, query.JoinOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for group := range joiner.All() {
//	    ...
//	}
//
// # Output specs
//
// An output spec that is exactly one column reference copies the cell
// verbatim. Any other spec is an expression:
//
//	expr    := term   (('+' | '-') term)*
//	term    := unary  (('*' | '/') unary)*
//	unary   := ('-' | '+') unary | primary
//	primary := COLREF | NUMBER | STRING | '(' expr ')'
//
// Strings are quoted with ' or " and accept the escapes \n, \t, \\ and an
// escaped quote. Column references inside strings are not substituted.
// Identifiers and commas outside strings are syntax errors.
//
// A referenced cell is numeric when its text is an integer or decimal
// literal and text otherwise. + adds numbers, concatenates text, and
// concatenates the text form of a number with text. -, * and / require
// numbers; / always yields a float and fails on a zero divisor.
//
// # Errors
//
// All failures are *Error values whose Kind is one of InvalidReference,
// UnknownColumn, ExpressionSyntaxError, TypeMismatchError or
// ArithmeticError; use errors.Is with the matching Err* sentinel.
package query
