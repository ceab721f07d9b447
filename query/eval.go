package query

import (
	"math"
)

// Evaluate returns the referenced cell's value view
func (c *ColumnExpr) Evaluate(group RowGroup) (Value, error) {
	if !c.bound {
		return Value{}, newError(InvalidReference, c.Text, "column reference used before binding")
	}
	_, value, err := c.Ref.Resolve(group)
	return value, err
}

// Evaluate returns the literal
func (l *LiteralExpr) Evaluate(RowGroup) (Value, error) {
	return l.Value, nil
}

// Evaluate applies a prefix sign to a numeric operand
func (u *UnaryExpr) Evaluate(group RowGroup) (Value, error) {
	operand, err := u.Operand.Evaluate(group)
	if err != nil {
		return Value{}, err
	}
	if !operand.IsNumeric() {
		return Value{}, newError(TypeMismatchError, "", "unary %v applied to text %q", u.Operator, operand.Str)
	}
	if u.Operator == TokenPlus {
		return stripSource(operand), nil
	}
	if operand.IsInt {
		if operand.Int == math.MinInt64 {
			return FloatValue(-operand.Float), nil
		}
		return IntValue(-operand.Int), nil
	}
	return FloatValue(-operand.Float), nil
}

// Evaluate evaluates both operands and applies the operator
func (b *BinaryExpr) Evaluate(group RowGroup) (Value, error) {
	left, err := b.Left.Evaluate(group)
	if err != nil {
		return Value{}, err
	}

	right, err := b.Right.Evaluate(group)
	if err != nil {
		return Value{}, err
	}

	return apply(b.Operator, left, right)
}

// apply implements the operator coercion rules:
//
//   - numeric + numeric adds, text + text concatenates, and a mixed + converts
//     the numeric side to its text form before concatenating
//   - -, * and / accept numeric operands only
//   - int op int stays int except for /, which always yields a float
func apply(op TokenType, left, right Value) (Value, error) {
	if op == TokenPlus && (!left.IsNumeric() || !right.IsNumeric()) {
		return TextValue(left.textForm() + right.textForm()), nil
	}

	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, newError(TypeMismatchError, "", "operator %v not supported between %v %q and %v %q",
			op, left.Type, left.textForm(), right.Type, right.textForm())
	}

	if op == TokenSlash {
		if right.Float == 0 {
			return Value{}, newError(ArithmeticError, "", "division by zero (%s / %s)", left.textForm(), right.textForm())
		}
		return FloatValue(left.Float / right.Float), nil
	}

	if left.IsInt && right.IsInt {
		if v, ok := applyInt(op, left.Int, right.Int); ok {
			return IntValue(v), nil
		}
	}

	switch op {
	case TokenPlus:
		return FloatValue(left.Float + right.Float), nil
	case TokenMinus:
		return FloatValue(left.Float - right.Float), nil
	case TokenStar:
		return FloatValue(left.Float * right.Float), nil
	default:
		return Value{}, newError(ExpressionSyntaxError, "", "unsupported operator %v", op)
	}
}

// applyInt performs integer arithmetic, reporting false on overflow
func applyInt(op TokenType, a, b int64) (int64, bool) {
	switch op {
	case TokenPlus:
		s := a + b
		if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
			return 0, false
		}
		return s, true
	case TokenMinus:
		s := a - b
		if (a >= 0 && b < 0 && s < 0) || (a < 0 && b > 0 && s >= 0) {
			return 0, false
		}
		return s, true
	case TokenStar:
		if a == 0 || b == 0 {
			return 0, true
		}
		s := a * b
		if s/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		return s, true
	default:
		return 0, false
	}
}

func stripSource(v Value) Value {
	v.Source = ""
	return v
}
