package value

import "errors"

// ErrDivisionByZero is VMError::DivisionByZero (spec §7).
var ErrDivisionByZero = errors.New("division by zero")

func numeric(op string, a, b Value) error {
	if (a.Kind != Int && a.Kind != Float) || (b.Kind != Int && b.Kind != Float) {
		left, right := a.Kind, b.Kind
		return TypeMismatch{Op: op, Left: left, Right: right}
	}
	return nil
}

// Add/Sub/Mul/Div implement spec §4.1's numeric promotion: if either
// operand is Float, the result is Float.
func Add(a, b Value) (Value, error) { return arith("+", a, b, func(x, y int64) int64 { return x + y }, func(x, y float64) float64 { return x + y }) }
func Sub(a, b Value) (Value, error) { return arith("-", a, b, func(x, y int64) int64 { return x - y }, func(x, y float64) float64 { return x - y }) }
func Mul(a, b Value) (Value, error) { return arith("*", a, b, func(x, y int64) int64 { return x * y }, func(x, y float64) float64 { return x * y }) }

func Div(a, b Value) (Value, error) {
	if err := numeric("/", a, b); err != nil {
		return Value{}, err
	}
	if a.Kind == Int && b.Kind == Int {
		if b.i == 0 {
			return Value{}, ErrDivisionByZero
		}
		return NewInt(a.i / b.i), nil
	}
	bf := b.AsFloat()
	if bf == 0 {
		return Value{}, ErrDivisionByZero
	}
	return NewFloat(a.AsFloat() / bf), nil
}

// Mod implements integer modulo, satisfying spec §8.1 invariant 3:
// a == (a/b)*b + (a%b).
func Mod(a, b Value) (Value, error) {
	if a.Kind != Int || b.Kind != Int {
		return Value{}, TypeMismatch{Op: "%", Left: a.Kind, Right: b.Kind}
	}
	if b.i == 0 {
		return Value{}, ErrDivisionByZero
	}
	return NewInt(a.i % b.i), nil
}

func arith(op string, a, b Value, ints func(x, y int64) int64, floats func(x, y float64) float64) (Value, error) {
	if err := numeric(op, a, b); err != nil {
		return Value{}, err
	}
	if a.Kind == Int && b.Kind == Int {
		return NewInt(ints(a.i, b.i)), nil
	}
	return NewFloat(floats(a.AsFloat(), b.AsFloat())), nil
}

// Less/Greater compare numerics, promoting Int to Float as needed.
func Less(a, b Value) (bool, error) {
	if err := numeric("<", a, b); err != nil {
		return false, err
	}
	if a.Kind == Int && b.Kind == Int {
		return a.i < b.i, nil
	}
	return a.AsFloat() < b.AsFloat(), nil
}

func Greater(a, b Value) (bool, error) {
	if err := numeric(">", a, b); err != nil {
		return false, err
	}
	if a.Kind == Int && b.Kind == Int {
		return a.i > b.i, nil
	}
	return a.AsFloat() > b.AsFloat(), nil
}

// Not implements `!`: strict boolean coercion (spec §4.1's "Boolean
// coercion is strict").
func Not(a Value) (Value, error) {
	if a.Kind != Bool {
		return Value{}, TypeMismatch{Op: "!", Left: a.Kind, Right: a.Kind}
	}
	return NewBool(!a.b), nil
}
