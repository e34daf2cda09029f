package evaluator

import (
	"math"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// binary applies a non-logical binary operator to already-evaluated
// operands. Logical operators never reach here; the evaluator handles
// them directly so the right side stays lazy.
func binary(op string, left, right any) (any, error) {
	switch op {
	case "+":
		return add(left, right), nil
	case "-":
		return value.ToNumber(left) - value.ToNumber(right), nil
	case "*":
		return value.ToNumber(left) * value.ToNumber(right), nil
	case "/":
		// IEEE-754: x/0 is ±Inf, 0/0 is NaN
		return value.ToNumber(left) / value.ToNumber(right), nil
	case "%":
		return math.Mod(value.ToNumber(left), value.ToNumber(right)), nil
	case "**":
		return math.Pow(value.ToNumber(left), value.ToNumber(right)), nil

	case "==":
		return value.LooseEquals(left, right), nil
	case "!=":
		return !value.LooseEquals(left, right), nil
	case "===":
		return value.StrictEquals(left, right), nil
	case "!==":
		return !value.StrictEquals(left, right), nil

	case "<", ">", "<=", ">=":
		return relational(op, left, right), nil

	case "&":
		return float64(toInt32(left) & toInt32(right)), nil
	case "|":
		return float64(toInt32(left) | toInt32(right)), nil
	case "^":
		return float64(toInt32(left) ^ toInt32(right)), nil
	case "<<":
		return float64(toInt32(left) << (toUint32(right) & 31)), nil
	case ">>":
		return float64(toInt32(left) >> (toUint32(right) & 31)), nil
	case ">>>":
		return float64(toUint32(left) >> (toUint32(right) & 31)), nil
	}
	return nil, errs.Syntaxf("unsupported operator %q", op)
}

// add implements the ECMAScript addition algorithm: both operands are
// reduced to primitives, and if either side ends up a string the result
// is concatenation.
func add(left, right any) any {
	l := addOperand(left)
	r := addOperand(right)
	ls, lok := l.(string)
	rs, rok := r.(string)
	if lok || rok {
		if !lok {
			ls = value.ToString(l)
		}
		if !rok {
			rs = value.ToString(r)
		}
		return ls + rs
	}
	return value.ToNumber(l) + value.ToNumber(r)
}

// addOperand reduces one + operand to a primitive. ToPrimitive's default
// hint makes Dates take the string path here (date + "" is the date text,
// not epoch milliseconds); relational comparison keeps the number path.
func addOperand(v any) any {
	if _, ok := v.(*value.Date); ok {
		return value.ToString(v)
	}
	return value.ToPrimitive(v)
}

// relational compares two operands. Two strings compare lexically by code
// unit; anything else compares numerically, and NaN makes every
// comparison false.
func relational(op string, left, right any) bool {
	l := value.ToPrimitive(left)
	r := value.ToPrimitive(right)
	if ls, ok := l.(string); ok {
		if rs, ok := r.(string); ok {
			switch op {
			case "<":
				return ls < rs
			case ">":
				return ls > rs
			case "<=":
				return ls <= rs
			case ">=":
				return ls >= rs
			}
		}
	}
	ln, rn := value.ToNumber(l), value.ToNumber(r)
	if math.IsNaN(ln) || math.IsNaN(rn) {
		return false
	}
	switch op {
	case "<":
		return ln < rn
	case ">":
		return ln > rn
	case "<=":
		return ln <= rn
	case ">=":
		return ln >= rn
	}
	return false
}

// unary applies a unary operator to an evaluated operand. typeof on an
// unresolved identifier never reaches here; the evaluator special-cases
// it before evaluation.
func unary(op string, operand any) (any, error) {
	switch op {
	case "-":
		return -value.ToNumber(operand), nil
	case "+":
		return value.ToNumber(operand), nil
	case "!":
		return !value.ToBoolean(operand), nil
	case "~":
		return float64(^toInt32(operand)), nil
	case "typeof":
		return value.TypeOf(operand), nil
	case "void":
		return value.Undefined, nil
	}
	return nil, errs.Syntaxf("unsupported operator %q", op)
}

// toInt32 implements ECMAScript ToInt32: modulo 2^32 with wraparound
// into the signed range. NaN and the infinities map to zero.
func toInt32(v any) int32 {
	return int32(toUint32(v))
}

func toUint32(v any) uint32 {
	f := value.ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(f)))
}
