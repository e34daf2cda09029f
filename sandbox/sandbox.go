// Package sandbox builds the capability surface exposed to evaluated
// expressions: the read-only global scope (an explicitly authored
// allow-list, never a filtered host namespace), the method tables for each
// receiver type, and the mutable-method registry that the evaluator
// consults before any call.
//
// Everything here is constructed exactly once and shared read-only across
// all evaluator instances, so concurrent evaluations are safe as long as
// each owns its own scope chain.
package sandbox

import (
	"math"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// rangeError reports an out-of-range argument. The sandbox folds RangeError
// into the type-error kind; the message keeps the JavaScript name.
func rangeError(msg string) error {
	return errs.Typef("RangeError: %s", msg)
}

// argRegExp coerces a pattern argument to a RegExp: an existing RegExp
// passes through, anything else compiles its string form with no flags.
func argRegExp(v any) (*value.RegExp, error) {
	if re, ok := v.(*value.RegExp); ok {
		return re, nil
	}
	re, err := value.NewRegExp(value.ToString(v), "")
	if err != nil {
		return nil, errs.Syntaxf("%s", err.Error())
	}
	return re, nil
}

// arg returns the i-th argument, or undefined when the caller supplied
// fewer. Mirrors JavaScript's missing-argument binding.
func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}

// toInt truncates a value to an integer the way array and string methods
// do: NaN becomes 0, infinities saturate.
func toInt(v any) int {
	f := value.ToNumber(v)
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return math.MaxInt32
	case math.IsInf(f, -1):
		return math.MinInt32
	}
	return int(f)
}

// relativeIndex resolves a possibly negative index against length,
// clamping to [0, length].
func relativeIndex(i, length int) int {
	if i < 0 {
		i += length
	}
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

// index reports whether name is a valid non-negative integer index and
// returns it.
func index(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	n := 0
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n < 0 { // overflow
			return 0, false
		}
	}
	if len(name) > 1 && name[0] == '0' {
		return 0, false
	}
	return n, true
}
