package value

import (
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
)

// Normalize converts an arbitrary caller-supplied Go value into the
// canonical sandbox shape: every numeric type becomes float64, typed slices
// become []any and string-keyed maps become map[string]any. Values already
// in canonical shape pass through unchanged; unrecognized types are kept
// as-is so opaque handles survive a round trip through a context.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, string, float64, undefinedType,
		[]any, map[string]any,
		*Builtin, BoundMethod, Callable,
		*Map, *Set, *Date, *RegExp, *ErrorValue, *Promise, *TypedArray,
		*Symbol, *BigInt:
		switch c := x.(type) {
		case []any:
			for i, e := range c {
				c[i] = Normalize(e)
			}
		case map[string]any:
			for k, e := range c {
				c[k] = Normalize(e)
			}
		}
		return x
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			out := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				out[iter.Key().String()] = Normalize(iter.Value().Interface())
			}
			return out
		}
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}

// NormalizeMap normalizes every value of a context map in place and returns
// it. A nil map yields an empty one.
func NormalizeMap(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	for k, v := range m {
		m[k] = Normalize(v)
	}
	return m
}

// ToBoolean applies the ECMAScript truthiness rules.
func ToBoolean(v any) bool {
	switch x := v.(type) {
	case nil, undefinedType:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	}
	return true
}

// ToNumber applies the ECMAScript ToNumber coercion.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case undefinedType:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case float64:
		return x
	case string:
		return stringToNumber(x)
	case []any:
		// arrays coerce through their string form: [] -> 0, [7] -> 7
		return stringToNumber(ToString(x))
	case *Date:
		return float64(x.Time.UnixMilli())
	case *BigInt:
		f, _ := new(big.Float).SetInt(x.Int).Float64()
		return f
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") ||
		strings.HasPrefix(s, "0b") || strings.HasPrefix(s, "0B") ||
		strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0O") {
		if n, err := strconv.ParseInt(s, 0, 64); err == nil {
			return float64(n)
		}
		return math.NaN()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return math.NaN()
}

// FormatNumber renders a float64 the way JavaScript renders numbers:
// integers without a decimal point, shortest round-trippable form
// otherwise, and no zero-padded exponents.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if f == 0 {
		// negative zero prints as plain "0"
		return "0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return stripExponentZeros(s)
}

// stripExponentZeros converts Go's "1e-07" exponent form to JS's "1e-7".
func stripExponentZeros(s string) string {
	i := strings.IndexAny(s, "eE")
	if i < 0 {
		return s
	}
	mantissa, exp := s[:i], s[i+1:]
	sign := ""
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign, exp = string(exp[0]), exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mantissa + "e" + sign + exp
}

// ToString applies the ECMAScript ToString coercion.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case undefinedType:
		return "undefined"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return FormatNumber(x)
	case string:
		return x
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			if IsNullish(e) {
				continue
			}
			parts[i] = ToString(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	case *Builtin:
		return x.String()
	case BoundMethod:
		return x.Method.String()
	case Callable:
		return x.String()
	case *Map:
		return "[object Map]"
	case *Set:
		return "[object Set]"
	case *Date:
		return x.Time.Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)")
	case *RegExp:
		return x.String()
	case *ErrorValue:
		return x.String()
	case *Promise:
		return "[object Promise]"
	case *TypedArray:
		parts := make([]string, len(x.Elems))
		for i, f := range x.Elems {
			parts[i] = FormatNumber(f)
		}
		return strings.Join(parts, ",")
	case *Symbol:
		return x.String()
	case *BigInt:
		return x.String()
	}
	return "[object Object]"
}

// ToDisplay renders a value for error messages: like ToString, but strings
// are quoted so `"5" is not a function` reads unambiguously.
func ToDisplay(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return ToString(v)
}

// TypeOf implements the typeof operator.
func TypeOf(v any) string {
	switch v.(type) {
	case undefinedType:
		return "undefined"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case *Builtin, BoundMethod, Callable:
		return "function"
	case *Symbol:
		return "symbol"
	case *BigInt:
		return "bigint"
	}
	return "object"
}

// ToPrimitive reduces an object value to a primitive, using the string
// path for everything except Date. Used by loose equality and relational
// comparison; the addition operator special-cases Date to the string path.
func ToPrimitive(v any) any {
	return toPrimitive(v)
}

// toPrimitive reduces an object value to a primitive for loose equality and
// relational comparison, using the string path.
func toPrimitive(v any) any {
	switch v.(type) {
	case nil, undefinedType, bool, float64, string, *Symbol, *BigInt:
		return v
	case *Date:
		return ToNumber(v)
	}
	return ToString(v)
}
