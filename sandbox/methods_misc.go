package sandbox

import (
	"math"
	"strconv"
	"strings"

	"github.com/sandscript/go-sandscript/value"
)

var numberMethods = map[string]*value.Builtin{
	"toFixed":     {Name: "Number.prototype.toFixed", Fn: numberToFixed},
	"toPrecision": {Name: "Number.prototype.toPrecision", Fn: numberToPrecision},
	"toString":    {Name: "Number.prototype.toString", Fn: numberToString},
	"valueOf":     {Name: "Number.prototype.valueOf", Fn: numberValueOf},
}

var booleanMethods = map[string]*value.Builtin{
	"toString": {Name: "Boolean.prototype.toString", Fn: miscToString},
	"valueOf":  {Name: "Boolean.prototype.valueOf", Fn: miscValueOf},
}

var objectMethods = map[string]*value.Builtin{
	"hasOwnProperty": {Name: "Object.prototype.hasOwnProperty", Fn: objectHasOwnProperty},
	"toString":       {Name: "Object.prototype.toString", Fn: miscToString},
}

var regexpMethods = map[string]*value.Builtin{
	"test":     {Name: "RegExp.prototype.test", Fn: regexpTest},
	"exec":     {Name: "RegExp.prototype.exec", Fn: regexpExec},
	"toString": {Name: "RegExp.prototype.toString", Fn: miscToString},
}

var errorMethods = map[string]*value.Builtin{
	"toString": {Name: "Error.prototype.toString", Fn: miscToString},
}

var bigintMethods = map[string]*value.Builtin{
	"toString": {Name: "BigInt.prototype.toString", Fn: miscToString},
}

var typedArrayMethods = map[string]*value.Builtin{
	"at":       {Name: "TypedArray.prototype.at", Fn: typedArrayAt},
	"includes": {Name: "TypedArray.prototype.includes", Fn: typedArrayIncludes},
	"indexOf":  {Name: "TypedArray.prototype.indexOf", Fn: typedArrayIndexOf},
	"join":     {Name: "TypedArray.prototype.join", Fn: typedArrayJoin},
	"slice":    {Name: "TypedArray.prototype.slice", Fn: typedArraySlice},
	"toString": {Name: "TypedArray.prototype.toString", Fn: miscToString},

	"copyWithin": {Name: "TypedArray.prototype.copyWithin", Fn: typedArrayMutate},
	"fill":       {Name: "TypedArray.prototype.fill", Fn: typedArrayMutate},
	"reverse":    {Name: "TypedArray.prototype.reverse", Fn: typedArrayMutate},
	"set":        {Name: "TypedArray.prototype.set", Fn: typedArrayMutate},
	"sort":       {Name: "TypedArray.prototype.sort", Fn: typedArrayMutate},
}

func miscToString(recv any, args []any) (any, error) {
	if _, ok := recv.(map[string]any); ok {
		return "[object Object]", nil
	}
	return value.ToString(recv), nil
}

func miscValueOf(recv any, args []any) (any, error) {
	return recv, nil
}

func objectHasOwnProperty(recv any, args []any) (any, error) {
	m, ok := recv.(map[string]any)
	if !ok {
		return false, nil
	}
	_, found := m[value.ToString(arg(args, 0))]
	return found, nil
}

func numberOf(recv any) float64 {
	f, _ := recv.(float64)
	return f
}

func numberToFixed(recv any, args []any) (any, error) {
	digits := toInt(arg(args, 0))
	if digits < 0 || digits > 100 {
		return nil, rangeError("toFixed() digits argument must be between 0 and 100")
	}
	return strconv.FormatFloat(numberOf(recv), 'f', digits, 64), nil
}

func numberToPrecision(recv any, args []any) (any, error) {
	if len(args) == 0 || value.IsUndefined(args[0]) {
		return value.FormatNumber(numberOf(recv)), nil
	}
	precision := toInt(args[0])
	if precision < 1 || precision > 100 {
		return nil, rangeError("toPrecision() argument must be between 1 and 100")
	}
	s := strconv.FormatFloat(numberOf(recv), 'g', precision, 64)
	return s, nil
}

func numberToString(recv any, args []any) (any, error) {
	f := numberOf(recv)
	if len(args) == 0 || value.IsUndefined(args[0]) {
		return value.FormatNumber(f), nil
	}
	radix := toInt(args[0])
	if radix < 2 || radix > 36 {
		return nil, rangeError("toString() radix must be between 2 and 36")
	}
	if radix == 10 {
		return value.FormatNumber(f), nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return value.FormatNumber(f), nil
	}
	return strconv.FormatInt(int64(f), radix), nil
}

func numberValueOf(recv any, args []any) (any, error) {
	return numberOf(recv), nil
}

func regexpOf(recv any) *value.RegExp {
	r, _ := recv.(*value.RegExp)
	return r
}

func regexpTest(recv any, args []any) (any, error) {
	ok, err := regexpOf(recv).Re.MatchString(value.ToString(arg(args, 0)))
	if err != nil {
		return nil, rangeError(err.Error())
	}
	return ok, nil
}

func regexpExec(recv any, args []any) (any, error) {
	m, err := regexpOf(recv).Re.FindStringMatch(value.ToString(arg(args, 0)))
	if err != nil {
		return nil, rangeError(err.Error())
	}
	if m == nil {
		return nil, nil
	}
	out := []any{}
	for _, g := range m.Groups() {
		if len(g.Captures) == 0 {
			out = append(out, value.Undefined)
			continue
		}
		out = append(out, g.String())
	}
	return out, nil
}

func typedArrayOf(recv any) *value.TypedArray {
	t, _ := recv.(*value.TypedArray)
	return t
}

func typedArrayAt(recv any, args []any) (any, error) {
	t := typedArrayOf(recv)
	i := toInt(arg(args, 0))
	if i < 0 {
		i += len(t.Elems)
	}
	if i < 0 || i >= len(t.Elems) {
		return value.Undefined, nil
	}
	return t.Elems[i], nil
}

func typedArrayIncludes(recv any, args []any) (any, error) {
	target := value.ToNumber(arg(args, 0))
	for _, f := range typedArrayOf(recv).Elems {
		if f == target {
			return true, nil
		}
	}
	return false, nil
}

func typedArrayIndexOf(recv any, args []any) (any, error) {
	target := value.ToNumber(arg(args, 0))
	for i, f := range typedArrayOf(recv).Elems {
		if f == target {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func typedArrayJoin(recv any, args []any) (any, error) {
	sep := ","
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		sep = value.ToString(args[0])
	}
	t := typedArrayOf(recv)
	parts := make([]string, len(t.Elems))
	for i, f := range t.Elems {
		parts[i] = value.FormatNumber(f)
	}
	return strings.Join(parts, sep), nil
}

func typedArraySlice(recv any, args []any) (any, error) {
	t := typedArrayOf(recv)
	start := 0
	end := len(t.Elems)
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		start = relativeIndex(toInt(args[0]), len(t.Elems))
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		end = relativeIndex(toInt(args[1]), len(t.Elems))
	}
	if start > end {
		start = end
	}
	out := make([]float64, end-start)
	copy(out, t.Elems[start:end])
	return &value.TypedArray{Kind: t.Kind, Elems: out}, nil
}

// typedArrayMutate backs every typed-array mutator; all of them are
// registered as mutable methods and rejected before invocation.
func typedArrayMutate(recv any, args []any) (any, error) {
	return recv, nil
}
