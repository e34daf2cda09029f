package sandbox

import (
	"sort"
	"strings"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// arrayMethods is the method table for []any receivers. The in-place
// mutators live in the same table as everything else; MutablePaths lists
// them and the registry blocks them by identity.
var arrayMethods = map[string]*value.Builtin{
	"at":            {Name: "Array.prototype.at", Fn: arrayAt},
	"concat":        {Name: "Array.prototype.concat", Fn: arrayConcat},
	"every":         {Name: "Array.prototype.every", Fn: arrayEvery},
	"filter":        {Name: "Array.prototype.filter", Fn: arrayFilter},
	"find":          {Name: "Array.prototype.find", Fn: arrayFind},
	"findIndex":     {Name: "Array.prototype.findIndex", Fn: arrayFindIndex},
	"findLast":      {Name: "Array.prototype.findLast", Fn: arrayFindLast},
	"findLastIndex": {Name: "Array.prototype.findLastIndex", Fn: arrayFindLastIndex},
	"flat":          {Name: "Array.prototype.flat", Fn: arrayFlat},
	"flatMap":       {Name: "Array.prototype.flatMap", Fn: arrayFlatMap},
	"forEach":       {Name: "Array.prototype.forEach", Fn: arrayForEach},
	"includes":      {Name: "Array.prototype.includes", Fn: arrayIncludes},
	"indexOf":       {Name: "Array.prototype.indexOf", Fn: arrayIndexOf},
	"join":          {Name: "Array.prototype.join", Fn: arrayJoin},
	"lastIndexOf":   {Name: "Array.prototype.lastIndexOf", Fn: arrayLastIndexOf},
	"map":           {Name: "Array.prototype.map", Fn: arrayMap},
	"reduce":        {Name: "Array.prototype.reduce", Fn: arrayReduce},
	"reduceRight":   {Name: "Array.prototype.reduceRight", Fn: arrayReduceRight},
	"slice":         {Name: "Array.prototype.slice", Fn: arraySlice},
	"some":          {Name: "Array.prototype.some", Fn: arraySome},
	"toReversed":    {Name: "Array.prototype.toReversed", Fn: arrayToReversed},
	"toSorted":      {Name: "Array.prototype.toSorted", Fn: arrayToSorted},
	"toString":      {Name: "Array.prototype.toString", Fn: arrayToString},

	"copyWithin": {Name: "Array.prototype.copyWithin", Fn: arrayCopyWithin},
	"fill":       {Name: "Array.prototype.fill", Fn: arrayFill},
	"pop":        {Name: "Array.prototype.pop", Fn: arrayPop},
	"push":       {Name: "Array.prototype.push", Fn: arrayPush},
	"reverse":    {Name: "Array.prototype.reverse", Fn: arrayReverse},
	"shift":      {Name: "Array.prototype.shift", Fn: arrayShift},
	"sort":       {Name: "Array.prototype.sort", Fn: arraySort},
	"splice":     {Name: "Array.prototype.splice", Fn: arraySplice},
	"unshift":    {Name: "Array.prototype.unshift", Fn: arrayUnshift},
}

func arrayOf(recv any) []any {
	a, _ := recv.([]any)
	return a
}

func arrayAt(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	i := toInt(arg(args, 0))
	if i < 0 {
		i += len(a)
	}
	if i < 0 || i >= len(a) {
		return value.Undefined, nil
	}
	return a[i], nil
}

func arrayConcat(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	out := make([]any, len(a))
	copy(out, a)
	for _, v := range args {
		if more, ok := v.([]any); ok {
			out = append(out, more...)
		} else {
			out = append(out, v)
		}
	}
	return out, nil
}

// eachUntil runs cb over the elements and stops when stop returns true for
// the callback result. It backs every/some/find-style methods.
func eachUntil(a []any, cb any, stop func(res any) bool) (int, any, error) {
	for i, e := range a {
		res, err := value.Call(cb, []any{e, float64(i), a})
		if err != nil {
			return -1, nil, err
		}
		if stop(res) {
			return i, res, nil
		}
	}
	return -1, nil, nil
}

func arrayEvery(recv any, args []any) (any, error) {
	i, _, err := eachUntil(arrayOf(recv), arg(args, 0), func(r any) bool { return !value.ToBoolean(r) })
	return i < 0, err
}

func arraySome(recv any, args []any) (any, error) {
	i, _, err := eachUntil(arrayOf(recv), arg(args, 0), value.ToBoolean)
	return i >= 0, err
}

func arrayFilter(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	cb := arg(args, 0)
	out := []any{}
	for i, e := range a {
		res, err := value.Call(cb, []any{e, float64(i), a})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(res) {
			out = append(out, e)
		}
	}
	return out, nil
}

func arrayFind(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	i, _, err := eachUntil(a, arg(args, 0), value.ToBoolean)
	if err != nil || i < 0 {
		return value.Undefined, err
	}
	return a[i], nil
}

func arrayFindIndex(recv any, args []any) (any, error) {
	i, _, err := eachUntil(arrayOf(recv), arg(args, 0), value.ToBoolean)
	return float64(i), err
}

func arrayFindLast(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	cb := arg(args, 0)
	for i := len(a) - 1; i >= 0; i-- {
		res, err := value.Call(cb, []any{a[i], float64(i), a})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(res) {
			return a[i], nil
		}
	}
	return value.Undefined, nil
}

func arrayFindLastIndex(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	cb := arg(args, 0)
	for i := len(a) - 1; i >= 0; i-- {
		res, err := value.Call(cb, []any{a[i], float64(i), a})
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(res) {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func flatten(a []any, depth int) []any {
	out := []any{}
	for _, e := range a {
		if sub, ok := e.([]any); ok && depth > 0 {
			out = append(out, flatten(sub, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func arrayFlat(recv any, args []any) (any, error) {
	depth := 1
	if len(args) > 0 {
		depth = toInt(args[0])
	}
	return flatten(arrayOf(recv), depth), nil
}

func arrayFlatMap(recv any, args []any) (any, error) {
	mapped, err := arrayMap(recv, args)
	if err != nil {
		return nil, err
	}
	return flatten(mapped.([]any), 1), nil
}

func arrayForEach(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	cb := arg(args, 0)
	for i, e := range a {
		if _, err := value.Call(cb, []any{e, float64(i), a}); err != nil {
			return nil, err
		}
	}
	return value.Undefined, nil
}

func arrayIncludes(recv any, args []any) (any, error) {
	for _, e := range arrayOf(recv) {
		if value.StrictEquals(e, arg(args, 0)) {
			return true, nil
		}
	}
	return false, nil
}

func arrayIndexOf(recv any, args []any) (any, error) {
	for i, e := range arrayOf(recv) {
		if value.StrictEquals(e, arg(args, 0)) {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func arrayLastIndexOf(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	for i := len(a) - 1; i >= 0; i-- {
		if value.StrictEquals(a[i], arg(args, 0)) {
			return float64(i), nil
		}
	}
	return float64(-1), nil
}

func arrayJoin(recv any, args []any) (any, error) {
	sep := ","
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		sep = value.ToString(args[0])
	}
	a := arrayOf(recv)
	parts := make([]string, len(a))
	for i, e := range a {
		if !value.IsNullish(e) {
			parts[i] = value.ToString(e)
		}
	}
	return strings.Join(parts, sep), nil
}

func arrayMap(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	cb := arg(args, 0)
	out := make([]any, len(a))
	for i, e := range a {
		res, err := value.Call(cb, []any{e, float64(i), a})
		if err != nil {
			return nil, err
		}
		out[i] = res
	}
	return out, nil
}

func arrayReduce(recv any, args []any) (any, error) {
	return reduce(arrayOf(recv), args, false)
}

func arrayReduceRight(recv any, args []any) (any, error) {
	return reduce(arrayOf(recv), args, true)
}

func reduce(a []any, args []any, fromRight bool) (any, error) {
	cb := arg(args, 0)
	idx := make([]int, len(a))
	for i := range idx {
		if fromRight {
			idx[i] = len(a) - 1 - i
		} else {
			idx[i] = i
		}
	}
	var acc any
	start := 0
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(a) == 0 {
			return nil, errs.Typef("reduce of empty array with no initial value")
		}
		acc = a[idx[0]]
		start = 1
	}
	for _, i := range idx[start:] {
		res, err := value.Call(cb, []any{acc, a[i], float64(i), a})
		if err != nil {
			return nil, err
		}
		acc = res
	}
	return acc, nil
}

func arraySlice(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	start := 0
	end := len(a)
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		start = relativeIndex(toInt(args[0]), len(a))
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		end = relativeIndex(toInt(args[1]), len(a))
	}
	if start > end {
		return []any{}, nil
	}
	out := make([]any, end-start)
	copy(out, a[start:end])
	return out, nil
}

func arrayToReversed(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	out := make([]any, len(a))
	for i, e := range a {
		out[len(a)-1-i] = e
	}
	return out, nil
}

func arrayToSorted(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	out := make([]any, len(a))
	copy(out, a)
	if err := sortSlice(out, arg(args, 0)); err != nil {
		return nil, err
	}
	return out, nil
}

func arrayToString(recv any, args []any) (any, error) {
	return value.ToString(arrayOf(recv)), nil
}

// sortSlice orders elems in place, with an optional comparator. Without
// one, elements compare by their string form, as Array.prototype.sort
// specifies.
func sortSlice(elems []any, comparator any) error {
	var cbErr error
	if value.IsUndefined(comparator) || comparator == nil {
		sort.SliceStable(elems, func(i, j int) bool {
			return value.ToString(elems[i]) < value.ToString(elems[j])
		})
		return nil
	}
	sort.SliceStable(elems, func(i, j int) bool {
		if cbErr != nil {
			return false
		}
		res, err := value.Call(comparator, []any{elems[i], elems[j]})
		if err != nil {
			cbErr = err
			return false
		}
		return value.ToNumber(res) < 0
	})
	return cbErr
}

// The mutators below are registered in the mutable-method registry, so the
// evaluator rejects them before invocation. The implementations exist so
// the resolved values are ordinary builtins with stable identities.

func arrayPush(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	return float64(len(a) + len(args)), nil
}

func arrayPop(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	if len(a) == 0 {
		return value.Undefined, nil
	}
	return a[len(a)-1], nil
}

func arrayShift(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	if len(a) == 0 {
		return value.Undefined, nil
	}
	return a[0], nil
}

func arrayUnshift(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	return float64(len(a) + len(args)), nil
}

func arraySplice(recv any, args []any) (any, error) {
	return []any{}, nil
}

func arraySort(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	if err := sortSlice(a, arg(args, 0)); err != nil {
		return nil, err
	}
	return a, nil
}

func arrayReverse(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	for i, j := 0, len(a)-1; i < j; i, j = i+1, j-1 {
		a[i], a[j] = a[j], a[i]
	}
	return a, nil
}

func arrayFill(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	start := 0
	end := len(a)
	if len(args) > 1 {
		start = relativeIndex(toInt(args[1]), len(a))
	}
	if len(args) > 2 {
		end = relativeIndex(toInt(args[2]), len(a))
	}
	for i := start; i < end; i++ {
		a[i] = arg(args, 0)
	}
	return a, nil
}

func arrayCopyWithin(recv any, args []any) (any, error) {
	a := arrayOf(recv)
	target := relativeIndex(toInt(arg(args, 0)), len(a))
	start := 0
	if len(args) > 1 {
		start = relativeIndex(toInt(args[1]), len(a))
	}
	end := len(a)
	if len(args) > 2 {
		end = relativeIndex(toInt(args[2]), len(a))
	}
	if start < end {
		copy(a[target:], a[start:end])
	}
	return a, nil
}
