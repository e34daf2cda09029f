package sandbox

import (
	"math"
	"math/big"
	"math/bits"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// FunctionConstructor is the guard value bound to the name "Function".
// It is deliberately neither callable nor constructible; the evaluator
// recognizes it by identity and raises a security error with a message
// specific to the call or new path. Keeping the name resolvable (instead of
// undefined) gives a diagnostic that names the real problem.
var FunctionConstructor = &value.Builtin{Name: "Function"}

var (
	globalsOnce  sync.Once
	globalTable  map[string]any
	protoTables  map[string]map[string]*value.Builtin
	sharedParseI *value.Builtin
	sharedParseF *value.Builtin
)

// Globals returns the shared global scope frame: an explicitly authored
// allow-list of host capabilities. The table is built once and must never
// be mutated afterwards; every evaluator instance shares it.
func Globals() map[string]any {
	globalsOnce.Do(buildGlobals)
	return globalTable
}

// prototypes maps a constructor name to its instance-method table, for
// resolving "X.prototype.y" paths in the mutable-method registry.
func prototypes() map[string]map[string]*value.Builtin {
	globalsOnce.Do(buildGlobals)
	return protoTables
}

func buildGlobals() {
	sharedParseI = &value.Builtin{Name: "parseInt", Fn: globalParseInt}
	sharedParseF = &value.Builtin{Name: "parseFloat", Fn: globalParseFloat}

	protoTables = map[string]map[string]*value.Builtin{
		"Array":      arrayMethods,
		"String":     stringMethods,
		"Object":     objectMethods,
		"Number":     numberMethods,
		"Boolean":    booleanMethods,
		"Map":        mapMethods,
		"WeakMap":    mapMethods,
		"Set":        setMethods,
		"WeakSet":    setMethods,
		"Date":       dateMethods,
		"RegExp":     regexpMethods,
		"Error":      errorMethods,
		"BigInt":     bigintMethods,
		"TypedArray": typedArrayMethods,
	}

	globalTable = map[string]any{
		"undefined": value.Undefined,
		"NaN":       math.NaN(),
		"Infinity":  math.Inf(1),

		"parseInt":   sharedParseI,
		"parseFloat": sharedParseF,
		"isNaN":      &value.Builtin{Name: "isNaN", Fn: globalIsNaN},
		"isFinite":   &value.Builtin{Name: "isFinite", Fn: globalIsFinite},

		"encodeURIComponent": &value.Builtin{Name: "encodeURIComponent", Fn: encodeURIComponent},
		"decodeURIComponent": &value.Builtin{Name: "decodeURIComponent", Fn: decodeURIComponent},
		"encodeURI":          &value.Builtin{Name: "encodeURI", Fn: encodeURI},
		"decodeURI":          &value.Builtin{Name: "decodeURI", Fn: decodeURI},

		"Math": buildMath(),
		"JSON": buildJSON(),

		"Array":   buildArray(),
		"Object":  buildObject(),
		"Number":  buildNumber(),
		"String":  buildString(),
		"Boolean": &value.Builtin{Name: "Boolean", Fn: convertBoolean, Construct: constructBoolean},
		"BigInt":  &value.Builtin{Name: "BigInt", Fn: convertBigInt},
		"Symbol":  &value.Builtin{Name: "Symbol", Fn: makeSymbol},

		"Map":     &value.Builtin{Name: "Map", Construct: constructMap},
		"Set":     &value.Builtin{Name: "Set", Construct: constructSet},
		"WeakMap": &value.Builtin{Name: "WeakMap", Construct: constructMap},
		"WeakSet": &value.Builtin{Name: "WeakSet", Construct: constructSet},

		"Date":   buildDate(),
		"RegExp": &value.Builtin{Name: "RegExp", Fn: makeRegExp, Construct: constructRegExp},

		"Error":          errorCtor("Error"),
		"TypeError":      errorCtor("TypeError"),
		"RangeError":     errorCtor("RangeError"),
		"ReferenceError": errorCtor("ReferenceError"),
		"SyntaxError":    errorCtor("SyntaxError"),
		"EvalError":      errorCtor("EvalError"),
		"URIError":       errorCtor("URIError"),

		"Promise": buildPromise(),

		"Int8Array":         typedArrayCtor("Int8Array", convInt8),
		"Uint8Array":        typedArrayCtor("Uint8Array", convUint8),
		"Uint8ClampedArray": typedArrayCtor("Uint8ClampedArray", convUint8Clamped),
		"Int16Array":        typedArrayCtor("Int16Array", convInt16),
		"Uint16Array":       typedArrayCtor("Uint16Array", convUint16),
		"Int32Array":        typedArrayCtor("Int32Array", convInt32),
		"Uint32Array":       typedArrayCtor("Uint32Array", convUint32),
		"Float32Array":      typedArrayCtor("Float32Array", convFloat32),
		"Float64Array":      typedArrayCtor("Float64Array", func(f float64) float64 { return f }),

		// Present so misuse produces a security error naming the capability,
		// never a working constructor. eval is absent entirely: looking it up
		// fails as "not defined".
		"Function": FunctionConstructor,
	}
}

func globalParseInt(recv any, args []any) (any, error) {
	s := strings.TrimSpace(value.ToString(arg(args, 0)))
	radix := 0
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		radix = toInt(args[1])
	}
	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign, s = -1, s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if (radix == 0 || radix == 16) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
		radix = 16
	}
	if radix == 0 {
		radix = 10
	}
	if radix < 2 || radix > 36 {
		return math.NaN(), nil
	}
	result := 0.0
	digits := 0
	for _, c := range s {
		d := digitValue(c)
		if d < 0 || d >= radix {
			break
		}
		result = result*float64(radix) + float64(d)
		digits++
	}
	if digits == 0 {
		return math.NaN(), nil
	}
	return sign * result, nil
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

func globalParseFloat(recv any, args []any) (any, error) {
	return parseFloatPrefix(strings.TrimSpace(value.ToString(arg(args, 0)))), nil
}

func parseFloatPrefix(s string) float64 {
	if strings.HasPrefix(s, "Infinity") || strings.HasPrefix(s, "+Infinity") {
		return math.Inf(1)
	}
	if strings.HasPrefix(s, "-Infinity") {
		return math.Inf(-1)
	}
	if m := floatPrefixRe.FindString(s); m != "" {
		return value.ToNumber(m)
	}
	return math.NaN()
}

// floatPrefixRe matches the longest leading decimal-number prefix, the way
// parseFloat scans its input.
var floatPrefixRe = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func globalIsNaN(recv any, args []any) (any, error) {
	return math.IsNaN(value.ToNumber(arg(args, 0))), nil
}

func globalIsFinite(recv any, args []any) (any, error) {
	f := value.ToNumber(arg(args, 0))
	return !math.IsNaN(f) && !math.IsInf(f, 0), nil
}

func buildMath() map[string]any {
	m := map[string]any{
		"E":       math.E,
		"LN2":     math.Ln2,
		"LN10":    math.Log(10),
		"LOG2E":   math.Log2E,
		"LOG10E":  math.Log10E,
		"PI":      math.Pi,
		"SQRT1_2": 1 / math.Sqrt2,
		"SQRT2":   math.Sqrt2,
	}
	unary := map[string]func(float64) float64{
		"abs": math.Abs, "acos": math.Acos, "acosh": math.Acosh,
		"asin": math.Asin, "asinh": math.Asinh, "atan": math.Atan,
		"atanh": math.Atanh, "cbrt": math.Cbrt, "ceil": math.Ceil,
		"cos": math.Cos, "cosh": math.Cosh, "exp": math.Exp,
		"expm1": math.Expm1, "floor": math.Floor,
		"log": math.Log, "log1p": math.Log1p, "log2": math.Log2,
		"log10": math.Log10, "sin": math.Sin, "sinh": math.Sinh,
		"sqrt": math.Sqrt, "tan": math.Tan, "tanh": math.Tanh,
		"trunc": math.Trunc,
	}
	for name, fn := range unary {
		fn := fn
		m[name] = &value.Builtin{Name: "Math." + name, Fn: func(recv any, args []any) (any, error) {
			return fn(value.ToNumber(arg(args, 0))), nil
		}}
	}
	m["atan2"] = &value.Builtin{Name: "Math.atan2", Fn: func(recv any, args []any) (any, error) {
		return math.Atan2(value.ToNumber(arg(args, 0)), value.ToNumber(arg(args, 1))), nil
	}}
	m["pow"] = &value.Builtin{Name: "Math.pow", Fn: func(recv any, args []any) (any, error) {
		return math.Pow(value.ToNumber(arg(args, 0)), value.ToNumber(arg(args, 1))), nil
	}}
	m["hypot"] = &value.Builtin{Name: "Math.hypot", Fn: func(recv any, args []any) (any, error) {
		total := 0.0
		for _, a := range args {
			f := value.ToNumber(a)
			total += f * f
		}
		return math.Sqrt(total), nil
	}}
	m["sign"] = &value.Builtin{Name: "Math.sign", Fn: func(recv any, args []any) (any, error) {
		f := value.ToNumber(arg(args, 0))
		switch {
		case math.IsNaN(f):
			return math.NaN(), nil
		case f > 0:
			return 1.0, nil
		case f < 0:
			return -1.0, nil
		}
		return f, nil
	}}
	m["round"] = &value.Builtin{Name: "Math.round", Fn: func(recv any, args []any) (any, error) {
		// JS rounds halves toward positive infinity, unlike math.Round
		return math.Floor(value.ToNumber(arg(args, 0)) + 0.5), nil
	}}
	m["clz32"] = &value.Builtin{Name: "Math.clz32", Fn: func(recv any, args []any) (any, error) {
		return float64(bits.LeadingZeros32(uint32(toInt(arg(args, 0))))), nil
	}}
	m["fround"] = &value.Builtin{Name: "Math.fround", Fn: func(recv any, args []any) (any, error) {
		return float64(float32(value.ToNumber(arg(args, 0)))), nil
	}}
	m["max"] = &value.Builtin{Name: "Math.max", Fn: func(recv any, args []any) (any, error) {
		out := math.Inf(-1)
		for _, a := range args {
			f := value.ToNumber(a)
			if math.IsNaN(f) {
				return math.NaN(), nil
			}
			out = math.Max(out, f)
		}
		return out, nil
	}}
	m["min"] = &value.Builtin{Name: "Math.min", Fn: func(recv any, args []any) (any, error) {
		out := math.Inf(1)
		for _, a := range args {
			f := value.ToNumber(a)
			if math.IsNaN(f) {
				return math.NaN(), nil
			}
			out = math.Min(out, f)
		}
		return out, nil
	}}
	m["random"] = &value.Builtin{Name: "Math.random", Fn: func(recv any, args []any) (any, error) {
		return rand.Float64(), nil
	}}
	return m
}

func buildArray() *value.Builtin {
	ctor := func(args []any) (any, error) {
		if len(args) == 1 {
			if n, ok := args[0].(float64); ok {
				if n != math.Trunc(n) || n < 0 {
					return nil, rangeError("invalid array length")
				}
				out := make([]any, int(n))
				for i := range out {
					out[i] = value.Undefined
				}
				return out, nil
			}
		}
		out := make([]any, len(args))
		copy(out, args)
		return out, nil
	}
	return &value.Builtin{
		Name:      "Array",
		Fn:        func(recv any, args []any) (any, error) { return ctor(args) },
		Construct: ctor,
		Props: map[string]any{
			"isArray": &value.Builtin{Name: "Array.isArray", Fn: func(recv any, args []any) (any, error) {
				_, ok := arg(args, 0).([]any)
				return ok, nil
			}},
			"of": &value.Builtin{Name: "Array.of", Fn: func(recv any, args []any) (any, error) {
				out := make([]any, len(args))
				copy(out, args)
				return out, nil
			}},
			"from": &value.Builtin{Name: "Array.from", Fn: arrayFrom},
		},
	}
}

func arrayFrom(recv any, args []any) (any, error) {
	elems, ok := value.Elements(arg(args, 0))
	if !ok {
		return nil, errs.Typef("%s is not iterable", value.ToDisplay(arg(args, 0)))
	}
	out := make([]any, len(elems))
	copy(out, elems)
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		for i, e := range out {
			mapped, err := value.Call(args[1], []any{e, float64(i)})
			if err != nil {
				return nil, err
			}
			out[i] = mapped
		}
	}
	return out, nil
}

func buildNumber() *value.Builtin {
	return &value.Builtin{
		Name: "Number",
		Fn: func(recv any, args []any) (any, error) {
			if len(args) == 0 {
				return 0.0, nil
			}
			return value.ToNumber(args[0]), nil
		},
		Construct: func(args []any) (any, error) {
			if len(args) == 0 {
				return 0.0, nil
			}
			return value.ToNumber(args[0]), nil
		},
		Props: map[string]any{
			"MAX_SAFE_INTEGER":  float64(1<<53 - 1),
			"MIN_SAFE_INTEGER":  -float64(1<<53 - 1),
			"MAX_VALUE":         math.MaxFloat64,
			"MIN_VALUE":         math.SmallestNonzeroFloat64,
			"EPSILON":           math.Nextafter(1, 2) - 1,
			"POSITIVE_INFINITY": math.Inf(1),
			"NEGATIVE_INFINITY": math.Inf(-1),
			"NaN":               math.NaN(),
			"parseInt":          sharedParseI,
			"parseFloat":        sharedParseF,
			"isNaN": &value.Builtin{Name: "Number.isNaN", Fn: func(recv any, args []any) (any, error) {
				f, ok := arg(args, 0).(float64)
				return ok && math.IsNaN(f), nil
			}},
			"isFinite": &value.Builtin{Name: "Number.isFinite", Fn: func(recv any, args []any) (any, error) {
				f, ok := arg(args, 0).(float64)
				return ok && !math.IsNaN(f) && !math.IsInf(f, 0), nil
			}},
			"isInteger": &value.Builtin{Name: "Number.isInteger", Fn: numberIsInteger},
			"isSafeInteger": &value.Builtin{Name: "Number.isSafeInteger", Fn: func(recv any, args []any) (any, error) {
				f, ok := arg(args, 0).(float64)
				return ok && f == math.Trunc(f) && math.Abs(f) <= 1<<53-1, nil
			}},
		},
	}
}

func numberIsInteger(recv any, args []any) (any, error) {
	f, ok := arg(args, 0).(float64)
	return ok && !math.IsInf(f, 0) && f == math.Trunc(f), nil
}

func buildString() *value.Builtin {
	conv := func(args []any) (any, error) {
		if len(args) == 0 {
			return "", nil
		}
		return value.ToString(args[0]), nil
	}
	return &value.Builtin{
		Name:      "String",
		Fn:        func(recv any, args []any) (any, error) { return conv(args) },
		Construct: conv,
		Props: map[string]any{
			"fromCharCode": &value.Builtin{Name: "String.fromCharCode", Fn: func(recv any, args []any) (any, error) {
				var b strings.Builder
				for _, a := range args {
					b.WriteRune(rune(toInt(a)))
				}
				return b.String(), nil
			}},
			"fromCodePoint": &value.Builtin{Name: "String.fromCodePoint", Fn: func(recv any, args []any) (any, error) {
				var b strings.Builder
				for _, a := range args {
					b.WriteRune(rune(toInt(a)))
				}
				return b.String(), nil
			}},
		},
	}
}

func convertBoolean(recv any, args []any) (any, error) {
	return value.ToBoolean(arg(args, 0)), nil
}

func constructBoolean(args []any) (any, error) {
	return value.ToBoolean(arg(args, 0)), nil
}

func convertBigInt(recv any, args []any) (any, error) {
	switch x := arg(args, 0).(type) {
	case *value.BigInt:
		return x, nil
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, rangeError("the number " + value.FormatNumber(x) + " cannot be converted to a BigInt")
		}
		return &value.BigInt{Int: big.NewInt(int64(x))}, nil
	case string:
		i, ok := new(big.Int).SetString(strings.TrimSpace(x), 10)
		if !ok {
			return nil, errs.Syntaxf("cannot convert %s to a BigInt", value.ToDisplay(x))
		}
		return &value.BigInt{Int: i}, nil
	case bool:
		if x {
			return &value.BigInt{Int: big.NewInt(1)}, nil
		}
		return &value.BigInt{Int: big.NewInt(0)}, nil
	}
	return nil, errs.Typef("cannot convert %s to a BigInt", value.ToDisplay(arg(args, 0)))
}

func makeSymbol(recv any, args []any) (any, error) {
	desc := ""
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		desc = value.ToString(args[0])
	}
	return &value.Symbol{Desc: desc}, nil
}

func constructMap(args []any) (any, error) {
	m := &value.Map{}
	if len(args) > 0 && !value.IsNullish(args[0]) {
		entries, ok := value.Elements(args[0])
		if !ok {
			return nil, errs.Typef("%s is not iterable", value.ToDisplay(args[0]))
		}
		for _, e := range entries {
			pair, ok := e.([]any)
			if !ok || len(pair) < 2 {
				return nil, errs.Typef("iterator value %s is not an entry object", value.ToDisplay(e))
			}
			if _, err := mapSet(m, pair[:2]); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func constructSet(args []any) (any, error) {
	s := &value.Set{}
	if len(args) > 0 && !value.IsNullish(args[0]) {
		elems, ok := value.Elements(args[0])
		if !ok {
			return nil, errs.Typef("%s is not iterable", value.ToDisplay(args[0]))
		}
		for _, e := range elems {
			if _, err := setAdd(s, []any{e}); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

func buildDate() *value.Builtin {
	return &value.Builtin{
		Name: "Date",
		Fn: func(recv any, args []any) (any, error) {
			// Date() without new yields the current time as a string
			return value.ToString(&value.Date{Time: time.Now()}), nil
		},
		Construct: constructDate,
		Props: map[string]any{
			"now": &value.Builtin{Name: "Date.now", Fn: func(recv any, args []any) (any, error) {
				return float64(time.Now().UnixMilli()), nil
			}},
			"parse": &value.Builtin{Name: "Date.parse", Fn: func(recv any, args []any) (any, error) {
				if t, ok := parseDate(value.ToString(arg(args, 0))); ok {
					return float64(t.UnixMilli()), nil
				}
				return math.NaN(), nil
			}},
		},
	}
}

func constructDate(args []any) (any, error) {
	switch len(args) {
	case 0:
		return &value.Date{Time: time.Now()}, nil
	case 1:
		switch x := args[0].(type) {
		case float64:
			return &value.Date{Time: time.UnixMilli(int64(x))}, nil
		case string:
			if t, ok := parseDate(x); ok {
				return &value.Date{Time: t}, nil
			}
			return &value.Date{Time: time.Time{}}, nil
		case *value.Date:
			return &value.Date{Time: x.Time}, nil
		}
		return &value.Date{Time: time.UnixMilli(int64(value.ToNumber(args[0])))}, nil
	}
	part := func(i, def int) int {
		if i < len(args) {
			return toInt(args[i])
		}
		return def
	}
	return &value.Date{Time: time.Date(
		part(0, 1970), time.Month(part(1, 0)+1), part(2, 1),
		part(3, 0), part(4, 0), part(5, 0), part(6, 0)*int(time.Millisecond),
		time.Local,
	)}, nil
}

func parseDate(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05",
		"2006-01-02",
		time.RFC1123,
		time.ANSIC,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func makeRegExp(recv any, args []any) (any, error) {
	return constructRegExp(args)
}

func constructRegExp(args []any) (any, error) {
	pattern := ""
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		if re, ok := args[0].(*value.RegExp); ok {
			pattern = re.Pattern
			if len(args) < 2 {
				args = []any{args[0], re.Flags}
			}
		} else {
			pattern = value.ToString(args[0])
		}
	}
	flags := ""
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		flags = value.ToString(args[1])
	}
	re, err := value.NewRegExp(pattern, flags)
	if err != nil {
		return nil, errs.Syntaxf("%s", err.Error())
	}
	return re, nil
}

func errorCtor(name string) *value.Builtin {
	build := func(args []any) (any, error) {
		msg := ""
		if len(args) > 0 && !value.IsUndefined(args[0]) {
			msg = value.ToString(args[0])
		}
		return &value.ErrorValue{Name: name, Message: msg}, nil
	}
	return &value.Builtin{
		Name:      name,
		Fn:        func(recv any, args []any) (any, error) { return build(args) },
		Construct: build,
	}
}

func buildPromise() *value.Builtin {
	return &value.Builtin{
		Name:      "Promise",
		Construct: constructPromise,
		Props: map[string]any{
			"resolve": &value.Builtin{Name: "Promise.resolve", Fn: func(recv any, args []any) (any, error) {
				return &value.Promise{State: value.PromiseFulfilled, Value: arg(args, 0)}, nil
			}},
			"reject": &value.Builtin{Name: "Promise.reject", Fn: func(recv any, args []any) (any, error) {
				return &value.Promise{State: value.PromiseRejected, Value: arg(args, 0)}, nil
			}},
		},
	}
}

// constructPromise runs the executor synchronously; the evaluator never
// awaits, so the caller receives the promise object in whatever state the
// executor left it.
func constructPromise(args []any) (any, error) {
	executor := arg(args, 0)
	if !value.IsFunction(executor) {
		return nil, errs.Typef("Promise resolver %s is not a function", value.ToDisplay(executor))
	}
	p := &value.Promise{State: value.PromisePending}
	settle := func(state value.PromiseState) *value.Builtin {
		return &value.Builtin{Name: string(state), Fn: func(recv any, args []any) (any, error) {
			if p.State == value.PromisePending {
				p.State = state
				p.Value = arg(args, 0)
			}
			return value.Undefined, nil
		}}
	}
	_, err := value.Call(executor, []any{settle(value.PromiseFulfilled), settle(value.PromiseRejected)})
	if err != nil {
		if p.State == value.PromisePending {
			p.State = value.PromiseRejected
			p.Value = err.Error()
		}
	}
	return p, nil
}

func typedArrayCtor(name string, conv func(float64) float64) *value.Builtin {
	return &value.Builtin{
		Name: name,
		Construct: func(args []any) (any, error) {
			if len(args) == 0 {
				return &value.TypedArray{Kind: name}, nil
			}
			if n, ok := args[0].(float64); ok {
				if n != math.Trunc(n) || n < 0 {
					return nil, rangeError("invalid typed array length")
				}
				return &value.TypedArray{Kind: name, Elems: make([]float64, int(n))}, nil
			}
			elems, ok := value.Elements(args[0])
			if !ok {
				return nil, errs.Typef("%s is not iterable", value.ToDisplay(args[0]))
			}
			out := make([]float64, len(elems))
			for i, e := range elems {
				f := value.ToNumber(e)
				if math.IsNaN(f) {
					f = 0
				}
				out[i] = conv(f)
			}
			return &value.TypedArray{Kind: name, Elems: out}, nil
		},
	}
}

func convInt8(f float64) float64         { return float64(int8(int64(f))) }
func convUint8(f float64) float64        { return float64(uint8(int64(f))) }
func convInt16(f float64) float64        { return float64(int16(int64(f))) }
func convUint16(f float64) float64       { return float64(uint16(int64(f))) }
func convInt32(f float64) float64        { return float64(int32(int64(f))) }
func convUint32(f float64) float64       { return float64(uint32(int64(f))) }
func convFloat32(f float64) float64      { return float64(float32(f)) }
func convUint8Clamped(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return math.Round(f)
}
