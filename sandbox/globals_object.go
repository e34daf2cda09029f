package sandbox

import (
	"sort"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

func buildObject() *value.Builtin {
	return &value.Builtin{
		Name: "Object",
		Fn: func(recv any, args []any) (any, error) {
			v := arg(args, 0)
			if value.IsNullish(v) {
				return map[string]any{}, nil
			}
			return v, nil
		},
		Construct: func(args []any) (any, error) {
			if len(args) > 0 && !value.IsNullish(args[0]) {
				return args[0], nil
			}
			return map[string]any{}, nil
		},
		Props: map[string]any{
			"keys":                &value.Builtin{Name: "Object.keys", Fn: objectKeys},
			"values":              &value.Builtin{Name: "Object.values", Fn: objectValues},
			"entries":             &value.Builtin{Name: "Object.entries", Fn: objectEntries},
			"fromEntries":         &value.Builtin{Name: "Object.fromEntries", Fn: objectFromEntries},
			"getOwnPropertyNames": &value.Builtin{Name: "Object.getOwnPropertyNames", Fn: objectKeys},
			"is": &value.Builtin{Name: "Object.is", Fn: func(recv any, args []any) (any, error) {
				return value.StrictEquals(arg(args, 0), arg(args, 1)), nil
			}},

			"assign":            &value.Builtin{Name: "Object.assign", Fn: objectMutate},
			"freeze":            &value.Builtin{Name: "Object.freeze", Fn: objectMutate},
			"seal":              &value.Builtin{Name: "Object.seal", Fn: objectMutate},
			"preventExtensions": &value.Builtin{Name: "Object.preventExtensions", Fn: objectMutate},
			"defineProperty":    &value.Builtin{Name: "Object.defineProperty", Fn: objectMutate},
			"defineProperties":  &value.Builtin{Name: "Object.defineProperties", Fn: objectMutate},
			"setPrototypeOf":    &value.Builtin{Name: "Object.setPrototypeOf", Fn: objectMutate},
		},
	}
}

// sortedKeys orders map keys alphabetically. Go maps carry no insertion
// order, so a stable order keeps Object.keys and friends deterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func objectArg(args []any) (map[string]any, error) {
	v := arg(args, 0)
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	if value.IsNullish(v) {
		return nil, errs.Typef("cannot convert %s to object", value.ToString(v))
	}
	return map[string]any{}, nil
}

func objectKeys(recv any, args []any) (any, error) {
	if a, ok := arg(args, 0).([]any); ok {
		out := make([]any, len(a))
		for i := range a {
			out[i] = value.FormatNumber(float64(i))
		}
		return out, nil
	}
	m, err := objectArg(args)
	if err != nil {
		return nil, err
	}
	keys := sortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out, nil
}

func objectValues(recv any, args []any) (any, error) {
	if a, ok := arg(args, 0).([]any); ok {
		out := make([]any, len(a))
		copy(out, a)
		return out, nil
	}
	m, err := objectArg(args)
	if err != nil {
		return nil, err
	}
	keys := sortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = m[k]
	}
	return out, nil
}

func objectEntries(recv any, args []any) (any, error) {
	if a, ok := arg(args, 0).([]any); ok {
		out := make([]any, len(a))
		for i, e := range a {
			out[i] = []any{value.FormatNumber(float64(i)), e}
		}
		return out, nil
	}
	m, err := objectArg(args)
	if err != nil {
		return nil, err
	}
	keys := sortedKeys(m)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = []any{k, m[k]}
	}
	return out, nil
}

func objectFromEntries(recv any, args []any) (any, error) {
	entries, ok := value.Elements(arg(args, 0))
	if !ok {
		return nil, errs.Typef("%s is not iterable", value.ToDisplay(arg(args, 0)))
	}
	out := map[string]any{}
	for _, e := range entries {
		pair, ok := e.([]any)
		if !ok || len(pair) < 2 {
			return nil, errs.Typef("iterator value %s is not an entry object", value.ToDisplay(e))
		}
		out[value.ToString(pair[0])] = pair[1]
	}
	return out, nil
}

// objectMutate backs the mutating Object statics. Each is registered in
// the mutable registry and rejected by identity before invocation.
func objectMutate(recv any, args []any) (any, error) {
	return arg(args, 0), nil
}
