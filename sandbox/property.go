package sandbox

import (
	"github.com/sandscript/go-sandscript/value"
)

// Property resolves member access on recv. Methods come back as a
// value.BoundMethod so call evaluation can check the method's identity
// against the mutable registry. The second result is false when the name
// does not resolve; the caller decides whether that is undefined (plain
// member access) or an error.
func Property(recv any, name string) (any, bool) {
	switch r := recv.(type) {
	case map[string]any:
		if v, ok := r[name]; ok {
			return value.Normalize(v), true
		}
		return method(objectMethods, r, name)

	case []any:
		if name == "length" {
			return float64(len(r)), true
		}
		if i, ok := index(name); ok {
			if i < len(r) {
				return r[i], true
			}
			return value.Undefined, true
		}
		return method(arrayMethods, r, name)

	case string:
		// length and indexing count runes, not UTF-16 code units as
		// JavaScript does: an astral-plane character counts 1 here where
		// JavaScript counts 2
		if name == "length" {
			return float64(len([]rune(r))), true
		}
		if i, ok := index(name); ok {
			runes := []rune(r)
			if i < len(runes) {
				return string(runes[i]), true
			}
			return value.Undefined, true
		}
		return method(stringMethods, r, name)

	case float64:
		return method(numberMethods, r, name)

	case bool:
		return method(booleanMethods, r, name)

	case *value.Map:
		if name == "size" {
			return float64(len(r.Entries)), true
		}
		return method(mapMethods, r, name)

	case *value.Set:
		if name == "size" {
			return float64(len(r.Elems)), true
		}
		return method(setMethods, r, name)

	case *value.Date:
		return method(dateMethods, r, name)

	case *value.RegExp:
		switch name {
		case "source":
			return r.Pattern, true
		case "flags":
			return r.Flags, true
		case "global":
			return r.Global(), true
		}
		return method(regexpMethods, r, name)

	case *value.ErrorValue:
		switch name {
		case "name":
			return r.Name, true
		case "message":
			return r.Message, true
		}
		return method(errorMethods, r, name)

	case *value.TypedArray:
		if name == "length" {
			return float64(len(r.Elems)), true
		}
		if i, ok := index(name); ok {
			if i < len(r.Elems) {
				return r.Elems[i], true
			}
			return value.Undefined, true
		}
		return method(typedArrayMethods, r, name)

	case *value.BigInt:
		return method(bigintMethods, r, name)

	case *value.Symbol:
		if name == "description" {
			return r.Desc, true
		}

	case *value.Builtin:
		if v, ok := r.Props[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func method(table map[string]*value.Builtin, recv any, name string) (any, bool) {
	if b, ok := table[name]; ok {
		return value.BoundMethod{Recv: recv, Method: b}, true
	}
	return nil, false
}
