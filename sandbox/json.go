package sandbox

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

func buildJSON() map[string]any {
	return map[string]any{
		"parse":     &value.Builtin{Name: "JSON.parse", Fn: jsonParse},
		"stringify": &value.Builtin{Name: "JSON.stringify", Fn: jsonStringify},
	}
}

func jsonParse(recv any, args []any) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(value.ToString(arg(args, 0))), &out); err != nil {
		return nil, errs.Syntaxf("JSON.parse: %s", err.Error())
	}
	return value.Normalize(out), nil
}

func jsonStringify(recv any, args []any) (any, error) {
	indent := ""
	if len(args) > 2 {
		switch x := args[2].(type) {
		case float64:
			n := int(x)
			if n > 10 {
				n = 10
			}
			if n > 0 {
				indent = strings.Repeat(" ", n)
			}
		case string:
			indent = x
		}
	}
	var b strings.Builder
	ok := writeJSON(&b, arg(args, 0), indent, "")
	if !ok {
		return value.Undefined, nil
	}
	return b.String(), nil
}

// writeJSON renders v as JSON. It returns false for values JSON.stringify
// omits entirely (undefined, functions); inside arrays those become null,
// inside objects the key is dropped.
func writeJSON(b *strings.Builder, v any, indent, prefix string) bool {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if x {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			b.WriteString("null")
		} else {
			b.WriteString(value.FormatNumber(x))
		}
	case string:
		writeJSONString(b, x)
	case *value.Date:
		iso, _ := dateToISOString(x, nil)
		writeJSONString(b, iso.(string))
	case *value.BigInt, *value.Symbol:
		return false
	case []any:
		writeJSONArray(b, x, indent, prefix)
	case *value.TypedArray:
		elems := make([]any, len(x.Elems))
		for i, f := range x.Elems {
			elems[i] = f
		}
		writeJSONArray(b, elems, indent, prefix)
	case map[string]any:
		writeJSONObject(b, x, indent, prefix)
	case *value.Map, *value.Set, *value.RegExp, *value.Promise:
		b.WriteString("{}")
	case *value.ErrorValue:
		b.WriteString("{}")
	default:
		if value.IsUndefined(v) || value.IsFunction(v) {
			return false
		}
		b.WriteString("null")
	}
	return true
}

func writeJSONString(b *strings.Builder, s string) {
	enc, err := json.Marshal(s)
	if err != nil {
		b.WriteString(`""`)
		return
	}
	b.Write(enc)
}

func writeJSONArray(b *strings.Builder, elems []any, indent, prefix string) {
	if len(elems) == 0 {
		b.WriteString("[]")
		return
	}
	inner := prefix + indent
	b.WriteString("[")
	for i, e := range elems {
		if i > 0 {
			b.WriteString(",")
		}
		if indent != "" {
			b.WriteString("\n" + inner)
		}
		var eb strings.Builder
		if writeJSON(&eb, e, indent, inner) {
			b.WriteString(eb.String())
		} else {
			b.WriteString("null")
		}
	}
	if indent != "" {
		b.WriteString("\n" + prefix)
	}
	b.WriteString("]")
}

func writeJSONObject(b *strings.Builder, m map[string]any, indent, prefix string) {
	keys := sortedKeys(m)
	inner := prefix + indent
	b.WriteString("{")
	wrote := false
	for _, k := range keys {
		var eb strings.Builder
		if !writeJSON(&eb, m[k], indent, inner) {
			continue
		}
		if wrote {
			b.WriteString(",")
		}
		if indent != "" {
			b.WriteString("\n" + inner)
		}
		writeJSONString(b, k)
		b.WriteString(":")
		if indent != "" {
			b.WriteString(" ")
		}
		b.WriteString(eb.String())
		wrote = true
	}
	if indent != "" && wrote {
		b.WriteString("\n" + prefix)
	}
	b.WriteString("}")
}
