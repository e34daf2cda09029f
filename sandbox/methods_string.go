package sandbox

import (
	"math"
	"strings"

	"github.com/sandscript/go-sandscript/value"
)

var stringMethods = map[string]*value.Builtin{
	"at":          {Name: "String.prototype.at", Fn: stringAt},
	"charAt":      {Name: "String.prototype.charAt", Fn: stringCharAt},
	"charCodeAt":  {Name: "String.prototype.charCodeAt", Fn: stringCharCodeAt},
	"codePointAt": {Name: "String.prototype.codePointAt", Fn: stringCodePointAt},
	"concat":      {Name: "String.prototype.concat", Fn: stringConcat},
	"endsWith":    {Name: "String.prototype.endsWith", Fn: stringEndsWith},
	"includes":    {Name: "String.prototype.includes", Fn: stringIncludes},
	"indexOf":     {Name: "String.prototype.indexOf", Fn: stringIndexOf},
	"lastIndexOf": {Name: "String.prototype.lastIndexOf", Fn: stringLastIndexOf},
	"match":       {Name: "String.prototype.match", Fn: stringMatch},
	"padEnd":      {Name: "String.prototype.padEnd", Fn: stringPadEnd},
	"padStart":    {Name: "String.prototype.padStart", Fn: stringPadStart},
	"repeat":      {Name: "String.prototype.repeat", Fn: stringRepeat},
	"replace":     {Name: "String.prototype.replace", Fn: stringReplace},
	"replaceAll":  {Name: "String.prototype.replaceAll", Fn: stringReplaceAll},
	"slice":       {Name: "String.prototype.slice", Fn: stringSlice},
	"split":       {Name: "String.prototype.split", Fn: stringSplit},
	"startsWith":  {Name: "String.prototype.startsWith", Fn: stringStartsWith},
	"substring":   {Name: "String.prototype.substring", Fn: stringSubstring},
	"toLowerCase": {Name: "String.prototype.toLowerCase", Fn: stringToLowerCase},
	"toString":    {Name: "String.prototype.toString", Fn: stringToString},
	"toUpperCase": {Name: "String.prototype.toUpperCase", Fn: stringToUpperCase},
	"trim":        {Name: "String.prototype.trim", Fn: stringTrim},
	"trimEnd":     {Name: "String.prototype.trimEnd", Fn: stringTrimEnd},
	"trimStart":   {Name: "String.prototype.trimStart", Fn: stringTrimStart},
}

func stringOf(recv any) string {
	s, _ := recv.(string)
	return s
}

func stringAt(recv any, args []any) (any, error) {
	s := stringOf(recv)
	i := toInt(arg(args, 0))
	if i < 0 {
		i += len(s)
	}
	if i < 0 || i >= len(s) {
		return value.Undefined, nil
	}
	return string(s[i]), nil
}

func stringCharAt(recv any, args []any) (any, error) {
	s := stringOf(recv)
	i := toInt(arg(args, 0))
	if i < 0 || i >= len(s) {
		return "", nil
	}
	return string(s[i]), nil
}

func stringCharCodeAt(recv any, args []any) (any, error) {
	s := []rune(stringOf(recv))
	i := toInt(arg(args, 0))
	if i < 0 || i >= len(s) {
		return math.NaN(), nil
	}
	return float64(s[i]), nil
}

func stringCodePointAt(recv any, args []any) (any, error) {
	s := []rune(stringOf(recv))
	i := toInt(arg(args, 0))
	if i < 0 || i >= len(s) {
		return value.Undefined, nil
	}
	return float64(s[i]), nil
}

func stringConcat(recv any, args []any) (any, error) {
	var b strings.Builder
	b.WriteString(stringOf(recv))
	for _, v := range args {
		b.WriteString(value.ToString(v))
	}
	return b.String(), nil
}

func stringEndsWith(recv any, args []any) (any, error) {
	s := stringOf(recv)
	if len(args) > 1 {
		end := relativeIndex(toInt(args[1]), len(s))
		s = s[:end]
	}
	return strings.HasSuffix(s, value.ToString(arg(args, 0))), nil
}

func stringStartsWith(recv any, args []any) (any, error) {
	s := stringOf(recv)
	if len(args) > 1 {
		start := relativeIndex(toInt(args[1]), len(s))
		s = s[start:]
	}
	return strings.HasPrefix(s, value.ToString(arg(args, 0))), nil
}

func stringIncludes(recv any, args []any) (any, error) {
	return strings.Contains(stringOf(recv), value.ToString(arg(args, 0))), nil
}

func stringIndexOf(recv any, args []any) (any, error) {
	return float64(strings.Index(stringOf(recv), value.ToString(arg(args, 0)))), nil
}

func stringLastIndexOf(recv any, args []any) (any, error) {
	return float64(strings.LastIndex(stringOf(recv), value.ToString(arg(args, 0)))), nil
}

func stringMatch(recv any, args []any) (any, error) {
	s := stringOf(recv)
	re, err := argRegExp(arg(args, 0))
	if err != nil {
		return nil, err
	}
	if re.Global() {
		out := []any{}
		m, err := re.Re.FindStringMatch(s)
		for err == nil && m != nil {
			out = append(out, m.String())
			m, err = re.Re.FindNextMatch(m)
		}
		if len(out) == 0 {
			return nil, nil
		}
		return out, nil
	}
	m, err := re.Re.FindStringMatch(s)
	if err != nil || m == nil {
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

func stringPadStart(recv any, args []any) (any, error) {
	return pad(stringOf(recv), args, true), nil
}

func stringPadEnd(recv any, args []any) (any, error) {
	return pad(stringOf(recv), args, false), nil
}

func pad(s string, args []any, start bool) string {
	target := toInt(arg(args, 0))
	fill := " "
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		fill = value.ToString(args[1])
	}
	if fill == "" || len(s) >= target {
		return s
	}
	padding := strings.Repeat(fill, (target-len(s))/len(fill)+1)[:target-len(s)]
	if start {
		return padding + s
	}
	return s + padding
}

func stringRepeat(recv any, args []any) (any, error) {
	n := toInt(arg(args, 0))
	if n < 0 {
		return nil, rangeError("invalid count value")
	}
	return strings.Repeat(stringOf(recv), n), nil
}

func stringReplace(recv any, args []any) (any, error) {
	return replace(stringOf(recv), args, false)
}

func stringReplaceAll(recv any, args []any) (any, error) {
	return replace(stringOf(recv), args, true)
}

func replace(s string, args []any, all bool) (any, error) {
	replacement := value.ToString(arg(args, 1))
	if re, ok := arg(args, 0).(*value.RegExp); ok {
		count := 1
		if all || re.Global() {
			count = -1
		}
		out, err := re.Re.Replace(s, replacement, 0, count)
		if err != nil {
			return nil, rangeError(err.Error())
		}
		return out, nil
	}
	pattern := value.ToString(arg(args, 0))
	if all {
		return strings.ReplaceAll(s, pattern, replacement), nil
	}
	return strings.Replace(s, pattern, replacement, 1), nil
}

func stringSlice(recv any, args []any) (any, error) {
	s := stringOf(recv)
	start := 0
	end := len(s)
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		start = relativeIndex(toInt(args[0]), len(s))
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		end = relativeIndex(toInt(args[1]), len(s))
	}
	if start >= end {
		return "", nil
	}
	return s[start:end], nil
}

func stringSplit(recv any, args []any) (any, error) {
	s := stringOf(recv)
	sep := arg(args, 0)
	if value.IsUndefined(sep) {
		return []any{s}, nil
	}
	limit := -1
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		limit = toInt(args[1])
	}
	parts := strings.Split(s, value.ToString(sep))
	if limit >= 0 && limit < len(parts) {
		parts = parts[:limit]
	}
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out, nil
}

func stringSubstring(recv any, args []any) (any, error) {
	s := stringOf(recv)
	start := 0
	end := len(s)
	if len(args) > 0 && !value.IsUndefined(args[0]) {
		start = clamp(toInt(args[0]), len(s))
	}
	if len(args) > 1 && !value.IsUndefined(args[1]) {
		end = clamp(toInt(args[1]), len(s))
	}
	if start > end {
		start, end = end, start
	}
	return s[start:end], nil
}

func clamp(i, length int) int {
	if i < 0 {
		return 0
	}
	if i > length {
		return length
	}
	return i
}

func stringToLowerCase(recv any, args []any) (any, error) {
	return strings.ToLower(stringOf(recv)), nil
}

func stringToUpperCase(recv any, args []any) (any, error) {
	return strings.ToUpper(stringOf(recv)), nil
}

func stringToString(recv any, args []any) (any, error) {
	return stringOf(recv), nil
}

func stringTrim(recv any, args []any) (any, error) {
	return strings.TrimSpace(stringOf(recv)), nil
}

func stringTrimStart(recv any, args []any) (any, error) {
	return strings.TrimLeft(stringOf(recv), " \t\n\r\v\f"), nil
}

func stringTrimEnd(recv any, args []any) (any, error) {
	return strings.TrimRight(stringOf(recv), " \t\n\r\v\f"), nil
}
