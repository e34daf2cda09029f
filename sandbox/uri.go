package sandbox

import (
	"fmt"
	"strings"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// The URI helpers follow the ECMAScript definitions, which differ from
// url.QueryEscape: spaces become %20 and the unreserved sets below pass
// through unescaped.

const uriComponentUnreserved = "-_.!~*'()"
const uriReserved = ";/?:@&=+$,#"

func encodeURIComponent(recv any, args []any) (any, error) {
	return uriEncode(value.ToString(arg(args, 0)), uriComponentUnreserved), nil
}

func encodeURI(recv any, args []any) (any, error) {
	return uriEncode(value.ToString(arg(args, 0)), uriComponentUnreserved+uriReserved), nil
}

func decodeURIComponent(recv any, args []any) (any, error) {
	return uriDecode(value.ToString(arg(args, 0)))
}

func decodeURI(recv any, args []any) (any, error) {
	return uriDecode(value.ToString(arg(args, 0)))
}

func uriEncode(s, safe string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
			strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

func uriDecode(s string) (any, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			b.WriteByte(s[i])
			continue
		}
		if i+2 >= len(s) {
			return nil, errs.Typef("URIError: URI malformed")
		}
		hi, lo := hexValue(s[i+1]), hexValue(s[i+2])
		if hi < 0 || lo < 0 {
			return nil, errs.Typef("URIError: URI malformed")
		}
		b.WriteByte(byte(hi<<4 | lo))
		i += 2
	}
	return b.String(), nil
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
