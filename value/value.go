// Package value defines the runtime value model for sandboxed expression
// evaluation: the undefined sentinel, built-in function values, the wrapper
// types for host objects (Map, Set, Date, RegExp, ...), and the ECMAScript
// coercion and equality rules over all of them.
//
// Plain Go values double as sandbox values: float64 is a number, string a
// string, bool a boolean, nil is null, []any an array and map[string]any an
// object. Normalize converts arbitrary caller-supplied Go values into this
// canonical shape before they enter a scope.
package value

import (
	"fmt"
	"math/big"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/sandscript/go-sandscript/errs"
)

// undefinedType is the type of the Undefined sentinel. It is a comparable
// zero-size type so v == Undefined works through an any.
type undefinedType struct{}

func (undefinedType) String() string { return "undefined" }

// Undefined is the singleton undefined value. Distinct from nil, which
// represents null.
var Undefined = undefinedType{}

// IsUndefined reports whether v is the undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}

// IsNullish reports whether v is null or undefined.
func IsNullish(v any) bool {
	return v == nil || IsUndefined(v)
}

// BuiltinFunc is the implementation signature shared by all built-in
// functions. recv is the receiver for methods and nil for free functions.
type BuiltinFunc func(recv any, args []any) (any, error)

// ConstructFunc builds a new object for a `new` expression.
type ConstructFunc func(args []any) (any, error)

// Builtin is a host-provided function value. Builtins are allocated exactly
// once when the global scope is built, so a *Builtin pointer is a stable
// identity: the mutable-method registry keys on it, which is what defeats
// aliasing tricks like obj["pu" + "sh"].
type Builtin struct {
	// Name is the canonical dotted name, used in error messages.
	Name string

	// Fn handles plain invocation. A nil Fn means the value is not callable
	// without `new`.
	Fn BuiltinFunc

	// Construct handles `new` invocation. A nil Construct means the value is
	// not a constructor.
	Construct ConstructFunc

	// Props holds static properties reachable by member access on the
	// builtin itself (e.g. Number.MAX_SAFE_INTEGER, String.fromCharCode).
	Props map[string]any
}

func (b *Builtin) String() string {
	return "function " + b.Name + "() { [native code] }"
}

// Blocklist is the call path's view of the mutable-method registry: a set
// of builtin identities that must never be invoked.
type Blocklist interface {
	Contains(*Builtin) bool
}

// BoundMethod pairs a receiver with the method builtin resolved from it.
// The pair is produced by property access and consumed by call evaluation,
// which checks Method against the mutable registry before invoking.
type BoundMethod struct {
	Recv   any
	Method *Builtin

	// Guard is the blocklist in force when the method was resolved. Call
	// consults it, so a blocked method cannot run even when it reaches an
	// invocation site indirectly, as a callback handed to another builtin.
	// Guard never participates in equality.
	Guard Blocklist
}

// Callable is implemented by closure values produced by arrow functions.
type Callable interface {
	Call(args []any) (any, error)
	String() string
}

// Map is an insertion-ordered key/value collection, the sandbox stand-in
// for a JavaScript Map.
type Map struct {
	Entries [][2]any
}

// Find returns the index of key in the entry list, or -1.
func (m *Map) Find(key any) int {
	for i, e := range m.Entries {
		if sameValueZero(e[0], key) {
			return i
		}
	}
	return -1
}

// Set is an insertion-ordered collection of unique values.
type Set struct {
	Elems []any
}

// Find returns the index of v in the element list, or -1.
func (s *Set) Find(v any) int {
	for i, e := range s.Elems {
		if sameValueZero(e, v) {
			return i
		}
	}
	return -1
}

// Date wraps an instant in time.
type Date struct {
	Time time.Time
}

// RegExp wraps a compiled regular expression. regexp2 is used because it
// accepts ECMAScript pattern syntax (backreferences, lookaround) that the
// stdlib engine rejects.
type RegExp struct {
	Pattern string
	Flags   string
	Re      *regexp2.Regexp
}

// NewRegExp compiles pattern with JavaScript-style flags ("i", "m", "s").
func NewRegExp(pattern, flags string) (*RegExp, error) {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	for _, f := range flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g', 'u', 'y':
			// matching behavior handled by callers; accepted for fidelity
		default:
			return nil, fmt.Errorf("invalid regular expression flag %q", string(f))
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression: %w", err)
	}
	return &RegExp{Pattern: pattern, Flags: flags, Re: re}, nil
}

func (r *RegExp) String() string {
	return "/" + r.Pattern + "/" + r.Flags
}

// Global reports whether the g flag was set.
func (r *RegExp) Global() bool {
	for _, f := range r.Flags {
		if f == 'g' {
			return true
		}
	}
	return false
}

// ErrorValue is a constructed error object (new TypeError("...") etc.).
type ErrorValue struct {
	Name    string
	Message string
}

func (e *ErrorValue) String() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// PromiseState enumerates the lifecycle states of a Promise value.
type PromiseState string

const (
	PromisePending   PromiseState = "pending"
	PromiseFulfilled PromiseState = "fulfilled"
	PromiseRejected  PromiseState = "rejected"
)

// Promise is the value produced by the Promise constructor. The evaluator
// runs the executor synchronously and never awaits; the settled (or still
// pending) promise object is handed back to the caller as-is.
type Promise struct {
	State PromiseState
	Value any
}

// TypedArray is the shared representation for all numeric typed-array
// constructors. Kind records which constructor produced it.
type TypedArray struct {
	Kind  string
	Elems []float64
}

// Symbol is a unique token value. Identity is pointer identity.
type Symbol struct {
	Desc string
}

func (s *Symbol) String() string {
	return "Symbol(" + s.Desc + ")"
}

// BigInt wraps an arbitrary-precision integer.
type BigInt struct {
	Int *big.Int
}

func (b *BigInt) String() string {
	return b.Int.String()
}

// Call invokes a function value of any supported flavor: a closure, a free
// builtin, or a method already bound to its receiver. Builtins use it to run
// caller-supplied callbacks (e.g. for map and filter).
func Call(fn any, args []any) (any, error) {
	switch f := fn.(type) {
	case Callable:
		return f.Call(args)
	case *Builtin:
		if f.Fn == nil {
			return nil, fmt.Errorf("%s is not callable", f.Name)
		}
		return f.Fn(nil, args)
	case BoundMethod:
		if f.Guard != nil && f.Guard.Contains(f.Method) {
			return nil, errs.Securityf("%s mutates its receiver and is blocked", f.Method.Name)
		}
		return f.Method.Fn(f.Recv, args)
	default:
		return nil, fmt.Errorf("%s is not a function", ToDisplay(fn))
	}
}

// IsFunction reports whether v is callable.
func IsFunction(v any) bool {
	switch v.(type) {
	case Callable, *Builtin, BoundMethod:
		return true
	}
	return false
}

// Elements expands an iterable into a slice for spread evaluation. The
// second result is false when v is not iterable.
func Elements(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case string:
		out := make([]any, 0, len(x))
		for _, r := range x {
			out = append(out, string(r))
		}
		return out, true
	case *Set:
		out := make([]any, len(x.Elems))
		copy(out, x.Elems)
		return out, true
	case *Map:
		out := make([]any, 0, len(x.Entries))
		for _, e := range x.Entries {
			out = append(out, []any{e[0], e[1]})
		}
		return out, true
	case *TypedArray:
		out := make([]any, 0, len(x.Elems))
		for _, f := range x.Elems {
			out = append(out, f)
		}
		return out, true
	}
	return nil, false
}
