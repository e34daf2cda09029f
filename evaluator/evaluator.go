// Package evaluator walks an expression AST produced by the parser and
// computes its value against a scope chain of caller-supplied variables
// layered over the sandbox's global allow-list.
//
// The walk is purely functional over the scope: nothing the evaluator does
// writes to a frame after it is built, so one Evaluator can run many
// expressions concurrently. Capability enforcement happens at the choke
// points every invocation passes through: built-ins are compared by
// identity against the mutable-method registry before direct calls, the
// registry is stamped onto every resolved method so value.Call re-checks
// it when a builtin runs the method as a callback, and the Function
// constructor guard is rejected on both the call and the new path.
package evaluator

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/sandscript/go-sandscript/ast"
	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/internal/helpers"
	"github.com/sandscript/go-sandscript/parser"
	"github.com/sandscript/go-sandscript/sandbox"
	"github.com/sandscript/go-sandscript/value"
)

// errShortCircuit propagates an optional-chain miss (a?.b on a nullish a)
// up to the enclosing chain node, which converts it to undefined. It never
// escapes the evaluator.
var errShortCircuit = errors.New("optional chain short-circuit")

// Evaluator executes parsed expressions against a fixed variable context.
// One instance can evaluate many expressions, concurrently; the context
// map itself must not be written during evaluation.
type Evaluator struct {
	logHandler slog.Handler
	logger     *slog.Logger
	registry   *sandbox.Registry
	globals    map[string]any
	scope      *Scope
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogHandler sets the slog handler for evaluation logging.
func WithLogHandler(handler slog.Handler) Option {
	return func(e *Evaluator) {
		e.logHandler = handler
	}
}

// WithRegistry replaces the default mutable-method registry.
func WithRegistry(registry *sandbox.Registry) Option {
	return func(e *Evaluator) {
		e.registry = registry
	}
}

// New creates an Evaluator whose outermost scope frame is vars. vars may
// be nil; it is used as-is, so values should be normalized with
// value.Normalize (or produced by a data.Provider) first.
func New(vars map[string]any, opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "evaluator")
	if e.registry == nil {
		e.registry = sandbox.DefaultRegistry()
	}
	e.globals = sandbox.Globals()
	e.scope = NewScope(vars)
	return e
}

// Evaluate parses source and evaluates it against the context.
func (e *Evaluator) Evaluate(source string) (any, error) {
	node, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return e.Eval(node)
}

// Eval evaluates an already-parsed expression tree.
func (e *Evaluator) Eval(node ast.Node) (any, error) {
	start := time.Now()
	out, err := e.eval(node, e.scope)
	if errors.Is(err, errShortCircuit) {
		// a bare optional access outside a chain wrapper
		out, err = value.Undefined, nil
	}
	if err != nil {
		e.logger.Debug("evaluation failed", "error", err, "duration", time.Since(start))
		return nil, err
	}
	e.logger.Debug("evaluation complete", "type", value.TypeOf(out), "duration", time.Since(start))
	return out, nil
}

func (e *Evaluator) eval(n ast.Node, sc *Scope) (any, error) {
	switch x := n.(type) {
	case *ast.Literal:
		return x.Value, nil

	case *ast.Ident:
		return e.ident(x.Name, sc)

	case *ast.Unary:
		if x.Op == "delete" {
			return nil, errs.Securityf("delete is not allowed")
		}
		if x.Op == "typeof" {
			// typeof never throws on unresolved names
			if id, ok := x.Operand.(*ast.Ident); ok && !e.resolvable(id.Name, sc) {
				return "undefined", nil
			}
		}
		v, err := e.eval(x.Operand, sc)
		if err != nil {
			return nil, err
		}
		return unary(x.Op, v)

	case *ast.Binary:
		left, err := e.eval(x.Left, sc)
		if err != nil {
			return nil, err
		}
		right, err := e.eval(x.Right, sc)
		if err != nil {
			return nil, err
		}
		return binary(x.Op, left, right)

	case *ast.Logical:
		return e.logical(x, sc)

	case *ast.Conditional:
		test, err := e.eval(x.Test, sc)
		if err != nil {
			return nil, err
		}
		if value.ToBoolean(test) {
			return e.eval(x.Then, sc)
		}
		return e.eval(x.Else, sc)

	case *ast.Member:
		return e.member(x, sc)

	case *ast.Call:
		return e.call(x, sc)

	case *ast.New:
		return e.construct(x, sc)

	case *ast.Array:
		return e.elements(x.Elems, sc)

	case *ast.Object:
		return e.object(x, sc)

	case *ast.Template:
		return e.template(x, sc)

	case *ast.Regex:
		re, err := value.NewRegExp(x.Pattern, x.Flags)
		if err != nil {
			return nil, errs.Syntaxf("invalid regular expression: %s", err.Error())
		}
		return re, nil

	case *ast.Arrow:
		return &closure{ev: e, params: x.Params, body: x.Body, scope: sc, source: x.Source}, nil

	case *ast.This:
		return nil, errs.Securityf("'this' is not available")

	case *ast.Chain:
		v, err := e.eval(x.Expr, sc)
		if errors.Is(err, errShortCircuit) {
			return value.Undefined, nil
		}
		return v, err

	case *ast.Spread:
		// spread is consumed by the call/array/object paths directly
		return nil, errs.Syntaxf("unexpected spread element")
	}
	return nil, errs.Syntaxf("unsupported expression")
}

func (e *Evaluator) ident(name string, sc *Scope) (any, error) {
	if v, ok := sc.Lookup(name); ok {
		return v, nil
	}
	if v, ok := e.globals[name]; ok {
		return v, nil
	}
	return nil, errs.Referencef("%s is not defined", name)
}

func (e *Evaluator) resolvable(name string, sc *Scope) bool {
	if sc.Has(name) {
		return true
	}
	_, ok := e.globals[name]
	return ok
}

func (e *Evaluator) logical(x *ast.Logical, sc *Scope) (any, error) {
	left, err := e.eval(x.Left, sc)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case "&&":
		if !value.ToBoolean(left) {
			return left, nil
		}
	case "||":
		if value.ToBoolean(left) {
			return left, nil
		}
	case "??":
		if !value.IsNullish(left) {
			return left, nil
		}
	default:
		return nil, errs.Syntaxf("unsupported operator %q", x.Op)
	}
	return e.eval(x.Right, sc)
}

func (e *Evaluator) member(x *ast.Member, sc *Scope) (any, error) {
	obj, err := e.eval(x.Object, sc)
	if err != nil {
		return nil, err
	}
	if x.Optional && value.IsNullish(obj) {
		return nil, errShortCircuit
	}
	name := x.Name
	if x.Computed {
		key, err := e.eval(x.Property, sc)
		if err != nil {
			return nil, err
		}
		name = value.ToString(key)
	}
	if value.IsNullish(obj) {
		return nil, errs.Typef("cannot read properties of %s (reading %q)", value.ToString(obj), name)
	}
	v, ok := sandbox.Property(obj, name)
	if !ok {
		return value.Undefined, nil
	}
	if bm, ok := v.(value.BoundMethod); ok {
		// stamp the registry onto the resolved method, so it is enforced
		// wherever the value ends up being invoked, callback positions
		// inside other builtins included
		bm.Guard = e.registry
		return bm, nil
	}
	return v, nil
}

func (e *Evaluator) call(x *ast.Call, sc *Scope) (any, error) {
	fn, err := e.eval(x.Callee, sc)
	if err != nil {
		return nil, err
	}
	if x.Optional && value.IsNullish(fn) {
		return nil, errShortCircuit
	}
	if err := e.checkCallable(fn); err != nil {
		return nil, err
	}
	args, err := e.elements(x.Args, sc)
	if err != nil {
		return nil, err
	}
	return value.Call(fn, args)
}

// checkCallable is the enforcement choke point for invocation: identity
// comparison against the Function constructor guard and the mutable-method
// registry happens before any function body runs.
func (e *Evaluator) checkCallable(fn any) error {
	switch f := fn.(type) {
	case *value.Builtin:
		if f == sandbox.FunctionConstructor {
			return errs.Securityf("the Function constructor is not allowed")
		}
		if e.registry.Contains(f) {
			return errs.Securityf("%s mutates its receiver and is blocked", f.Name)
		}
	case value.BoundMethod:
		if e.registry.Contains(f.Method) {
			return errs.Securityf("%s mutates its receiver and is blocked", f.Method.Name)
		}
	}
	if !value.IsFunction(fn) {
		return errs.Typef("%s is not a function", value.ToDisplay(fn))
	}
	return nil
}

func (e *Evaluator) construct(x *ast.New, sc *Scope) (any, error) {
	target, ok := sc.Lookup(x.Name)
	if !ok {
		target, ok = e.globals[x.Name]
	}
	if !ok {
		return nil, errs.Referencef("%s is not defined", x.Name)
	}
	b, isBuiltin := target.(*value.Builtin)
	if !isBuiltin {
		return nil, errs.Typef("%s is not a constructor", x.Name)
	}
	if b == sandbox.FunctionConstructor {
		return nil, errs.Securityf("constructing functions with 'new Function' is not allowed")
	}
	if e.registry.Contains(b) {
		return nil, errs.Securityf("%s mutates its receiver and is blocked", b.Name)
	}
	if b.Construct == nil {
		return nil, errs.Typef("%s is not a constructor", x.Name)
	}
	args, err := e.elements(x.Args, sc)
	if err != nil {
		return nil, err
	}
	return b.Construct(args)
}

// elements evaluates an expression list, expanding spread elements. Shared
// by array literals, call arguments and constructor arguments.
func (e *Evaluator) elements(nodes []ast.Node, sc *Scope) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		if sp, ok := n.(*ast.Spread); ok {
			v, err := e.eval(sp.Operand, sc)
			if err != nil {
				return nil, err
			}
			elems, ok := value.Elements(v)
			if !ok {
				return nil, errs.Typef("%s is not iterable", value.ToDisplay(v))
			}
			out = append(out, elems...)
			continue
		}
		v, err := e.eval(n, sc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Evaluator) object(x *ast.Object, sc *Scope) (any, error) {
	out := make(map[string]any, len(x.Props))
	for _, p := range x.Props {
		if p.Spread {
			v, err := e.eval(p.Value, sc)
			if err != nil {
				return nil, err
			}
			spreadInto(out, v)
			continue
		}
		key := p.Key
		if p.Computed {
			k, err := e.eval(p.KeyExpr, sc)
			if err != nil {
				return nil, err
			}
			key = value.ToString(k)
		}
		v, err := e.eval(p.Value, sc)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// spreadInto copies the own enumerable entries of v into dst. Nullish and
// primitive operands contribute nothing, matching object spread semantics
// (strings being the one primitive with index properties).
func spreadInto(dst map[string]any, v any) {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			dst[k] = e
		}
	case []any:
		for i, e := range x {
			dst[value.FormatNumber(float64(i))] = e
		}
	case string:
		for i, r := range []rune(x) {
			dst[value.FormatNumber(float64(i))] = string(r)
		}
	}
}

func (e *Evaluator) template(x *ast.Template, sc *Scope) (any, error) {
	var b strings.Builder
	for i, quasi := range x.Quasis {
		b.WriteString(quasi)
		if i < len(x.Exprs) {
			v, err := e.eval(x.Exprs[i], sc)
			if err != nil {
				return nil, err
			}
			b.WriteString(value.ToString(v))
		}
	}
	return b.String(), nil
}

// closure is a user-defined arrow function: its body evaluates in a child
// frame of the scope it was created in.
type closure struct {
	ev     *Evaluator
	params []string
	body   ast.Node
	scope  *Scope
	source string
}

func (c *closure) Call(args []any) (any, error) {
	vars := make(map[string]any, len(c.params))
	for i, p := range c.params {
		if i < len(args) {
			vars[p] = args[i]
		} else {
			vars[p] = value.Undefined
		}
	}
	return c.ev.eval(c.body, c.scope.Child(vars))
}

func (c *closure) String() string {
	if c.source != "" {
		return c.source
	}
	return "() => {}"
}
