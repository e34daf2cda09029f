// Package parser turns expression source text into the evaluator's AST.
//
// Parsing proper is delegated to goja's ECMAScript parser; this package is
// the adapter that converts goja's node vocabulary into the closed node set
// of the ast package, rejecting everything outside the expression subset
// (statements, assignment, rest/default parameters, tagged templates) as a
// syntax error up front, so the evaluator only ever sees shapes it knows.
package parser

import (
	gojaast "github.com/dop251/goja/ast"
	gojaparser "github.com/dop251/goja/parser"

	"github.com/sandscript/go-sandscript/ast"
	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/value"
)

// Parse converts source into an expression tree. The source must contain
// exactly one expression.
func Parse(source string) (ast.Node, error) {
	prog, err := gojaparser.ParseFile(nil, "", source, 0)
	if err != nil {
		return nil, errs.Syntaxf("%s", err.Error())
	}
	if len(prog.Body) != 1 {
		return nil, errs.Syntaxf("expected a single expression, got %q", errs.Snippet(source))
	}
	stmt, ok := prog.Body[0].(*gojaast.ExpressionStatement)
	if !ok {
		return nil, unsupported(source, prog.Body[0])
	}
	c := &converter{source: source}
	return c.expr(stmt.Expression)
}

type converter struct {
	source string
}

// span converts goja's 1-based file indexes into byte offsets.
func (c *converter) span(n gojaast.Node) ast.Span {
	return ast.Span{Start: int(n.Idx0()) - 1, End: int(n.Idx1()) - 1}
}

// snippet slices the source text covered by n for error messages.
func (c *converter) snippet(n gojaast.Node) string {
	s := c.span(n)
	if s.Start < 0 || s.End > len(c.source) || s.Start > s.End {
		return c.source
	}
	return errs.Snippet(c.source[s.Start:s.End])
}

func unsupported(source string, n gojaast.Node) error {
	start := int(n.Idx0()) - 1
	end := int(n.Idx1()) - 1
	if start < 0 || end > len(source) || start > end {
		return errs.Syntaxf("%q is not valid syntax", errs.Snippet(source))
	}
	return errs.Syntaxf("%q is not valid syntax", errs.Snippet(source[start:end]))
}

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true, "**": true,
	"==": true, "!=": true, "===": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
	"&": true, "|": true, "^": true, "<<": true, ">>": true, ">>>": true,
}

var logicalOps = map[string]bool{
	"&&": true, "||": true, "??": true,
}

var unaryOps = map[string]bool{
	"-": true, "+": true, "!": true, "~": true,
	"typeof": true, "void": true, "delete": true,
}

func (c *converter) expr(e gojaast.Expression) (ast.Node, error) {
	switch x := e.(type) {
	case *gojaast.NumberLiteral:
		switch v := x.Value.(type) {
		case int64:
			return &ast.Literal{Value: float64(v), Pos: c.span(x)}, nil
		case float64:
			return &ast.Literal{Value: v, Pos: c.span(x)}, nil
		}
		return nil, unsupported(c.source, x)

	case *gojaast.StringLiteral:
		return &ast.Literal{Value: x.Value.String(), Pos: c.span(x)}, nil

	case *gojaast.BooleanLiteral:
		return &ast.Literal{Value: x.Value, Pos: c.span(x)}, nil

	case *gojaast.NullLiteral:
		return &ast.Literal{Value: nil, Pos: c.span(x)}, nil

	case *gojaast.RegExpLiteral:
		return &ast.Regex{Pattern: x.Pattern, Flags: x.Flags, Pos: c.span(x)}, nil

	case *gojaast.Identifier:
		return &ast.Ident{Name: x.Name.String(), Pos: c.span(x)}, nil

	case *gojaast.ThisExpression:
		return &ast.This{Pos: c.span(x)}, nil

	case *gojaast.BinaryExpression:
		op := x.Operator.String()
		left, err := c.expr(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.expr(x.Right)
		if err != nil {
			return nil, err
		}
		if logicalOps[op] {
			return &ast.Logical{Op: op, Left: left, Right: right, Pos: c.span(x)}, nil
		}
		if binaryOps[op] {
			return &ast.Binary{Op: op, Left: left, Right: right, Pos: c.span(x)}, nil
		}
		return nil, unsupported(c.source, x)

	case *gojaast.UnaryExpression:
		op := x.Operator.String()
		if x.Postfix || !unaryOps[op] {
			return nil, unsupported(c.source, x)
		}
		operand, err := c.expr(x.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand, Pos: c.span(x)}, nil

	case *gojaast.ConditionalExpression:
		test, err := c.expr(x.Test)
		if err != nil {
			return nil, err
		}
		then, err := c.expr(x.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := c.expr(x.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.Conditional{Test: test, Then: then, Else: alt, Pos: c.span(x)}, nil

	case *gojaast.DotExpression:
		base, optional := optionalBase(x.Left)
		obj, err := c.expr(base)
		if err != nil {
			return nil, err
		}
		return &ast.Member{
			Object:   obj,
			Name:     x.Identifier.Name.String(),
			Optional: optional,
			Pos:      c.span(x),
		}, nil

	case *gojaast.BracketExpression:
		base, optional := optionalBase(x.Left)
		obj, err := c.expr(base)
		if err != nil {
			return nil, err
		}
		key, err := c.expr(x.Member)
		if err != nil {
			return nil, err
		}
		return &ast.Member{
			Object:   obj,
			Property: key,
			Computed: true,
			Optional: optional,
			Pos:      c.span(x),
		}, nil

	case *gojaast.CallExpression:
		base, optional := optionalBase(x.Callee)
		callee, err := c.expr(base)
		if err != nil {
			return nil, err
		}
		args, err := c.exprList(x.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.Call{Callee: callee, Args: args, Optional: optional, Pos: c.span(x)}, nil

	case *gojaast.NewExpression:
		// only identifier construction targets are supported
		ident, ok := x.Callee.(*gojaast.Identifier)
		if !ok {
			return nil, unsupported(c.source, x)
		}
		args, err := c.exprList(x.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.New{Name: ident.Name.String(), Args: args, Pos: c.span(x)}, nil

	case *gojaast.ArrayLiteral:
		elems := make([]ast.Node, 0, len(x.Value))
		for _, e := range x.Value {
			if e == nil {
				// elision: holes read back as undefined
				elems = append(elems, &ast.Ident{Name: "undefined", Pos: c.span(x)})
				continue
			}
			n, err := c.expr(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, n)
		}
		return &ast.Array{Elems: elems, Pos: c.span(x)}, nil

	case *gojaast.ObjectLiteral:
		props := make([]ast.Property, 0, len(x.Value))
		for _, p := range x.Value {
			prop, err := c.property(p)
			if err != nil {
				return nil, err
			}
			props = append(props, prop)
		}
		return &ast.Object{Props: props, Pos: c.span(x)}, nil

	case *gojaast.SpreadElement:
		operand, err := c.expr(x.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Spread{Operand: operand, Pos: c.span(x)}, nil

	case *gojaast.TemplateLiteral:
		if x.Tag != nil {
			return nil, unsupported(c.source, x)
		}
		quasis := make([]string, len(x.Elements))
		for i, el := range x.Elements {
			if !el.Valid {
				return nil, unsupported(c.source, x)
			}
			quasis[i] = el.Parsed.String()
		}
		exprs := make([]ast.Node, len(x.Expressions))
		for i, e := range x.Expressions {
			n, err := c.expr(e)
			if err != nil {
				return nil, err
			}
			exprs[i] = n
		}
		return &ast.Template{Quasis: quasis, Exprs: exprs, Pos: c.span(x)}, nil

	case *gojaast.ArrowFunctionLiteral:
		return c.arrow(x)

	case *gojaast.Optional:
		// goja wraps the operand before a ?. access; the member and call
		// cases unwrap it, so a marker reaching here sits in a position the
		// expression subset does not cover
		return nil, unsupported(c.source, x)

	case *gojaast.OptionalChain:
		inner, err := c.expr(x.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Chain{Expr: inner, Pos: c.span(x)}, nil
	}

	return nil, unsupported(c.source, e)
}

// optionalBase unwraps goja's Optional marker, which wraps the operand
// appearing before a ?. access: the optionality belongs to the member or
// call node built on top of it.
func optionalBase(e gojaast.Expression) (gojaast.Expression, bool) {
	if o, ok := e.(*gojaast.Optional); ok {
		return o.Expression, true
	}
	return e, false
}

func (c *converter) exprList(list []gojaast.Expression) ([]ast.Node, error) {
	out := make([]ast.Node, len(list))
	for i, e := range list {
		n, err := c.expr(e)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func (c *converter) property(p gojaast.Property) (ast.Property, error) {
	switch x := p.(type) {
	case *gojaast.PropertyKeyed:
		if x.Kind != gojaast.PropertyKindValue {
			return ast.Property{}, unsupported(c.source, x.Value)
		}
		val, err := c.expr(x.Value)
		if err != nil {
			return ast.Property{}, err
		}
		if x.Computed {
			keyExpr, err := c.expr(x.Key)
			if err != nil {
				return ast.Property{}, err
			}
			return ast.Property{KeyExpr: keyExpr, Value: val, Computed: true}, nil
		}
		key, err := c.propertyKey(x.Key)
		if err != nil {
			return ast.Property{}, err
		}
		return ast.Property{Key: key, Value: val}, nil

	case *gojaast.PropertyShort:
		if x.Initializer != nil {
			return ast.Property{}, unsupported(c.source, x.Initializer)
		}
		name := x.Name.Name.String()
		return ast.Property{
			Key:   name,
			Value: &ast.Ident{Name: name, Pos: c.span(&x.Name)},
		}, nil

	case *gojaast.SpreadElement:
		operand, err := c.expr(x.Expression)
		if err != nil {
			return ast.Property{}, err
		}
		return ast.Property{Spread: true, Value: operand}, nil
	}
	return ast.Property{}, errs.Syntaxf("unsupported object property in %q", errs.Snippet(c.source))
}

func (c *converter) propertyKey(key gojaast.Expression) (string, error) {
	switch k := key.(type) {
	case *gojaast.Identifier:
		return k.Name.String(), nil
	case *gojaast.StringLiteral:
		return k.Value.String(), nil
	case *gojaast.NumberLiteral:
		switch v := k.Value.(type) {
		case int64:
			return value.FormatNumber(float64(v)), nil
		case float64:
			return value.FormatNumber(v), nil
		}
	}
	return "", unsupported(c.source, key)
}

func (c *converter) arrow(x *gojaast.ArrowFunctionLiteral) (ast.Node, error) {
	if x.Async {
		return nil, unsupported(c.source, x)
	}
	if x.ParameterList.Rest != nil {
		return nil, unsupported(c.source, x)
	}
	params := make([]string, 0, len(x.ParameterList.List))
	for _, binding := range x.ParameterList.List {
		if binding.Initializer != nil {
			return nil, unsupported(c.source, x)
		}
		ident, ok := binding.Target.(*gojaast.Identifier)
		if !ok {
			return nil, unsupported(c.source, x)
		}
		params = append(params, ident.Name.String())
	}
	body, ok := x.Body.(*gojaast.ExpressionBody)
	if !ok {
		// statement-bodied arrows are outside the expression subset
		return nil, unsupported(c.source, x)
	}
	bodyNode, err := c.expr(body.Expression)
	if err != nil {
		return nil, err
	}
	return &ast.Arrow{
		Params: params,
		Body:   bodyNode,
		Source: x.Source,
		Pos:    c.span(x),
	}, nil
}
