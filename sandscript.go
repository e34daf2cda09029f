// Package sandscript evaluates a restricted ECMAScript expression subset
// against caller-supplied variables, and renders templates with embedded
// expressions. Expressions run inside a sandbox: only an allow-listed set
// of globals is visible, in-place mutation of shared values is blocked by
// function identity, and dynamic code generation (eval, the Function
// constructor) is unreachable.
//
// The package-level functions are one-shot conveniences. For repeated
// evaluation against the same bindings, construct an evaluator.Evaluator;
// for repeated rendering, a template.Renderer.
package sandscript

import (
	"context"

	"github.com/sandscript/go-sandscript/evaluator"
	"github.com/sandscript/go-sandscript/template"
	"github.com/sandscript/go-sandscript/value"
)

// EvaluateExpression parses source as a single expression and evaluates it
// with vars as the variable context. vars may be nil. Values in vars are
// normalized, so plain Go ints, typed slices and string-keyed maps work as
// expected.
//
// Errors satisfy errors.Is against the errs package sentinels: ErrSyntax,
// ErrReference, ErrType, ErrSecurity.
func EvaluateExpression(source string, vars map[string]any) (any, error) {
	return evaluator.New(value.NormalizeMap(vars)).Evaluate(source)
}

// EvaluateTemplate renders a template: literal text passes through and
// each delimited expression is evaluated against vars and substituted as
// text. Tokenizer options adjust the delimiters and whitespace handling.
func EvaluateTemplate(source string, vars map[string]any, opts ...template.Option) (string, error) {
	renderer := template.NewRenderer(
		template.WithTokenizer(template.NewTokenizer(opts...)),
	)
	return renderer.Render(context.Background(), source, vars)
}

// NewEvaluator creates a stateful evaluator bound to vars, for repeated
// Evaluate calls against the same bindings.
func NewEvaluator(vars map[string]any, opts ...evaluator.Option) *evaluator.Evaluator {
	return evaluator.New(value.NormalizeMap(vars), opts...)
}

// NewTokenizer creates a template tokenizer.
func NewTokenizer(opts ...template.Option) *template.Tokenizer {
	return template.NewTokenizer(opts...)
}

// NewRenderer creates a template renderer.
func NewRenderer(opts ...template.RenderOption) *template.Renderer {
	return template.NewRenderer(opts...)
}
