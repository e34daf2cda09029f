package template

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"

	"github.com/sandscript/go-sandscript/data"
	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/evaluator"
	"github.com/sandscript/go-sandscript/internal/helpers"
	"github.com/sandscript/go-sandscript/value"
)

// undefinedPlaceholder substitutes for expressions that reference a name
// missing from the context, mirroring what the expression `String(x)` would
// produce for an undefined x.
const undefinedPlaceholder = "undefined"

// Renderer renders templates: text tokens pass through verbatim, expression
// tokens evaluate against the variable context and substitute their
// stringified value. A renderer is safe for concurrent use; each render
// builds its own evaluator over a merged context snapshot.
type Renderer struct {
	tokenizer  *Tokenizer
	provider   data.Provider
	evalOpts   []evaluator.Option
	logHandler slog.Handler
	logger     *slog.Logger
}

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithTokenizer sets the tokenizer used to split templates. Defaults to a
// tokenizer with the standard delimiters.
func WithTokenizer(t *Tokenizer) RenderOption {
	return func(r *Renderer) {
		r.tokenizer = t
	}
}

// WithProvider sets a data provider whose context underlies every render.
// Per-render variables merge over it, key by key.
func WithProvider(p data.Provider) RenderOption {
	return func(r *Renderer) {
		r.provider = p
	}
}

// WithEvaluatorOptions forwards options to the per-render evaluators.
func WithEvaluatorOptions(opts ...evaluator.Option) RenderOption {
	return func(r *Renderer) {
		r.evalOpts = append(r.evalOpts, opts...)
	}
}

// WithRenderLogHandler sets the slog handler for render logging.
func WithRenderLogHandler(handler slog.Handler) RenderOption {
	return func(r *Renderer) {
		r.logHandler = handler
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.tokenizer == nil {
		r.tokenizer = NewTokenizer()
	}
	r.logHandler, r.logger = helpers.SetupLogger(r.logHandler, "renderer")
	return r
}

// Render tokenizes source and substitutes each expression's value. vars
// may be nil; with a provider configured, vars shadow provider data per
// key. An expression that references an undefined name renders as the
// literal placeholder "undefined"; every other evaluation error aborts the
// render.
func (r *Renderer) Render(ctx context.Context, source string, vars map[string]any) (string, error) {
	env, err := r.buildContext(ctx, vars)
	if err != nil {
		return "", err
	}

	evalOpts := append([]evaluator.Option{evaluator.WithLogHandler(r.logHandler)}, r.evalOpts...)
	ev := evaluator.New(env, evalOpts...)

	var b strings.Builder
	for _, tok := range r.tokenizer.Parse(source) {
		if tok.Kind == TokenText {
			b.WriteString(tok.Value)
			continue
		}
		v, err := ev.Evaluate(tok.Value)
		if err != nil {
			if errors.Is(err, errs.ErrReference) {
				r.logger.Debug("undefined reference in template", "expression", tok.Value)
				b.WriteString(undefinedPlaceholder)
				continue
			}
			return "", err
		}
		b.WriteString(value.ToString(v))
	}
	return b.String(), nil
}

// buildContext merges provider data (if any) with per-render variables.
func (r *Renderer) buildContext(ctx context.Context, vars map[string]any) (map[string]any, error) {
	base := map[string]any{}
	if r.provider != nil {
		var err error
		base, err = r.provider.GetData(ctx)
		if err != nil {
			return nil, err
		}
	}
	maps.Copy(base, value.NormalizeMap(vars))
	return base, nil
}
