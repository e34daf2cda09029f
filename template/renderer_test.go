package template

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandscript/go-sandscript/data"
	"github.com/sandscript/go-sandscript/errs"
)

func TestRenderBasics(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	ctx := context.Background()

	t.Run("text and expressions", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "Hello {{ name }}!", map[string]any{"name": "Ada"})
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada!", got)
	})

	t.Run("default configuration keeps text spacing", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "Hello, {{ name }}!", map[string]any{"name": "World"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", got)

		got, err = r.Render(ctx, "{{ a }} + {{ b }} = {{ a + b }}",
			map[string]any{"a": 10, "b": 20})
		require.NoError(t, err)
		assert.Equal(t, "10 + 20 = 30", got)
	})

	t.Run("expression results stringify", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "{{ n * 2 }} and {{ flag }} and {{ xs }}",
			map[string]any{"n": 21, "flag": true, "xs": []int{1, 2}})
		require.NoError(t, err)
		assert.Equal(t, "42 and true and 1,2", got)
	})

	t.Run("method calls inside templates", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "{{ user.name.toUpperCase() }}",
			map[string]any{"user": map[string]any{"name": "ada"}})
		require.NoError(t, err)
		assert.Equal(t, "ADA", got)
	})

	t.Run("no expressions passes text through", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "static text", nil)
		require.NoError(t, err)
		assert.Equal(t, "static text", got)
	})
}

func TestRenderUndefinedReference(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	ctx := context.Background()

	t.Run("missing identifier degrades to the placeholder", func(t *testing.T) {
		t.Parallel()
		got, err := r.Render(ctx, "value: {{ missing }}.", nil)
		require.NoError(t, err)
		assert.Equal(t, "value: undefined.", got)
	})

	t.Run("other errors abort the render", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render(ctx, "{{ obj.a.b }}", map[string]any{"obj": nil})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrType)
	})

	t.Run("security errors abort the render", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render(ctx, "{{ [1].push(2) }}", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrSecurity)
	})

	t.Run("syntax errors abort the render", func(t *testing.T) {
		t.Parallel()
		_, err := r.Render(ctx, "{{ 1 + }}", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrSyntax)
	})
}

func TestRenderWithProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("provider supplies the base context", func(t *testing.T) {
		t.Parallel()
		r := NewRenderer(
			WithProvider(data.NewStaticProvider(map[string]any{"site": "example"})),
		)
		got, err := r.Render(ctx, "{{ site }}/{{ page }}", map[string]any{"page": "home"})
		require.NoError(t, err)
		assert.Equal(t, "example/home", got)
	})

	t.Run("per-render vars shadow provider data", func(t *testing.T) {
		t.Parallel()
		r := NewRenderer(
			WithProvider(data.NewStaticProvider(map[string]any{"who": "default"})),
		)
		got, err := r.Render(ctx, "{{ who }}", map[string]any{"who": "override"})
		require.NoError(t, err)
		assert.Equal(t, "override", got)
	})

	t.Run("composite provider layers contexts", func(t *testing.T) {
		t.Parallel()
		provider := data.NewCompositeProvider(
			data.NewStaticProvider(map[string]any{"a": 1, "b": 1}),
			data.NewStaticProvider(map[string]any{"b": 2}),
		)
		r := NewRenderer(WithProvider(provider))
		got, err := r.Render(ctx, "{{ a }}{{ b }}", nil)
		require.NoError(t, err)
		assert.Equal(t, "12", got)
	})
}

func TestRenderUnclosedExpressionIsLiteral(t *testing.T) {
	t.Parallel()

	r := NewRenderer()
	got, err := r.Render(context.Background(), "a{{b c", nil)
	require.NoError(t, err)
	assert.Equal(t, "a{{b c", got)
}
