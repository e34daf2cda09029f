package sandscript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandscript/go-sandscript/errs"
	"github.com/sandscript/go-sandscript/template"
	"github.com/sandscript/go-sandscript/value"
)

func TestEvaluateExpression(t *testing.T) {
	t.Parallel()

	t.Run("plain Go values work as context", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateExpression("price * quantity", map[string]any{
			"price":    19.99,
			"quantity": 3,
		})
		require.NoError(t, err)
		assert.InDelta(t, 59.97, got.(float64), 1e-9)
	})

	t.Run("rich expression", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateExpression(
			"items.filter(i => i.qty > 0).map(i => i.name).join(', ')",
			map[string]any{
				"items": []any{
					map[string]any{"name": "apple", "qty": 2},
					map[string]any{"name": "pear", "qty": 0},
					map[string]any{"name": "plum", "qty": 5},
				},
			})
		require.NoError(t, err)
		assert.Equal(t, "apple, plum", got)
	})

	t.Run("error kinds surface through the one-shot API", func(t *testing.T) {
		t.Parallel()
		_, err := EvaluateExpression("nope", nil)
		assert.ErrorIs(t, err, errs.ErrReference)

		_, err = EvaluateExpression("1 +", nil)
		assert.ErrorIs(t, err, errs.ErrSyntax)

		_, err = EvaluateExpression("[1].push(2)", nil)
		assert.ErrorIs(t, err, errs.ErrSecurity)
	})

	t.Run("undefined result", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateExpression("({}).missing", nil)
		require.NoError(t, err)
		assert.True(t, value.IsUndefined(got))
	})
}

func TestEvaluateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("end to end", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateTemplate(
			"Dear {{ user.name }}, your total is {{ (price * qty).toFixed(2) }}.",
			map[string]any{
				"user":  map[string]any{"name": "Ada"},
				"price": 2.5,
				"qty":   4,
			},
		)
		require.NoError(t, err)
		assert.Equal(t, "Dear Ada, your total is 10.00.", got)
	})

	t.Run("text spacing survives with no options", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateTemplate("Hello, {{ name }}!", map[string]any{"name": "World"})
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!", got)

		got, err = EvaluateTemplate("{{ a }} + {{ b }} = {{ a + b }}",
			map[string]any{"a": 10, "b": 20})
		require.NoError(t, err)
		assert.Equal(t, "10 + 20 = 30", got)
	})

	t.Run("missing variable renders as undefined", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateTemplate("[{{ ghost }}]", nil)
		require.NoError(t, err)
		assert.Equal(t, "[undefined]", got)
	})

	t.Run("custom delimiters", func(t *testing.T) {
		t.Parallel()
		got, err := EvaluateTemplate("x=${{ 1 + 2 }}", nil,
			template.WithDelimiters("${{", "}}"),
		)
		require.NoError(t, err)
		assert.Equal(t, "x=3", got)
	})

	t.Run("evaluation failure aborts", func(t *testing.T) {
		t.Parallel()
		_, err := EvaluateTemplate("{{ this }}", nil)
		assert.ErrorIs(t, err, errs.ErrSecurity)
	})
}

func TestNewEvaluatorReuse(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(map[string]any{"base": 100})

	got, err := ev.Evaluate("base + 1")
	require.NoError(t, err)
	assert.Equal(t, float64(101), got)

	got, err = ev.Evaluate("base > 50 ? 'high' : 'low'")
	require.NoError(t, err)
	assert.Equal(t, "high", got)
}
