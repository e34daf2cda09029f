package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandscript/go-sandscript/errs"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 5, float64(5)},
		{"int64", int64(-3), float64(-3)},
		{"float32", float32(1.5), float64(1.5)},
		{"string", "hi", "hi"},
		{"bool", true, true},
		{"nil", nil, nil},
		{"int slice", []int{1, 2}, []any{float64(1), float64(2)}},
		{"string slice", []string{"a", "b"}, []any{"a", "b"}},
		{"string map", map[string]int{"n": 7}, map[string]any{"n": float64(7)}},
		{
			"nested",
			map[string]any{"xs": []int{1}},
			map[string]any{"xs": []any{float64(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestToNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"number", float64(4.2), 4.2},
		{"true", true, 1},
		{"false", false, 0},
		{"null", nil, 0},
		{"empty string", "", 0},
		{"whitespace string", "   ", 0},
		{"decimal string", " 12.5 ", 12.5},
		{"hex string", "0x10", 16},
		{"negative", "-3", -3},
		{"infinity literal", "Infinity", math.Inf(1)},
		{"empty array", []any{}, 0},
		{"single element array", []any{float64(9)}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ToNumber(tt.in))
		})
	}

	t.Run("NaN cases", func(t *testing.T) {
		t.Parallel()
		assert.True(t, math.IsNaN(ToNumber(Undefined)))
		assert.True(t, math.IsNaN(ToNumber("abc")))
		assert.True(t, math.IsNaN(ToNumber(map[string]any{})))
	})
}

func TestToBoolean(t *testing.T) {
	t.Parallel()

	falsy := []any{nil, Undefined, false, float64(0), math.NaN(), ""}
	for _, v := range falsy {
		assert.False(t, ToBoolean(v), "expected falsy: %v", v)
	}

	truthy := []any{true, float64(1), float64(-1), "0", "false", []any{}, map[string]any{}}
	for _, v := range truthy {
		assert.True(t, ToBoolean(v), "expected truthy: %v", v)
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integer", 42, "42"},
		{"negative integer", -7, "-7"},
		{"fraction", 1.5, "1.5"},
		{"zero", 0, "0"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"large integer", 1e21, "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"undefined", Undefined, "undefined"},
		{"true", true, "true"},
		{"number", float64(3), "3"},
		{"string", "x", "x"},
		{"array joins with comma", []any{float64(1), float64(2)}, "1,2"},
		{"nested array", []any{[]any{float64(1)}, float64(2)}, "1,2"},
		{"object", map[string]any{"a": float64(1)}, "[object Object]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ToString(tt.in))
		})
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "undefined", TypeOf(Undefined))
	assert.Equal(t, "object", TypeOf(nil))
	assert.Equal(t, "number", TypeOf(float64(1)))
	assert.Equal(t, "string", TypeOf(""))
	assert.Equal(t, "boolean", TypeOf(false))
	assert.Equal(t, "object", TypeOf([]any{}))
	assert.Equal(t, "object", TypeOf(map[string]any{}))
	assert.Equal(t, "function", TypeOf(&Builtin{Name: "f"}))
}

func TestElements(t *testing.T) {
	t.Parallel()

	t.Run("array", func(t *testing.T) {
		t.Parallel()
		elems, ok := Elements([]any{float64(1), float64(2)})
		require.True(t, ok)
		assert.Equal(t, []any{float64(1), float64(2)}, elems)
	})

	t.Run("string yields runes", func(t *testing.T) {
		t.Parallel()
		elems, ok := Elements("ab")
		require.True(t, ok)
		assert.Equal(t, []any{"a", "b"}, elems)
	})

	t.Run("non-iterable", func(t *testing.T) {
		t.Parallel()
		_, ok := Elements(float64(5))
		assert.False(t, ok)
	})
}

func TestCallDispatch(t *testing.T) {
	t.Parallel()

	double := &Builtin{
		Name: "double",
		Fn: func(recv any, args []any) (any, error) {
			return ToNumber(args[0]) * 2, nil
		},
	}

	t.Run("builtin", func(t *testing.T) {
		t.Parallel()
		got, err := Call(double, []any{float64(21)})
		require.NoError(t, err)
		assert.Equal(t, float64(42), got)
	})

	t.Run("bound method carries receiver", func(t *testing.T) {
		t.Parallel()
		echo := &Builtin{
			Name: "echo",
			Fn: func(recv any, args []any) (any, error) {
				return recv, nil
			},
		}
		got, err := Call(BoundMethod{Recv: "hello", Method: echo}, nil)
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("non-function", func(t *testing.T) {
		t.Parallel()
		_, err := Call(float64(5), nil)
		assert.Error(t, err)
	})

	t.Run("guarded bound method never runs", func(t *testing.T) {
		t.Parallel()
		ran := false
		mutator := &Builtin{
			Name: "Array.prototype.reverse",
			Fn: func(recv any, args []any) (any, error) {
				ran = true
				return recv, nil
			},
		}
		_, err := Call(BoundMethod{Recv: []any{}, Method: mutator, Guard: blockOne{mutator}}, nil)
		require.ErrorIs(t, err, errs.ErrSecurity)
		assert.False(t, ran)

		// the same guard lets other methods through
		got, err := Call(BoundMethod{Recv: "x", Method: &Builtin{
			Name: "echo",
			Fn:   func(recv any, args []any) (any, error) { return recv, nil },
		}, Guard: blockOne{mutator}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})
}

// blockOne is a single-entry Blocklist for guard tests.
type blockOne struct {
	blocked *Builtin
}

func (g blockOne) Contains(b *Builtin) bool {
	return b == g.blocked
}
