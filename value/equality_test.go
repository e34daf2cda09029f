package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrictEquals(t *testing.T) {
	t.Parallel()

	shared := []any{float64(1)}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same numbers", float64(5), float64(5), true},
		{"different numbers", float64(5), float64(6), false},
		{"NaN never equals itself", math.NaN(), math.NaN(), false},
		{"same strings", "a", "a", true},
		{"number vs string", float64(5), "5", false},
		{"null vs undefined", nil, Undefined, false},
		{"null vs null", nil, nil, true},
		{"undefined vs undefined", Undefined, Undefined, true},
		{"same array reference", shared, shared, true},
		{"equal arrays, distinct references", []any{float64(1)}, []any{float64(1)}, false},
		{"distinct empty objects", map[string]any{}, map[string]any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StrictEquals(tt.a, tt.b))
		})
	}
}

func TestLooseEquals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"null equals undefined", nil, Undefined, true},
		{"null not equal zero", nil, float64(0), false},
		{"string number coerces", "5", float64(5), true},
		{"boolean coerces to number", true, float64(1), true},
		{"false equals empty string", false, "", true},
		{"same type falls back to strict", "a", "b", false},
		{"array coerces to primitive", []any{float64(5)}, float64(5), true},
		{"NaN unequal loosely too", math.NaN(), math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LooseEquals(tt.a, tt.b))
		})
	}
}

func TestBoundMethodIdentity(t *testing.T) {
	t.Parallel()

	m := &Builtin{Name: "m"}
	other := &Builtin{Name: "m"}

	assert.True(t, StrictEquals(BoundMethod{Recv: "x", Method: m}, BoundMethod{Recv: "x", Method: m}))
	assert.False(t, StrictEquals(BoundMethod{Recv: "x", Method: m}, BoundMethod{Recv: "x", Method: other}))
	assert.False(t, StrictEquals(BoundMethod{Recv: "x", Method: m}, BoundMethod{Recv: "y", Method: m}))
}
