package data

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProvider struct{}

func (failingProvider) GetData(context.Context) (map[string]any, error) {
	return nil, errors.New("backend unavailable")
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("returns normalized data", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(map[string]any{"n": 5, "xs": []int{1, 2}})
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"n": float64(5), "xs": []any{float64(1), float64(2)}}, got)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(map[string]any{"k": "v"})
		first, err := p.GetData(ctx)
		require.NoError(t, err)
		first["k"] = "mutated"

		second, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, "v", second["k"])
	})

	t.Run("nil data yields an empty map", func(t *testing.T) {
		t.Parallel()
		p := NewStaticProvider(nil)
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCompositeProvider(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("later providers win per key", func(t *testing.T) {
		t.Parallel()
		p := NewCompositeProvider(
			NewStaticProvider(map[string]any{"a": 1, "b": 1}),
			NewStaticProvider(map[string]any{"b": 2, "c": 2}),
		)
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2), "c": float64(2)}, got)
	})

	t.Run("nested maps merge deeply", func(t *testing.T) {
		t.Parallel()
		p := NewCompositeProvider(
			NewStaticProvider(map[string]any{"cfg": map[string]any{"x": 1, "y": 1}}),
			NewStaticProvider(map[string]any{"cfg": map[string]any{"y": 2}}),
		)
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"cfg": map[string]any{"x": float64(1), "y": float64(2)}}, got)
	})

	t.Run("arrays replace, not merge", func(t *testing.T) {
		t.Parallel()
		p := NewCompositeProvider(
			NewStaticProvider(map[string]any{"xs": []int{1, 2}}),
			NewStaticProvider(map[string]any{"xs": []int{3}}),
		)
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"xs": []any{float64(3)}}, got)
	})

	t.Run("nil providers are skipped", func(t *testing.T) {
		t.Parallel()
		p := NewCompositeProvider(nil, NewStaticProvider(map[string]any{"a": 1}))
		got, err := p.GetData(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": float64(1)}, got)
	})

	t.Run("provider failure propagates with its index", func(t *testing.T) {
		t.Parallel()
		p := NewCompositeProvider(NewStaticProvider(nil), failingProvider{})
		_, err := p.GetData(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider 1")
	})

	t.Run("empty composite yields an empty map", func(t *testing.T) {
		t.Parallel()
		got, err := NewCompositeProvider().GetData(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
