package data

import (
	"context"
	"maps"

	"github.com/sandscript/go-sandscript/value"
)

// StaticProvider supplies a fixed variable context, set at creation time.
// Useful for configuration-style data that doesn't change at runtime.
type StaticProvider struct {
	data map[string]any
}

// NewStaticProvider creates a provider over a normalized copy of data.
// Values are converted to the evaluator's canonical shapes (ints become
// float64, typed slices become []any), so callers can hand over plain Go
// structs of data without thinking about the value model.
func NewStaticProvider(data map[string]any) *StaticProvider {
	return &StaticProvider{data: value.NormalizeMap(data)}
}

// GetData returns a shallow copy of the static data.
func (p *StaticProvider) GetData(_ context.Context) (map[string]any, error) {
	if p.data == nil {
		return map[string]any{}, nil
	}
	return maps.Clone(p.data), nil
}

// String implements fmt.Stringer.
func (p *StaticProvider) String() string {
	return "data.StaticProvider"
}
