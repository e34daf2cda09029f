// Package data supplies variable contexts for expression evaluation and
// template rendering. A Provider abstracts where the context map comes
// from, so callers can layer static configuration under per-request data.
package data

import (
	"context"
)

// Provider retrieves the variable context for an evaluation.
type Provider interface {
	// GetData returns the variable map. Implementations must return a map
	// the caller may use without further synchronization; returning a copy
	// is the usual way to guarantee that.
	GetData(ctx context.Context) (map[string]any, error)
}
