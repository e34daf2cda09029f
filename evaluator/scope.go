package evaluator

// Scope is a frame in the lexical environment chain. Frames are never
// written after construction; arrow function calls extend the chain with
// a fresh frame instead of pushing onto shared state, so a closure invoked
// from two goroutines (or re-entrantly from a callback) sees only its own
// bindings.
type Scope struct {
	vars   map[string]any
	parent *Scope
}

// NewScope creates a root frame over vars. The map is used as-is; callers
// that need isolation from later writes should pass a copy.
func NewScope(vars map[string]any) *Scope {
	return &Scope{vars: vars}
}

// Child returns a frame whose bindings shadow this chain.
func (s *Scope) Child(vars map[string]any) *Scope {
	return &Scope{vars: vars, parent: s}
}

// Lookup walks the chain from the innermost frame outward.
func (s *Scope) Lookup(name string) (any, bool) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether name resolves anywhere in the chain.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}
