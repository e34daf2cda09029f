package sandbox

import (
	"strings"
	"sync"

	"github.com/sandscript/go-sandscript/value"
)

// MutablePaths returns the authored list of dotted paths naming built-ins
// that mutate their receiver or a shared structure in place. The registry
// resolves each path to a function value at build time; blocking is then
// purely by identity, so aliasing (obj["pu" + "sh"], Number.parseInt
// style re-exports) cannot reach a different, unblocked copy.
func MutablePaths() []string {
	return []string{
		"Array.prototype.copyWithin",
		"Array.prototype.fill",
		"Array.prototype.pop",
		"Array.prototype.push",
		"Array.prototype.reverse",
		"Array.prototype.shift",
		"Array.prototype.sort",
		"Array.prototype.splice",
		"Array.prototype.unshift",

		"Object.assign",
		"Object.defineProperties",
		"Object.defineProperty",
		"Object.freeze",
		"Object.preventExtensions",
		"Object.seal",
		"Object.setPrototypeOf",

		"Map.prototype.clear",
		"Map.prototype.delete",
		"Map.prototype.set",
		"Set.prototype.add",
		"Set.prototype.clear",
		"Set.prototype.delete",
		"WeakMap.prototype.delete",
		"WeakMap.prototype.set",
		"WeakSet.prototype.add",
		"WeakSet.prototype.delete",

		"Date.prototype.setDate",
		"Date.prototype.setFullYear",
		"Date.prototype.setHours",
		"Date.prototype.setMilliseconds",
		"Date.prototype.setMinutes",
		"Date.prototype.setMonth",
		"Date.prototype.setSeconds",
		"Date.prototype.setTime",

		"TypedArray.prototype.copyWithin",
		"TypedArray.prototype.fill",
		"TypedArray.prototype.reverse",
		"TypedArray.prototype.set",
		"TypedArray.prototype.sort",

		// Hosts without these built-ins skip them; listed for completeness
		// with the upstream vocabulary.
		"Reflect.set",
		"Reflect.defineProperty",
		"Reflect.deleteProperty",
		"Reflect.setPrototypeOf",
	}
}

// Registry is a set of built-in function identities that must never be
// invoked. Read-only after construction and safe to share.
type Registry struct {
	set map[*value.Builtin]struct{}
}

// NewRegistry resolves paths against the global allow-list and the
// prototype method tables. Paths that do not resolve are skipped.
func NewRegistry(paths []string) *Registry {
	r := &Registry{set: make(map[*value.Builtin]struct{}, len(paths))}
	for _, path := range paths {
		if b := resolvePath(path); b != nil {
			r.set[b] = struct{}{}
		}
	}
	return r
}

// Contains reports whether b is a blocked mutable method.
func (r *Registry) Contains(b *value.Builtin) bool {
	_, ok := r.set[b]
	return ok
}

// Len reports how many paths resolved.
func (r *Registry) Len() int {
	return len(r.set)
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry built from MutablePaths.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(MutablePaths())
	})
	return defaultRegistry
}

// resolvePath walks a dotted path ("Object.assign", "Map.prototype.set")
// to a builtin function value, or nil when any step is missing.
func resolvePath(path string) *value.Builtin {
	parts := strings.Split(path, ".")
	if len(parts) == 3 && parts[1] == "prototype" {
		table, ok := prototypes()[parts[0]]
		if !ok {
			return nil
		}
		return table[parts[2]]
	}
	if len(parts) != 2 {
		return nil
	}
	root, ok := Globals()[parts[0]]
	if !ok {
		return nil
	}
	switch ns := root.(type) {
	case *value.Builtin:
		if b, ok := ns.Props[parts[1]].(*value.Builtin); ok {
			return b
		}
	case map[string]any:
		if b, ok := ns[parts[1]].(*value.Builtin); ok {
			return b
		}
	}
	return nil
}
