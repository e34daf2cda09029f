package sandbox

import (
	"github.com/sandscript/go-sandscript/value"
)

// mapMethods serves both Map and WeakMap receivers; setMethods serves Set
// and WeakSet. The mutators are listed in MutablePaths.
var mapMethods = map[string]*value.Builtin{
	"get":     {Name: "Map.prototype.get", Fn: mapGet},
	"has":     {Name: "Map.prototype.has", Fn: mapHas},
	"forEach": {Name: "Map.prototype.forEach", Fn: mapForEach},

	"set":    {Name: "Map.prototype.set", Fn: mapSet},
	"delete": {Name: "Map.prototype.delete", Fn: mapDelete},
	"clear":  {Name: "Map.prototype.clear", Fn: mapClear},
}

var setMethods = map[string]*value.Builtin{
	"has":     {Name: "Set.prototype.has", Fn: setHas},
	"forEach": {Name: "Set.prototype.forEach", Fn: setForEach},

	"add":    {Name: "Set.prototype.add", Fn: setAdd},
	"delete": {Name: "Set.prototype.delete", Fn: setDelete},
	"clear":  {Name: "Set.prototype.clear", Fn: setClear},
}

func mapOf(recv any) *value.Map {
	m, _ := recv.(*value.Map)
	return m
}

func setOf(recv any) *value.Set {
	s, _ := recv.(*value.Set)
	return s
}

func mapGet(recv any, args []any) (any, error) {
	m := mapOf(recv)
	if i := m.Find(arg(args, 0)); i >= 0 {
		return m.Entries[i][1], nil
	}
	return value.Undefined, nil
}

func mapHas(recv any, args []any) (any, error) {
	return mapOf(recv).Find(arg(args, 0)) >= 0, nil
}

func mapForEach(recv any, args []any) (any, error) {
	m := mapOf(recv)
	cb := arg(args, 0)
	for _, e := range m.Entries {
		if _, err := value.Call(cb, []any{e[1], e[0], m}); err != nil {
			return nil, err
		}
	}
	return value.Undefined, nil
}

func mapSet(recv any, args []any) (any, error) {
	m := mapOf(recv)
	key, val := arg(args, 0), arg(args, 1)
	if i := m.Find(key); i >= 0 {
		m.Entries[i][1] = val
	} else {
		m.Entries = append(m.Entries, [2]any{key, val})
	}
	return m, nil
}

func mapDelete(recv any, args []any) (any, error) {
	m := mapOf(recv)
	i := m.Find(arg(args, 0))
	if i < 0 {
		return false, nil
	}
	m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
	return true, nil
}

func mapClear(recv any, args []any) (any, error) {
	mapOf(recv).Entries = nil
	return value.Undefined, nil
}

func setHas(recv any, args []any) (any, error) {
	return setOf(recv).Find(arg(args, 0)) >= 0, nil
}

func setForEach(recv any, args []any) (any, error) {
	s := setOf(recv)
	cb := arg(args, 0)
	for _, e := range s.Elems {
		if _, err := value.Call(cb, []any{e, e, s}); err != nil {
			return nil, err
		}
	}
	return value.Undefined, nil
}

func setAdd(recv any, args []any) (any, error) {
	s := setOf(recv)
	if s.Find(arg(args, 0)) < 0 {
		s.Elems = append(s.Elems, arg(args, 0))
	}
	return s, nil
}

func setDelete(recv any, args []any) (any, error) {
	s := setOf(recv)
	i := s.Find(arg(args, 0))
	if i < 0 {
		return false, nil
	}
	s.Elems = append(s.Elems[:i], s.Elems[i+1:]...)
	return true, nil
}

func setClear(recv any, args []any) (any, error) {
	setOf(recv).Elems = nil
	return value.Undefined, nil
}
