package value

import (
	"math"
	"reflect"
)

// StrictEquals implements the === operator. Primitives compare by value,
// everything else by reference identity.
func StrictEquals(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case undefinedType:
		return IsUndefined(b)
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case *BigInt:
		y, ok := b.(*BigInt)
		return ok && x.Int.Cmp(y.Int) == 0
	}
	return sameReference(a, b)
}

// sameReference compares two non-primitive values by identity. Maps and
// slices are not comparable in Go, so identity goes through the underlying
// pointer.
func sameReference(a, b any) bool {
	if x, ok := a.(BoundMethod); ok {
		y, ok := b.(BoundMethod)
		return ok && x.Method == y.Method && StrictEquals(x.Recv, y.Recv)
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Ptr:
		return ra.Pointer() == rb.Pointer()
	}
	return a == b
}

// sameValueZero is the SameValueZero algorithm used for Map key and Set
// element identity: like ===, except NaN equals NaN.
func sameValueZero(a, b any) bool {
	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			if math.IsNaN(x) && math.IsNaN(y) {
				return true
			}
			return x == y
		}
		return false
	}
	return StrictEquals(a, b)
}

// LooseEquals implements the == operator's abstract equality: null and
// undefined match each other, mixed-type comparisons coerce through
// ToNumber, and objects reduce to primitives first.
func LooseEquals(a, b any) bool {
	if IsNullish(a) || IsNullish(b) {
		return IsNullish(a) && IsNullish(b)
	}

	ta, tb := TypeOf(a), TypeOf(b)
	if ta == tb {
		if ta == "object" || ta == "function" {
			return sameReference(a, b)
		}
		return StrictEquals(a, b)
	}

	// reduce objects to primitives, then retry
	pa, pb := toPrimitive(a), toPrimitive(b)
	if TypeOf(pa) == TypeOf(pb) {
		return StrictEquals(pa, pb)
	}

	// remaining mixed primitive pairs compare numerically
	na, nb := ToNumber(pa), ToNumber(pb)
	if math.IsNaN(na) || math.IsNaN(nb) {
		return false
	}
	return na == nb
}
