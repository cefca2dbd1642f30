package core

import (
	"reflect"
	"unsafe"
)

// Deps builds a dependency list for UseLayoutEffect, UseEffect and
// UseCallback. Deps() with no arguments returns an empty, non-nil list, which
// makes an effect run exactly once. Passing a nil list instead means "no
// dependencies recorded" and the effect runs on every call.
func Deps(values ...any) []any {
	if values == nil {
		return []any{}
	}
	return values
}

type depState uint8

const (
	depsAbsent depState = iota
	depsRecorded
	depsTerminal
)

// depRecord is the dependency list recorded by the most recent run of an
// effect or callback slot.
type depRecord struct {
	state depState
	list  []any
}

func recordDeps(deps []any) depRecord {
	if deps == nil {
		return depRecord{}
	}
	return depRecord{state: depsRecorded, list: deps}
}

// depsChanged reports whether next differs positionally from prev. Only the
// positions of next are visited: a position missing from prev counts as a
// change, extra positions in prev are ignored.
func depsChanged(prev, next []any) bool {
	for i, dep := range next {
		if i >= len(prev) || !same(prev[i], dep) {
			return true
		}
	}
	return false
}

// same reports strict equality. Values of differing dynamic types are never
// equal. Comparable values use ==, so NaN differs from itself. Funcs, maps,
// chans and slices are equal only when they are the same reference. Structs
// and arrays that == cannot compare are compared element by element with
// the same rules.
func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		if eq, ok := safeEqual(a, b); ok {
			return eq
		}
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Func:
		return closureOf(a) == closureOf(b)
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Struct:
		pa, pb := addressable(va), addressable(vb)
		for i := 0; i < ta.NumField(); i++ {
			if !same(open(pa.Field(i)), open(pb.Field(i))) {
				return false
			}
		}
		return true
	case reflect.Array:
		pa, pb := addressable(va), addressable(vb)
		for i := 0; i < ta.Len(); i++ {
			if !same(open(pa.Index(i)), open(pb.Index(i))) {
				return false
			}
		}
		return true
	}
	return false
}

// addressable copies v into a new variable so its elements can be addressed.
func addressable(v reflect.Value) reflect.Value {
	p := reflect.New(v.Type()).Elem()
	p.Set(v)
	return p
}

// open returns the value stored at the addressable element v, including
// unexported struct fields, boxed in an interface.
func open(v reflect.Value) any {
	return reflect.NewAt(v.Type(), v.Addr().UnsafePointer()).Elem().Interface()
}

// safeEqual compares with ==. ok is false when the comparison panics, which
// happens when an interface inside a struct or array holds an uncomparable
// value.
func safeEqual(a, b any) (eq, ok bool) {
	defer func() {
		if recover() != nil {
			eq, ok = false, false
		}
	}()
	return a == b, true
}

// closureOf returns the data word of an interface holding a func value. Func
// values are pointer shaped, so the word is the closure pointer itself and
// distinguishes two closures built from the same literal.
func closureOf(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
