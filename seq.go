package clipprune

import (
	"iter"
	"math"
	"reflect"
	"slices"
)

// IsFunction reports whether v is a non-nil function value.
func IsFunction(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Func && !rv.IsNil()
}

// IsNumber reports whether v is a finite value of a numeric kind.
func IsNumber(v any) bool {
	_, ok := toFloat(v)
	return ok
}

// IsInteger reports whether v is a number without a fractional part.
func IsInteger(v any) bool {
	f, ok := toFloat(v)
	return ok && f == math.Trunc(f)
}

// IsNonNegativeInteger reports whether v is an integer greater than or equal to zero.
func IsNonNegativeInteger(v any) bool {
	f, ok := toFloat(v)
	return ok && f == math.Trunc(f) && f >= 0
}

// IsArrayLike reports whether v is an ordered sequence: a slice or array
// (strings excluded), or a collection exposing its size through Len or
// Length, such as a goquery selection.
func IsArrayLike(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case interface{ Len() int }, interface{ Length() int }:
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	var f float64
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		f = rv.Float()
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Snapshot drains seq into a slice. Live iterators over a tree, such as
// (*html.Node).ChildNodes, stop early when the current node is detached
// mid-iteration; iterating the snapshot instead visits every element.
func Snapshot[T any](seq iter.Seq[T]) []T {
	return slices.Collect(seq)
}

// Each calls fn for every element of a snapshot of list.
func Each[T any](list []T, fn func(T)) error {
	if fn == nil {
		return Errorf(EINVALID, "each: nil function")
	}
	for _, v := range slices.Clone(list) {
		fn(v)
	}
	return nil
}

// Map returns fn applied to every element of a snapshot of list.
func Map[T, U any](list []T, fn func(T) U) ([]U, error) {
	if fn == nil {
		return nil, Errorf(EINVALID, "map: nil function")
	}
	cache := slices.Clone(list)
	out := make([]U, 0, len(cache))
	for _, v := range cache {
		out = append(out, fn(v))
	}
	return out, nil
}

// Filter returns the elements of a snapshot of list for which fn holds.
func Filter[T any](list []T, fn func(T) bool) ([]T, error) {
	if fn == nil {
		return nil, Errorf(EINVALID, "filter: nil function")
	}
	var out []T
	for _, v := range slices.Clone(list) {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Every reports whether fn holds for all elements. It stops at the first
// element for which fn is false.
func Every[T any](list []T, fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, Errorf(EINVALID, "every: nil function")
	}
	for _, v := range slices.Clone(list) {
		if !fn(v) {
			return false, nil
		}
	}
	return true, nil
}

// Some reports whether fn holds for any element. It stops at the first
// element for which fn is true.
func Some[T any](list []T, fn func(T) bool) (bool, error) {
	if fn == nil {
		return false, Errorf(EINVALID, "some: nil function")
	}
	for _, v := range slices.Clone(list) {
		if fn(v) {
			return true, nil
		}
	}
	return false, nil
}

// Reduce folds list from the left, starting with initial.
func Reduce[T, A any](list []T, fn func(acc A, v T, i int) A, initial A) (A, error) {
	if fn == nil {
		return initial, Errorf(EINVALID, "reduce: nil function")
	}
	acc := initial
	for i, v := range slices.Clone(list) {
		acc = fn(acc, v, i)
	}
	return acc, nil
}

// ReduceRight folds list from the right, starting with initial.
func ReduceRight[T, A any](list []T, fn func(acc A, v T, i int) A, initial A) (A, error) {
	if fn == nil {
		return initial, Errorf(EINVALID, "reduceRight: nil function")
	}
	cache := slices.Clone(list)
	acc := initial
	for i := len(cache) - 1; i >= 0; i-- {
		acc = fn(acc, cache[i], i)
	}
	return acc, nil
}

// Flatten expands the nested slices and arrays of v into one flat sequence,
// preserving order. Other elements, including sized collections such as
// goquery selections, are kept as they are.
func Flatten(v any) ([]any, error) {
	if !IsArrayLike(v) {
		return nil, Errorf(EINVALID, "flatten: %T is not array-like", v)
	}
	var out []any
	flattenInto(reflect.ValueOf(v), &out)
	return out, nil
}

func flattenInto(rv reflect.Value, out *[]any) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		*out = append(*out, rv.Interface())
		return
	}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i)
		if elem.Kind() == reflect.Interface && !elem.IsNil() {
			elem = elem.Elem()
		}
		if elem.Kind() == reflect.Slice || elem.Kind() == reflect.Array {
			flattenInto(elem, out)
			continue
		}
		*out = append(*out, elem.Interface())
	}
}

// IndexOf returns the index of the first occurrence of elem in list at or
// after from, or -1. A negative from counts back from the end.
func IndexOf[T comparable](list []T, elem T, from int) int {
	if from < 0 {
		from = max(len(list)+from, 0)
	}
	for i := from; i < len(list); i++ {
		if list[i] == elem {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the index of the last occurrence of elem in list at or
// before from, or -1. A negative from counts back from the end.
func LastIndexOf[T comparable](list []T, elem T, from int) int {
	if from < 0 {
		from = len(list) + from
	}
	if from >= len(list) {
		from = len(list) - 1
	}
	for i := from; i >= 0; i-- {
		if list[i] == elem {
			return i
		}
	}
	return -1
}
