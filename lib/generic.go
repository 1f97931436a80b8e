package lib

import "reflect"

// First returns first of two values, typically dropping an error or ok flag
func First[T, U any](t T, _ U) T {
	return t
}

// IsNil reports whether v is nil interface
// or interface holding nil pointer, map, slice, chan or func
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
