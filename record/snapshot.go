package record

import "reflect"

// Snapshot saves the value r points to and returns a function restoring it.
// Only the value itself is saved: data reached through pointers, maps or
// the targets of a FieldList is not. If r is not a non nil pointer the
// returned function does nothing.
func Snapshot(r Record) (restore func()) {
	v := reflect.ValueOf(r)
	if v.Kind() != reflect.Pointer || v.IsNil() || !v.Elem().CanSet() {
		return func() {}
	}

	saved := reflect.New(v.Elem().Type()).Elem()
	saved.Set(v.Elem())

	return func() {
		v.Elem().Set(saved)
	}
}
