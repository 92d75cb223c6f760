package types

import (
	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

// List is an ordered sequence of anonymous values sharing one kind.
// The element kind is fixed at construction, TAG_End denotes an empty
// list of unknown kind. A nil *List reads as such a list.
type List struct {
	elem   Kind
	values []Value
}

// NewList creates a list of elem values. It fails if one of the values
// isn't of kind elem.
func NewList(elem Kind, values ...Value) (*List, error) {
	if !elem.IsValid() {
		return nil, errs.NewInvalidTagKind(byte(elem))
	}

	l := List{
		elem:   elem,
		values: make([]Value, 0, len(values)),
	}
	for _, v := range values {
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}

	return &l, nil
}

// MustNewList is like NewList but panics on error. It is meant for literals.
func MustNewList(elem Kind, values ...Value) *List {
	l, err := NewList(elem, values...)
	if err != nil {
		panic(err)
	}

	return l
}

func (l *List) Kind() Kind { return TagList }
func (l *List) V() any     { return l }

// Elem returns the declared element kind.
func (l *List) Elem() Kind {
	if l == nil {
		return TagEnd
	}

	return l.elem
}

// Append adds v at the end of the list.
func (l *List) Append(v Value) error {
	if v == nil {
		return errors.Errorf("list element %d is nil", len(l.values))
	}
	if k := v.Kind(); k != l.elem {
		return errors.Wrapf(errs.NewTypeMismatch(l.elem, k), "list element %d", len(l.values))
	}

	l.values = append(l.values, v)
	return nil
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.values)
}

// At returns the element at index i. It panics if i is out of range.
func (l *List) At(i int) Value {
	return l.values[i]
}

// Iterate calls fn for each element in order.
// If fn returns an error, the iteration stops and the error is returned.
func (l *List) Iterate(fn func(i int, v Value) error) error {
	if l == nil {
		return nil
	}

	for i, v := range l.values {
		if err := fn(i, v); err != nil {
			return err
		}
	}

	return nil
}

// Values returns a copy of the elements.
func (l *List) Values() []Value {
	if l == nil {
		return nil
	}

	return append([]Value(nil), l.values...)
}
