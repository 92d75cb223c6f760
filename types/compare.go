package types

import (
	"math"
	"slices"
)

// Equal reports whether a and b are structurally equal: same kinds and same
// payloads, recursively. Compounds are compared regardless of entry order,
// lists element by element. Floating point numbers are compared by their bit
// pattern, so a NaN equals the same NaN and 0 differs from -0.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case FloatValue:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(FloatValue)))
	case DoubleValue:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(DoubleValue)))
	case ByteArrayValue:
		return slices.Equal(x, b.(ByteArrayValue))
	case IntArrayValue:
		return slices.Equal(x, b.(IntArrayValue))
	case LongArrayValue:
		return slices.Equal(x, b.(LongArrayValue))
	case *List:
		return equalLists(x, b.(*List))
	case *Compound:
		return equalCompounds(x, b.(*Compound))
	}

	// remaining kinds are comparable scalars
	return a == b
}

func equalLists(a, b *List) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}
	if a.elem != b.elem {
		return false
	}

	for i := range a.values {
		if !Equal(a.values[i], b.values[i]) {
			return false
		}
	}

	return true
}

func equalCompounds(a, b *Compound) bool {
	if a.Len() != b.Len() {
		return false
	}
	if a.Len() == 0 {
		return true
	}

	for _, e := range a.entries {
		other, ok := b.Get(e.Name)
		if !ok || !Equal(e.Value, other) {
			return false
		}
	}

	return true
}
