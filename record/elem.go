package record

import (
	"github.com/chaisql/nbt/types"
)

// Elem describes how to read and write one value of type T.
// It is used for list elements, map values and optional fields.
type Elem[T any] struct {
	Kind   types.Kind
	Decode func(d Decoder) (T, error)
	Encode func(e Encoder, v T) error
}

var (
	ByteElem      = Elem[int8]{types.TagByte, Decoder.DecodeByte, Encoder.EncodeByte}
	ShortElem     = Elem[int16]{types.TagShort, Decoder.DecodeShort, Encoder.EncodeShort}
	IntElem       = Elem[int32]{types.TagInt, Decoder.DecodeInt, Encoder.EncodeInt}
	LongElem      = Elem[int64]{types.TagLong, Decoder.DecodeLong, Encoder.EncodeLong}
	FloatElem     = Elem[float32]{types.TagFloat, Decoder.DecodeFloat, Encoder.EncodeFloat}
	DoubleElem    = Elem[float64]{types.TagDouble, Decoder.DecodeDouble, Encoder.EncodeDouble}
	StringElem    = Elem[string]{types.TagString, Decoder.DecodeString, Encoder.EncodeString}
	ByteArrayElem = Elem[[]int8]{types.TagByteArray, Decoder.DecodeByteArray, Encoder.EncodeByteArray}
	IntArrayElem  = Elem[[]int32]{types.TagIntArray, Decoder.DecodeIntArray, Encoder.EncodeIntArray}
	LongArrayElem = Elem[[]int64]{types.TagLongArray, Decoder.DecodeLongArray, Encoder.EncodeLongArray}

	// BoolElem stores booleans as a TAG_Byte, any non zero byte being true.
	BoolElem = Elem[bool]{
		Kind: types.TagByte,
		Decode: func(d Decoder) (bool, error) {
			b, err := d.DecodeByte()
			return b != 0, err
		},
		Encode: func(e Encoder, v bool) error {
			if v {
				return e.EncodeByte(1)
			}
			return e.EncodeByte(0)
		},
	}

	// ValueElem reads and writes raw trees of any kind.
	ValueElem = Elem[types.Value]{AnyKind, Decoder.DecodeValue, Encoder.EncodeValue}
)

// CompoundElem describes records of type T, encoded as compounds.
func CompoundElem[T any, PT Ptr[T]]() Elem[T] {
	return Elem[T]{
		Kind: types.TagCompound,
		Decode: func(d Decoder) (T, error) {
			var v T
			if err := d.DecodeCompound(PT(&v)); err != nil {
				var zero T
				return zero, err
			}
			return v, nil
		},
		Encode: func(e Encoder, v T) error {
			return e.EncodeCompound(PT(&v))
		},
	}
}

// ListElem describes slices whose elements are described by elem,
// encoded as lists. It allows lists of lists.
func ListElem[T any](elem Elem[T]) Elem[[]T] {
	return Elem[[]T]{
		Kind: types.TagList,
		Decode: func(d Decoder) ([]T, error) {
			return decodeSlice(d, elem)
		},
		Encode: func(e Encoder, v []T) error {
			return encodeSlice(e, elem, v)
		},
	}
}

// MapElem describes maps whose values are described by elem,
// encoded as compounds.
func MapElem[V any](elem Elem[V]) Elem[map[string]V] {
	return Elem[map[string]V]{
		Kind: types.TagCompound,
		Decode: func(d Decoder) (map[string]V, error) {
			return decodeMap(d, elem)
		},
		Encode: func(e Encoder, m map[string]V) error {
			return encodeMap(e, elem, m)
		},
	}
}
