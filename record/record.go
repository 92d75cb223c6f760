// Package record defines the structural protocol used to decode NBT
// compounds into Go types, and to encode them back, without reflection.
//
// A type takes part in the protocol by implementing Record on its pointer
// receiver and returning one Field per compound entry it cares about:
//
//	type Player struct {
//		Name  string
//		Score int32
//		Pos   []float64
//	}
//
//	func (p *Player) Fields() []record.Field {
//		return []record.Field{
//			record.String("name", &p.Name).Require(),
//			record.Int("score", &p.Score),
//			record.List("pos", &p.Pos, record.DoubleElem),
//		}
//	}
//
// When decoding, entries matching no field are skipped, fields absent from
// the input keep their value unless they are required, and an entry whose
// kind differs from the field's kind fails with a type mismatch.
package record

import (
	"github.com/chaisql/nbt/types"
)

// AnyKind is used as the Kind of fields accepting entries of any kind.
const AnyKind = types.TagEnd

// A Record exposes its fields to the decoder and the encoder.
// The returned descriptors close over the receiver.
type Record interface {
	Fields() []Field
}

// Ptr is satisfied by pointers to T implementing Record.
// It is used by generic helpers that need to allocate a T.
type Ptr[T any] interface {
	*T
	Record
}

// Field describes one named entry of a compound.
type Field struct {
	// Name of the compound entry.
	Name string
	// Kind expected on the wire, or AnyKind.
	Kind types.Kind
	// Required fields must be present in the input.
	Required bool
	// Decode reads the entry payload. A nil Decode makes the field write only.
	Decode func(d Decoder) error
	// Encode writes the entry payload. A nil Encode makes the field read only.
	Encode func(e Encoder) error
	// Omit reports whether the field must be left out when encoding.
	Omit func() bool
}

// Require returns a copy of f marked as required.
func (f Field) Require() Field {
	f.Required = true
	return f
}

// FieldList is a Record made of a fixed list of fields.
type FieldList []Field

func (l FieldList) Fields() []Field { return l }

// Decoder reads the value an entry or list element is positioned on.
// Every method checks the kind of that value and fails with a type mismatch
// if it differs. A value must be read at most once; values left unread are
// skipped.
type Decoder interface {
	// Kind returns the kind of the current value.
	Kind() types.Kind

	DecodeByte() (int8, error)
	DecodeShort() (int16, error)
	DecodeInt() (int32, error)
	DecodeLong() (int64, error)
	DecodeFloat() (float32, error)
	DecodeDouble() (float64, error)
	DecodeString() (string, error)
	DecodeByteArray() ([]int8, error)
	DecodeIntArray() ([]int32, error)
	DecodeLongArray() ([]int64, error)

	// DecodeCompound matches the entries of the current compound against
	// the fields of r.
	DecodeCompound(r Record) error
	// DecodeEntries calls fn for every entry of the current compound.
	DecodeEntries(fn func(name string, d Decoder) error) error
	// DecodeList calls fn for every element of the current list.
	// Non empty lists whose element kind differs from elem fail, unless
	// elem is AnyKind.
	DecodeList(elem types.Kind, fn func(i, n int, d Decoder) error) error
	// DecodeValue reads the current value as a tree.
	DecodeValue() (types.Value, error)
}

// Encoder writes exactly one value: an entry payload or a list element.
type Encoder interface {
	EncodeByte(int8) error
	EncodeShort(int16) error
	EncodeInt(int32) error
	EncodeLong(int64) error
	EncodeFloat(float32) error
	EncodeDouble(float64) error
	EncodeString(string) error
	EncodeByteArray([]int8) error
	EncodeIntArray([]int32) error
	EncodeLongArray([]int64) error

	// EncodeCompound writes the fields of r as a compound.
	EncodeCompound(r Record) error
	// EncodeList writes a list of n elements of kind elem, calling fn once
	// per element.
	EncodeList(elem types.Kind, n int, fn func(i int, e Encoder) error) error
	// EncodeValue writes a tree.
	EncodeValue(v types.Value) error
}
