package record

import (
	"slices"

	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// Scalar binds the entry called name to p, using elem to read and write it.
func Scalar[T any](name string, p *T, elem Elem[T]) Field {
	return Field{
		Name: name,
		Kind: elem.Kind,
		Decode: func(d Decoder) error {
			v, err := elem.Decode(d)
			if err != nil {
				return err
			}
			*p = v
			return nil
		},
		Encode: func(e Encoder) error {
			return elem.Encode(e, *p)
		},
	}
}

func Byte(name string, p *int8) Field         { return Scalar(name, p, ByteElem) }
func Short(name string, p *int16) Field       { return Scalar(name, p, ShortElem) }
func Int(name string, p *int32) Field         { return Scalar(name, p, IntElem) }
func Long(name string, p *int64) Field        { return Scalar(name, p, LongElem) }
func Float(name string, p *float32) Field     { return Scalar(name, p, FloatElem) }
func Double(name string, p *float64) Field    { return Scalar(name, p, DoubleElem) }
func String(name string, p *string) Field     { return Scalar(name, p, StringElem) }
func Bool(name string, p *bool) Field         { return Scalar(name, p, BoolElem) }
func ByteArray(name string, p *[]int8) Field  { return Scalar(name, p, ByteArrayElem) }
func IntArray(name string, p *[]int32) Field  { return Scalar(name, p, IntArrayElem) }
func LongArray(name string, p *[]int64) Field { return Scalar(name, p, LongArrayElem) }

// Value binds an entry of any kind to p. A nil value is not encoded.
func Value(name string, p *types.Value) Field {
	f := Scalar(name, p, ValueElem)
	f.Omit = func() bool { return *p == nil }
	return f
}

// Compound binds a nested compound to r.
func Compound(name string, r Record) Field {
	return Field{
		Name: name,
		Kind: types.TagCompound,
		Decode: func(d Decoder) error {
			return d.DecodeCompound(r)
		},
		Encode: func(e Encoder) error {
			return e.EncodeCompound(r)
		},
	}
}

// List binds a list to p. Each element is read and written with elem.
func List[T any](name string, p *[]T, elem Elem[T]) Field {
	return Scalar(name, p, ListElem(elem))
}

// CompoundList binds a list of compounds to p.
func CompoundList[T any, PT Ptr[T]](name string, p *[]T) Field {
	return List(name, p, CompoundElem[T, PT]())
}

func ByteList(name string, p *[]int8) Field      { return List(name, p, ByteElem) }
func ShortList(name string, p *[]int16) Field    { return List(name, p, ShortElem) }
func IntList(name string, p *[]int32) Field      { return List(name, p, IntElem) }
func LongList(name string, p *[]int64) Field     { return List(name, p, LongElem) }
func FloatList(name string, p *[]float32) Field  { return List(name, p, FloatElem) }
func DoubleList(name string, p *[]float64) Field { return List(name, p, DoubleElem) }
func StringList(name string, p *[]string) Field  { return List(name, p, StringElem) }

// Map binds a compound with arbitrary entry names to p. All the entries
// must be of the kind described by elem. Entries are encoded sorted by name.
func Map[V any](name string, p *map[string]V, elem Elem[V]) Field {
	return Scalar(name, p, MapElem(elem))
}

// Optional binds an entry to a pointer. The pointer is allocated when the
// entry is decoded and the field is omitted when encoding a nil pointer.
func Optional[T any](name string, p **T, elem Elem[T]) Field {
	return Field{
		Name: name,
		Kind: elem.Kind,
		Decode: func(d Decoder) error {
			v, err := elem.Decode(d)
			if err != nil {
				return err
			}
			*p = &v
			return nil
		},
		Encode: func(e Encoder) error {
			return elem.Encode(e, **p)
		},
		Omit: func() bool {
			return *p == nil
		},
	}
}

func decodeSlice[T any](d Decoder, elem Elem[T]) ([]T, error) {
	values := []T{}
	err := d.DecodeList(elem.Kind, func(i, n int, d Decoder) error {
		v, err := elem.Decode(d)
		if err != nil {
			return errors.Wrapf(err, "element %d", i)
		}
		values = append(values, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

func encodeSlice[T any](e Encoder, elem Elem[T], values []T) error {
	return e.EncodeList(elem.Kind, len(values), func(i int, e Encoder) error {
		return elem.Encode(e, values[i])
	})
}

func decodeMap[V any](d Decoder, elem Elem[V]) (map[string]V, error) {
	m := make(map[string]V)
	err := d.DecodeEntries(func(name string, d Decoder) error {
		v, err := elem.Decode(d)
		if err != nil {
			return errors.Wrapf(err, "entry %q", name)
		}
		m[name] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

func encodeMap[V any](e Encoder, elem Elem[V], m map[string]V) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)

	fields := make(FieldList, len(names))
	for i, name := range names {
		v := m[name]
		fields[i] = Field{
			Name: name,
			Kind: elem.Kind,
			Encode: func(e Encoder) error {
				return elem.Encode(e, v)
			},
		}
	}

	return e.EncodeCompound(fields)
}
