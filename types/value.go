package types

import (
	"math"

	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

var (
	_ Value = ByteValue(0)
	_ Value = ShortValue(0)
	_ Value = IntValue(0)
	_ Value = LongValue(0)
	_ Value = FloatValue(0)
	_ Value = DoubleValue(0)
	_ Value = StringValue("")
	_ Value = ByteArrayValue(nil)
	_ Value = IntArrayValue(nil)
	_ Value = LongArrayValue(nil)
	_ Value = (*List)(nil)
	_ Value = (*Compound)(nil)
)

type ByteValue int8

func (v ByteValue) Kind() Kind { return TagByte }
func (v ByteValue) V() any     { return int8(v) }

type ShortValue int16

func (v ShortValue) Kind() Kind { return TagShort }
func (v ShortValue) V() any     { return int16(v) }

type IntValue int32

func (v IntValue) Kind() Kind { return TagInt }
func (v IntValue) V() any     { return int32(v) }

type LongValue int64

func (v LongValue) Kind() Kind { return TagLong }
func (v LongValue) V() any     { return int64(v) }

type FloatValue float32

func (v FloatValue) Kind() Kind { return TagFloat }
func (v FloatValue) V() any     { return float32(v) }

type DoubleValue float64

func (v DoubleValue) Kind() Kind { return TagDouble }
func (v DoubleValue) V() any     { return float64(v) }

type StringValue string

func (v StringValue) Kind() Kind { return TagString }
func (v StringValue) V() any     { return string(v) }

// ByteArrayValue holds a TAG_ByteArray. NBT bytes are signed.
type ByteArrayValue []int8

func (v ByteArrayValue) Kind() Kind { return TagByteArray }
func (v ByteArrayValue) V() any     { return []int8(v) }

type IntArrayValue []int32

func (v IntArrayValue) Kind() Kind { return TagIntArray }
func (v IntArrayValue) V() any     { return []int32(v) }

type LongArrayValue []int64

func (v LongArrayValue) Kind() Kind { return TagLongArray }
func (v LongArrayValue) V() any     { return []int64(v) }

// New creates a value whose kind is infered from x.
// Go ints become TAG_Int when they fit 32 bits and TAG_Long otherwise,
// booleans become a TAG_Byte holding 0 or 1.
func New(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case bool:
		if v {
			return ByteValue(1), nil
		}
		return ByteValue(0), nil
	case int8:
		return ByteValue(v), nil
	case int16:
		return ShortValue(v), nil
	case int32:
		return IntValue(v), nil
	case int64:
		return LongValue(v), nil
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return IntValue(v), nil
		}
		return LongValue(v), nil
	case float32:
		return FloatValue(v), nil
	case float64:
		return DoubleValue(v), nil
	case string:
		return StringValue(v), nil
	case []int8:
		return ByteArrayValue(v), nil
	case []byte:
		b := make([]int8, len(v))
		for i := range v {
			b[i] = int8(v[i])
		}
		return ByteArrayValue(b), nil
	case []int32:
		return IntArrayValue(v), nil
	case []int64:
		return LongArrayValue(v), nil
	}

	return nil, errors.Errorf("unsupported type %T", x)
}

func as[T Value](v Value, k Kind) (T, error) {
	x, ok := v.(T)
	if !ok {
		var zero T
		return zero, errs.NewTypeMismatch(k, KindOf(v))
	}

	return x, nil
}

func AsByte(v Value) (int8, error) {
	x, err := as[ByteValue](v, TagByte)
	return int8(x), err
}

func AsShort(v Value) (int16, error) {
	x, err := as[ShortValue](v, TagShort)
	return int16(x), err
}

func AsInt(v Value) (int32, error) {
	x, err := as[IntValue](v, TagInt)
	return int32(x), err
}

func AsLong(v Value) (int64, error) {
	x, err := as[LongValue](v, TagLong)
	return int64(x), err
}

func AsFloat(v Value) (float32, error) {
	x, err := as[FloatValue](v, TagFloat)
	return float32(x), err
}

func AsDouble(v Value) (float64, error) {
	x, err := as[DoubleValue](v, TagDouble)
	return float64(x), err
}

func AsString(v Value) (string, error) {
	x, err := as[StringValue](v, TagString)
	return string(x), err
}

func AsByteArray(v Value) ([]int8, error) {
	x, err := as[ByteArrayValue](v, TagByteArray)
	return []int8(x), err
}

func AsIntArray(v Value) ([]int32, error) {
	x, err := as[IntArrayValue](v, TagIntArray)
	return []int32(x), err
}

func AsLongArray(v Value) ([]int64, error) {
	x, err := as[LongArrayValue](v, TagLongArray)
	return []int64(x), err
}

func AsList(v Value) (*List, error) {
	return as[*List](v, TagList)
}

func AsCompound(v Value) (*Compound, error) {
	return as[*Compound](v, TagCompound)
}

// AsBool returns true if v is a TAG_Byte different from zero.
func AsBool(v Value) (bool, error) {
	x, err := AsByte(v)
	return x != 0, err
}
