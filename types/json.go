package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

// DefaultMaxDepth is the nesting limit of compounds and lists used when
// none is configured.
const DefaultMaxDepth = 512

// Bit patterns of the NaNs written as a bare "NaN".
const (
	canonicalNaN32 = 0x7fc00000
	canonicalNaN64 = 0x7ff8000000000001
)

// MarshalTypedJSON encodes v as a typed JSON node, keeping every kind
// explicit so that ParseTypedJSON can rebuild the exact same tree:
//
//	{"type":"TAG_Int","value":5}
//	{"type":"TAG_List","elem":"TAG_Short","value":[{"type":"TAG_Short","value":1}]}
//	{"type":"TAG_Compound","value":{"name":{"type":"TAG_String","value":"x"}}}
//
// Non finite floats are written as the strings "NaN", "+Inf" and "-Inf".
// A NaN with another bit pattern than the one math.NaN returns is written
// with its bits, as in "NaN:0x7fc00001".
func MarshalTypedJSON(v Value) ([]byte, error) {
	return appendTypedJSON(nil, v)
}

func appendTypedJSON(dst []byte, v Value) ([]byte, error) {
	if v == nil {
		return nil, errors.New("cannot marshal nil value")
	}

	dst = append(dst, `{"type":"`...)
	dst = append(dst, v.Kind().String()...)
	dst = append(dst, '"')

	if l, ok := v.(*List); ok {
		dst = append(dst, `,"elem":"`...)
		dst = append(dst, l.Elem().String()...)
		dst = append(dst, '"')
	}

	dst = append(dst, `,"value":`...)

	var err error
	switch x := v.(type) {
	case ByteValue:
		dst = strconv.AppendInt(dst, int64(x), 10)
	case ShortValue:
		dst = strconv.AppendInt(dst, int64(x), 10)
	case IntValue:
		dst = strconv.AppendInt(dst, int64(x), 10)
	case LongValue:
		dst = strconv.AppendInt(dst, int64(x), 10)
	case FloatValue:
		dst = appendJSONFloat(dst, float64(x), 32, uint64(math.Float32bits(float32(x))))
	case DoubleValue:
		dst = appendJSONFloat(dst, float64(x), 64, math.Float64bits(float64(x)))
	case StringValue:
		dst, err = appendJSONString(dst, string(x))
	case ByteArrayValue:
		dst = appendJSONInts(dst, x)
	case IntArrayValue:
		dst = appendJSONInts(dst, x)
	case LongArrayValue:
		dst = appendJSONInts(dst, x)
	case *List:
		dst = append(dst, '[')
		for i, e := range x.values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendTypedJSON(dst, e)
			if err != nil {
				return nil, err
			}
		}
		dst = append(dst, ']')
	case *Compound:
		dst = append(dst, '{')
		for i, e := range x.entries {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendJSONString(dst, e.Name)
			if err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			dst, err = appendTypedJSON(dst, e.Value)
			if err != nil {
				return nil, errors.Wrapf(err, "entry %q", e.Name)
			}
		}
		dst = append(dst, '}')
	default:
		return nil, errors.Errorf("unsupported value %T", v)
	}
	if err != nil {
		return nil, err
	}

	return append(dst, '}'), nil
}

func appendJSONString(dst []byte, s string) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return append(dst, b...), nil
}

func appendJSONFloat(dst []byte, f float64, bitSize int, bits uint64) []byte {
	switch {
	case math.IsNaN(f):
		if (bitSize == 32 && bits == canonicalNaN32) || (bitSize == 64 && bits == canonicalNaN64) {
			return append(dst, `"NaN"`...)
		}
		dst = append(dst, `"NaN:0x`...)
		dst = strconv.AppendUint(dst, bits, 16)
		return append(dst, '"')
	case math.IsInf(f, 1):
		return append(dst, `"+Inf"`...)
	case math.IsInf(f, -1):
		return append(dst, `"-Inf"`...)
	}

	return strconv.AppendFloat(dst, f, 'g', -1, bitSize)
}

func appendJSONInts[T int8 | int32 | int64](dst []byte, values []T) []byte {
	dst = append(dst, '[')
	for i, x := range values {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = strconv.AppendInt(dst, int64(x), 10)
	}

	return append(dst, ']')
}

// ParseTypedJSON decodes a typed JSON node produced by MarshalTypedJSON.
// Compounds and lists may be nested up to DefaultMaxDepth levels.
func ParseTypedJSON(data []byte) (Value, error) {
	return ParseTypedJSONDepth(data, DefaultMaxDepth)
}

// ParseTypedJSONDepth is like ParseTypedJSON with a custom nesting limit.
// It fails with ErrDepthLimitExceeded when compounds and lists are nested
// deeper than maxDepth.
func ParseTypedJSONDepth(data []byte, maxDepth int) (Value, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	p := jsonParser{maxDepth: maxDepth}
	return p.parse(data)
}

type jsonParser struct {
	maxDepth int
	depth    int
}

func (p *jsonParser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return errors.Wrapf(errs.ErrDepthLimitExceeded, "maximum depth is %d", p.maxDepth)
	}

	return nil
}

func (p *jsonParser) leave() {
	p.depth--
}

func (p *jsonParser) parse(data []byte) (Value, error) {
	typ, err := jsonparser.GetString(data, "type")
	if err != nil {
		return nil, errors.Wrap(err, "missing node type")
	}
	k, err := ParseKind(typ)
	if err != nil {
		return nil, err
	}

	raw, dt, _, err := jsonparser.Get(data, "value")
	if err != nil {
		return nil, errors.Wrapf(err, "missing value of %s node", k)
	}

	switch k {
	case TagByte:
		i, err := parseJSONInt(raw, dt, math.MinInt8, math.MaxInt8)
		return ByteValue(i), err
	case TagShort:
		i, err := parseJSONInt(raw, dt, math.MinInt16, math.MaxInt16)
		return ShortValue(i), err
	case TagInt:
		i, err := parseJSONInt(raw, dt, math.MinInt32, math.MaxInt32)
		return IntValue(i), err
	case TagLong:
		i, err := parseJSONInt(raw, dt, math.MinInt64, math.MaxInt64)
		return LongValue(i), err
	case TagFloat:
		if bits, ok, err := parseJSONNaN(raw, dt, 32); ok || err != nil {
			return FloatValue(math.Float32frombits(uint32(bits))), err
		}
		f, err := parseJSONFloat(raw, dt)
		return FloatValue(f), err
	case TagDouble:
		if bits, ok, err := parseJSONNaN(raw, dt, 64); ok || err != nil {
			return DoubleValue(math.Float64frombits(bits)), err
		}
		f, err := parseJSONFloat(raw, dt)
		return DoubleValue(f), err
	case TagString:
		if dt != jsonparser.String {
			return nil, errors.Errorf("expected string, got %s", dt)
		}
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return StringValue(s), nil
	case TagByteArray:
		ints, err := parseJSONInts(raw, dt, math.MinInt8, math.MaxInt8)
		if err != nil {
			return nil, err
		}
		a := make(ByteArrayValue, len(ints))
		for i := range ints {
			a[i] = int8(ints[i])
		}
		return a, nil
	case TagIntArray:
		ints, err := parseJSONInts(raw, dt, math.MinInt32, math.MaxInt32)
		if err != nil {
			return nil, err
		}
		a := make(IntArrayValue, len(ints))
		for i := range ints {
			a[i] = int32(ints[i])
		}
		return a, nil
	case TagLongArray:
		ints, err := parseJSONInts(raw, dt, math.MinInt64, math.MaxInt64)
		return LongArrayValue(ints), err
	case TagList:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.parseList(data, raw, dt)
	case TagCompound:
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		return p.parseCompound(raw, dt)
	}

	return nil, errors.Errorf("unsupported node type %s", k)
}

func parseJSONInt(raw []byte, dt jsonparser.ValueType, min, max int64) (int64, error) {
	if dt != jsonparser.Number {
		return 0, errors.Errorf("expected number, got %s", dt)
	}

	i, err := jsonparser.ParseInt(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid integer %q", raw)
	}
	if i < min || i > max {
		return 0, errors.Errorf("integer %d out of range", i)
	}

	return i, nil
}

// parseJSONNaN parses the NaN strings written by appendJSONFloat.
// It reports false if raw is not one of them.
func parseJSONNaN(raw []byte, dt jsonparser.ValueType, bitSize int) (uint64, bool, error) {
	if dt != jsonparser.String {
		return 0, false, nil
	}

	s := string(raw)
	if s == "NaN" {
		if bitSize == 32 {
			return canonicalNaN32, true, nil
		}
		return canonicalNaN64, true, nil
	}

	hex, ok := strings.CutPrefix(s, "NaN:0x")
	if !ok {
		return 0, false, nil
	}

	bits, err := strconv.ParseUint(hex, 16, bitSize)
	if err != nil {
		return 0, true, errors.Wrapf(err, "invalid NaN %q", s)
	}
	isNaN := math.IsNaN(math.Float64frombits(bits))
	if bitSize == 32 {
		isNaN = math.IsNaN(float64(math.Float32frombits(uint32(bits))))
	}
	if !isNaN {
		return 0, true, errors.Errorf("%q is not a NaN", s)
	}

	return bits, true, nil
}

func parseJSONFloat(raw []byte, dt jsonparser.ValueType) (float64, error) {
	switch dt {
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid number %q", raw)
		}
		return f, nil
	case jsonparser.String:
		switch string(raw) {
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
	}

	return 0, errors.Errorf("invalid floating point value %q", raw)
}

func parseJSONInts(raw []byte, dt jsonparser.ValueType, min, max int64) ([]int64, error) {
	if dt != jsonparser.Array {
		return nil, errors.Errorf("expected array, got %s", dt)
	}

	ints := []int64{}
	var perr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if perr != nil {
			return
		}
		var i int64
		i, perr = parseJSONInt(value, dataType, min, max)
		ints = append(ints, i)
	})
	if perr != nil {
		return nil, perr
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return ints, nil
}

func (p *jsonParser) parseList(node, raw []byte, dt jsonparser.ValueType) (Value, error) {
	if dt != jsonparser.Array {
		return nil, errors.Errorf("expected array, got %s", dt)
	}

	elemLabel, err := jsonparser.GetString(node, "elem")
	if err != nil {
		return nil, errors.Wrap(err, "missing list element type")
	}
	elem, err := ParseKind(elemLabel)
	if err != nil {
		return nil, err
	}

	l, err := NewList(elem)
	if err != nil {
		return nil, err
	}

	var perr error
	_, err = jsonparser.ArrayEach(raw, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if perr != nil {
			return
		}
		if dataType != jsonparser.Object {
			perr = errors.Errorf("expected node, got %s", dataType)
			return
		}
		var v Value
		v, perr = p.parse(value)
		if perr == nil {
			perr = l.Append(v)
		}
	})
	if perr != nil {
		return nil, perr
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return l, nil
}

func (p *jsonParser) parseCompound(raw []byte, dt jsonparser.ValueType) (Value, error) {
	if dt != jsonparser.Object {
		return nil, errors.Errorf("expected object, got %s", dt)
	}

	c := NewCompound()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return errors.WithStack(err)
		}
		if dataType != jsonparser.Object {
			return errors.Errorf("entry %q: expected node, got %s", name, dataType)
		}

		v, err := p.parse(value)
		if err != nil {
			return errors.Wrapf(err, "entry %q", name)
		}

		return c.Insert(name, v)
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

// MarshalJSON encodes the document as {"name":...,"root":node}.
func (d *Document) MarshalJSON() ([]byte, error) {
	dst := []byte(`{"name":`)
	dst, err := appendJSONString(dst, d.Name)
	if err != nil {
		return nil, err
	}

	root := d.Root
	if root == nil {
		root = NewCompound()
	}

	dst = append(dst, `,"root":`...)
	dst, err = appendTypedJSON(dst, root)
	if err != nil {
		return nil, err
	}

	return append(dst, '}'), nil
}

// UnmarshalJSON decodes a document encoded by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	return d.UnmarshalJSONDepth(data, DefaultMaxDepth)
}

// UnmarshalJSONDepth is like UnmarshalJSON with a custom nesting limit,
// the root compound counting as one level.
func (d *Document) UnmarshalJSONDepth(data []byte, maxDepth int) error {
	name, err := jsonparser.GetString(data, "name")
	if err != nil && !errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return errors.WithStack(err)
	}

	raw, dt, _, err := jsonparser.Get(data, "root")
	if err != nil {
		return errors.Wrap(err, "missing root")
	}
	if dt != jsonparser.Object {
		return errors.Errorf("expected root node, got %s", dt)
	}

	v, err := ParseTypedJSONDepth(raw, maxDepth)
	if err != nil {
		return err
	}

	root, err := AsCompound(v)
	if err != nil {
		return errors.Wrap(err, "root")
	}

	d.Name = name
	d.Root = root
	return nil
}
