package codec

import (
	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// Encoder writes documents to a Writer.
// Each document is flushed once complete.
type Encoder struct {
	w     *encoding.Writer
	opts  Options
	depth int
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w *encoding.Writer, opts Options) *Encoder {
	return &Encoder{
		w:    w,
		opts: opts,
	}
}

// EncodeDocument writes doc. A nil root is written as an empty compound.
// If it fails, nothing of doc is left in the stream.
func (e *Encoder) EncodeDocument(doc *types.Document) error {
	root := doc.Root
	if root == nil {
		root = types.NewCompound()
	}

	return e.document(doc.Name, func() error {
		return e.writeCompound(root)
	})
}

// EncodeRecord writes rec as the root compound of a document called name.
// If it fails, nothing of the document is left in the stream.
func (e *Encoder) EncodeRecord(name string, rec record.Record) error {
	return e.document(name, func() error {
		return e.writeRecord(rec)
	})
}

func (e *Encoder) document(name string, body func() error) error {
	e.depth = 0
	e.w.Begin()

	err := e.writeHeader(types.TagCompound, name)
	if err == nil {
		err = body()
	}
	if err != nil {
		e.w.Rollback()
		return err
	}

	return e.w.Flush()
}

func (e *Encoder) enter() error {
	e.depth++
	if e.depth > e.opts.maxDepth() {
		return errors.Wrapf(errs.ErrDepthLimitExceeded, "maximum depth is %d", e.opts.maxDepth())
	}

	return nil
}

func (e *Encoder) leave() {
	e.depth--
}

func (e *Encoder) writeHeader(k types.Kind, name string) error {
	if err := e.w.WriteByte(byte(k)); err != nil {
		return err
	}

	return errors.Wrapf(e.w.WriteString(name), "name %q", name)
}

func (e *Encoder) writePayload(v types.Value) error {
	switch x := v.(type) {
	case types.ByteValue:
		return e.w.WriteInt8(int8(x))
	case types.ShortValue:
		return e.w.WriteInt16(int16(x))
	case types.IntValue:
		return e.w.WriteInt32(int32(x))
	case types.LongValue:
		return e.w.WriteInt64(int64(x))
	case types.FloatValue:
		return e.w.WriteFloat32(float32(x))
	case types.DoubleValue:
		return e.w.WriteFloat64(float64(x))
	case types.ByteArrayValue:
		return e.w.WriteInt8s(x)
	case types.StringValue:
		return e.w.WriteString(string(x))
	case *types.List:
		return e.writeList(x)
	case *types.Compound:
		return e.writeCompound(x)
	case types.IntArrayValue:
		return e.w.WriteInt32s(x)
	case types.LongArrayValue:
		return e.w.WriteInt64s(x)
	case nil:
		return errors.New("cannot encode nil value")
	}

	return errors.Errorf("unsupported value %T", v)
}

func (e *Encoder) writeCompound(c *types.Compound) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	err := c.Iterate(func(name string, v types.Value) error {
		if v == nil {
			return errors.Errorf("entry %q is nil", name)
		}
		if err := e.writeHeader(v.Kind(), name); err != nil {
			return err
		}

		return errors.Wrapf(e.writePayload(v), "entry %q", name)
	})
	if err != nil {
		return err
	}

	return e.w.WriteByte(byte(types.TagEnd))
}

func (e *Encoder) writeList(l *types.List) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	elem := l.Elem()
	if err := e.w.WriteByte(byte(elem)); err != nil {
		return err
	}
	if err := e.w.WriteLength(l.Len()); err != nil {
		return err
	}

	return l.Iterate(func(i int, v types.Value) error {
		if k := types.KindOf(v); k != elem {
			return errors.Wrapf(errs.NewTypeMismatch(elem, k), "list element %d", i)
		}

		return errors.Wrapf(e.writePayload(v), "list element %d", i)
	})
}

func (e *Encoder) writeRecord(rec record.Record) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	fields := rec.Fields()
	names := make(nameSet, len(fields))
	for i := range fields {
		f := &fields[i]
		if f.Encode == nil || (f.Omit != nil && f.Omit()) {
			continue
		}
		if err := names.add(f.Name); err != nil {
			return err
		}

		ve := valueEncoder{e: e, name: f.Name, named: true, expect: f.Kind}
		if err := f.Encode(&ve); err != nil {
			return errors.Wrapf(err, "field %q", f.Name)
		}
		if !ve.done {
			return errors.Errorf("field %q: no value encoded", f.Name)
		}
	}

	return e.w.WriteByte(byte(types.TagEnd))
}

func (e *Encoder) writeListFunc(elem types.Kind, n int, fn func(i int, e record.Encoder) error) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if n > 0 && elem == types.TagEnd {
		return errors.Wrapf(errs.NewInvalidTagKind(byte(elem)), "list of %d elements", n)
	}

	if err := e.w.WriteByte(byte(elem)); err != nil {
		return err
	}
	if err := e.w.WriteLength(n); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		ve := valueEncoder{e: e, expect: elem}
		if err := fn(i, &ve); err != nil {
			return errors.Wrapf(err, "list element %d", i)
		}
		if !ve.done {
			return errors.Errorf("list element %d: no value encoded", i)
		}
	}

	return nil
}

// valueEncoder writes one entry payload or list element. Named values
// write their tag and name once the kind of the payload is known.
type valueEncoder struct {
	e      *Encoder
	name   string
	named  bool
	expect types.Kind
	done   bool
}

func (v *valueEncoder) begin(k types.Kind) error {
	if v.done {
		return errors.New("value already encoded")
	}
	if v.expect != record.AnyKind && v.expect != k {
		return errs.NewTypeMismatch(v.expect, k)
	}

	v.done = true
	if v.named {
		return v.e.writeHeader(k, v.name)
	}

	return nil
}

func (v *valueEncoder) EncodeByte(x int8) error {
	if err := v.begin(types.TagByte); err != nil {
		return err
	}

	return v.e.w.WriteInt8(x)
}

func (v *valueEncoder) EncodeShort(x int16) error {
	if err := v.begin(types.TagShort); err != nil {
		return err
	}

	return v.e.w.WriteInt16(x)
}

func (v *valueEncoder) EncodeInt(x int32) error {
	if err := v.begin(types.TagInt); err != nil {
		return err
	}

	return v.e.w.WriteInt32(x)
}

func (v *valueEncoder) EncodeLong(x int64) error {
	if err := v.begin(types.TagLong); err != nil {
		return err
	}

	return v.e.w.WriteInt64(x)
}

func (v *valueEncoder) EncodeFloat(x float32) error {
	if err := v.begin(types.TagFloat); err != nil {
		return err
	}

	return v.e.w.WriteFloat32(x)
}

func (v *valueEncoder) EncodeDouble(x float64) error {
	if err := v.begin(types.TagDouble); err != nil {
		return err
	}

	return v.e.w.WriteFloat64(x)
}

func (v *valueEncoder) EncodeString(x string) error {
	if err := v.begin(types.TagString); err != nil {
		return err
	}

	return v.e.w.WriteString(x)
}

func (v *valueEncoder) EncodeByteArray(x []int8) error {
	if err := v.begin(types.TagByteArray); err != nil {
		return err
	}

	return v.e.w.WriteInt8s(x)
}

func (v *valueEncoder) EncodeIntArray(x []int32) error {
	if err := v.begin(types.TagIntArray); err != nil {
		return err
	}

	return v.e.w.WriteInt32s(x)
}

func (v *valueEncoder) EncodeLongArray(x []int64) error {
	if err := v.begin(types.TagLongArray); err != nil {
		return err
	}

	return v.e.w.WriteInt64s(x)
}

func (v *valueEncoder) EncodeCompound(r record.Record) error {
	if err := v.begin(types.TagCompound); err != nil {
		return err
	}

	return v.e.writeRecord(r)
}

func (v *valueEncoder) EncodeList(elem types.Kind, n int, fn func(i int, e record.Encoder) error) error {
	if err := v.begin(types.TagList); err != nil {
		return err
	}

	return v.e.writeListFunc(elem, n, fn)
}

func (v *valueEncoder) EncodeValue(x types.Value) error {
	if x == nil {
		return errors.New("cannot encode nil value")
	}
	if err := v.begin(x.Kind()); err != nil {
		return err
	}

	return v.e.writePayload(x)
}
