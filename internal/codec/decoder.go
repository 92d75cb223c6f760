// Package codec implements the recursive descent engine shared by the tree
// and the structural modes of the NBT decoder and encoder.
package codec

import (
	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = types.DefaultMaxDepth

// Options configure the decoder and the encoder.
type Options struct {
	// MaxDepth is the maximum number of nested compounds and lists,
	// the root compound included.
	MaxDepth int
	// RejectDuplicateNames makes the decoder fail on a compound holding
	// the same name twice. Otherwise the last occurrence wins.
	RejectDuplicateNames bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}

// Decoder reads documents from a Reader.
// It keeps no state between documents.
type Decoder struct {
	r     *encoding.Reader
	opts  Options
	depth int
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r *encoding.Reader, opts Options) *Decoder {
	return &Decoder{
		r:    r,
		opts: opts,
	}
}

// DecodeDocument reads one complete document as a tree.
func (d *Decoder) DecodeDocument() (*types.Document, error) {
	d.depth = 0

	name, err := d.readRoot()
	if err != nil {
		return nil, d.annotate(err)
	}

	root, err := d.readCompound()
	if err != nil {
		return nil, d.annotate(err)
	}

	return &types.Document{Name: name, Root: root}, nil
}

// DecodeRecord reads one complete document into rec and returns the name
// of its root.
func (d *Decoder) DecodeRecord(rec record.Record) (string, error) {
	d.depth = 0

	name, err := d.readRoot()
	if err != nil {
		return "", d.annotate(err)
	}

	if err := d.decodeRecord(rec); err != nil {
		return "", d.annotate(err)
	}

	return name, nil
}

// annotate attaches the position of the cursor to err.
func (d *Decoder) annotate(err error) error {
	return errors.Wrapf(err, "offset %d", d.r.Offset())
}

func (d *Decoder) readRoot() (string, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return "", err
	}
	if types.Kind(b) != types.TagCompound {
		return "", errs.InvalidRoot(errors.Wrap(errs.NewInvalidTagKind(b), "root must be a compound"))
	}

	return d.r.ReadString()
}

func (d *Decoder) readKind() (types.Kind, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, err
	}

	return types.KindFromByte(b)
}

func (d *Decoder) enter() error {
	d.depth++
	if d.depth > d.opts.maxDepth() {
		return errors.Wrapf(errs.ErrDepthLimitExceeded, "maximum depth is %d", d.opts.maxDepth())
	}

	return nil
}

func (d *Decoder) leave() {
	d.depth--
}

// minWidth returns the smallest encoded size of a payload of kind k.
func minWidth(k types.Kind) int {
	switch k {
	case types.TagByte, types.TagCompound:
		return 1
	case types.TagShort, types.TagString:
		return 2
	case types.TagInt, types.TagFloat, types.TagByteArray, types.TagIntArray, types.TagLongArray:
		return 4
	case types.TagList:
		return 5
	case types.TagLong, types.TagDouble:
		return 8
	}

	return 0
}

// readListHeader reads the element kind and the count of a list and checks
// the count against the remaining input.
func (d *Decoder) readListHeader() (types.Kind, int, error) {
	elem, err := d.readKind()
	if err != nil {
		return 0, 0, err
	}

	n, err := d.r.ReadLength()
	if err != nil {
		return 0, 0, err
	}

	if n > 0 && elem == types.TagEnd {
		return 0, 0, errors.Wrapf(errs.NewInvalidTagKind(byte(elem)), "list of %d elements", n)
	}

	if rem := d.r.Remaining(); rem >= 0 && int64(n)*int64(minWidth(elem)) > int64(rem) {
		return 0, 0, errors.Wrapf(errs.ErrDeclaredLengthExceedsInput, "list of %d %s, %d bytes remaining", n, elem, rem)
	}

	return elem, n, nil
}

func (d *Decoder) readPayload(k types.Kind) (types.Value, error) {
	switch k {
	case types.TagByte:
		x, err := d.r.ReadInt8()
		return types.ByteValue(x), err
	case types.TagShort:
		x, err := d.r.ReadInt16()
		return types.ShortValue(x), err
	case types.TagInt:
		x, err := d.r.ReadInt32()
		return types.IntValue(x), err
	case types.TagLong:
		x, err := d.r.ReadInt64()
		return types.LongValue(x), err
	case types.TagFloat:
		x, err := d.r.ReadFloat32()
		return types.FloatValue(x), err
	case types.TagDouble:
		x, err := d.r.ReadFloat64()
		return types.DoubleValue(x), err
	case types.TagByteArray:
		x, err := d.readByteArray()
		return types.ByteArrayValue(x), err
	case types.TagString:
		x, err := d.r.ReadString()
		return types.StringValue(x), err
	case types.TagList:
		return d.readList()
	case types.TagCompound:
		return d.readCompound()
	case types.TagIntArray:
		x, err := d.readIntArray()
		return types.IntArrayValue(x), err
	case types.TagLongArray:
		x, err := d.readLongArray()
		return types.LongArrayValue(x), err
	}

	return nil, errs.NewInvalidTagKind(byte(k))
}

func (d *Decoder) readByteArray() ([]int8, error) {
	n, err := d.r.ReadLength()
	if err != nil {
		return nil, err
	}

	return d.r.ReadInt8s(n)
}

func (d *Decoder) readIntArray() ([]int32, error) {
	n, err := d.r.ReadLength()
	if err != nil {
		return nil, err
	}

	return d.r.ReadInt32s(n)
}

func (d *Decoder) readLongArray() ([]int64, error) {
	n, err := d.r.ReadLength()
	if err != nil {
		return nil, err
	}

	return d.r.ReadInt64s(n)
}

func (d *Decoder) readList() (*types.List, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	elem, n, err := d.readListHeader()
	if err != nil {
		return nil, err
	}

	l, err := types.NewList(elem)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		v, err := d.readPayload(elem)
		if err != nil {
			return nil, errors.Wrapf(err, "list element %d", i)
		}
		if err := l.Append(v); err != nil {
			return nil, err
		}
	}

	return l, nil
}

func (d *Decoder) readCompound() (*types.Compound, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	c := types.NewCompound()
	for {
		k, err := d.readKind()
		if err != nil {
			return nil, err
		}
		if k == types.TagEnd {
			return c, nil
		}

		name, err := d.r.ReadString()
		if err != nil {
			return nil, err
		}

		v, err := d.readPayload(k)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %q", name)
		}

		if d.opts.RejectDuplicateNames {
			if err := c.Insert(name, v); err != nil {
				return nil, err
			}
		} else {
			c.Set(name, v)
		}
	}
}

// skipPayload consumes a payload of kind k without building it.
// Nested containers still count towards the depth limit.
func (d *Decoder) skipPayload(k types.Kind) error {
	switch k {
	case types.TagByte, types.TagShort, types.TagInt, types.TagLong, types.TagFloat, types.TagDouble:
		return d.r.Discard(int64(minWidth(k)))
	case types.TagString:
		return d.r.SkipString()
	case types.TagByteArray, types.TagIntArray, types.TagLongArray:
		n, err := d.r.ReadLength()
		if err != nil {
			return err
		}
		width := 1
		if k == types.TagIntArray {
			width = 4
		} else if k == types.TagLongArray {
			width = 8
		}
		return d.r.Skip(n, width)
	case types.TagList:
		return d.skipList()
	case types.TagCompound:
		return d.skipCompound()
	}

	return errs.NewInvalidTagKind(byte(k))
}

func (d *Decoder) skipList() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	elem, n, err := d.readListHeader()
	if err != nil {
		return err
	}

	switch elem {
	case types.TagByte, types.TagShort, types.TagInt, types.TagLong, types.TagFloat, types.TagDouble:
		return d.r.Discard(int64(n) * int64(minWidth(elem)))
	}

	for i := 0; i < n; i++ {
		if err := d.skipPayload(elem); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) skipCompound() error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	for {
		k, err := d.readKind()
		if err != nil {
			return err
		}
		if k == types.TagEnd {
			return nil
		}

		if err := d.r.SkipString(); err != nil {
			return err
		}
		if err := d.skipPayload(k); err != nil {
			return err
		}
	}
}
