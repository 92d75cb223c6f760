package codec

import (
	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// decodeRecord matches the entries of the compound under the cursor
// against the fields of rec. The opening tag and name are already consumed.
func (d *Decoder) decodeRecord(rec record.Record) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	fields := rec.Fields()
	seen := make([]bool, len(fields))
	names := d.nameSet()

	for {
		k, err := d.readKind()
		if err != nil {
			return err
		}
		if k == types.TagEnd {
			break
		}

		name, err := d.r.ReadString()
		if err != nil {
			return err
		}
		if err := names.add(name); err != nil {
			return err
		}

		i := lookupField(fields, name)
		if i < 0 || fields[i].Decode == nil {
			if err := d.skipPayload(k); err != nil {
				return errors.Wrapf(err, "entry %q", name)
			}
			continue
		}

		f := &fields[i]
		if f.Kind != record.AnyKind && f.Kind != k {
			return errors.Wrapf(errs.NewTypeMismatch(f.Kind, k), "field %q", name)
		}

		if err := d.decodeField(k, f.Decode); err != nil {
			return errors.Wrapf(err, "field %q", name)
		}
		seen[i] = true
	}

	for i := range fields {
		if fields[i].Required && !seen[i] {
			return errs.NewMissingField(fields[i].Name)
		}
	}

	return nil
}

func lookupField(fields []record.Field, name string) int {
	for i := range fields {
		if fields[i].Name == name {
			return i
		}
	}

	return -1
}

// decodeField lets fn read the payload of kind k under the cursor,
// and skips it if fn didn't.
func (d *Decoder) decodeField(k types.Kind, fn func(record.Decoder) error) error {
	vd := valueDecoder{d: d, kind: k}
	if err := fn(&vd); err != nil {
		return err
	}
	if !vd.consumed {
		return d.skipPayload(k)
	}

	return nil
}

func (d *Decoder) decodeEntries(fn func(name string, d record.Decoder) error) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	names := d.nameSet()
	for {
		k, err := d.readKind()
		if err != nil {
			return err
		}
		if k == types.TagEnd {
			return nil
		}

		name, err := d.r.ReadString()
		if err != nil {
			return err
		}
		if err := names.add(name); err != nil {
			return err
		}

		err = d.decodeField(k, func(vd record.Decoder) error {
			return fn(name, vd)
		})
		if err != nil {
			return err
		}
	}
}

func (d *Decoder) decodeList(elem types.Kind, fn func(i, n int, d record.Decoder) error) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.leave()

	k, n, err := d.readListHeader()
	if err != nil {
		return err
	}
	if n > 0 && elem != record.AnyKind && k != elem {
		return errors.Wrap(errs.NewTypeMismatch(elem, k), "list element kind")
	}

	for i := 0; i < n; i++ {
		err := d.decodeField(k, func(vd record.Decoder) error {
			return fn(i, n, vd)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// nameSet tracks the names of a compound when duplicates are rejected.
type nameSet map[string]struct{}

func (d *Decoder) nameSet() nameSet {
	if !d.opts.RejectDuplicateNames {
		return nil
	}

	return make(nameSet)
}

func (s nameSet) add(name string) error {
	if s == nil {
		return nil
	}
	if _, ok := s[name]; ok {
		return errors.Wrapf(errs.ErrDuplicateName, "%q", name)
	}

	s[name] = struct{}{}
	return nil
}

// valueDecoder exposes one payload of the stream to a field.
type valueDecoder struct {
	d        *Decoder
	kind     types.Kind
	consumed bool
}

func (v *valueDecoder) Kind() types.Kind {
	return v.kind
}

func (v *valueDecoder) begin(k types.Kind) error {
	if v.consumed {
		return errors.New("value already decoded")
	}
	if k != v.kind {
		return errs.NewTypeMismatch(k, v.kind)
	}

	v.consumed = true
	return nil
}

func (v *valueDecoder) DecodeByte() (int8, error) {
	if err := v.begin(types.TagByte); err != nil {
		return 0, err
	}

	return v.d.r.ReadInt8()
}

func (v *valueDecoder) DecodeShort() (int16, error) {
	if err := v.begin(types.TagShort); err != nil {
		return 0, err
	}

	return v.d.r.ReadInt16()
}

func (v *valueDecoder) DecodeInt() (int32, error) {
	if err := v.begin(types.TagInt); err != nil {
		return 0, err
	}

	return v.d.r.ReadInt32()
}

func (v *valueDecoder) DecodeLong() (int64, error) {
	if err := v.begin(types.TagLong); err != nil {
		return 0, err
	}

	return v.d.r.ReadInt64()
}

func (v *valueDecoder) DecodeFloat() (float32, error) {
	if err := v.begin(types.TagFloat); err != nil {
		return 0, err
	}

	return v.d.r.ReadFloat32()
}

func (v *valueDecoder) DecodeDouble() (float64, error) {
	if err := v.begin(types.TagDouble); err != nil {
		return 0, err
	}

	return v.d.r.ReadFloat64()
}

func (v *valueDecoder) DecodeString() (string, error) {
	if err := v.begin(types.TagString); err != nil {
		return "", err
	}

	return v.d.r.ReadString()
}

func (v *valueDecoder) DecodeByteArray() ([]int8, error) {
	if err := v.begin(types.TagByteArray); err != nil {
		return nil, err
	}

	return v.d.readByteArray()
}

func (v *valueDecoder) DecodeIntArray() ([]int32, error) {
	if err := v.begin(types.TagIntArray); err != nil {
		return nil, err
	}

	return v.d.readIntArray()
}

func (v *valueDecoder) DecodeLongArray() ([]int64, error) {
	if err := v.begin(types.TagLongArray); err != nil {
		return nil, err
	}

	return v.d.readLongArray()
}

func (v *valueDecoder) DecodeCompound(r record.Record) error {
	if err := v.begin(types.TagCompound); err != nil {
		return err
	}

	return v.d.decodeRecord(r)
}

func (v *valueDecoder) DecodeEntries(fn func(name string, d record.Decoder) error) error {
	if err := v.begin(types.TagCompound); err != nil {
		return err
	}

	return v.d.decodeEntries(fn)
}

func (v *valueDecoder) DecodeList(elem types.Kind, fn func(i, n int, d record.Decoder) error) error {
	if err := v.begin(types.TagList); err != nil {
		return err
	}

	return v.d.decodeList(elem, fn)
}

func (v *valueDecoder) DecodeValue() (types.Value, error) {
	if err := v.begin(v.kind); err != nil {
		return nil, err
	}

	val, err := v.d.readPayload(v.kind)
	if err != nil {
		return nil, err
	}

	return val, nil
}
