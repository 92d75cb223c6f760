// Package export renders value trees as plain JSON, YAML or CBOR,
// dropping the tag kinds that the typed JSON of the types package keeps.
// Compounds become maps, lists and arrays become sequences and numbers
// keep their value but not their width.
package export

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"reflect"

	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format of an export.
type Format uint8

const (
	JSON Format = iota
	YAML
	CBOR
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case CBOR:
		return "cbor"
	}

	return "unknown"
}

// ParseFormat returns the format called name.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	}

	return 0, errors.Errorf("unknown export format %q", name)
}

// encMode writes CBOR with Core Deterministic Encoding: compound names
// are sorted and the same tree always produces the same bytes.
var encMode cbor.EncMode

// decMode reads maps with string keys, the only ones exports contain.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("export: CBOR decoder initialization failed: " + err.Error())
	}
}

// Write renders v to w in the given format.
func Write(w io.Writer, v types.Value, f Format) error {
	if v == nil {
		return errors.New("cannot export nil value")
	}

	var err error
	switch f {
	case JSON:
		var b []byte
		b, err = MarshalJSON(v)
		if err == nil {
			_, err = w.Write(append(b, '\n'))
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(Plain(v, f))
		if err == nil {
			err = enc.Close()
		}
	case CBOR:
		err = encMode.NewEncoder(w).Encode(Plain(v, f))
	default:
		return errors.Errorf("unsupported export format %d", f)
	}

	return errors.Wrapf(err, "%s export", f)
}

// MarshalJSON renders v as indented JSON, keeping compound names in order.
func MarshalJSON(v types.Value) ([]byte, error) {
	b, err := json.Marshal(Plain(v, JSON))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return nil, errors.WithStack(err)
	}

	return buf.Bytes(), nil
}

// UnmarshalCBOR decodes a CBOR export. Compounds are decoded as
// map[string]any.
func UnmarshalCBOR(data []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, errors.WithStack(err)
	}

	return v, nil
}

// Plain converts v to plain Go values ready to be marshaled in format f.
// Compounds become *Object values, or maps for CBOR whose encoding sorts
// names anyway. JSON has no representation of non finite floats, which
// are converted to the strings "NaN", "+Inf" and "-Inf".
func Plain(v types.Value, f Format) any {
	switch x := v.(type) {
	case types.ByteValue:
		return int8(x)
	case types.ShortValue:
		return int16(x)
	case types.IntValue:
		return int32(x)
	case types.LongValue:
		return int64(x)
	case types.FloatValue:
		return plainFloat(float32(x), float64(x), f)
	case types.DoubleValue:
		return plainFloat(float64(x), float64(x), f)
	case types.StringValue:
		return string(x)
	case types.ByteArrayValue:
		return []int8(x)
	case types.IntArrayValue:
		return []int32(x)
	case types.LongArrayValue:
		return []int64(x)
	case *types.List:
		values := make([]any, 0, x.Len())
		for _, e := range x.Values() {
			values = append(values, Plain(e, f))
		}
		return values
	case *types.Compound:
		if f == CBOR {
			m := make(map[string]any, x.Len())
			_ = x.Iterate(func(name string, v types.Value) error {
				m[name] = Plain(v, f)
				return nil
			})
			return m
		}

		o := Object{Names: make([]string, 0, x.Len()), Values: make([]any, 0, x.Len())}
		_ = x.Iterate(func(name string, v types.Value) error {
			o.Names = append(o.Names, name)
			o.Values = append(o.Values, Plain(v, f))
			return nil
		})
		return &o
	}

	return nil
}

func plainFloat[T float32 | float64](x T, f64 float64, f Format) any {
	if f != JSON {
		return x
	}

	switch {
	case math.IsNaN(f64):
		return "NaN"
	case math.IsInf(f64, 1):
		return "+Inf"
	case math.IsInf(f64, -1):
		return "-Inf"
	}

	return x
}

// Object is a map whose names keep their order when marshaled.
type Object struct {
	Names  []string
	Values []any
}

func (o *Object) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, name := range o.Names {
		if i > 0 {
			buf = append(buf, ',')
		}

		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(o.Values[i])
		if err != nil {
			return nil, errors.Wrapf(err, "entry %q", name)
		}

		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}

	return append(buf, '}'), nil
}

func (o *Object) MarshalYAML() (any, error) {
	node := yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, name := range o.Names {
		var value yaml.Node
		if err := value.Encode(o.Values[i]); err != nil {
			return nil, errors.Wrapf(err, "entry %q", name)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&value,
		)
	}

	return &node, nil
}
