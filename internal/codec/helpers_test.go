package codec_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/chaisql/nbt/internal/codec"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/stretchr/testify/require"
)

// builder writes raw NBT by hand.
type builder struct {
	b []byte
}

func (b *builder) kind(k types.Kind) *builder {
	b.b = append(b.b, byte(k))
	return b
}

func (b *builder) str(s string) *builder {
	b.b = binary.BigEndian.AppendUint16(b.b, uint16(len(s)))
	b.b = append(b.b, s...)
	return b
}

func (b *builder) named(k types.Kind, name string) *builder {
	return b.kind(k).str(name)
}

func (b *builder) i8(x int8) *builder {
	b.b = append(b.b, byte(x))
	return b
}

func (b *builder) i16(x int16) *builder {
	b.b = binary.BigEndian.AppendUint16(b.b, uint16(x))
	return b
}

func (b *builder) i32(x int32) *builder {
	b.b = binary.BigEndian.AppendUint32(b.b, uint32(x))
	return b
}

func (b *builder) i64(x int64) *builder {
	b.b = binary.BigEndian.AppendUint64(b.b, uint64(x))
	return b
}

func (b *builder) f32(x float32) *builder {
	b.b = binary.BigEndian.AppendUint32(b.b, math.Float32bits(x))
	return b
}

func (b *builder) f64(x float64) *builder {
	b.b = binary.BigEndian.AppendUint64(b.b, math.Float64bits(x))
	return b
}

func (b *builder) end() *builder {
	return b.kind(types.TagEnd)
}

func (b *builder) bytes() []byte {
	return b.b
}

// unsized hides the Len method of the wrapped reader.
type unsized struct {
	io.Reader
}

func decodeTree(data []byte, opts codec.Options) (*types.Document, error) {
	return codec.NewDecoder(encoding.NewReader(bytes.NewReader(data)), opts).DecodeDocument()
}

func decodeRecord(data []byte, rec record.Record, opts codec.Options) (string, error) {
	return codec.NewDecoder(encoding.NewReader(bytes.NewReader(data)), opts).DecodeRecord(rec)
}

func encodeTree(t testing.TB, doc *types.Document) []byte {
	t.Helper()

	var buf bytes.Buffer
	err := codec.NewEncoder(encoding.NewWriter(&buf), codec.Options{}).EncodeDocument(doc)
	require.NoError(t, err)
	return buf.Bytes()
}

func encodeRecord(name string, rec record.Record, opts codec.Options) ([]byte, error) {
	var buf bytes.Buffer
	err := codec.NewEncoder(encoding.NewWriter(&buf), opts).EncodeRecord(name, rec)
	return buf.Bytes(), err
}

// nested returns a document made of depth nested compounds, the root
// included.
func nested(depth int) []byte {
	var b builder
	b.named(types.TagCompound, "")
	for i := 1; i < depth; i++ {
		b.named(types.TagCompound, "c")
	}
	for i := 0; i < depth; i++ {
		b.end()
	}

	return b.bytes()
}

// nestedLists returns a document whose root holds lists nested so that
// the total depth, root included, is depth.
func nestedLists(depth int) []byte {
	var b builder
	b.named(types.TagCompound, "")
	b.named(types.TagList, "l")
	for i := 2; i < depth; i++ {
		b.kind(types.TagList).i32(1)
	}
	b.kind(types.TagInt).i32(1).i32(7)
	b.end()

	return b.bytes()
}
