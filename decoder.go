package nbt

import (
	"io"

	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/codec"
	"github.com/chaisql/nbt/internal/compress"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// A Decoder reads a sequence of documents from a stream.
// The compression layer, if any, is set up on the first call.
type Decoder struct {
	src  io.Reader
	opts Options

	zr    io.ReadCloser
	dec   *codec.Decoder
	r     *encoding.Reader
	count int
	err   error
}

// NewDecoder creates a decoder reading from r.
// Sized sources such as bytes.Reader allow declared lengths to be checked
// against the remaining input before anything is allocated.
func NewDecoder(r io.Reader, opts *Options) *Decoder {
	return &Decoder{
		src:  r,
		opts: opts.normalize(),
	}
}

func (d *Decoder) init() error {
	if d.dec != nil || d.err != nil {
		return d.err
	}

	src := d.src
	if d.opts.Compression != Uncompressed {
		d.zr, d.err = compress.NewReader(d.src, d.opts.Compression)
		if d.err != nil {
			return d.err
		}
		src = d.zr
	}

	d.r = d.opts.reader(encoding.NewReader(src))
	d.dec = codec.NewDecoder(d.r, d.opts.codec())
	return nil
}

// end converts the end of the stream found before the first byte of a
// document, other than the first one, into io.EOF.
func (d *Decoder) end(start int64, err error) error {
	if d.count > 0 && d.r.Offset() == start && errors.Is(err, errs.ErrUnexpectedEndOfStream) {
		return io.EOF
	}

	return err
}

// DecodeTree reads the next document as a tree.
// It returns io.EOF when the stream ends cleanly after a document.
func (d *Decoder) DecodeTree() (*types.Document, error) {
	if err := d.init(); err != nil {
		return nil, err
	}

	start := d.r.Offset()
	doc, err := d.dec.DecodeDocument()
	if err != nil {
		return nil, d.end(start, err)
	}

	d.count++
	return doc, nil
}

// Decode reads the next document into rec and returns the name of its root.
// It returns io.EOF when the stream ends cleanly after a document.
// When rec is a pointer, the value it points to is restored if decoding
// fails; values reached through other pointers, or through the fields of a
// FieldList, may be left partially decoded.
func (d *Decoder) Decode(rec record.Record) (string, error) {
	if err := d.init(); err != nil {
		return "", err
	}

	restore := record.Snapshot(rec)
	start := d.r.Offset()
	name, err := d.dec.DecodeRecord(rec)
	if err != nil {
		restore()
		return "", d.end(start, err)
	}

	d.count++
	return name, nil
}

// Offset returns the number of decompressed bytes consumed so far.
func (d *Decoder) Offset() int64 {
	if d.r == nil {
		return 0
	}

	return d.r.Offset()
}

// Close releases the decompression layer. It doesn't close the source.
func (d *Decoder) Close() error {
	if d.zr == nil {
		return nil
	}

	return d.zr.Close()
}
