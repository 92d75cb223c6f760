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

// An Encoder writes a sequence of documents to a stream.
// With a compression other than Uncompressed, Close must be called
// to terminate the compressed stream.
type Encoder struct {
	dst  io.Writer
	opts Options

	zw  io.WriteCloser
	enc *codec.Encoder
	err error
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer, opts *Options) *Encoder {
	return &Encoder{
		dst:  w,
		opts: opts.normalize(),
	}
}

func (e *Encoder) init() error {
	if e.enc != nil || e.err != nil {
		return e.err
	}

	e.zw, e.err = compress.NewWriter(e.dst, e.opts.Compression)
	if e.err != nil {
		return e.err
	}

	e.enc = codec.NewEncoder(e.opts.writer(encoding.NewWriter(e.zw)), e.opts.codec())
	return nil
}

// EncodeTree writes doc.
func (e *Encoder) EncodeTree(doc *types.Document) error {
	if doc == nil {
		return errors.New("nil document")
	}
	if err := e.init(); err != nil {
		return err
	}

	return e.enc.EncodeDocument(doc)
}

// Encode writes rec as the root compound of a document called name.
func (e *Encoder) Encode(name string, rec record.Record) error {
	if err := e.init(); err != nil {
		return err
	}

	return e.enc.EncodeRecord(name, rec)
}

// Close terminates the compressed stream. It doesn't close the destination.
func (e *Encoder) Close() error {
	if e.zw == nil {
		return nil
	}

	return errs.IOFailure(e.zw.Close())
}
