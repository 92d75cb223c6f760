package encoding

import (
	"io"
	"math"

	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

// The writer flushes its buffer once it grows past this size.
const flushThreshold = 32 << 10

// Writer writes NBT primitives to a byte sink.
// Writes are buffered, Flush must be called once the document is complete.
// After the first failed write, every method returns the same error.
type Writer struct {
	// ModifiedUTF8 makes the writer encode text as Java modified UTF-8.
	ModifiedUTF8 bool

	w    io.Writer
	buf  []byte
	n    int64
	mark int64
	err  error
}

// NewWriter creates a writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:   w,
		buf: make([]byte, 0, 512),
	}
}

// Offset returns the number of bytes written so far, including buffered ones.
func (w *Writer) Offset() int64 {
	return w.n + int64(len(w.buf))
}

func (w *Writer) append(b []byte) error {
	if w.err != nil {
		return w.err
	}

	w.buf = b
	if len(w.buf) >= flushThreshold {
		return w.Flush()
	}

	return nil
}

// Begin marks the current offset as the start of a document.
func (w *Writer) Begin() {
	w.mark = w.Offset()
}

// Rollback drops everything written since the last call to Begin.
// If part of it was already flushed the stream can't be repaired and
// the writer fails from then on.
func (w *Writer) Rollback() {
	if w.err != nil {
		return
	}
	if w.mark < w.n {
		w.err = errors.Newf("document starting at offset %d was partially written", w.mark)
		return
	}

	w.buf = w.buf[:w.mark-w.n]
}

// Flush writes the buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.buf) == 0 {
		return nil
	}

	n, err := w.w.Write(w.buf)
	w.n += int64(n)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = errs.IOFailure(err)
		return w.err
	}

	w.buf = w.buf[:0]
	return nil
}

func (w *Writer) WriteByte(b byte) error {
	return w.append(append(w.buf, b))
}

func (w *Writer) WriteInt8(x int8) error {
	return w.WriteByte(byte(x))
}

func (w *Writer) WriteInt16(x int16) error {
	return w.append(write2(w.buf, uint16(x)))
}

func (w *Writer) WriteInt32(x int32) error {
	return w.append(write4(w.buf, uint32(x)))
}

func (w *Writer) WriteInt64(x int64) error {
	return w.append(write8(w.buf, uint64(x)))
}

func (w *Writer) WriteFloat32(x float32) error {
	return w.append(write4(w.buf, math.Float32bits(x)))
}

func (w *Writer) WriteFloat64(x float64) error {
	return w.append(write8(w.buf, math.Float64bits(x)))
}

// WriteLength writes a signed 32-bit count.
func (w *Writer) WriteLength(n int) error {
	if n < 0 || n > math.MaxInt32 {
		return errors.Wrapf(errs.ErrValueTooLarge, "length %d doesn't fit a 32-bit count", n)
	}

	return w.WriteInt32(int32(n))
}

// WriteString writes text prefixed by its unsigned 16-bit encoded length.
func (w *Writer) WriteString(s string) error {
	var b []byte
	if w.ModifiedUTF8 {
		b = EncodeModifiedUTF8(nil, s)
	} else {
		b = []byte(s)
	}

	if len(b) > math.MaxUint16 {
		return errors.Wrapf(errs.ErrValueTooLarge, "string of %d bytes doesn't fit a 16-bit length", len(b))
	}

	dst := write2(w.buf, uint16(len(b)))
	return w.append(append(dst, b...))
}

func (w *Writer) WriteInt8s(values []int8) error {
	if err := w.WriteLength(len(values)); err != nil {
		return err
	}

	return w.append(appendSigned(w.buf, values, 1))
}

func (w *Writer) WriteInt32s(values []int32) error {
	if err := w.WriteLength(len(values)); err != nil {
		return err
	}

	return w.append(appendSigned(w.buf, values, 4))
}

func (w *Writer) WriteInt64s(values []int64) error {
	if err := w.WriteLength(len(values)); err != nil {
		return err
	}

	return w.append(appendSigned(w.buf, values, 8))
}
