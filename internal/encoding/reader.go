// Package encoding implements the primitive layer of the NBT wire format:
// fixed-width big-endian numbers, length-prefixed text and counted arrays.
package encoding

import (
	"bufio"
	"io"
	"math"
	"unicode/utf8"

	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

// Payloads whose size can't be checked against the remaining input
// are read by chunks of this size, so that a forged length fails on
// the end of the stream instead of allocating the whole declared size.
const chunkSize = 64 << 10

// Reader reads NBT primitives from a byte source.
// Every read consumes exactly the requested number of bytes or fails.
type Reader struct {
	// MaxLength is the maximum size in bytes of a single string or array
	// payload. Zero means no limit besides the input itself.
	MaxLength int
	// ModifiedUTF8 makes the reader decode text as Java modified UTF-8.
	ModifiedUTF8 bool

	r       io.Reader
	sized   interface{ Len() int }
	offset  int64
	scratch [8]byte
}

// NewReader creates a reader over r. Sources exposing their remaining size
// through a Len method (bytes.Reader, bytes.Buffer, strings.Reader) are read
// directly, other sources are buffered.
func NewReader(r io.Reader) *Reader {
	rd := Reader{r: r}

	if s, ok := r.(interface{ Len() int }); ok {
		rd.sized = s
	} else {
		rd.r = bufio.NewReader(r)
	}

	return &rd
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

func (r *Reader) readFull(b []byte) error {
	n, err := io.ReadFull(r.r, b)
	r.offset += int64(n)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(errs.ErrUnexpectedEndOfStream, "needed %d bytes, got %d", len(b), n)
	}

	return errs.IOFailure(err)
}

func (r *Reader) fixed(n int) ([]byte, error) {
	b := r.scratch[:n]
	if err := r.readFull(b); err != nil {
		return nil, err
	}

	return b, nil
}

func (r *Reader) ReadByte() (byte, error) {
	b, err := r.fixed(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.fixed(2)
	if err != nil {
		return 0, err
	}

	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	x, err := r.ReadUint16()
	return int16(x), err
}

func (r *Reader) readUint32() (uint32, error) {
	b, err := r.fixed(4)
	if err != nil {
		return 0, err
	}

	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	x, err := r.readUint32()
	return int32(x), err
}

func (r *Reader) readUint64() (uint64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}

	var x uint64
	for _, c := range b {
		x = x<<8 | uint64(c)
	}
	return x, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	x, err := r.readUint64()
	return int64(x), err
}

func (r *Reader) ReadFloat32() (float32, error) {
	x, err := r.readUint32()
	return math.Float32frombits(x), err
}

func (r *Reader) ReadFloat64() (float64, error) {
	x, err := r.readUint64()
	return math.Float64frombits(x), err
}

// ReadLength reads a signed 32-bit count. Negative counts are rejected.
func (r *Reader) ReadLength() (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Wrapf(errs.ErrDeclaredLengthExceedsInput, "negative length %d", n)
	}

	return int(n), nil
}

// CheckLength verifies that n elements of the given width in bytes can
// be read: they must fit MaxLength and, when known, the remaining input.
func (r *Reader) CheckLength(n, width int) error {
	if n < 0 {
		return errors.Wrapf(errs.ErrDeclaredLengthExceedsInput, "negative length %d", n)
	}

	size := int64(n) * int64(width)
	if r.MaxLength > 0 && size > int64(r.MaxLength) {
		return errors.Wrapf(errs.ErrDeclaredLengthExceedsInput, "%d bytes exceeds the limit of %d", size, r.MaxLength)
	}
	if r.sized != nil && size > int64(r.sized.Len()) {
		return errors.Wrapf(errs.ErrDeclaredLengthExceedsInput, "%d bytes declared, %d remaining", size, r.sized.Len())
	}

	return nil
}

// Remaining returns the number of unread bytes, or -1 if the source
// doesn't expose it.
func (r *Reader) Remaining() int {
	if r.sized == nil {
		return -1
	}

	return r.sized.Len()
}

// ReadBytes reads exactly n raw bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.CheckLength(n, 1); err != nil {
		return nil, err
	}

	if n <= chunkSize || r.sized != nil {
		b := make([]byte, n)
		if err := r.readFull(b); err != nil {
			return nil, err
		}
		return b, nil
	}

	b := make([]byte, 0, chunkSize)
	for len(b) < n {
		start := len(b)
		b = append(b, make([]byte, min(n-start, chunkSize))...)
		if err := r.readFull(b[start:]); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Skip discards n elements of the given width.
func (r *Reader) Skip(n, width int) error {
	if err := r.CheckLength(n, width); err != nil {
		return err
	}

	return r.Discard(int64(n) * int64(width))
}

// Discard consumes size bytes. Unlike Skip, it ignores MaxLength.
func (r *Reader) Discard(size int64) error {
	m, err := io.CopyN(io.Discard, r.r, size)
	r.offset += m
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return errors.Wrapf(errs.ErrUnexpectedEndOfStream, "needed %d bytes, got %d", size, m)
	}

	return errs.IOFailure(err)
}

func (r *Reader) ReadInt8s(n int) ([]int8, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}

	return decodeSigned[int8](b, 1), nil
}

func (r *Reader) ReadInt32s(n int) ([]int32, error) {
	if err := r.CheckLength(n, 4); err != nil {
		return nil, err
	}

	b, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}

	return decodeSigned[int32](b, 4), nil
}

func (r *Reader) ReadInt64s(n int) ([]int64, error) {
	if err := r.CheckLength(n, 8); err != nil {
		return nil, err
	}

	b, err := r.ReadBytes(n * 8)
	if err != nil {
		return nil, err
	}

	return decodeSigned[int64](b, 8), nil
}

// ReadString reads a text payload prefixed by its unsigned 16-bit length.
// Names and TAG_String payloads share this layout.
func (r *Reader) ReadString() (string, error) {
	l, err := r.ReadUint16()
	if err != nil {
		return "", err
	}

	b, err := r.ReadBytes(int(l))
	if err != nil {
		return "", err
	}

	return r.decodeText(b)
}

// SkipString discards a length-prefixed text payload without decoding it.
func (r *Reader) SkipString() error {
	l, err := r.ReadUint16()
	if err != nil {
		return err
	}

	return r.Skip(int(l), 1)
}

func (r *Reader) decodeText(b []byte) (string, error) {
	if r.ModifiedUTF8 {
		s, ok := DecodeModifiedUTF8(b)
		if !ok {
			return "", errs.NewInvalidString(b)
		}
		return s, nil
	}

	if !utf8.Valid(b) {
		return "", errs.NewInvalidString(b)
	}

	return string(b), nil
}
