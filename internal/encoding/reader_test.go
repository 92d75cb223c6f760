package encoding_test

import (
	"bytes"
	"io"
	"math"
	"testing"
	"testing/iotest"

	errs "github.com/chaisql/nbt/errors"
	"github.com/chaisql/nbt/internal/encoding"
	"github.com/stretchr/testify/require"
)

func TestReaderNumbers(t *testing.T) {
	data := []byte{
		0xFF,
		0x80, 0x00,
		0x7F, 0xFF, 0xFF, 0xFF,
		0x7F, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0x3F, 0x80, 0x00, 0x00,
		0xBF, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	r := encoding.NewReader(bytes.NewReader(data))

	b, err := r.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), b)

	s, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(math.MinInt16), s)

	i, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(math.MaxInt32), i)

	l, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), l)

	f, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(1), f)

	d, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, float64(-1), d)

	require.Equal(t, int64(len(data)), r.Offset())

	_, err = r.ReadInt8()
	require.ErrorIs(t, err, errs.ErrUnexpectedEndOfStream)
}

func TestReaderShortRead(t *testing.T) {
	tests := []struct {
		name string
		read func(r *encoding.Reader) error
	}{
		{"int16", func(r *encoding.Reader) error { _, err := r.ReadInt16(); return err }},
		{"int32", func(r *encoding.Reader) error { _, err := r.ReadInt32(); return err }},
		{"int64", func(r *encoding.Reader) error { _, err := r.ReadInt64(); return err }},
		{"float64", func(r *encoding.Reader) error { _, err := r.ReadFloat64(); return err }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// unsized source, goes through the buffered path
			r := encoding.NewReader(iotest.OneByteReader(bytes.NewReader([]byte{1})))
			require.ErrorIs(t, test.read(r), errs.ErrUnexpectedEndOfStream)
		})
	}
}

func TestReaderString(t *testing.T) {
	r := encoding.NewReader(bytes.NewReader([]byte{0x00, 0x04, 'n', 'a', 'm', 'e', 0x00, 0x00}))

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "name", s)

	s, err = r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "", s)
}

func TestReaderInvalidString(t *testing.T) {
	r := encoding.NewReader(bytes.NewReader([]byte{0x00, 0x02, 0xC3, 0x28}))

	_, err := r.ReadString()
	require.True(t, errs.IsInvalidString(err))
}

func TestReaderLengthChecks(t *testing.T) {
	t.Run("negative", func(t *testing.T) {
		r := encoding.NewReader(bytes.NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF}))
		_, err := r.ReadLength()
		require.ErrorIs(t, err, errs.ErrDeclaredLengthExceedsInput)
	})

	t.Run("exceeds remaining", func(t *testing.T) {
		r := encoding.NewReader(bytes.NewReader([]byte{1, 2, 3}))
		_, err := r.ReadInt32s(1)
		require.ErrorIs(t, err, errs.ErrDeclaredLengthExceedsInput)
		// nothing was consumed
		require.Equal(t, int64(0), r.Offset())
	})

	t.Run("exceeds max length", func(t *testing.T) {
		r := encoding.NewReader(bytes.NewReader(make([]byte, 100)))
		r.MaxLength = 10
		_, err := r.ReadBytes(11)
		require.ErrorIs(t, err, errs.ErrDeclaredLengthExceedsInput)
	})

	t.Run("unsized source with forged length", func(t *testing.T) {
		r := encoding.NewReader(io.LimitReader(bytes.NewReader(make([]byte, 1000)), 1000))
		_, err := r.ReadBytes(math.MaxInt32)
		require.ErrorIs(t, err, errs.ErrUnexpectedEndOfStream)
	})
}

func TestReaderArrays(t *testing.T) {
	data := []byte{
		0xFF, 0x01,
		0x00, 0x00, 0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFE,
		0x80, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	r := encoding.NewReader(bytes.NewReader(data))

	bs, err := r.ReadInt8s(2)
	require.NoError(t, err)
	require.Equal(t, []int8{-1, 1}, bs)

	is, err := r.ReadInt32s(2)
	require.NoError(t, err)
	require.Equal(t, []int32{1, -2}, is)

	ls, err := r.ReadInt64s(1)
	require.NoError(t, err)
	require.Equal(t, []int64{math.MinInt64}, ls)
}

func TestReaderSkip(t *testing.T) {
	r := encoding.NewReader(bytes.NewReader([]byte{0x00, 0x03, 'a', 'b', 'c', 0x07}))

	require.NoError(t, r.SkipString())
	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(7), b)

	require.ErrorIs(t, r.Skip(1, 4), errs.ErrDeclaredLengthExceedsInput)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReaderIOFailure(t *testing.T) {
	r := encoding.NewReader(failingReader{})
	_, err := r.ReadInt32()
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, io.ErrClosedPipe)
}
