// Package compress wraps byte sources and sinks with the compression
// layers NBT files commonly use.
package compress

import (
	"bufio"
	"io"

	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression identifies the layer wrapping an NBT stream.
type Compression uint8

const (
	// None reads and writes raw NBT.
	None Compression = iota
	// Gzip is the usual wrapping of files such as level.dat.
	Gzip
	// Zlib is used by region file chunks.
	Zlib
	// Auto detects gzip and zlib streams from their first bytes and
	// falls back to raw NBT. Writers treat it as Gzip.
	Auto
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zlib:
		return "zlib"
	case Auto:
		return "auto"
	}

	return "unknown"
}

// Parse returns the compression called name.
func Parse(name string) (Compression, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zlib":
		return Zlib, nil
	case "auto":
		return Auto, nil
	}

	return 0, errors.Errorf("unknown compression %q", name)
}

// Detect returns the compression of a stream starting with header.
// It never returns Auto.
func Detect(header []byte) Compression {
	if len(header) < 2 {
		return None
	}

	if header[0] == 0x1f && header[1] == 0x8b {
		return Gzip
	}

	// zlib: deflate method with a header checksum multiple of 31
	if header[0]&0x0f == 8 && header[0]>>4 <= 7 && (uint16(header[0])<<8|uint16(header[1]))%31 == 0 {
		return Zlib
	}

	return None
}

type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error { return nil }

// NewReader returns a reader decompressing r. Closing it doesn't close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Auto {
		br := bufio.NewReader(r)
		header, err := br.Peek(2)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, errs.IOFailure(err)
		}
		c = Detect(header)
		r = br
	}

	switch c {
	case None:
		return nopCloser{r}, nil
	case Gzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errs.IOFailure(errors.Wrap(err, "gzip"))
		}
		return zr, nil
	case Zlib:
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, errs.IOFailure(errors.Wrap(err, "zlib"))
		}
		return zr, nil
	}

	return nil, errors.Errorf("unsupported compression %d", c)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// NewWriter returns a writer compressing to w. It must be closed to flush
// the compressed stream. Closing it doesn't close w.
func NewWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip, Auto:
		return gzip.NewWriter(w), nil
	case Zlib:
		return zlib.NewWriter(w), nil
	}

	return nil, errors.Errorf("unsupported compression %d", c)
}
