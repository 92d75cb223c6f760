package nbt

import (
	"github.com/chaisql/nbt/internal/codec"
	"github.com/chaisql/nbt/internal/compress"
	"github.com/chaisql/nbt/internal/encoding"
)

// Compression identifies the layer wrapping an NBT stream.
type Compression = compress.Compression

// List of supported compressions.
const (
	Uncompressed = compress.None
	Gzip         = compress.Gzip
	Zlib         = compress.Zlib
	// AutoDetect recognizes gzip and zlib streams when decoding and
	// falls back to raw NBT. Encoders use gzip.
	AutoDetect = compress.Auto
)

// ParseCompression returns the compression called name:
// "none", "gzip", "zlib" or "auto".
func ParseCompression(name string) (Compression, error) {
	return compress.Parse(name)
}

const (
	// DefaultMaxDepth is the default nesting limit of compounds and lists.
	DefaultMaxDepth = codec.DefaultMaxDepth
	// DefaultMaxLength is the default size limit of a single string or
	// array payload, in bytes.
	DefaultMaxLength = 64 << 20
)

// Options of the decoder and the encoder.
// A nil *Options is equivalent to the default options.
type Options struct {
	// MaxDepth is the maximum number of nested compounds and lists, the
	// root compound included. Zero means DefaultMaxDepth.
	MaxDepth int
	// MaxLength is the maximum size in bytes of a single string or array
	// payload. Zero means DefaultMaxLength, a negative value disables the
	// limit.
	MaxLength int
	// ModifiedUTF8 reads and writes text as Java modified UTF-8 instead
	// of standard UTF-8.
	ModifiedUTF8 bool
	// RejectDuplicateNames makes the decoder fail when a compound holds
	// the same name twice. By default the last occurrence wins.
	RejectDuplicateNames bool
	// Compression of the stream.
	Compression Compression
}

func defaultOptions() *Options {
	return &Options{
		MaxDepth:  DefaultMaxDepth,
		MaxLength: DefaultMaxLength,
	}
}

// normalize returns a copy of o with the defaults applied.
func (o *Options) normalize() Options {
	if o == nil {
		return *defaultOptions()
	}

	opts := *o
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	switch {
	case opts.MaxLength == 0:
		opts.MaxLength = DefaultMaxLength
	case opts.MaxLength < 0:
		opts.MaxLength = 0
	}

	return opts
}

func (o *Options) codec() codec.Options {
	return codec.Options{
		MaxDepth:             o.MaxDepth,
		RejectDuplicateNames: o.RejectDuplicateNames,
	}
}

func (o *Options) reader(r *encoding.Reader) *encoding.Reader {
	r.MaxLength = o.MaxLength
	r.ModifiedUTF8 = o.ModifiedUTF8
	return r
}

func (o *Options) writer(w *encoding.Writer) *encoding.Writer {
	w.ModifiedUTF8 = o.ModifiedUTF8
	return w
}

func withCompression(opts *Options, c Compression) *Options {
	o := opts.normalize()
	o.Compression = c
	return &o
}
