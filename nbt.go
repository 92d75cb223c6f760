package nbt

import (
	"bytes"
	"io"

	"github.com/chaisql/nbt/record"
	"github.com/chaisql/nbt/types"
)

// DecodeTree reads one uncompressed document from r.
func DecodeTree(r io.Reader) (*types.Document, error) {
	return NewDecoder(r, nil).DecodeTree()
}

// DecodeTreeGzip reads one gzip compressed document from r.
func DecodeTreeGzip(r io.Reader) (*types.Document, error) {
	dec := NewDecoder(r, withCompression(nil, Gzip))
	defer dec.Close()

	return dec.DecodeTree()
}

// DecodeInto reads one uncompressed document from r into rec
// and returns the name of its root. On error rec is restored as described
// for Decoder.Decode.
func DecodeInto(r io.Reader, rec record.Record) (string, error) {
	return NewDecoder(r, nil).Decode(rec)
}

// DecodeIntoGzip reads one gzip compressed document from r into rec
// and returns the name of its root.
func DecodeIntoGzip(r io.Reader, rec record.Record) (string, error) {
	dec := NewDecoder(r, withCompression(nil, Gzip))
	defer dec.Close()

	return dec.Decode(rec)
}

// Decode reads one document from r into a new value of type T.
func Decode[T any, PT record.Ptr[T]](r io.Reader, opts *Options) (T, error) {
	var v T

	dec := NewDecoder(r, opts)
	defer dec.Close()

	if _, err := dec.Decode(PT(&v)); err != nil {
		var zero T
		return zero, err
	}

	return v, nil
}

// EncodeTree writes doc to w without compression.
func EncodeTree(w io.Writer, doc *types.Document) error {
	return NewEncoder(w, nil).EncodeTree(doc)
}

// EncodeTreeGzip writes doc to w as a gzip stream.
func EncodeTreeGzip(w io.Writer, doc *types.Document) error {
	enc := NewEncoder(w, withCompression(nil, Gzip))
	if err := enc.EncodeTree(doc); err != nil {
		return err
	}

	return enc.Close()
}

// EncodeFrom writes rec to w without compression, as the root compound
// of a document called name.
func EncodeFrom(w io.Writer, name string, rec record.Record) error {
	return NewEncoder(w, nil).Encode(name, rec)
}

// EncodeFromGzip writes rec to w as a gzip stream, as the root compound
// of a document called name.
func EncodeFromGzip(w io.Writer, name string, rec record.Record) error {
	enc := NewEncoder(w, withCompression(nil, Gzip))
	if err := enc.Encode(name, rec); err != nil {
		return err
	}

	return enc.Close()
}

// Marshal returns the uncompressed encoding of rec, as the root compound
// of a document called name.
func Marshal(name string, rec record.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeFrom(&buf, name, rec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes the uncompressed document in data into rec.
// On error rec is restored as described for Decoder.Decode.
func Unmarshal(data []byte, rec record.Record) error {
	_, err := DecodeInto(bytes.NewReader(data), rec)
	return err
}

// MarshalTree returns the uncompressed encoding of doc.
func MarshalTree(doc *types.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTree(&buf, doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalTree decodes the uncompressed document in data.
func UnmarshalTree(data []byte) (*types.Document, error) {
	return DecodeTree(bytes.NewReader(data))
}
