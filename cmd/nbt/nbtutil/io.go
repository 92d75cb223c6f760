// Package nbtutil implements the operations of the nbt command line tool
// on top of readers and writers, so they can be tested without files.
package nbtutil

import (
	"io"
	"os"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenInput opens the file at path, or the standard input if path is "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// CreateOutput creates the file at path, or returns the standard output
// if path is empty or "-".
func CreateOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return f, nil
}

// ReadDocument decodes the first document of r.
func ReadDocument(r io.Reader, opts *nbt.Options) (*types.Document, error) {
	dec := nbt.NewDecoder(r, opts)
	defer dec.Close()

	return dec.DecodeTree()
}

// ReadDocuments decodes every document of r and calls fn for each of them.
// It returns the number of documents read.
func ReadDocuments(r io.Reader, opts *nbt.Options, fn func(doc *types.Document) error) (int, error) {
	dec := nbt.NewDecoder(r, opts)
	defer dec.Close()

	var n int
	for {
		doc, err := dec.DecodeTree()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrapf(err, "document %d", n)
		}

		n++
		if fn == nil {
			continue
		}
		if err := fn(doc); err != nil {
			return n, err
		}
	}
}

// WriteDocument encodes doc to w.
func WriteDocument(w io.Writer, doc *types.Document, opts *nbt.Options) error {
	enc := nbt.NewEncoder(w, opts)
	if err := enc.EncodeTree(doc); err != nil {
		return err
	}

	return enc.Close()
}
