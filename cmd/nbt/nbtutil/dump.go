package nbtutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chaisql/nbt"
	"github.com/chaisql/nbt/internal/export"
	"github.com/chaisql/nbt/types"
	"github.com/cockroachdb/errors"
)

// Dump writes doc to w as indented typed JSON, which Pack turns back
// into the exact same document.
func Dump(w io.Writer, doc *types.Document) error {
	b, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return errors.WithStack(err)
	}
	buf.WriteByte('\n')

	_, err = buf.WriteTo(w)
	return errors.WithStack(err)
}

// Pack reads a typed JSON document produced by Dump from r
// and encodes it to w. The nesting of the input is bounded by opts.MaxDepth.
func Pack(r io.Reader, w io.Writer, opts *nbt.Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}

	maxDepth := nbt.DefaultMaxDepth
	if opts != nil && opts.MaxDepth > 0 {
		maxDepth = opts.MaxDepth
	}

	var doc types.Document
	if err := doc.UnmarshalJSONDepth(data, maxDepth); err != nil {
		return errors.Wrap(err, "invalid typed JSON document")
	}

	return WriteDocument(w, &doc, opts)
}

// Get writes the value found at path in SNBT notation.
func Get(w io.Writer, doc *types.Document, path string) error {
	v, err := doc.Get(path)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, v)
	return errors.WithStack(err)
}

// Export writes the value found at path in the given plain format.
// An empty path exports the root compound.
func Export(w io.Writer, doc *types.Document, path string, f export.Format) error {
	v, err := doc.Get(path)
	if err != nil {
		return err
	}

	return export.Write(w, v, f)
}
