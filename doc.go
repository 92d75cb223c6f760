/*
Package nbt reads and writes the Named Binary Tag format, the binary
serialization of Minecraft worlds, player data and network payloads.

A document is a named root compound holding a tree of tagged values. Numbers
are big-endian, names and strings are prefixed with their byte length and
lists are homogeneous.

Tree mode

The tree mode decodes a document into values of the types package, which
can be inspected, modified and encoded back:

	doc, err := nbt.DecodeTreeGzip(f)
	if err != nil {
		return err
	}

	v, err := doc.Get("Data.Player.Inventory[0].id")

Structural mode

The structural mode maps compounds to Go values without reflection. A type
implements the record.Record interface by listing its fields:

	type Item struct {
		ID    string
		Count int8
	}

	func (i *Item) Fields() []record.Field {
		return []record.Field{
			record.String("id", &i.ID).Require(),
			record.Byte("Count", &i.Count),
		}
	}

The same description is used to decode and to encode:

	item, err := nbt.Decode[Item](r, nil)

	err = nbt.EncodeFrom(w, "", &item)

Unknown names are skipped when decoding, missing names are left untouched
unless the field is required.

Limits

Decoding untrusted input is bounded: compounds and lists can't be nested
deeper than Options.MaxDepth and no string or array payload larger than
Options.MaxLength is allocated. Declared lengths are checked against the
remaining input whenever its size is known.

Errors

Every error returned by this package matches one of the sentinels or types
of the errors package, annotated with the byte offset where decoding failed.
*/
package nbt
