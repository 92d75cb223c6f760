// Package types defines the in-memory representation of NBT data: the
// twelve tag kinds, the Value union and the ordered Compound container.
package types

import (
	"fmt"

	errs "github.com/chaisql/nbt/errors"
	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound is returned when a path doesn't lead to a value.
	ErrNotFound = errors.New("value not found")
)

// Kind identifies one of the tag kinds of the NBT format.
// Its numeric value is the byte used on the wire.
type Kind uint8

// List of tag kinds.
const (
	TagEnd Kind = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

var kindLabels = [...]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_ByteArray",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_IntArray",
	TagLongArray: "TAG_LongArray",
}

// String returns the canonical label of the kind, e.g. "TAG_Compound".
func (k Kind) String() string {
	if k.IsValid() {
		return kindLabels[k]
	}

	return fmt.Sprintf("TAG_Unknown(%d)", uint8(k))
}

// IsValid reports whether k is one of the thirteen wire kinds, TAG_End included.
func (k Kind) IsValid() bool {
	return k <= TagLongArray
}

// IsContainer returns true for lists and compounds.
func (k Kind) IsContainer() bool {
	return k == TagList || k == TagCompound
}

// IsArray returns true for the three typed array kinds.
func (k Kind) IsArray() bool {
	return k == TagByteArray || k == TagIntArray || k == TagLongArray
}

// ParseKind returns the kind whose label is s.
func ParseKind(s string) (Kind, error) {
	for k, label := range kindLabels {
		if label == s {
			return Kind(k), nil
		}
	}

	return 0, errors.Errorf("unknown tag kind %q", s)
}

// KindFromByte validates b as a wire kind. TAG_End is accepted.
func KindFromByte(b byte) (Kind, error) {
	k := Kind(b)
	if !k.IsValid() {
		return 0, errs.NewInvalidTagKind(b)
	}

	return k, nil
}

// A Value is one node of an NBT tree.
// The concrete types of this package are the only implementations.
type Value interface {
	// Kind returns the tag kind of the value.
	Kind() Kind
	// V returns the payload as a plain Go value.
	V() any
	// String returns the value in SNBT notation.
	String() string
}

// KindOf returns the kind of v, or TAG_End if v is nil.
func KindOf(v Value) Kind {
	if v == nil {
		return TagEnd
	}

	return v.Kind()
}
