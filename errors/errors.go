// Package errors defines the errors returned by the NBT decoder and encoder.
//
// Sentinel errors are compared with errors.Is, typed errors are extracted
// with errors.As or one of the Is* helpers. Errors returned by the codec carry
// extra context (the stream offset, the field being decoded) but always match
// the sentinel or type they were created from.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrIO is the mark carried by every error coming from the underlying
	// byte source or sink, including the decompression layer.
	ErrIO = errors.New("i/o failure")

	// ErrUnexpectedEndOfStream is returned when the input ends in the middle of a tag.
	ErrUnexpectedEndOfStream = errors.New("unexpected end of stream")

	// ErrDepthLimitExceeded is returned when compounds and lists are nested
	// deeper than the configured maximum.
	ErrDepthLimitExceeded = errors.New("depth limit exceeded")

	// ErrDeclaredLengthExceedsInput is returned when a length or count prefix
	// is negative, larger than the configured maximum or larger than what
	// remains in the input.
	ErrDeclaredLengthExceedsInput = errors.New("declared length exceeds input")

	// ErrDuplicateName is returned when a compound contains the same name twice
	// and duplicates are rejected.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrValueTooLarge is returned by the encoder when a name, string or
	// sequence doesn't fit its length prefix.
	ErrValueTooLarge = errors.New("value too large")

	// ErrInvalidRoot marks errors caused by a document whose root is not a compound.
	ErrInvalidRoot = errors.New("invalid root")
)

// InvalidTagKindError is returned when a byte doesn't denote one of the
// twelve tag kinds, or denotes TAG_End where a value is expected.
type InvalidTagKindError struct {
	Kind byte
}

func NewInvalidTagKind(kind byte) error {
	return errors.WithStack(&InvalidTagKindError{Kind: kind})
}

func (e *InvalidTagKindError) Error() string {
	return fmt.Sprintf("invalid tag kind 0x%02x", e.Kind)
}

// InvalidStringError is returned when a name or string payload is not valid text.
type InvalidStringError struct {
	Bytes []byte
}

func NewInvalidString(b []byte) error {
	return errors.WithStack(&InvalidStringError{Bytes: b})
}

func (e *InvalidStringError) Error() string {
	return fmt.Sprintf("invalid string %q", e.Bytes)
}

// TypeMismatchError is returned when a tag of one kind is found where
// another kind is expected.
type TypeMismatchError struct {
	Expected string
	Found    string
}

// NewTypeMismatch creates a TypeMismatchError from two kinds.
func NewTypeMismatch(expected, found fmt.Stringer) error {
	return errors.WithStack(&TypeMismatchError{
		Expected: expected.String(),
		Found:    found.String(),
	})
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, found %s", e.Expected, e.Found)
}

// MissingFieldError is returned when a required field is absent from a compound.
type MissingFieldError struct {
	Name string
}

func NewMissingField(name string) error {
	return errors.WithStack(&MissingFieldError{Name: name})
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Name)
}

// IOFailure marks err as an ErrIO. It returns nil if err is nil.
func IOFailure(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&markedError{cause: err, mark: ErrIO})
}

// InvalidRoot marks err as an ErrInvalidRoot.
func InvalidRoot(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&markedError{cause: err, mark: ErrInvalidRoot})
}

// markedError matches both its sentinel and its cause, with the standard
// library errors.Is as well as with cockroachdb/errors.
type markedError struct {
	cause error
	mark  error
}

func (e *markedError) Error() string {
	return e.mark.Error() + ": " + e.cause.Error()
}

func (e *markedError) Unwrap() error { return e.cause }

func (e *markedError) Is(target error) bool { return target == e.mark }
