package errors

import "github.com/cockroachdb/errors"

func IsInvalidTagKind(err error) bool {
	var e *InvalidTagKindError
	return errors.As(err, &e)
}

func IsInvalidString(err error) bool {
	var e *InvalidStringError
	return errors.As(err, &e)
}

func IsTypeMismatch(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}

func IsMissingField(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

// IsMalformed reports whether err was caused by invalid input rather than
// by the byte source or the caller.
func IsMalformed(err error) bool {
	switch {
	case errors.Is(err, ErrUnexpectedEndOfStream),
		errors.Is(err, ErrDeclaredLengthExceedsInput),
		errors.Is(err, ErrDepthLimitExceeded),
		errors.Is(err, ErrDuplicateName),
		IsInvalidTagKind(err),
		IsInvalidString(err):
		return true
	}

	return false
}
