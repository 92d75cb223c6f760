// Package assert provides error assertions printing the full error chain,
// stack traces included, when they fail.
package assert

import (
	"testing"

	"github.com/cockroachdb/errors"
)

// ErrorIs fails the test if err doesn't match target.
func ErrorIs(t testing.TB, err error, target error) {
	t.Helper()
	ErrorIsf(t, err, target, "Expected error to be %v but got %v instead", target, err)
}

func ErrorIsf(t testing.TB, err error, target error, str string, args ...any) {
	t.Helper()

	if errors.Is(err, target) {
		return
	}
	t.Logf(str, args...)
	if err != nil {
		t.Logf("Details:\n%+v", err)
	}
	t.FailNow()
}

// ErrorAs fails the test if no error of type T is found in the chain of err,
// and returns it otherwise.
func ErrorAs[T error](t testing.TB, err error) T {
	t.Helper()

	var target T
	if errors.As(err, &target) {
		return target
	}
	t.Logf("Expected error of type %T but got %v instead", target, err)
	if err != nil {
		t.Logf("Details:\n%+v", err)
	}
	t.FailNow()

	return target
}

// NoError fails the test if err is not nil.
func NoError(t testing.TB, err error) {
	t.Helper()

	if err == nil {
		return
	}
	t.Logf("Expected error to be nil but got %q instead", err)
	t.Logf("Details:\n%+v", err)
	t.FailNow()
}
