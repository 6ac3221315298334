// Package assert is a small set of test helpers that understand the errors
// package of this module.
package assert

import (
	"reflect"

	"github.com/iov-one/tlfund/errors"
)

// Tester is the part of testing.TB used by the helpers.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil fails the test if value is not nil. Typed nil values, for example a nil
// error pointer, are accepted.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if want and got are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("values not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails the test if fn returns without panicking.
func Panics(t Tester, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	fn()
}

// IsErr fails the test unless got is of the kind of want. A nil want only
// matches a nil got.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(interface{ Is(error) bool }); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError fails the test unless err holds exactly one error for given
// field and that error is of the kind of want. Pass a nil want to require
// that the field has no error at all.
func FieldError(t Tester, err error, field string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, field)
	if want == nil {
		if len(errs) != 0 {
			logErrors(t, errs)
			t.Fatalf("want no %q error, got %d", field, len(errs))
		}
		return
	}

	switch len(errs) {
	case 0:
		t.Fatalf("no %q error found", field)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("want %q error %q, got %q", field, want, errs[0])
		}
	default:
		logErrors(t, errs)
		t.Fatalf("want one %q error, got %d", field, len(errs))
	}
}

func logErrors(t Tester, errs []error) {
	for i, e := range errs {
		t.Logf("\terror %d: %q", i+1, e)
	}
}
