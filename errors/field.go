package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches the name of a message or model field to err. It returns nil
// when err is nil, so the result of a validation call can be passed directly.
//
// Field names follow the Go names of the struct fields, joined with a dot for
// nested values, for example Amount.Ticker. Elements of a list are named by
// their index, for example Coins.1.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField collects a field error into errorsOrNil. Nothing is added when
// fieldErrOrNil is nil.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error {
	return e.parent
}

func (e *fieldError) Field() string {
	return e.field
}

// fielder is implemented by errors created for a single field.
type fielder interface {
	Field() string
}

// FieldErrors returns the errors created for fieldName anywhere in the error
// tree of err. The search does not descend into an error that already
// matched, so only the outermost error of a field is returned.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	for !errIsNil(err) {
		if f, ok := err.(fielder); ok && f.Field() == fieldName {
			return append(res, err)
		}
		// A multi error lists all of its children, so there is no
		// need to follow its cause.
		if u, ok := err.(unpacker); ok {
			for _, e := range u.Unpack() {
				res = append(res, FieldErrors(e, fieldName)...)
			}
			return res
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return res
}
