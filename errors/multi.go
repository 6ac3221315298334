package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If more than one not nil error is given, the returned error has the ABCI
// code of the first one. Is checks every contained error.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// ABCICode returns the code of the first contained error.
func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}

// Unpack returns all errors this instance clubs together.
func (m multiErr) Unpack() []error {
	return m
}

// unpacker is implemented by errors that group more than one error.
type unpacker interface {
	Unpack() []error
}

var (
	_ coder    = (multiErr)(nil)
	_ unpacker = (multiErr)(nil)
)
