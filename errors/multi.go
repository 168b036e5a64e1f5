package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If the given errors contain a multi error instance, its content is
// flattened so that the result is never a nested multi error. Because of
// that, the result of this function must never be matched by identity.
func Append(errs ...error) error {
	var res multiError
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiError); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

type multiError []error

var (
	_ error    = (multiError)(nil)
	_ unpacker = (multiError)(nil)
	_ coder    = (multiError)(nil)
)

// Unpack implements the unpacker interface.
func (e multiError) Unpack() []error {
	return e
}

// ABCICode returns the error code of the first clubbed error, consistent
// with the fail-fast processing of a request. An empty collection maps to
// the success code.
func (e multiError) ABCICode() uint32 {
	if len(e) == 0 {
		return SuccessABCICode
	}
	return abciCode(e[0])
}

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return ""
	case 1:
		return e[0].Error()
	}

	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = "* " + err.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e), strings.Join(msgs, "\n\t"))
}

// unpacker is implemented by errors that club together many errors. Unlike
// with causer, there is no order or hierarchy between unpacked errors.
type unpacker interface {
	Unpack() []error
}
