package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored. A
// single non-nil error is returned as it is, without wrapping.
//
// Use it to collect validation failures of several fields so that all of
// them are reported at once.
func Append(errs ...error) error {
	var collected multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			collected = append(collected, m...)
		} else {
			collected = append(collected, e)
		}
	}
	switch len(collected) {
	case 0:
		return nil
	case 1:
		return collected[0]
	default:
		return collected
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

// Unpack returns all grouped errors.
func (m multiErr) Unpack() []error {
	return m
}

// Code returns the code of the first error, consistent with a fail fast
// approach. A group without a coded error is internal.
func (m multiErr) Code() uint32 {
	if len(m) == 0 {
		return successCode
	}
	return code(m[0])
}
