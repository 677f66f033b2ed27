package errors

import (
	"errors"
	"fmt"
)

const (
	successCode uint32 = 0

	// All unclassified errors that do not provide a code are clubbed under
	// an internal error code and a generic message instead of detailed
	// error string.
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

// Info returns the code and a log message that can be presented to a caller.
// Any error that does not wrap a registered root error is internal, and its
// message is hidden unless debug is true.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return successCode, ""
	}

	if c := code(err); c != internalCode {
		if debug {
			return c, fmt.Sprintf("%+v", err)
		}
		return c, err.Error()
	}

	if debug {
		return internalCode, fmt.Sprintf("%+v", err)
	}
	return internalCode, internalLog
}

func code(err error) uint32 {
	if isNilErr(err) {
		return successCode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		if c, ok := err.(causer); ok {
			err = c.Cause()
		} else {
			return internalCode
		}
	}
}

// Redact replaces all errors that do not wrap a registered root error with a
// generic internal error instance. This hides implementation details from
// the caller.
//
// This is a no-operation function when running in debug mode.
func Redact(err error, debug bool) error {
	if debug {
		return err
	}
	if ErrPanic.Is(err) {
		return errors.New(internalLog)
	}
	if code(err) == internalCode {
		return errors.New(internalLog)
	}
	return err
}
