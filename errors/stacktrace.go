package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Functions that only wrap are hidden from the trace. Their frames carry no
// information about where the error happened.
var internalFuncs = []string{
	"github.com/iov-one/treasury/errors.Wrap",
	"github.com/iov-one/treasury/errors.Wrapf",
	"github.com/iov-one/treasury/errors.Field",
	"github.com/iov-one/treasury/errors.(*Error).New",
	"github.com/iov-one/treasury/errors.(*Error).Newf",
	"github.com/iov-one/treasury/errors.Recover",
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found while unwrapping the error.
func stackTrace(err error) errors.StackTrace {
	for {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
}

func funcName(f errors.Frame) string {
	fn := runtime.FuncForPC(uintptr(f) - 1)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown", 0
	}
	return fn.FileLine(pc)
}

func isInternal(f errors.Frame) bool {
	name := funcName(f)
	for _, fn := range internalFuncs {
		if name == fn {
			return true
		}
	}
	return false
}

func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && isInternal(st[0]) {
		st = st[1:]
	}
	for len(st) > 0 && strings.HasPrefix(funcName(st[len(st)-1]), "runtime.") {
		st = st[:len(st)-1]
	}
	return st
}

func writeSimpleFrame(s io.Writer, f errors.Frame) {
	file, line := fileLine(f)
	// Only the last two path segments are useful.
	if i := strings.LastIndex(file, "/"); i > 0 {
		if j := strings.LastIndex(file[:i], "/"); j >= 0 {
			file = file[j+1:]
		}
	}
	fmt.Fprintf(s, " [%s:%d]", file, line)
}

// Format works like pkg/errors, with additions.
//   %s is just the error message
//   %+v is the full stack trace
//   %v appends a compressed [filename:line] where the error was created
func (e *wrappedError) Format(s fmt.State, verb rune) {
	formatTraced(e, s, verb)
}

func (err *fieldError) Format(s fmt.State, verb rune) {
	formatTraced(err, s, verb)
}

func formatTraced(err error, s fmt.State, verb rune) {
	io.WriteString(s, err.Error())
	if verb != 'v' {
		return
	}
	st := trimInternal(stackTrace(err))
	if len(st) == 0 {
		return
	}
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v", st)
		return
	}
	writeSimpleFrame(s, st[0])
}
