// Package failure captures errors raised by a screen together with the place
// they came from, so the error screen can show both.
package failure

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Failure is a location plus a message, consumed once to build the error
// screen.
type Failure struct {
	Location string
	Message  string
	Err      error
}

// New wraps err raised at location.
func New(location string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return &Failure{Location: location, Message: msg, Err: err}
}

// FromPanic converts a recovered panic value. The location is the source line
// that panicked when it can be found, otherwise fallback.
func FromPanic(v any, fallback string) *Failure {
	var err error
	switch x := v.(type) {
	case error:
		err = x
	case string:
		err = errors.New(x)
	default:
		err = fmt.Errorf("%v", x)
	}
	loc := panicSite()
	if loc == "" {
		loc = fallback
	}
	return &Failure{Location: loc, Message: "panic: " + err.Error(), Err: err}
}

// Error implements error.
func (f *Failure) Error() string {
	return f.Location + ": " + f.Message
}

// Unwrap returns the wrapped cause.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Protect runs fn and turns both a returned error and a panic into a Failure.
func Protect(location string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = FromPanic(r, location)
		}
	}()
	if e := fn(); e != nil {
		return New(location, e)
	}
	return nil
}

// panicSite walks the stack of a recovering goroutine and returns the first
// frame below runtime.gopanic, which is the line that panicked.
func panicSite() string {
	pc := make([]uintptr, 32)
	n := runtime.Callers(2, pc)
	frames := runtime.CallersFrames(pc[:n])
	sawPanic := false
	for {
		fr, more := frames.Next()
		if sawPanic && !isRuntime(fr.Function) {
			return fmt.Sprintf("%s:%d", fr.File, fr.Line)
		}
		if fr.Function == "runtime.gopanic" {
			sawPanic = true
		}
		if !more {
			return ""
		}
	}
}

func isRuntime(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "internal/runtime/")
}
