package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f in a new goroutine, converting any panic or runtime.Goexit
// into a non-nil error return.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		defer recoverExit(name, errch)
		defer recoverPanic(name, errch)
		errch <- f()
	}()
	return <-errch
}

func recoverExit(name string, errch chan<- error) {
	select {
	case errch <- exitError(name):
	default:
		// the happy path already sent a (maybe nil) error
	}
}

func recoverPanic(name string, errch chan<- error) {
	var pe panicError
	if pe.e = recover(); pe.e != nil {
		pe.name = name
		pe.stack = debug.Stack()
		select {
		case errch <- pe:
		default:
		}
	}
}

// Defect is a broken internal invariant, as opposed to an error caused by
// user input. Code that finds one panics with Defectf.
type Defect string

func (d Defect) Error() string { return "internal defect: " + string(d) }

// Defectf panics with a formatted Defect.
func Defectf(mess string, args ...interface{}) {
	panic(Defect(fmt.Sprintf(mess, args...)))
}

// IsDefect returns true if err is, or is a recovered panic of, a Defect.
func IsDefect(err error) bool {
	var d Defect
	return errors.As(err, &d)
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	var xe exitError
	return errors.As(err, &xe)
}

type panicError struct {
	name  string
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	if pe.name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.e)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.name, pe.e)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}

// IsPanic returns true if err indicates a recovered goroutine panic.
func IsPanic(err error) bool {
	var pe panicError
	return errors.As(err, &pe)
}

// PanicStack returns a non-empty stacktrace string if err is a recovered
// goroutine panic.
func PanicStack(err error) string {
	var pe panicError
	if errors.As(err, &pe) {
		return string(pe.stack)
	}
	return ""
}
