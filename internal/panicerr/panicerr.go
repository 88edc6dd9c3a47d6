// Package panicerr runs a function on its own goroutine, turning a panic or
// a runtime.Goexit within it into an ordinary error.
package panicerr

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Recover runs f on a new goroutine and returns its error; if f panics or
// calls runtime.Goexit instead, the returned error describes that.
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		returned := false
		defer func() {
			if returned {
				return
			}
			if e := recover(); e != nil {
				errch <- Error{Name: name, Value: e, Stack: debug.Stack()}
			} else {
				errch <- exitError(name)
			}
		}()
		err := f()
		returned = true
		errch <- err
	}()
	return <-errch
}

// Error is a recovered panic, with the stack it was raised from.
type Error struct {
	Name  string
	Value interface{}
	Stack []byte
}

func (pe Error) Error() string { return fmt.Sprint(pe) }

// Format adds the panic stack under the %+v verb.
func (pe Error) Format(f fmt.State, c rune) {
	if pe.Name == "" {
		fmt.Fprintf(f, "paniced: %v", pe.Value)
	} else {
		fmt.Fprintf(f, "%v paniced: %v", pe.Name, pe.Value)
	}
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.Stack)
	}
}

// Unwrap returns the panic value when it was an error.
func (pe Error) Unwrap() error {
	err, _ := pe.Value.(error)
	return err
}

// IsPanic reports whether err came from a recovered panic.
func IsPanic(err error) bool {
	var pe Error
	return errors.As(err, &pe)
}

type exitError string

func (name exitError) Error() string {
	if name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", string(name))
}
