// Package job provides Go-native resumable computations that a scheduler
// can drive slice by slice.
package job

import (
	"errors"
	"fmt"
	"iter"

	"corosched/internal/sched"
)

// errClosed unwinds a body whose coroutine was closed while suspended.
var errClosed = errors.New("coroutine closed")

// Coroutine runs a Go function that can suspend itself by calling yield.
// Each Resume runs the body up to its next yield, its return or a panic.
type Coroutine struct {
	next  func() (struct{}, bool)
	stop  func()
	state sched.State
	err   error
}

// New creates a suspended coroutine for body. The body starts running on
// the first Resume. A returned error or a panic leaves it Errored.
func New(body func(yield func()) error) *Coroutine {
	c := &Coroutine{state: sched.Resumable}

	seq := func(yield func(struct{}) bool) {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok && errors.Is(err, errClosed) {
					return
				}
				c.err = fmt.Errorf("coroutine panicked: %v", r)
			}
		}()
		c.err = body(func() {
			if !yield(struct{}{}) {
				panic(errClosed)
			}
		})
	}
	c.next, c.stop = iter.Pull(seq)
	return c
}

// Func wraps fn as a coroutine that completes in a single slice.
func Func(fn func() error) *Coroutine {
	return New(func(func()) error { return fn() })
}

func (c *Coroutine) State() sched.State { return c.state }

// Err returns the error that ended the coroutine, if any.
func (c *Coroutine) Err() error { return c.err }

// Resume runs one slice. It does nothing unless the coroutine is Resumable.
func (c *Coroutine) Resume() error {
	if c.state != sched.Resumable {
		return nil
	}

	c.state = sched.Running
	if _, ok := c.next(); ok {
		c.state = sched.Resumable
		return nil
	}

	if c.err != nil {
		c.state = sched.Errored
		return c.err
	}
	c.state = sched.Finished
	return nil
}

// Close abandons a suspended coroutine and releases its resources.
// A closed coroutine reports Finished.
func (c *Coroutine) Close() {
	c.stop()
	if c.state.Alive() {
		c.state = sched.Finished
	}
}
