package script

import (
	"errors"

	"github.com/dop251/goja"

	"corosched/internal/sched"
)

var errBadIterator = errors.New("iterator returned a non-object result")

// Thread is a resumable computation backed by a JavaScript function.
//
// The first slice calls the function. A generator function (or any function
// returning an iterator) is then advanced with next() once per slice and
// suspends at each yield. A plain function runs to completion in one slice.
type Thread struct {
	vm    *goja.Runtime
	fn    goja.Callable
	iter  goja.Value
	next  goja.Callable
	state sched.State
	err   error
}

// NewThread wraps fn. Nothing runs until the first Resume.
func NewThread(vm *goja.Runtime, fn goja.Callable) *Thread {
	return &Thread{vm: vm, fn: fn, state: sched.Resumable}
}

func (t *Thread) State() sched.State { return t.state }

// Err returns the exception that ended the thread, if any.
func (t *Thread) Err() error { return t.err }

// Resume runs one slice. It does nothing unless the thread is Resumable.
func (t *Thread) Resume() error {
	if t.state != sched.Resumable {
		return nil
	}

	t.state = sched.Running
	done, err := t.slice()
	switch {
	case err != nil:
		t.state = sched.Errored
		t.err = err
	case done:
		t.state = sched.Finished
	default:
		t.state = sched.Resumable
	}
	return err
}

func (t *Thread) slice() (bool, error) {
	if t.next == nil {
		v, err := t.fn(goja.Undefined())
		if err != nil {
			return true, err
		}
		next, ok := iteratorNext(v)
		if !ok {
			return true, nil
		}
		t.iter, t.next = v, next
	}

	res, err := t.next(t.iter)
	if err != nil {
		return true, err
	}
	obj, ok := res.(*goja.Object)
	if !ok {
		return true, errBadIterator
	}
	done := obj.Get("done")
	return done != nil && done.ToBoolean(), nil
}

func iteratorNext(v goja.Value) (goja.Callable, bool) {
	obj, ok := v.(*goja.Object)
	if !ok {
		return nil, false
	}
	return goja.AssertFunction(obj.Get("next"))
}
