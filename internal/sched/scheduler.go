// internal/sched/scheduler.go

package sched

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"
)

// Scheduler drives tasks to completion under the policy of its task list.
// The policy is fixed when the scheduler is built.
//
// A Scheduler is not safe for concurrent use: it runs one slice of one task
// at a time on the caller's goroutine.
type Scheduler[L TaskList] struct {
	tasks    L
	lifetime uint64 // number of steps that resumed a task
	lastID   TaskID
	logger   *slog.Logger
	observer func(StatusEvent)
}

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	observer func(StatusEvent)
}

// WithLogger sets the logger used for dispatch and task failure messages.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver registers fn to receive every status event synchronously.
// Multiple observers are called in registration order.
func WithObserver(fn func(StatusEvent)) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		prev := o.observer
		if prev == nil {
			o.observer = fn
			return
		}
		o.observer = func(ev StatusEvent) {
			prev(ev)
			fn(ev)
		}
	}
}

// New creates a scheduler owning the given task list, which should be empty.
func New[L TaskList](tasks L, opts ...Option) *Scheduler[L] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Scheduler[L]{
		tasks:    tasks,
		logger:   o.logger.With("component", "scheduler"),
		observer: o.observer,
	}
}

// AddTask wraps h into a task with the given priority and enqueues it.
// A non-positive priority is rejected and nothing is added.
func (s *Scheduler[L]) AddTask(h Handle, priority int64) (TaskID, error) {
	if priority <= 0 {
		return 0, fmt.Errorf("%w: priority must be positive, got %d", ErrInvalidArgument, priority)
	}
	if h == nil {
		return 0, fmt.Errorf("%w: nil handle", ErrInvalidArgument)
	}

	s.lastID++
	t := NewTask(s.lastID, priority, h)
	s.tasks.Add(t)

	s.emit(StatusEnqueue, t)
	return t.ID(), nil
}

// HasTasks reports whether any task is still resident.
func (s *Scheduler[L]) HasTasks() bool {
	return !s.tasks.IsEmpty()
}

// Len returns the number of resident tasks.
func (s *Scheduler[L]) Len() int {
	return s.tasks.Len()
}

// Lifetime returns how many steps actually resumed a task.
func (s *Scheduler[L]) Lifetime() uint64 {
	return s.lifetime
}

// Step runs one scheduling cycle: pick the next task, resume it for one
// slice and put it back if it is still alive. It is a no-op on an empty list.
func (s *Scheduler[L]) Step() {
	t, ok := s.tasks.Peek()
	if !ok {
		return
	}

	s.emit(StatusDispatch, t)
	t.Resume()
	if s.lifetime < math.MaxUint64 {
		s.lifetime++
	}

	// 1) still alive: back into the list under the policy's insertion rule
	if t.IsAlive() {
		s.tasks.Add(t)
		s.emit(StatusYield, t)
		return
	}

	// 2) terminal: drop it
	if t.State() == Errored {
		s.logger.Warn("task failed", "task_id", t.ID(), "error", t.Err())
		s.emit(StatusError, t)
		return
	}
	s.emit(StatusFinish, t)
}

// Steps calls Step exactly count times. Steps on an empty list are no-ops,
// so fewer than count tasks may actually be resumed.
func (s *Scheduler[L]) Steps(count int64) error {
	if count <= 0 {
		return fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidArgument, count)
	}
	for i := int64(0); i < count; i++ {
		s.Step()
	}
	return nil
}

// Run steps until no task is left. It does not return while some task keeps
// suspending forever.
func (s *Scheduler[L]) Run() {
	for s.HasTasks() {
		s.Step()
	}
}

func (s *Scheduler[L]) emit(kind StatusKind, t *Task) {
	if kind == StatusDispatch || kind == StatusFinish {
		s.logger.Debug(kind.String(), "task_id", t.ID(), "priority", t.Priority(), "lifetime", s.lifetime)
	}
	if s.observer == nil {
		return
	}

	ev := StatusEvent{
		Time:     time.Now(),
		Kind:     kind,
		TaskID:   t.ID(),
		Priority: t.Priority(),
		Lifetime: s.lifetime,
	}
	if kind == StatusError {
		ev.Err = t.Err()
	}
	s.observer(ev)
}
