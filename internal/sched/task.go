// internal/sched/task.go

package sched

// TaskID identifies a task inside one scheduler. IDs start at 1.
type TaskID uint64

// State is the observable status of a resumable computation.
type State int

const (
	Resumable State = iota // suspended, or not started yet
	Running                // inside a slice (only visible to nested resumptions)
	Finished
	Errored
)

func (s State) String() string {
	switch s {
	case Resumable:
		return "resumable"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

// Alive reports whether a computation in this state may still be scheduled.
func (s State) Alive() bool {
	return s == Resumable || s == Running
}

// Handle is a resumable computation supplied by the host.
//
// Resume runs the computation until it suspends itself, completes or fails.
// A failure must also be reflected by State returning Errored.
type Handle interface {
	State() State
	Resume() error
}

// Task pairs one handle with its scheduling weight.
type Task struct {
	id       TaskID
	priority int64 // >= 1, enforced by Scheduler.AddTask
	handle   Handle
	err      error // last error raised by the handle, kept for observers
}

// NewTask stores the handle and priority verbatim.
// Priority validation happens where tasks are submitted, not here.
func NewTask(id TaskID, priority int64, h Handle) *Task {
	return &Task{
		id:       id,
		priority: priority,
		handle:   h,
	}
}

func (t *Task) ID() TaskID { return t.id }
func (t *Task) Priority() int64 { return t.priority }

// Err returns the error raised during the last slice, if any.
func (t *Task) Err() error { return t.err }

// State returns the handle's current state without resuming it.
func (t *Task) State() State { return t.handle.State() }

// IsAlive reports whether the handle is resumable or running.
func (t *Task) IsAlive() bool { return t.handle.State().Alive() }

// Resume advances the handle by one slice, but only when it is exactly
// Resumable. Errors are swallowed here; they surface as the Errored state.
func (t *Task) Resume() {
	if t.handle.State() != Resumable {
		return
	}
	t.err = t.handle.Resume()
}
