// internal/sched/schedulerEvent.go

package sched

import (
	"time"
)

// StatusKind represents the type of scheduler event
type StatusKind int

const (
	StatusEnqueue  StatusKind = iota // task submitted
	StatusDispatch                   // task peeked and about to be resumed
	StatusYield                      // task suspended and went back to the list
	StatusFinish                     // task completed and was dropped
	StatusError                      // task failed and was dropped
)

// StatusEvent is emitted on every task lifecycle transition.
type StatusEvent struct {
	Time     time.Time
	Kind     StatusKind
	TaskID   TaskID
	Priority int64
	Lifetime uint64 // scheduler step counter when the event fired
	Err      error  // set for StatusError
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusEnqueue:
		return "Enqueued"
	case StatusDispatch:
		return "Dispatch"
	case StatusYield:
		return "Yield"
	case StatusFinish:
		return "Finish"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}
